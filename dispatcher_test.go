package main

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

func newTestDispatcher(t *testing.T, cfg Config, draws ...int) (*Dispatcher, *Store) {
	t.Helper()
	if cfg.MaxConcurrentCommands == 0 {
		cfg.MaxConcurrentCommands = 4
	}
	store := OpenStore(filepath.Join(t.TempDir(), "test.db"), cfg.StartingCoins())
	t.Cleanup(func() { store.Close() })

	engine := NewEngine(testCatalog(t), &seqRNG{seq: draws})
	dispatcher := NewDispatcher(cfg, store, engine)
	dispatcher.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return dispatcher, store
}

func TestDispatcherBuyFlow(t *testing.T) {
	dispatcher, store := newTestDispatcher(t, Config{GameMode: GameModeExtended})

	reply := dispatcher.Handle(IncomingCommand{UserID: 11, ChatID: 20, Command: "buy", Args: []string{"3"}})
	if !strings.Contains(reply.Text, "Purchased") {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
	if reply.ChatID != 20 {
		t.Fatalf("reply chat id = %d", reply.ChatID)
	}

	profile, _ := store.ReadProfile("11")
	if profile.Coins != 700 || !profile.Owns(3) {
		t.Fatalf("buy did not persist: %+v", profile)
	}
}

func TestDispatcherUsageMessages(t *testing.T) {
	dispatcher, _ := newTestDispatcher(t, Config{GameMode: GameModeClassic})

	cases := []IncomingCommand{
		{UserID: 1, ChatID: 1, Command: "buy"},
		{UserID: 1, ChatID: 1, Command: "buy", Args: []string{"abc"}},
		{UserID: 1, ChatID: 1, Command: "upgrade", Args: []string{"0"}},
	}
	for _, cmd := range cases {
		reply := dispatcher.Handle(cmd)
		if !strings.Contains(reply.Text, "Usage") {
			t.Errorf("%s %v: expected usage reply, got %q", cmd.Command, cmd.Args, reply.Text)
		}
	}
}

func TestDispatcherIgnoresUnknownCommands(t *testing.T) {
	dispatcher, _ := newTestDispatcher(t, Config{GameMode: GameModeClassic})

	reply := dispatcher.Handle(IncomingCommand{UserID: 1, ChatID: 1, Command: "frobnicate"})
	if !reply.Empty() {
		t.Fatalf("unknown command should yield an empty reply, got %q", reply.Text)
	}
}

func TestDispatcherAdminGating(t *testing.T) {
	cfg := Config{GameMode: GameModeClassic, AdminIDs: []int64{99}}
	dispatcher, store := newTestDispatcher(t, cfg)

	reply := dispatcher.Handle(IncomingCommand{UserID: 1, ChatID: 1, Command: "grant", Args: []string{"42", "500"}})
	if !strings.Contains(reply.Text, "not allowed") {
		t.Fatalf("non-admin grant not rejected: %q", reply.Text)
	}
	if _, found := store.ReadProfile("42"); found {
		t.Fatal("rejected grant created a profile")
	}

	reply = dispatcher.Handle(IncomingCommand{UserID: 99, ChatID: 1, Command: "grant", Args: []string{"42", "500"}})
	if !strings.Contains(reply.Text, "Granted 500") {
		t.Fatalf("admin grant failed: %q", reply.Text)
	}
	profile, _ := store.ReadProfile("42")
	if profile.Coins != 600 {
		t.Fatalf("grant not applied: coins=%d", profile.Coins)
	}
}

func TestDispatcherAdminReset(t *testing.T) {
	cfg := Config{GameMode: GameModeClassic, AdminIDs: []int64{99}}
	dispatcher, store := newTestDispatcher(t, cfg)

	dispatcher.Handle(IncomingCommand{UserID: 7, ChatID: 1, Command: "roll"})
	if _, found := store.ReadProfile("7"); !found {
		t.Fatal("roll should create a profile")
	}

	dispatcher.Handle(IncomingCommand{UserID: 99, ChatID: 1, Command: "reset", Args: []string{"7"}})
	if _, found := store.ReadProfile("7"); found {
		t.Fatal("reset did not delete the profile")
	}
}

func TestDispatcherAdminSet(t *testing.T) {
	cfg := Config{GameMode: GameModeClassic, AdminIDs: []int64{99}}
	dispatcher, _ := newTestDispatcher(t, cfg)

	before := GetGameSettings().GachaCost
	t.Cleanup(func() {
		UpdateGameSettings(map[string]string{"gacha_cost": strconv.FormatInt(before, 10)})
	})

	reply := dispatcher.Handle(IncomingCommand{UserID: 99, ChatID: 1, Command: "set", Args: []string{"gacha_cost", "750"}})
	if !strings.Contains(reply.Text, "updated") {
		t.Fatalf("set failed: %q", reply.Text)
	}
	if got := GetGameSettings().GachaCost; got != 750 {
		t.Fatalf("gacha_cost = %d, want 750", got)
	}

	reply = dispatcher.Handle(IncomingCommand{UserID: 99, ChatID: 1, Command: "set", Args: []string{"no_such_key", "1"}})
	if !strings.Contains(reply.Text, "Unknown or invalid") {
		t.Fatalf("bad key not reported: %q", reply.Text)
	}
}

func TestDispatcherStartCarriesKeyboard(t *testing.T) {
	dispatcher, _ := newTestDispatcher(t, Config{GameMode: GameModeClassic})

	reply := dispatcher.Handle(IncomingCommand{UserID: 1, ChatID: 1, Command: "start"})
	if !strings.Contains(reply.Text, "/buy") {
		t.Fatalf("start message incomplete: %q", reply.Text)
	}
	if len(reply.Buttons) != 2 || reply.Buttons[0][0] != "/roll" {
		t.Fatalf("start keyboard wrong: %v", reply.Buttons)
	}
}

func TestDispatcherBalanceDisplay(t *testing.T) {
	dispatcher, _ := newTestDispatcher(t, Config{GameMode: GameModeClassic})

	reply := dispatcher.Handle(IncomingCommand{UserID: 5, ChatID: 5, Command: "bal"})
	if !strings.Contains(reply.Text, "100 coins") {
		t.Fatalf("balance reply wrong: %q", reply.Text)
	}
}

func TestHandleAsyncDeliversReply(t *testing.T) {
	dispatcher, _ := newTestDispatcher(t, Config{GameMode: GameModeClassic, MaxConcurrentCommands: 2})

	replies := make(chan Reply, 1)
	dispatcher.HandleAsync(IncomingCommand{UserID: 5, ChatID: 5, Command: "bal"}, func(r Reply) {
		replies <- r
	})

	select {
	case reply := <-replies:
		if !strings.Contains(reply.Text, "100 coins") {
			t.Fatalf("async reply wrong: %q", reply.Text)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reply delivered")
	}
}

func TestTruncateReply(t *testing.T) {
	long := strings.Repeat("x", maxReplyLength+500)
	got := truncateReply(long)
	if len([]rune(got)) != maxReplyLength {
		t.Fatalf("truncated length = %d", len([]rune(got)))
	}

	short := "hello"
	if truncateReply(short) != short {
		t.Fatal("short reply was modified")
	}
}

func TestDispatcherBonusUsesInjectedClock(t *testing.T) {
	dispatcher, store := newTestDispatcher(t, Config{GameMode: GameModeClassic})

	first := dispatcher.Handle(IncomingCommand{UserID: 3, ChatID: 3, Command: "bonus"})
	if !strings.Contains(first.Text, "+100 coins") {
		t.Fatalf("first bonus wrong: %q", first.Text)
	}

	second := dispatcher.Handle(IncomingCommand{UserID: 3, ChatID: 3, Command: "bonus"})
	if !strings.Contains(second.Text, "already claimed") {
		t.Fatalf("same-day bonus not rejected: %q", second.Text)
	}

	profile, _ := store.ReadProfile("3")
	if profile.Coins != 200 {
		t.Fatalf("expected 200 coins (100 start + 100 bonus), got %d", profile.Coins)
	}
}
