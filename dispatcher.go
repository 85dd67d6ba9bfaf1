package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// maxReplyLength caps outgoing reply text. Chat transports reject messages
// past roughly this size, so the dispatcher truncates before sending.
const maxReplyLength = 4000

type IncomingCommand struct {
	UserID  int64
	ChatID  int64
	Command string
	Args    []string
}

type Reply struct {
	ChatID   int64
	Text     string
	ImageURL string
	// Buttons are command shortcuts rendered as a reply keyboard, one row
	// per inner slice.
	Buttons [][]string
}

func (r Reply) Empty() bool {
	return r.Text == "" && r.ImageURL == ""
}

// Dispatcher routes parsed commands to engine actions through the store's
// critical section and shapes the outcome into a reply. It also enforces the
// admin allow-list and the bounded-parallelism cap on concurrent commands.
type Dispatcher struct {
	cfg    Config
	store  *Store
	engine *Engine
	sem    chan struct{}
	now    func() time.Time
}

func NewDispatcher(cfg Config, store *Store, engine *Engine) *Dispatcher {
	return &Dispatcher{
		cfg:    cfg,
		store:  store,
		engine: engine,
		sem:    make(chan struct{}, cfg.MaxConcurrentCommands),
		now:    time.Now,
	}
}

// HandleAsync runs Handle on its own goroutine, bounded by the concurrency
// cap, and hands the reply to sink.
func (d *Dispatcher) HandleAsync(cmd IncomingCommand, sink func(Reply)) {
	d.sem <- struct{}{}
	go func() {
		defer func() { <-d.sem }()
		sink(d.Handle(cmd))
	}()
}

// Handle processes one command to completion. The returned reply may be empty
// (unknown commands are ignored rather than answered).
func (d *Dispatcher) Handle(cmd IncomingCommand) Reply {
	action, usage := ParseAction(cmd.Command, cmd.Args)
	if usage != "" {
		return d.reply(cmd.ChatID, "⚠️ "+usage)
	}
	if action.Kind == ActionUnknown {
		return Reply{ChatID: cmd.ChatID}
	}

	if action.IsPrivileged() {
		if !d.cfg.IsAdmin(cmd.UserID) {
			return d.reply(cmd.ChatID, "🚫 You are not allowed to do that.")
		}
		return d.handleAdmin(cmd.ChatID, action)
	}

	if action.Mutates() {
		outcome := d.store.WithProfile(userKey(cmd.UserID), func(profile *PlayerProfile) Outcome {
			// Clock and settings are read here so the whole
			// load-compute-persist cycle sees one consistent view.
			now := d.now()
			settings := GetGameSettings()
			return d.apply(action, profile, now, settings)
		})
		return d.outcomeReply(cmd.ChatID, outcome)
	}

	return d.handleDisplay(cmd.UserID, cmd.ChatID, action)
}

func (d *Dispatcher) apply(action Action, profile *PlayerProfile, now time.Time, settings GameSettings) Outcome {
	switch action.Kind {
	case ActionRoll:
		return d.engine.Roll(profile)
	case ActionSmash:
		return d.engine.Smash(profile, now, settings)
	case ActionQuest:
		return d.engine.Quest(profile)
	case ActionGacha:
		return d.engine.Gacha(profile, settings)
	case ActionBuy:
		return d.engine.Buy(profile, action.EntityID)
	case ActionBonus:
		return d.engine.Bonus(profile, now, settings)
	case ActionUpgrade:
		return d.engine.Upgrade(profile, action.Slot, settings)
	case ActionBattle:
		return d.engine.Battle(profile, settings)
	}
	return Rejected(ReasonBadCommand, "Unknown action.")
}

func (d *Dispatcher) handleAdmin(chatID int64, action Action) Reply {
	switch action.Kind {
	case ActionAdminReset:
		d.store.ResetProfile(action.TargetID)
		return d.reply(chatID, fmt.Sprintf("Profile %s reset.", action.TargetID))
	case ActionAdminGrant:
		outcome := d.store.WithProfile(action.TargetID, func(profile *PlayerProfile) Outcome {
			return d.engine.Grant(profile, action.Amount)
		})
		return d.outcomeReply(chatID, outcome)
	case ActionAdminSet:
		_, rejected := UpdateGameSettings(map[string]string{action.Key: action.Value})
		if len(rejected) > 0 {
			return d.reply(chatID, fmt.Sprintf("Unknown or invalid setting %q.", action.Key))
		}
		return d.reply(chatID, fmt.Sprintf("Setting %s updated.", action.Key))
	}
	return Reply{ChatID: chatID}
}

func (d *Dispatcher) handleDisplay(userID, chatID int64, action Action) Reply {
	switch action.Kind {
	case ActionStart:
		reply := d.reply(chatID, startMessage)
		reply.Buttons = [][]string{
			{"/roll", "/bonus", "/bal"},
			{"/gacha", "/battle", "/store"},
		}
		return reply
	case ActionBalance:
		profile, _ := d.store.ReadProfile(userKey(userID))
		return d.reply(chatID, fmt.Sprintf("💰 Balance: %d coins.\n🎴 Cards Owned: %d", profile.Coins, len(profile.OwnedEntities)))
	case ActionStore:
		return d.reply(chatID, d.engine.catalog.StoreListing())
	case ActionProfile:
		profile, _ := d.store.ReadProfile(userKey(userID))
		return d.reply(chatID, formatProfile(profile))
	case ActionTop:
		return d.reply(chatID, formatLeaderboard(TopBalances(d.store, 10)))
	}
	return Reply{ChatID: chatID}
}

func (d *Dispatcher) outcomeReply(chatID int64, outcome Outcome) Reply {
	reply := d.reply(chatID, outcome.Message)
	reply.ImageURL = outcome.ImageURL
	return reply
}

func (d *Dispatcher) reply(chatID int64, text string) Reply {
	return Reply{ChatID: chatID, Text: truncateReply(text)}
}

func truncateReply(text string) string {
	runes := []rune(text)
	if len(runes) <= maxReplyLength {
		return text
	}
	return string(runes[:maxReplyLength])
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

const startMessage = `👋 Welcome to the Character Collection Bot!

🎮 Commands:
/roll - Roll a new character (Free)
/smash - Quick roll (60s cooldown)
/quest - Go questing for characters
/gacha - Paid weighted pull
/bal - Check your coin balance
/bonus - Claim your daily bonus (streaks pay more)
/battle - Fight for coins
/upgrade <n> - Try to upgrade an inventory item
/store - View character list
/buy <id> - Buy a specific character
/profile - Your full profile
/top - Richest collectors`

func formatProfile(profile PlayerProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💰 Coins: %d\n🎴 Cards: %d\n", profile.Coins, len(profile.OwnedEntities))
	fmt.Fprintf(&b, "🗺 Quests done: %d\n⚔️ Battles won: %d\n⚒ Upgrades done: %d\n",
		profile.Counters[CounterQuestsDone], profile.Counters[CounterBattlesWon], profile.Counters[CounterUpgradesDone])
	if streak := profile.Streaks[CooldownBonus]; streak > 0 {
		fmt.Fprintf(&b, "🔥 Bonus streak: %d day(s)\n", streak)
	}
	if len(profile.InventoryItems) > 0 {
		b.WriteString("🎒 Inventory:\n")
		for i, item := range profile.InventoryItems {
			fmt.Fprintf(&b, "  %d. %s (%s)\n", i+1, item.Name, item.Rarity)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
