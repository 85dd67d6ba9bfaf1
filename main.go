package main

import (
	"log"
	"net/http"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	log.Println("Game mode:", cfg.GameMode)
	log.Println("Starting coins:", cfg.StartingCoins())
	if cfg.DevMode {
		log.Println("⚠️  DEV MODE ENABLED")
	}
	if len(cfg.AdminIDs) == 0 {
		log.Println("No ADMIN_IDS configured; admin commands are disabled")
	}

	catalog, err := LoadCatalog(cfg.CatalogFile)
	if err != nil {
		log.Fatal("failed to load catalog:", err)
	}
	log.Printf("Catalog loaded: factions=%d entities=%d", len(catalog.Factions()), catalog.Size())

	store := OpenStore(cfg.DataPath, cfg.StartingCoins())
	defer store.Close()
	if store.InMemory() {
		log.Println("WARN: profile store is in-memory only; state will not survive a restart")
	}

	engine := NewEngine(catalog, NewGameRNG())
	dispatcher := NewDispatcher(cfg, store, engine)

	// Keep-alive web server; some hosts restart the process unless it
	// answers HTTP.
	mux := newMux(store, catalog)
	go func() {
		addr := ":" + cfg.Port
		log.Println("HTTP listening on", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Fatal("HTTP server failed:", err)
		}
	}()

	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is not set")
	}
	bot, err := NewTelegramBot(cfg.BotToken, dispatcher)
	if err != nil {
		log.Fatal("failed to connect to Telegram:", err)
	}

	log.Println("🤖 Bot is starting...")
	bot.Run(cfg.PollTimeoutSeconds)
}
