package main

import (
	"encoding/json"
	"net/http"
)

func indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Write([]byte("Bot is alive!"))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func statsHandler(store *Store, catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":          true,
			"profiles":    store.ProfileCount(),
			"catalogSize": catalog.Size(),
			"inMemory":    store.InMemory(),
		})
	}
}

func newMux(store *Store, catalog *Catalog) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", indexHandler)
	mux.HandleFunc("/healthz", healthHandler)
	mux.HandleFunc("/stats", statsHandler(store, catalog))
	mux.HandleFunc("/leaderboard", leaderboardHandler(store))
	return mux
}
