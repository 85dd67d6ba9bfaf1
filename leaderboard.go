package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

type LeaderboardEntry struct {
	UserID string `json:"userId"`
	Coins  int64  `json:"coins"`
	Cards  int    `json:"cards"`
}

// TopBalances returns up to limit profiles ordered by coin balance, cards
// owned breaking ties.
func TopBalances(store *Store, limit int) []LeaderboardEntry {
	var entries []LeaderboardEntry
	store.ForEachProfile(func(userID string, profile PlayerProfile) bool {
		entries = append(entries, LeaderboardEntry{
			UserID: userID,
			Coins:  profile.Coins,
			Cards:  len(profile.OwnedEntities),
		})
		return true
	})

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Coins != entries[j].Coins {
			return entries[i].Coins > entries[j].Coins
		}
		if entries[i].Cards != entries[j].Cards {
			return entries[i].Cards > entries[j].Cards
		}
		return entries[i].UserID < entries[j].UserID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func formatLeaderboard(entries []LeaderboardEntry) string {
	if len(entries) == 0 {
		return "No collectors yet. Be the first!"
	}
	lines := []string{"🏆 Richest collectors:"}
	for i, entry := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s — %d coins, %d cards", i+1, entry.UserID, entry.Coins, entry.Cards))
	}
	return strings.Join(lines, "\n")
}

func leaderboardHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		limit := 10
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 100 {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		entries := TopBalances(store, limit)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":      true,
			"entries": entries,
		})
	}
}
