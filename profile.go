package main

import "time"

// Cooldown and counter keys. Profiles store these as open maps on disk so old
// records keep unknown keys, but the engine only ever touches the ones below.
const (
	CooldownBonus = "bonus"
	CooldownSmash = "smash"

	CounterQuestsDone   = "questsDone"
	CounterBattlesWon   = "battlesWon"
	CounterUpgradesDone = "upgradesDone"
)

type InventoryItem struct {
	Name   string `json:"name"`
	Rarity Rarity `json:"rarity"`
}

// PlayerProfile is the full durable game state for one user. It is mutated
// only inside Store.WithProfile.
type PlayerProfile struct {
	Coins          int64                `json:"coins"`
	OwnedEntities  []int64              `json:"ownedEntities"`
	InventoryItems []InventoryItem      `json:"inventoryItems,omitempty"`
	Cooldowns      map[string]time.Time `json:"cooldowns,omitempty"`
	Streaks        map[string]int       `json:"streaks,omitempty"`
	Counters       map[string]int       `json:"counters,omitempty"`
	Flags          map[string]string    `json:"flags,omitempty"`
}

func NewPlayerProfile(startingCoins int64) *PlayerProfile {
	return &PlayerProfile{
		Coins:     startingCoins,
		Cooldowns: make(map[string]time.Time),
		Streaks:   make(map[string]int),
		Counters:  make(map[string]int),
		Flags:     make(map[string]string),
	}
}

// normalize backfills nil maps on records decoded from older layouts.
func (p *PlayerProfile) normalize() {
	if p.Cooldowns == nil {
		p.Cooldowns = make(map[string]time.Time)
	}
	if p.Streaks == nil {
		p.Streaks = make(map[string]int)
	}
	if p.Counters == nil {
		p.Counters = make(map[string]int)
	}
	if p.Flags == nil {
		p.Flags = make(map[string]string)
	}
}

func (p *PlayerProfile) Owns(entityID int64) bool {
	for _, id := range p.OwnedEntities {
		if id == entityID {
			return true
		}
	}
	return false
}

// AddEntity appends the id if not already owned and reports whether it was new.
func (p *PlayerProfile) AddEntity(entityID int64) bool {
	if p.Owns(entityID) {
		return false
	}
	p.OwnedEntities = append(p.OwnedEntities, entityID)
	return true
}
