package main

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

type GameSettings struct {
	BonusBaseAmount      int64
	SmashCooldownSeconds int
	GachaCost            int64
	UpgradeCost          int64
	UpgradeSuccessNum    int
	UpgradeSuccessDen    int
	BattleEnemyMin       int
	BattleEnemyMax       int
	BattleRewardMin      int64
	BattleRewardMax      int64
	RarityWeightCommon   int
	RarityWeightRare     int
	RarityWeightEpic     int
}

var (
	settingsMu     sync.RWMutex
	cachedSettings = GameSettings{
		BonusBaseAmount:      100,
		SmashCooldownSeconds: 60,
		GachaCost:            500,
		UpgradeCost:          200,
		UpgradeSuccessNum:    2,
		UpgradeSuccessDen:    3,
		BattleEnemyMin:       10,
		BattleEnemyMax:       150,
		BattleRewardMin:      50,
		BattleRewardMax:      150,
		RarityWeightCommon:   60,
		RarityWeightRare:     25,
		RarityWeightEpic:     10,
	}
)

func GetGameSettings() GameSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return cachedSettings
}

// UpdateGameSettings applies the given key/value updates and returns the new
// snapshot along with any keys that were rejected.
func UpdateGameSettings(updates map[string]string) (GameSettings, []string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	var rejected []string
	for key, value := range updates {
		if !applySetting(&cachedSettings, key, value) {
			rejected = append(rejected, key)
		}
	}
	return cachedSettings, rejected
}

func applySetting(target *GameSettings, key string, value string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "bonus_base_amount":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil && v >= 0 {
			target.BonusBaseAmount = v
			return true
		}
	case "smash_cooldown_seconds":
		if v, err := strconv.Atoi(value); err == nil && v >= 0 {
			target.SmashCooldownSeconds = v
			return true
		}
	case "gacha_cost":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil && v >= 0 {
			target.GachaCost = v
			return true
		}
	case "upgrade_cost":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil && v >= 0 {
			target.UpgradeCost = v
			return true
		}
	case "battle_reward_min":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil && v >= 0 {
			target.BattleRewardMin = v
			return true
		}
	case "battle_reward_max":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil && v >= 0 {
			target.BattleRewardMax = v
			return true
		}
	}
	return false
}

func (s GameSettings) SmashCooldown() time.Duration {
	if s.SmashCooldownSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(s.SmashCooldownSeconds) * time.Second
}
