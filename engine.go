package main

import (
	"fmt"
	"time"
)

// Engine implements the game rules. Every action is a function of the current
// profile, the catalog, the injected randomness and the supplied wall-clock:
// it either rejects before touching the profile or applies all of its changes
// together. Persistence is the store's job; the engine never does IO.
type Engine struct {
	catalog *Catalog
	rng     RNG
}

func NewEngine(catalog *Catalog, rng RNG) *Engine {
	return &Engine{catalog: catalog, rng: rng}
}

// Roll draws one entity uniformly from the default faction, free of charge.
func (e *Engine) Roll(profile *PlayerProfile) Outcome {
	entities := e.catalog.ListFaction(e.catalog.DefaultFaction())
	return e.freeDraw(profile, entities)
}

// Quest draws across every faction and always advances the quest counter,
// duplicate or not.
func (e *Engine) Quest(profile *PlayerProfile) Outcome {
	entities := e.catalog.AllEntities()
	if len(entities) == 0 {
		return Rejected(ReasonNotFound, "No characters found in database.")
	}
	outcome := e.grantDraw(profile, entities[e.rng.Intn(len(entities))])
	profile.Counters[CounterQuestsDone]++
	outcome.Message = fmt.Sprintf("🗺 Quest #%d complete!\n%s", profile.Counters[CounterQuestsDone], outcome.Message)
	return outcome
}

// Smash is the short-cooldown roll. The timestamp updates on every accepted
// attempt, duplicates included.
func (e *Engine) Smash(profile *PlayerProfile, now time.Time, settings GameSettings) Outcome {
	window := settings.SmashCooldown()
	last, ok := profile.Cooldowns[CooldownSmash]
	if ok && now.Sub(last) < window {
		remaining := window - now.Sub(last)
		return RejectedOnCooldown(int64(remaining / time.Second))
	}

	entities := e.catalog.ListFaction(e.catalog.DefaultFaction())
	if len(entities) == 0 {
		return Rejected(ReasonNotFound, "No characters found in database.")
	}

	profile.Cooldowns[CooldownSmash] = now
	return e.grantDraw(profile, entities[e.rng.Intn(len(entities))])
}

// Gacha is the paid weighted pull. The cost is charged on every accepted
// pull; a duplicate entity converts into an inventory item instead of being
// lost.
func (e *Engine) Gacha(profile *PlayerProfile, settings GameSettings) Outcome {
	cost := settings.GachaCost
	if profile.Coins < cost {
		return Rejected(ReasonInsufficientFunds, fmt.Sprintf("❌ Inadequate coins! Need %d coins.", cost))
	}
	if e.catalog.Size() == 0 {
		return Rejected(ReasonNotFound, "No characters found in database.")
	}

	rarity := e.rollRarity(settings)
	pool := e.catalog.EntitiesByRarity(rarity)
	if len(pool) == 0 {
		pool = e.catalog.AllEntities()
	}
	drawn := pool[e.rng.Intn(len(pool))]

	profile.Coins -= cost
	if profile.AddEntity(drawn.ID) {
		msg := fmt.Sprintf("🎰 Gacha! You pulled %s (%s) for %d coins.", drawn.Name, drawn.Rarity, cost)
		return AppliedPhoto(msg, drawn.ImageURL)
	}
	profile.InventoryItems = append(profile.InventoryItems, InventoryItem{Name: drawn.Name, Rarity: drawn.Rarity})
	msg := fmt.Sprintf("🎰 Gacha! Duplicate %s (%s) — converted to an inventory item.", drawn.Name, drawn.Rarity)
	return Applied(msg)
}

// rollRarity rolls 1-100 against the cumulative rarity thresholds.
func (e *Engine) rollRarity(settings GameSettings) Rarity {
	roll := e.rng.Intn(100) + 1
	threshold := settings.RarityWeightCommon
	if roll <= threshold {
		return RarityCommon
	}
	threshold += settings.RarityWeightRare
	if roll <= threshold {
		return RarityRare
	}
	threshold += settings.RarityWeightEpic
	if roll <= threshold {
		return RarityEpic
	}
	return RarityLegendary
}

// Buy purchases a catalog entity by id. The id is searched across factions
// in catalog priority order; the first match wins.
func (e *Engine) Buy(profile *PlayerProfile, entityID int64) Outcome {
	entity, found := e.catalog.FindEntity(entityID)
	if !found {
		return Rejected(ReasonNotFound, "❌ Invalid Character ID.")
	}
	if profile.Owns(entity.ID) {
		return Rejected(ReasonAlreadyOwned, "✅ You already own this character.")
	}
	if profile.Coins < entity.Price {
		return Rejected(ReasonInsufficientFunds, fmt.Sprintf("❌ Inadequate coins! Need %d coins.", entity.Price))
	}

	profile.Coins -= entity.Price
	profile.AddEntity(entity.ID)
	return Applied(fmt.Sprintf("🛒 Purchased %s for %d coins!", entity.Name, entity.Price))
}

// Bonus is the once-per-calendar-date claim. The reward scales with the
// consecutive-day streak: claiming the day after the previous claim extends
// the streak, any gap resets it to 1.
func (e *Engine) Bonus(profile *PlayerProfile, now time.Time, settings GameSettings) Outcome {
	last, claimedBefore := profile.Cooldowns[CooldownBonus]
	if claimedBefore && sameDate(last, now) {
		return Rejected(ReasonAlreadyClaimed, "🎁 You've already claimed your bonus today. Come back tomorrow!")
	}

	streak := 1
	if claimedBefore && sameDate(last, now.AddDate(0, 0, -1)) {
		streak = profile.Streaks[CooldownBonus] + 1
	}
	reward := settings.BonusBaseAmount * int64(streak)

	profile.Coins += reward
	profile.Cooldowns[CooldownBonus] = now
	profile.Streaks[CooldownBonus] = streak
	return Applied(fmt.Sprintf("🎉 +%d coins (day %d streak)! Current balance: %d 💰", reward, streak, profile.Coins))
}

// Upgrade attempts to advance one inventory item a single rarity step. The
// attempt cost is charged no matter what happens after the funds check: a
// failed roll and an item already at the top tier both keep the coins.
func (e *Engine) Upgrade(profile *PlayerProfile, slot int, settings GameSettings) Outcome {
	if slot < 1 || slot > len(profile.InventoryItems) {
		return Rejected(ReasonNotFound, fmt.Sprintf("❌ No item in slot %d.", slot))
	}
	cost := settings.UpgradeCost
	if profile.Coins < cost {
		return Rejected(ReasonInsufficientFunds, fmt.Sprintf("❌ Inadequate coins! Need %d coins.", cost))
	}

	profile.Coins -= cost
	item := &profile.InventoryItems[slot-1]

	next, ok := item.Rarity.Next()
	if !ok {
		return Outcome{
			Applied: true,
			Reason:  ReasonMaxRarityReached,
			Message: fmt.Sprintf("⚒ %s is already %s — the attempt cost %d coins anyway.", item.Name, item.Rarity, cost),
		}
	}

	if e.rng.Intn(settings.UpgradeSuccessDen) < settings.UpgradeSuccessNum {
		item.Rarity = next
		profile.Counters[CounterUpgradesDone]++
		return Applied(fmt.Sprintf("⚒ Success! %s is now %s.", item.Name, item.Rarity))
	}
	return Applied(fmt.Sprintf("⚒ The upgrade failed — %s stays %s. %d coins spent.", item.Name, item.Rarity, cost))
}

// Battle pits the player's collection against a random enemy. Only the coin
// reward and the win counter persist.
func (e *Engine) Battle(profile *PlayerProfile, settings GameSettings) Outcome {
	playerPower := 10*len(profile.OwnedEntities) + 2*profile.Counters[CounterBattlesWon]
	enemyPower := settings.BattleEnemyMin + e.rng.Intn(settings.BattleEnemyMax-settings.BattleEnemyMin+1)

	if playerPower < enemyPower {
		return Applied(fmt.Sprintf("⚔️ Defeat! Your power %d fell short of the enemy's %d.", playerPower, enemyPower))
	}

	span := settings.BattleRewardMax - settings.BattleRewardMin
	reward := settings.BattleRewardMin
	if span > 0 {
		reward += int64(e.rng.Intn(int(span) + 1))
	}
	profile.Coins += reward
	profile.Counters[CounterBattlesWon]++
	return Applied(fmt.Sprintf("⚔️ Victory! Power %d vs %d — you earned %d coins.", playerPower, enemyPower, reward))
}

// Grant credits coins to a profile. Admin surface only.
func (e *Engine) Grant(profile *PlayerProfile, amount int64) Outcome {
	profile.Coins += amount
	return Applied(fmt.Sprintf("Granted %d coins. New balance: %d.", amount, profile.Coins))
}

func (e *Engine) freeDraw(profile *PlayerProfile, entities []CatalogEntity) Outcome {
	if len(entities) == 0 {
		return Rejected(ReasonNotFound, "No characters found in database.")
	}
	return e.grantDraw(profile, entities[e.rng.Intn(len(entities))])
}

// grantDraw records a drawn entity. New ids join the collection; duplicates
// change nothing but still count as an applied action so timestamps and
// counters updated by the caller persist.
func (e *Engine) grantDraw(profile *PlayerProfile, drawn CatalogEntity) Outcome {
	if profile.AddEntity(drawn.ID) {
		msg := fmt.Sprintf("🎉 [NEW] You obtained %s! (%s)", drawn.Name, drawn.Rarity)
		return AppliedPhoto(msg, drawn.ImageURL)
	}
	msg := fmt.Sprintf("🔄 You rolled %s again (Already owned).", drawn.Name)
	return AppliedPhoto(msg, drawn.ImageURL)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
