package main

import (
	"strconv"
	"strings"
)

type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionStart
	ActionRoll
	ActionSmash
	ActionQuest
	ActionGacha
	ActionBuy
	ActionBonus
	ActionUpgrade
	ActionBattle
	ActionBalance
	ActionStore
	ActionProfile
	ActionTop

	// Privileged actions, gated by the admin allow-list.
	ActionAdminReset
	ActionAdminGrant
	ActionAdminSet
)

// Action is one parsed command with its typed arguments. Parsing happens once
// in the dispatcher; the engine never sees raw argument strings.
type Action struct {
	Kind ActionKind

	EntityID int64  // ActionBuy
	Slot     int    // ActionUpgrade, 1-based inventory index
	TargetID string // admin actions
	Amount   int64  // ActionAdminGrant
	Key      string // ActionAdminSet
	Value    string // ActionAdminSet
}

// ParseAction maps a command plus arguments to an Action. The second result
// is a usage message when the arguments do not fit; the command itself being
// unknown yields ActionUnknown with no message.
func ParseAction(command string, args []string) (Action, string) {
	switch strings.ToLower(command) {
	case "start", "help":
		return Action{Kind: ActionStart}, ""
	case "roll":
		return Action{Kind: ActionRoll}, ""
	case "smash":
		return Action{Kind: ActionSmash}, ""
	case "quest":
		return Action{Kind: ActionQuest}, ""
	case "gacha":
		return Action{Kind: ActionGacha}, ""
	case "bonus", "daily":
		return Action{Kind: ActionBonus}, ""
	case "battle":
		return Action{Kind: ActionBattle}, ""
	case "bal", "balance":
		return Action{Kind: ActionBalance}, ""
	case "store":
		return Action{Kind: ActionStore}, ""
	case "profile":
		return Action{Kind: ActionProfile}, ""
	case "top":
		return Action{Kind: ActionTop}, ""
	case "buy":
		if len(args) < 1 {
			return Action{}, "Usage: /buy <character_id>"
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return Action{}, "Usage: /buy <character_id>"
		}
		return Action{Kind: ActionBuy, EntityID: id}, ""
	case "upgrade":
		if len(args) < 1 {
			return Action{}, "Usage: /upgrade <item_number>"
		}
		slot, err := strconv.Atoi(args[0])
		if err != nil || slot < 1 {
			return Action{}, "Usage: /upgrade <item_number>"
		}
		return Action{Kind: ActionUpgrade, Slot: slot}, ""
	case "reset":
		if len(args) < 1 || !isValidUserID(args[0]) {
			return Action{}, "Usage: /reset <user_id>"
		}
		return Action{Kind: ActionAdminReset, TargetID: args[0]}, ""
	case "grant":
		if len(args) < 2 || !isValidUserID(args[0]) {
			return Action{}, "Usage: /grant <user_id> <amount>"
		}
		amount, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || amount <= 0 {
			return Action{}, "Usage: /grant <user_id> <amount>"
		}
		return Action{Kind: ActionAdminGrant, TargetID: args[0], Amount: amount}, ""
	case "set":
		if len(args) < 2 {
			return Action{}, "Usage: /set <key> <value>"
		}
		return Action{Kind: ActionAdminSet, Key: args[0], Value: args[1]}, ""
	}
	return Action{Kind: ActionUnknown}, ""
}

// IsPrivileged reports whether the action requires the admin allow-list.
func (a Action) IsPrivileged() bool {
	switch a.Kind {
	case ActionAdminReset, ActionAdminGrant, ActionAdminSet:
		return true
	}
	return false
}

// Mutates reports whether the action goes through Store.WithProfile. Display
// actions use the read-only snapshot path.
func (a Action) Mutates() bool {
	switch a.Kind {
	case ActionRoll, ActionSmash, ActionQuest, ActionGacha, ActionBuy, ActionBonus, ActionUpgrade, ActionBattle:
		return true
	}
	return false
}
