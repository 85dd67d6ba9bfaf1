package main

import "fmt"

type RejectReason string

const (
	ReasonNone              RejectReason = ""
	ReasonNotFound          RejectReason = "NOT_FOUND"
	ReasonAlreadyOwned      RejectReason = "ALREADY_OWNED"
	ReasonAlreadyClaimed    RejectReason = "ALREADY_CLAIMED"
	ReasonInsufficientFunds RejectReason = "INSUFFICIENT_FUNDS"
	ReasonOnCooldown        RejectReason = "ON_COOLDOWN"
	ReasonMaxRarityReached  RejectReason = "MAX_RARITY_REACHED"
	ReasonUnauthorized      RejectReason = "UNAUTHORIZED"
	ReasonBadCommand        RejectReason = "BAD_COMMAND"
)

// Outcome is the result of one engine action. Applied=false means the profile
// was not mutated and nothing is persisted. Applied=true with a non-empty
// Reason covers charged no-ops such as an upgrade attempt at max rarity: the
// debit persists, the reason still reaches the user.
type Outcome struct {
	Applied  bool
	Reason   RejectReason
	Message  string
	ImageURL string
}

func Applied(message string) Outcome {
	return Outcome{Applied: true, Message: message}
}

func AppliedPhoto(message, imageURL string) Outcome {
	return Outcome{Applied: true, Message: message, ImageURL: imageURL}
}

func Rejected(reason RejectReason, message string) Outcome {
	return Outcome{Reason: reason, Message: message}
}

func RejectedOnCooldown(secondsRemaining int64) Outcome {
	return Outcome{
		Reason:  ReasonOnCooldown,
		Message: fmt.Sprintf("Easy there! Try again in %d seconds.", secondsRemaining),
	}
}
