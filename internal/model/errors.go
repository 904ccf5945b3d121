package model

import (
	"errors"
	"fmt"
	"time"
)

// Common errors used across the application
var (
	// Ledger errors
	ErrEntryNotFound = errors.New("ledger entry not found")

	// Wager errors
	ErrInvalidWager = errors.New("wager must be a positive amount")

	// Session errors
	ErrSessionNotFound    = errors.New("session not found")
	ErrNoDecisionPending  = errors.New("no decision is pending for this session")
	ErrInvalidDecision    = errors.New("decision must be hit or stand")
	ErrSessionResolved    = errors.New("session is already resolved")
	ErrSessionAborted     = errors.New("session was aborted")
	ErrSessionNotResolved = errors.New("session is not resolved yet")

	// Deck errors
	ErrDeckExhausted = errors.New("deck is exhausted")
)

// InsufficientFundsError reports a wager exceeding the player's balance.
// Kept as a typed error so callers can render the exact amounts.
type InsufficientFundsError struct {
	Current   int64
	Requested int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: have %d, need %d", e.Current, e.Requested)
}

// ClaimCooldownError reports a bonus claim attempted before the cooldown
// has elapsed
type ClaimCooldownError struct {
	Remaining time.Duration
}

func (e *ClaimCooldownError) Error() string {
	return fmt.Sprintf("bonus already claimed, try again in %s", e.Remaining.Round(time.Second))
}
