package storage

import (
	"context"
	"time"

	"github.com/cardroom/blackjack-go/internal/model"
)

// Store defines the interface for ledger persistence. Balance mutation for
// a given player must be atomic: two concurrent settlements for the same
// player must not interleave into a lost update. Entries for different
// players are independent; no cross-player coordination is required.
type Store interface {
	// GetEntry returns the ledger entry for a player, or ErrEntryNotFound
	GetEntry(ctx context.Context, id model.PlayerID) (*model.LedgerEntry, error)

	// AdjustBalance atomically adds delta (which may be negative) to the
	// player's balance, creating the entry if absent, and returns the new
	// balance. No floor is enforced at this layer: sufficiency is checked
	// before a wager is accepted, never after settlement.
	AdjustBalance(ctx context.Context, id model.PlayerID, delta int64) (int64, error)

	// SetBalance overwrites the player's balance (administrative)
	SetBalance(ctx context.Context, id model.PlayerID, amount int64) error

	// SetCredits overwrites the player's secondary credits (administrative)
	SetCredits(ctx context.Context, id model.PlayerID, amount int64) error

	// SetLastClaim records when the player last claimed the periodic bonus
	SetLastClaim(ctx context.Context, id model.PlayerID, t time.Time) error

	// TopEntries returns up to n entries ordered by descending balance
	TopEntries(ctx context.Context, n int) ([]*model.LedgerEntry, error)
}
