package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// LedgerEntry is the economy record for one player. Entries are created
// lazily on first access and never deleted; the balance is mutated only
// through the store's atomic adjust operation.
type LedgerEntry struct {
	PlayerID PlayerID
	Balance  int64
	Credits  int64 // secondary currency, admin-settable only

	// LastClaimAt is when the player last claimed the periodic bonus
	LastClaimAt time.Time
}
