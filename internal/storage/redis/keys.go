package redis

import (
	"fmt"

	"github.com/cardroom/blackjack-go/internal/model"
)

// Key prefix for all ledger data
const keyPrefix = "bjack"

// Hash field names within an entry
const (
	fieldBalance   = "balance"
	fieldCredits   = "credits"
	fieldLastClaim = "last_claim"
)

// entryKey returns the Redis key for a player's ledger entry hash
func entryKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:entry:%s", keyPrefix, id)
}

// balanceIndexKey returns the Redis key for the balance-sorted index,
// a ZSET of player ids scored by balance
func balanceIndexKey() string {
	return fmt.Sprintf("%s:idx:balance", keyPrefix)
}
