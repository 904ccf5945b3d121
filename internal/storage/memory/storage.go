package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cardroom/blackjack-go/internal/model"
	"github.com/cardroom/blackjack-go/internal/storage"
)

// Storage is an in-memory implementation of the ledger store. All
// mutations happen under one mutex, which satisfies the per-player
// atomicity contract trivially.
type Storage struct {
	mu sync.RWMutex

	entries map[model.PlayerID]*model.LedgerEntry
	order   []model.PlayerID // insertion order, used as the tie-break in TopEntries
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		entries: make(map[model.PlayerID]*model.LedgerEntry),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) GetEntry(ctx context.Context, id model.PlayerID) (*model.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, model.ErrEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (s *Storage) AdjustBalance(ctx context.Context, id model.PlayerID, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.getOrCreateLocked(id)
	entry.Balance += delta
	return entry.Balance, nil
}

func (s *Storage) SetBalance(ctx context.Context, id model.PlayerID, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(id).Balance = amount
	return nil
}

func (s *Storage) SetCredits(ctx context.Context, id model.PlayerID, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(id).Credits = amount
	return nil
}

func (s *Storage) SetLastClaim(ctx context.Context, id model.PlayerID, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(id).LastClaimAt = t
	return nil
}

func (s *Storage) TopEntries(ctx context.Context, n int) ([]*model.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*model.LedgerEntry, 0, len(s.order))
	for _, id := range s.order {
		copied := *s.entries[id]
		entries = append(entries, &copied)
	}

	// Stable sort keeps insertion order for equal balances
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Balance > entries[j].Balance
	})

	if n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

func (s *Storage) getOrCreateLocked(id model.PlayerID) *model.LedgerEntry {
	entry, ok := s.entries[id]
	if !ok {
		entry = &model.LedgerEntry{PlayerID: id}
		s.entries[id] = entry
		s.order = append(s.order, id)
	}
	return entry
}
