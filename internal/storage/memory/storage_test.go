package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cardroom/blackjack-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestGetEntryNotFound() {
	_, err := s.storage.GetEntry(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *StorageSuite) TestAdjustBalanceCreatesEntry() {
	balance, err := s.storage.AdjustBalance(s.ctx, "player-1", 100)
	s.Require().NoError(err)
	s.Equal(int64(100), balance)

	entry, err := s.storage.GetEntry(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(int64(100), entry.Balance)
}

func (s *StorageSuite) TestAdjustBalanceAppliesNegativeDelta() {
	_, _ = s.storage.AdjustBalance(s.ctx, "player-1", 100)
	balance, err := s.storage.AdjustBalance(s.ctx, "player-1", -30)
	s.Require().NoError(err)
	s.Equal(int64(70), balance)
}

func (s *StorageSuite) TestAdjustBalanceAllowsNegativeResult() {
	// No floor at this layer; sufficiency is checked before the wager
	balance, err := s.storage.AdjustBalance(s.ctx, "player-1", -50)
	s.Require().NoError(err)
	s.Equal(int64(-50), balance)
}

func (s *StorageSuite) TestSetBalanceLastWriteWins() {
	s.Require().NoError(s.storage.SetBalance(s.ctx, "player-1", 100))
	s.Require().NoError(s.storage.SetBalance(s.ctx, "player-1", 42))

	entry, err := s.storage.GetEntry(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(int64(42), entry.Balance)
}

func (s *StorageSuite) TestSetCredits() {
	s.Require().NoError(s.storage.SetCredits(s.ctx, "player-1", 7))

	entry, err := s.storage.GetEntry(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(int64(7), entry.Credits)
	s.Equal(int64(0), entry.Balance)
}

func (s *StorageSuite) TestSetLastClaim() {
	when := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.SetLastClaim(s.ctx, "player-1", when))

	entry, err := s.storage.GetEntry(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(when, entry.LastClaimAt)
}

func (s *StorageSuite) TestGetEntryReturnsCopy() {
	_, _ = s.storage.AdjustBalance(s.ctx, "player-1", 100)

	entry, _ := s.storage.GetEntry(s.ctx, "player-1")
	entry.Balance = 9999

	fresh, _ := s.storage.GetEntry(s.ctx, "player-1")
	s.Equal(int64(100), fresh.Balance)
}

func (s *StorageSuite) TestTopEntriesOrdersByBalanceDescending() {
	_, _ = s.storage.AdjustBalance(s.ctx, "low", 10)
	_, _ = s.storage.AdjustBalance(s.ctx, "high", 300)
	_, _ = s.storage.AdjustBalance(s.ctx, "mid", 200)

	entries, err := s.storage.TopEntries(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal(model.PlayerID("high"), entries[0].PlayerID)
	s.Equal(model.PlayerID("mid"), entries[1].PlayerID)
	s.Equal(model.PlayerID("low"), entries[2].PlayerID)
}

func (s *StorageSuite) TestTopEntriesLimitsToN() {
	for _, id := range []model.PlayerID{"a", "b", "c", "d"} {
		_, _ = s.storage.AdjustBalance(s.ctx, id, 1)
	}

	entries, err := s.storage.TopEntries(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(entries, 2)
}

func (s *StorageSuite) TestTopEntriesBreaksTiesByInsertionOrder() {
	_, _ = s.storage.AdjustBalance(s.ctx, "first", 50)
	_, _ = s.storage.AdjustBalance(s.ctx, "second", 50)

	entries, err := s.storage.TopEntries(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(model.PlayerID("first"), entries[0].PlayerID)
	s.Equal(model.PlayerID("second"), entries[1].PlayerID)
}

func (s *StorageSuite) TestConcurrentAdjustmentsDoNotLoseUpdates() {
	const workers = 20
	const perWorker = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, _ = s.storage.AdjustBalance(s.ctx, "player-1", 1)
			}
		}()
	}
	wg.Wait()

	entry, err := s.storage.GetEntry(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(int64(workers*perWorker), entry.Balance)
}
