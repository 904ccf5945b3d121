package economy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cardroom/blackjack-go/internal/dependencies/mocks"
	"github.com/cardroom/blackjack-go/internal/model"
	"github.com/cardroom/blackjack-go/internal/storage/memory"
	"github.com/cardroom/blackjack-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	storage *memory.Storage
	clock   *mocks.MockClock
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestGetEntryCreatesWithDefaultBalance() {
	entry, err := s.service.GetEntry(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), entry.PlayerID)
	s.Equal(int64(0), entry.Balance)

	// The entry now exists in storage
	stored, err := s.storage.GetEntry(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(int64(0), stored.Balance)
}

func (s *ServiceSuite) TestGetEntryUsesConfiguredDefaultBalance() {
	cfg := DefaultConfig()
	cfg.DefaultBalance = 250
	service := New(s.storage, s.clock, cfg, testutil.NopLogger())

	entry, err := service.GetEntry(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(int64(250), entry.Balance)
}

func (s *ServiceSuite) TestGetEntryReturnsExisting() {
	s.Require().NoError(s.storage.SetBalance(s.ctx, "player-1", 900))

	entry, err := s.service.GetEntry(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(int64(900), entry.Balance)
}

func (s *ServiceSuite) TestCheckBetRejectsNonPositiveWager() {
	s.ErrorIs(s.service.CheckBet(s.ctx, "player-1", 0), model.ErrInvalidWager)
	s.ErrorIs(s.service.CheckBet(s.ctx, "player-1", -10), model.ErrInvalidWager)
}

func (s *ServiceSuite) TestCheckBetRejectsWagerAboveBalance() {
	s.Require().NoError(s.storage.SetBalance(s.ctx, "player-1", 50))

	err := s.service.CheckBet(s.ctx, "player-1", 51)
	s.Require().Error(err)

	var insufficient *model.InsufficientFundsError
	s.Require().ErrorAs(err, &insufficient)
	s.Equal(int64(50), insufficient.Current)
	s.Equal(int64(51), insufficient.Requested)
}

func (s *ServiceSuite) TestCheckBetAllowsWagerEqualToBalance() {
	s.Require().NoError(s.storage.SetBalance(s.ctx, "player-1", 50))
	s.NoError(s.service.CheckBet(s.ctx, "player-1", 50))
}

func (s *ServiceSuite) TestCheckBetOnFreshPlayerRejectsAnyWager() {
	// A brand-new entry starts at zero, so no positive wager is affordable
	err := s.service.CheckBet(s.ctx, "newcomer", 1)
	var insufficient *model.InsufficientFundsError
	s.Require().ErrorAs(err, &insufficient)
	s.Equal(int64(0), insufficient.Current)
}

func (s *ServiceSuite) TestAddMoneyAppliesSignedDelta() {
	balance, err := s.service.AddMoney(s.ctx, "player-1", 100)
	s.Require().NoError(err)
	s.Equal(int64(100), balance)

	balance, err = s.service.AddMoney(s.ctx, "player-1", -40)
	s.Require().NoError(err)
	s.Equal(int64(60), balance)
}

func (s *ServiceSuite) TestSetMoneyOverwrites() {
	_, _ = s.service.AddMoney(s.ctx, "player-1", 100)
	s.Require().NoError(s.service.SetMoney(s.ctx, "player-1", 7))

	balance, err := s.service.GetBalance(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(int64(7), balance)
}

func (s *ServiceSuite) TestSetCredits() {
	s.Require().NoError(s.service.SetCredits(s.ctx, "player-1", 3))

	entry, err := s.service.GetEntry(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(int64(3), entry.Credits)
}

func (s *ServiceSuite) TestFirstClaimSucceeds() {
	amount, balance, err := s.service.Claim(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(int64(500), amount)
	s.Equal(int64(500), balance)

	entry, err := s.service.GetEntry(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), entry.LastClaimAt)
}

func (s *ServiceSuite) TestClaimWithinCooldownFails() {
	_, _, err := s.service.Claim(s.ctx, "player-1")
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)

	_, _, err = s.service.Claim(s.ctx, "player-1")
	var cooldown *model.ClaimCooldownError
	s.Require().ErrorAs(err, &cooldown)
	s.Equal(4*time.Hour, cooldown.Remaining)

	// The failed claim must not credit anything
	balance, err := s.service.GetBalance(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(int64(500), balance)
}

func (s *ServiceSuite) TestClaimAfterCooldownSucceeds() {
	_, _, err := s.service.Claim(s.ctx, "player-1")
	s.Require().NoError(err)

	s.clock.Advance(6 * time.Hour)

	amount, balance, err := s.service.Claim(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(int64(500), amount)
	s.Equal(int64(1000), balance)
}

func (s *ServiceSuite) TestTopEntries() {
	_, _ = s.service.AddMoney(s.ctx, "a", 10)
	_, _ = s.service.AddMoney(s.ctx, "b", 30)
	_, _ = s.service.AddMoney(s.ctx, "c", 20)

	entries, err := s.service.TopEntries(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(model.PlayerID("b"), entries[0].PlayerID)
	s.Equal(model.PlayerID("c"), entries[1].PlayerID)
}
