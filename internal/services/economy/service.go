package economy

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cardroom/blackjack-go/internal/dependencies/clock"
	"github.com/cardroom/blackjack-go/internal/model"
	"github.com/cardroom/blackjack-go/internal/storage"
)

// Config holds economy tuning knobs
type Config struct {
	// DefaultBalance is the balance a ledger entry is created with
	DefaultBalance int64

	// ClaimAmount is how much a periodic bonus claim credits
	ClaimAmount int64

	// ClaimCooldown is the minimum interval between bonus claims
	ClaimCooldown time.Duration
}

// DefaultConfig returns the default economy configuration
func DefaultConfig() Config {
	return Config{
		DefaultBalance: 0,
		ClaimAmount:    500,
		ClaimCooldown:  6 * time.Hour,
	}
}

// Service owns the economy ledger: balance reads, the funds check, atomic
// credit/debit, the periodic bonus, and administrative overwrites.
type Service struct {
	store  storage.Store
	clock  clock.Clock
	cfg    Config
	logger *slog.Logger
}

// New creates a new economy service
func New(store storage.Store, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clk,
		cfg:    cfg,
		logger: logger,
	}
}

// GetEntry returns the ledger entry for a player, creating it with the
// default balance on first access. Entries are never deleted.
func (s *Service) GetEntry(ctx context.Context, id model.PlayerID) (*model.LedgerEntry, error) {
	entry, err := s.store.GetEntry(ctx, id)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, model.ErrEntryNotFound) {
		return nil, err
	}

	if err := s.store.SetBalance(ctx, id, s.cfg.DefaultBalance); err != nil {
		return nil, err
	}

	s.logger.Info("ledger entry created",
		slog.String("player_id", string(id)),
		slog.Int64("balance", s.cfg.DefaultBalance),
	)

	return &model.LedgerEntry{PlayerID: id, Balance: s.cfg.DefaultBalance}, nil
}

// GetBalance returns the player's current balance
func (s *Service) GetBalance(ctx context.Context, id model.PlayerID) (int64, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return 0, err
	}
	return entry.Balance, nil
}

// CheckBet validates a wager against the player's balance. The check
// happens once, before any cards are dealt; settlement later applies
// the signed delta without re-checking.
func (s *Service) CheckBet(ctx context.Context, id model.PlayerID, wager int64) error {
	if wager <= 0 {
		return model.ErrInvalidWager
	}
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return err
	}
	if wager > entry.Balance {
		return &model.InsufficientFundsError{Current: entry.Balance, Requested: wager}
	}
	return nil
}

// AddMoney atomically adds delta (which may be negative) to the player's
// balance and returns the new balance
func (s *Service) AddMoney(ctx context.Context, id model.PlayerID, delta int64) (int64, error) {
	return s.store.AdjustBalance(ctx, id, delta)
}

// SetMoney overwrites a player's balance (administrative, last write wins)
func (s *Service) SetMoney(ctx context.Context, id model.PlayerID, amount int64) error {
	if err := s.store.SetBalance(ctx, id, amount); err != nil {
		return err
	}
	s.logger.Info("balance overwritten",
		slog.String("player_id", string(id)),
		slog.Int64("balance", amount),
	)
	return nil
}

// SetCredits overwrites a player's secondary credits (administrative)
func (s *Service) SetCredits(ctx context.Context, id model.PlayerID, amount int64) error {
	if err := s.store.SetCredits(ctx, id, amount); err != nil {
		return err
	}
	s.logger.Info("credits overwritten",
		slog.String("player_id", string(id)),
		slog.Int64("credits", amount),
	)
	return nil
}

// Claim credits the periodic bonus if the cooldown has elapsed and
// returns the amount credited and the new balance
func (s *Service) Claim(ctx context.Context, id model.PlayerID) (int64, int64, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return 0, 0, err
	}

	now := s.clock.Now()
	if !entry.LastClaimAt.IsZero() {
		elapsed := now.Sub(entry.LastClaimAt)
		if elapsed < s.cfg.ClaimCooldown {
			return 0, 0, &model.ClaimCooldownError{Remaining: s.cfg.ClaimCooldown - elapsed}
		}
	}

	balance, err := s.store.AdjustBalance(ctx, id, s.cfg.ClaimAmount)
	if err != nil {
		return 0, 0, err
	}
	if err := s.store.SetLastClaim(ctx, id, now); err != nil {
		return 0, 0, err
	}

	s.logger.Info("bonus claimed",
		slog.String("player_id", string(id)),
		slog.Int64("amount", s.cfg.ClaimAmount),
		slog.Int64("balance", balance),
	)

	return s.cfg.ClaimAmount, balance, nil
}

// TopEntries returns up to n ledger entries ordered by descending balance
func (s *Service) TopEntries(ctx context.Context, n int) ([]*model.LedgerEntry, error) {
	return s.store.TopEntries(ctx, n)
}
