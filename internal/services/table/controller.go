package table

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cardroom/blackjack-go/internal/await"
	"github.com/cardroom/blackjack-go/internal/dependencies/clock"
	"github.com/cardroom/blackjack-go/internal/dependencies/random"
	"github.com/cardroom/blackjack-go/internal/model"
	"github.com/cardroom/blackjack-go/internal/services/economy"
	"github.com/cardroom/blackjack-go/internal/services/scoring"
)

const sessionIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// dealerStandsAt is the house policy threshold: the dealer draws while
// below it and stands at it or above, never by choice
const dealerStandsAt = 17

// Controller drives blackjack sessions: it deals, prompts, applies
// decisions, plays out the dealer and settles against the ledger.
// Each session is exclusively owned and internally sequential; the
// ledger is the only shared mutable resource.
type Controller struct {
	economy     *economy.Service
	scoring     *scoring.Service
	coordinator *await.Coordinator
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger

	mu       sync.RWMutex
	sessions map[model.SessionID]*liveSession
}

// liveSession wraps a session with its runtime state: the pending-decision
// flag and the armed timeout watch. All access goes through mu.
type liveSession struct {
	mu sync.Mutex
	model.Session

	awaiting bool
	watch    *await.Watch
	settled  bool
}

// NewController creates a new table controller
func NewController(
	economyService *economy.Service,
	scoringService *scoring.Service,
	coordinator *await.Coordinator,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		economy:     economyService,
		scoring:     scoringService,
		coordinator: coordinator,
		clock:       clk,
		random:      rnd,
		logger:      logger,
		sessions:    make(map[model.SessionID]*liveSession),
	}
}

// StartSession validates the wager, deals the initial hands and either
// resolves immediately (natural 21) or suspends awaiting a decision.
// It fails fast with no session state on an invalid or unaffordable wager.
func (c *Controller) StartSession(ctx context.Context, playerID model.PlayerID, wager int64) (*model.Session, error) {
	if err := c.economy.CheckBet(ctx, playerID, wager); err != nil {
		return nil, err
	}

	deck := model.NewDeck()
	deck.Shuffle(c.random)

	return c.startWithDeck(ctx, playerID, wager, deck)
}

// startWithDeck runs the Dealing phase against a prepared deck.
// Split out so tests can stack the deck.
func (c *Controller) startWithDeck(ctx context.Context, playerID model.PlayerID, wager int64, deck *model.Deck) (*model.Session, error) {
	now := c.clock.Now()
	ls := &liveSession{
		Session: model.Session{
			ID:        model.SessionID(c.random.String(12, sessionIDAlphabet)),
			PlayerID:  playerID,
			Wager:     wager,
			Deck:      deck,
			Phase:     model.PhaseDealing,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	// Interleaved deal: player, dealer up, player, dealer hidden
	if err := dealInto(deck, &ls.PlayerHand, false); err != nil {
		return nil, err
	}
	if err := dealInto(deck, &ls.DealerHand, false); err != nil {
		return nil, err
	}
	if err := dealInto(deck, &ls.PlayerHand, false); err != nil {
		return nil, err
	}
	if err := dealInto(deck, &ls.DealerHand, true); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.sessions[ls.ID] = ls
	c.mu.Unlock()

	ls.mu.Lock()
	defer ls.mu.Unlock()

	if err := c.enterPlayerTurnLocked(ctx, ls); err != nil {
		return nil, err
	}

	c.logger.Info("session started",
		slog.String("session_id", string(ls.ID)),
		slog.String("player_id", string(playerID)),
		slog.Int64("wager", wager),
	)

	return ls.snapshotLocked(), nil
}

// GetSession returns a snapshot of a session's observable state
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	ls, err := c.lookup(id)
	if err != nil {
		return nil, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.snapshotLocked(), nil
}

// NextPrompt returns the pending decision prompt: the player's total and
// the dealer's visible total. It reports ErrSessionResolved or
// ErrSessionAborted once the session has reached a terminal state.
func (c *Controller) NextPrompt(ctx context.Context, id model.SessionID) (*model.Prompt, error) {
	ls, err := c.lookup(id)
	if err != nil {
		return nil, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	switch {
	case ls.Phase == model.PhaseResolved:
		return nil, model.ErrSessionResolved
	case ls.Phase == model.PhaseAborted:
		return nil, model.ErrSessionAborted
	case !ls.awaiting:
		return nil, model.ErrNoDecisionPending
	}

	return &model.Prompt{
		PlayerScore: c.scoring.Score(ls.PlayerHand),
		DealerScore: c.scoring.Score(ls.DealerHand),
	}, nil
}

// SubmitDecision applies a hit or stand to a session awaiting one.
// A decision submitted while no prompt is pending is rejected with
// ErrNoDecisionPending and changes nothing.
func (c *Controller) SubmitDecision(ctx context.Context, id model.SessionID, decision model.Decision) (*model.Session, error) {
	if decision != model.DecisionHit && decision != model.DecisionStand {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidDecision, decision)
	}

	ls, err := c.lookup(id)
	if err != nil {
		return nil, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	if !ls.awaiting {
		return nil, model.ErrNoDecisionPending
	}

	ls.awaiting = false
	ls.watch.Cancel()
	ls.watch = nil

	switch decision {
	case model.DecisionHit:
		if err := dealInto(ls.Deck, &ls.PlayerHand, false); err != nil {
			c.abortLocked(ls, "deck exhausted on hit")
			return nil, err
		}
		if err := c.enterPlayerTurnLocked(ctx, ls); err != nil {
			return nil, err
		}
	case model.DecisionStand:
		if err := c.playDealerLocked(ctx, ls); err != nil {
			return nil, err
		}
	}

	return ls.snapshotLocked(), nil
}

// OnTimeout aborts a session still awaiting a decision. The session is
// abandoned with no settlement; if the session is no longer awaiting,
// this is a no-op. The coordinator's watch and the transport's own timer
// can both land here; the awaiting flag makes the abort happen once.
func (c *Controller) OnTimeout(ctx context.Context, id model.SessionID) error {
	ls, err := c.lookup(id)
	if err != nil {
		return err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	if !ls.awaiting {
		return nil
	}

	ls.awaiting = false
	if ls.watch != nil {
		ls.watch.Cancel()
		ls.watch = nil
	}
	c.abortLocked(ls, "decision timed out")
	return nil
}

// GetResult returns the final result of a resolved session. The result is
// captured once at settlement; re-reading it never re-settles.
func (c *Controller) GetResult(ctx context.Context, id model.SessionID) (*model.Result, error) {
	ls, err := c.lookup(id)
	if err != nil {
		return nil, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	switch ls.Phase {
	case model.PhaseResolved:
		result := *ls.Result
		return &result, nil
	case model.PhaseAborted:
		return nil, model.ErrSessionAborted
	default:
		return nil, model.ErrSessionNotResolved
	}
}

// Sweep drops terminal sessions whose last update is older than the
// cutoff, so the registry does not grow without bound. Returns how many
// sessions were removed.
func (c *Controller) Sweep(olderThan time.Duration) int {
	cutoff := c.clock.Now().Add(-olderThan)

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, ls := range c.sessions {
		ls.mu.Lock()
		terminal := ls.Phase == model.PhaseResolved || ls.Phase == model.PhaseAborted
		stale := ls.UpdatedAt.Before(cutoff)
		ls.mu.Unlock()
		if terminal && stale {
			delete(c.sessions, id)
			removed++
		}
	}
	return removed
}

// enterPlayerTurnLocked re-evaluates the player hand at the top of the
// turn: any 21 resolves as a blackjack win, over 21 as a bust, anything
// else suspends the session on a fresh decision watch.
func (c *Controller) enterPlayerTurnLocked(ctx context.Context, ls *liveSession) error {
	score := c.scoring.Score(ls.PlayerHand)

	switch {
	case score == 21:
		// Natural pays 3:2, rounded down
		payout := ls.Wager + ls.Wager/2
		return c.settleLocked(ctx, ls, model.OutcomePlayerBlackjack, payout)
	case score > 21:
		return c.settleLocked(ctx, ls, model.OutcomePlayerBust, -ls.Wager)
	default:
		ls.Phase = model.PhasePlayerTurn
		ls.UpdatedAt = c.clock.Now()
		ls.awaiting = true
		id := ls.ID
		ls.watch = c.coordinator.Arm(func() {
			if err := c.OnTimeout(context.Background(), id); err != nil {
				c.logger.Error("timeout handling failed",
					slog.String("session_id", string(id)),
					slog.String("error", err.Error()),
				)
			}
		})
		return nil
	}
}

// playDealerLocked reveals the hole card and runs the fixed house policy:
// draw while below 17, then compare totals and settle.
func (c *Controller) playDealerLocked(ctx context.Context, ls *liveSession) error {
	ls.Phase = model.PhaseDealerTurn
	ls.DealerHand.RevealAll()

	for c.scoring.Score(ls.DealerHand) < dealerStandsAt {
		if err := dealInto(ls.Deck, &ls.DealerHand, false); err != nil {
			c.abortLocked(ls, "deck exhausted on dealer draw")
			return err
		}
	}

	playerScore := c.scoring.Score(ls.PlayerHand)
	dealerScore := c.scoring.Score(ls.DealerHand)

	var outcome model.Outcome
	var delta int64
	switch {
	case dealerScore == 21:
		outcome, delta = model.OutcomeDealerBlackjack, -ls.Wager
	case dealerScore > 21:
		outcome, delta = model.OutcomeDealerBust, ls.Wager
	case dealerScore == playerScore:
		outcome, delta = model.OutcomePush, 0
	case dealerScore > playerScore:
		outcome, delta = model.OutcomeDealerWin, -ls.Wager
	default:
		outcome, delta = model.OutcomePlayerWin, ls.Wager
	}

	return c.settleLocked(ctx, ls, outcome, delta)
}

// settleLocked applies the signed settlement delta exactly once, captures
// the result and moves the session to Resolved. A ledger failure here is
// fatal for the session: it aborts rather than record a result whose
// economic effect never happened.
func (c *Controller) settleLocked(ctx context.Context, ls *liveSession, outcome model.Outcome, delta int64) error {
	if ls.settled {
		return nil
	}
	ls.settled = true

	var newBalance int64
	var err error
	if delta != 0 {
		newBalance, err = c.economy.AddMoney(ctx, ls.PlayerID, delta)
	} else {
		newBalance, err = c.economy.GetBalance(ctx, ls.PlayerID)
	}
	if err != nil {
		c.abortLocked(ls, "settlement failed")
		return fmt.Errorf("settling session %s: %w", ls.ID, err)
	}

	ls.Result = &model.Result{
		Outcome:     outcome,
		PlayerScore: c.scoring.Score(ls.PlayerHand),
		DealerScore: c.scoring.Score(ls.DealerHand),
		Wager:       ls.Wager,
		NewBalance:  newBalance,
	}
	ls.Phase = model.PhaseResolved
	ls.UpdatedAt = c.clock.Now()

	c.logger.Info("session resolved",
		slog.String("session_id", string(ls.ID)),
		slog.String("player_id", string(ls.PlayerID)),
		slog.String("outcome", string(outcome)),
		slog.Int64("delta", delta),
		slog.Int64("balance", newBalance),
	)

	return nil
}

// abortLocked moves a session to Aborted with no settlement
func (c *Controller) abortLocked(ls *liveSession, reason string) {
	ls.Phase = model.PhaseAborted
	ls.UpdatedAt = c.clock.Now()

	c.logger.Info("session aborted",
		slog.String("session_id", string(ls.ID)),
		slog.String("player_id", string(ls.PlayerID)),
		slog.String("reason", reason),
	)
}

func (c *Controller) lookup(id model.SessionID) (*liveSession, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ls, ok := c.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return ls, nil
}

// snapshotLocked copies the observable session state. The deck stays
// private to the session; hands are copied so callers cannot mutate them.
func (ls *liveSession) snapshotLocked() *model.Session {
	snap := ls.Session
	snap.Deck = nil
	snap.PlayerHand = ls.PlayerHand.Copy()
	snap.DealerHand = ls.DealerHand.Copy()
	if ls.Result != nil {
		result := *ls.Result
		snap.Result = &result
	}
	return &snap
}

// dealInto draws one card, optionally face-down, into a hand
func dealInto(deck *model.Deck, hand *model.Hand, faceDown bool) error {
	card, err := deck.Draw()
	if err != nil {
		return err
	}
	if faceDown {
		card.Flip()
	}
	hand.Add(card)
	return nil
}
