package table

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cardroom/blackjack-go/internal/await"
	"github.com/cardroom/blackjack-go/internal/dependencies/mocks"
	"github.com/cardroom/blackjack-go/internal/model"
	"github.com/cardroom/blackjack-go/internal/services/economy"
	"github.com/cardroom/blackjack-go/internal/services/scoring"
	"github.com/cardroom/blackjack-go/internal/storage/memory"
	"github.com/cardroom/blackjack-go/internal/testutil"
)

const decisionTimeout = 30 * time.Second

type ControllerSuite struct {
	suite.Suite
	controller *Controller
	economy    *economy.Service
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.random.QueueString("SESSION-1", "SESSION-2", "SESSION-3")
	s.economy = economy.New(s.storage, s.clock, economy.DefaultConfig(), testutil.NopLogger())
	s.controller = NewController(
		s.economy,
		scoring.New(),
		await.New(s.clock, decisionTimeout),
		s.clock,
		s.random,
		testutil.NopLogger(),
	)
	s.ctx = context.Background()
}

func card(rank model.Rank) model.Card {
	return model.Card{Rank: rank, Suit: model.SuitSpades}
}

func (s *ControllerSuite) fund(id model.PlayerID, amount int64) {
	s.Require().NoError(s.storage.SetBalance(s.ctx, id, amount))
}

// start deals a session from a stacked deck. Deal order is player,
// dealer up, player, dealer hidden, then draws in deck order.
func (s *ControllerSuite) start(wager int64, cards ...model.Card) *model.Session {
	session, err := s.controller.startWithDeck(s.ctx, "player-1", wager, model.StackedDeck(cards...))
	s.Require().NoError(err)
	return session
}

func (s *ControllerSuite) balance(id model.PlayerID) int64 {
	entry, err := s.storage.GetEntry(s.ctx, id)
	s.Require().NoError(err)
	return entry.Balance
}

func (s *ControllerSuite) TestStartSessionRejectsInvalidWager() {
	s.fund("player-1", 500)
	_, err := s.controller.StartSession(s.ctx, "player-1", 0)
	s.ErrorIs(err, model.ErrInvalidWager)
}

func (s *ControllerSuite) TestStartSessionRejectsUnaffordableWager() {
	s.fund("player-1", 50)

	_, err := s.controller.StartSession(s.ctx, "player-1", 100)
	var insufficient *model.InsufficientFundsError
	s.Require().ErrorAs(err, &insufficient)
	s.Equal(int64(50), insufficient.Current)
	s.Equal(int64(100), insufficient.Requested)

	// No session state and no balance change on a rejected wager
	s.Empty(s.controller.sessions)
	s.Equal(int64(50), s.balance("player-1"))
}

func (s *ControllerSuite) TestStartSessionDealsInterleavedHands() {
	s.fund("player-1", 500)
	session := s.start(100, card("2"), card("5"), card("3"), card("9"))

	s.Require().Len(session.PlayerHand, 2)
	s.Require().Len(session.DealerHand, 2)
	s.Equal(model.Rank("2"), session.PlayerHand[0].Rank)
	s.Equal(model.Rank("3"), session.PlayerHand[1].Rank)
	s.Equal(model.Rank("5"), session.DealerHand[0].Rank)
	s.False(session.DealerHand[0].FaceDown)
	s.Equal(model.Rank("9"), session.DealerHand[1].Rank)
	s.True(session.DealerHand[1].FaceDown)
	s.Equal(model.PhasePlayerTurn, session.Phase)
}

func (s *ControllerSuite) TestSnapshotHidesDeck() {
	s.fund("player-1", 500)
	session := s.start(100, card("2"), card("5"), card("3"), card("9"))
	s.Nil(session.Deck)

	fetched, err := s.controller.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Nil(fetched.Deck)
}

func (s *ControllerSuite) TestNaturalBlackjackResolvesWithoutPrompt() {
	s.fund("player-1", 500)
	session := s.start(100, card(model.RankAce), card("5"), card(model.RankKing), card("9"))

	s.Equal(model.PhaseResolved, session.Phase)

	result, err := s.controller.GetResult(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomePlayerBlackjack, result.Outcome)
	s.Equal(21, result.PlayerScore)
	s.Equal(int64(100), result.Wager)

	// Natural pays 3:2 rounded down
	s.Equal(int64(650), result.NewBalance)
	s.Equal(int64(650), s.balance("player-1"))

	_, err = s.controller.NextPrompt(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionResolved)
}

func (s *ControllerSuite) TestNaturalBlackjackPayoutFloorsOddWagers() {
	s.fund("player-1", 500)
	session := s.start(25, card(model.RankAce), card("5"), card(model.RankKing), card("9"))

	result, err := s.controller.GetResult(s.ctx, session.ID)
	s.Require().NoError(err)
	// 25 + floor(25/2) = 37
	s.Equal(int64(537), result.NewBalance)
}

func (s *ControllerSuite) TestPromptShowsOnlyVisibleDealerScore() {
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("9"), card("8"), card(model.RankKing))

	prompt, err := s.controller.NextPrompt(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(18, prompt.PlayerScore)
	// The hole king contributes nothing until revealed
	s.Equal(9, prompt.DealerScore)
}

func (s *ControllerSuite) TestStandDealerStandsAtSeventeen() {
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("9"), card("10"), card("8"))

	resolved, err := s.controller.SubmitDecision(s.ctx, session.ID, model.DecisionStand)
	s.Require().NoError(err)
	s.Equal(model.PhaseResolved, resolved.Phase)

	result, err := s.controller.GetResult(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomePlayerWin, result.Outcome)
	s.Equal(20, result.PlayerScore)
	s.Equal(17, result.DealerScore)
	s.Equal(int64(600), result.NewBalance)
	s.Equal(int64(600), s.balance("player-1"))
}

func (s *ControllerSuite) TestStandDealerDrawsBelowSeventeen() {
	// Dealer reveals 10+6, draws the king and busts
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("10"), card("8"), card("6"), card(model.RankKing))

	_, err := s.controller.SubmitDecision(s.ctx, session.ID, model.DecisionStand)
	s.Require().NoError(err)

	result, err := s.controller.GetResult(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeDealerBust, result.Outcome)
	s.Equal(26, result.DealerScore)
	s.Equal(int64(600), s.balance("player-1"))
}

func (s *ControllerSuite) TestStandDealerTwentyOneIsDealerBlackjack() {
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("10"), card("8"), card(model.RankAce))

	_, err := s.controller.SubmitDecision(s.ctx, session.ID, model.DecisionStand)
	s.Require().NoError(err)

	result, err := s.controller.GetResult(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeDealerBlackjack, result.Outcome)
	s.Equal(21, result.DealerScore)
	s.Equal(int64(400), s.balance("player-1"))
}

func (s *ControllerSuite) TestStandEqualScoresPush() {
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("9"), card("8"), card("9"))

	_, err := s.controller.SubmitDecision(s.ctx, session.ID, model.DecisionStand)
	s.Require().NoError(err)

	result, err := s.controller.GetResult(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomePush, result.Outcome)
	s.Equal(18, result.PlayerScore)
	s.Equal(18, result.DealerScore)

	// A push settles no money
	s.Equal(int64(500), result.NewBalance)
	s.Equal(int64(500), s.balance("player-1"))
}

func (s *ControllerSuite) TestStandDealerHigherScoreWins() {
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("10"), card("8"), card(model.RankKing))

	_, err := s.controller.SubmitDecision(s.ctx, session.ID, model.DecisionStand)
	s.Require().NoError(err)

	result, err := s.controller.GetResult(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeDealerWin, result.Outcome)
	s.Equal(int64(400), s.balance("player-1"))
}

func (s *ControllerSuite) TestHitBeyondTwentyOneBusts() {
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("5"), card("6"), card("9"), card(model.RankKing))

	resolved, err := s.controller.SubmitDecision(s.ctx, session.ID, model.DecisionHit)
	s.Require().NoError(err)
	s.Equal(model.PhaseResolved, resolved.Phase)

	result, err := s.controller.GetResult(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomePlayerBust, result.Outcome)
	s.Equal(26, result.PlayerScore)
	s.Equal(int64(400), s.balance("player-1"))

	// The dealer never plays on a player bust; the hole card stays hidden
	s.Require().Len(resolved.DealerHand, 2)
	s.True(resolved.DealerHand[1].FaceDown)
}

func (s *ControllerSuite) TestHitToTwentyOneResolvesAsBlackjack() {
	// Reaching 21 on a hit pays out like a natural
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("5"), card("5"), card("9"), card("6"))

	resolved, err := s.controller.SubmitDecision(s.ctx, session.ID, model.DecisionHit)
	s.Require().NoError(err)
	s.Equal(model.PhaseResolved, resolved.Phase)

	result, err := s.controller.GetResult(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomePlayerBlackjack, result.Outcome)
	s.Equal(int64(650), s.balance("player-1"))
}

func (s *ControllerSuite) TestHitBelowTwentyOneRePrompts() {
	s.fund("player-1", 500)
	session := s.start(100, card("5"), card("9"), card("6"), card("8"), card("2"))

	updated, err := s.controller.SubmitDecision(s.ctx, session.ID, model.DecisionHit)
	s.Require().NoError(err)
	s.Equal(model.PhasePlayerTurn, updated.Phase)
	s.Len(updated.PlayerHand, 3)

	prompt, err := s.controller.NextPrompt(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(13, prompt.PlayerScore)
}

func (s *ControllerSuite) TestSubmitDecisionRejectsUnknownDecision() {
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("9"), card("8"), card(model.RankKing))

	_, err := s.controller.SubmitDecision(s.ctx, session.ID, model.Decision("double"))
	s.ErrorIs(err, model.ErrInvalidDecision)

	// The session is untouched and still awaiting
	_, err = s.controller.NextPrompt(s.ctx, session.ID)
	s.NoError(err)
}

func (s *ControllerSuite) TestSubmitDecisionUnknownSession() {
	_, err := s.controller.SubmitDecision(s.ctx, "nope", model.DecisionHit)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestSecondDecisionAfterResolutionIsRejected() {
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("9"), card("10"), card("8"))

	_, err := s.controller.SubmitDecision(s.ctx, session.ID, model.DecisionStand)
	s.Require().NoError(err)

	_, err = s.controller.SubmitDecision(s.ctx, session.ID, model.DecisionHit)
	s.ErrorIs(err, model.ErrNoDecisionPending)

	// The stale decision changes nothing
	s.Equal(int64(600), s.balance("player-1"))
}

func (s *ControllerSuite) TestTimeoutAbortsWithoutSettlement() {
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("9"), card("8"), card(model.RankKing))

	s.Require().NoError(s.controller.OnTimeout(s.ctx, session.ID))

	fetched, err := s.controller.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.PhaseAborted, fetched.Phase)
	s.Equal(int64(500), s.balance("player-1"))

	_, err = s.controller.GetResult(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionAborted)

	_, err = s.controller.NextPrompt(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionAborted)

	_, err = s.controller.SubmitDecision(s.ctx, session.ID, model.DecisionHit)
	s.ErrorIs(err, model.ErrNoDecisionPending)
}

func (s *ControllerSuite) TestTimeoutAfterResolutionIsNoOp() {
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("9"), card("10"), card("8"))

	_, err := s.controller.SubmitDecision(s.ctx, session.ID, model.DecisionStand)
	s.Require().NoError(err)

	s.Require().NoError(s.controller.OnTimeout(s.ctx, session.ID))

	fetched, err := s.controller.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.PhaseResolved, fetched.Phase)
}

func (s *ControllerSuite) TestDecisionWatchExpiresViaClock() {
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("9"), card("8"), card(model.RankKing))

	s.clock.Advance(decisionTimeout)

	s.Eventually(func() bool {
		fetched, err := s.controller.GetSession(s.ctx, session.ID)
		return err == nil && fetched.Phase == model.PhaseAborted
	}, time.Second, 5*time.Millisecond)

	s.Equal(int64(500), s.balance("player-1"))
}

func (s *ControllerSuite) TestEachPromptGetsAFreshWatch() {
	s.fund("player-1", 500)
	session := s.start(100, card("5"), card("9"), card("6"), card("8"), card("2"))

	// Burn most of the first watch, then hit; the new prompt's watch
	// starts from the hit, so the old deadline must not abort it
	s.clock.Advance(decisionTimeout - time.Second)
	_, err := s.controller.SubmitDecision(s.ctx, session.ID, model.DecisionHit)
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Second)
	time.Sleep(20 * time.Millisecond)

	fetched, err := s.controller.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.PhasePlayerTurn, fetched.Phase)
}

func (s *ControllerSuite) TestGetResultIsIdempotent() {
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("9"), card("10"), card("8"))

	_, err := s.controller.SubmitDecision(s.ctx, session.ID, model.DecisionStand)
	s.Require().NoError(err)

	first, err := s.controller.GetResult(s.ctx, session.ID)
	s.Require().NoError(err)
	second, err := s.controller.GetResult(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(first, second)

	// Re-reading the result settles nothing further
	s.Equal(int64(600), s.balance("player-1"))
}

func (s *ControllerSuite) TestGetResultBeforeResolution() {
	s.fund("player-1", 500)
	session := s.start(100, card("10"), card("9"), card("8"), card(model.RankKing))

	_, err := s.controller.GetResult(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotResolved)
}

func (s *ControllerSuite) TestGetSessionUnknown() {
	_, err := s.controller.GetSession(s.ctx, "nope")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestSweepRemovesStaleTerminalSessions() {
	s.fund("player-1", 500)

	resolved := s.start(100, card(model.RankAce), card("5"), card(model.RankKing), card("9"))

	s.clock.Advance(2 * time.Hour)
	active := s.start(100, card("10"), card("9"), card("8"), card("7"))

	removed := s.controller.Sweep(time.Hour)
	s.Equal(1, removed)

	_, err := s.controller.GetSession(s.ctx, resolved.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)

	// The in-flight session survives
	_, err = s.controller.GetSession(s.ctx, active.ID)
	s.NoError(err)
}

func (s *ControllerSuite) TestSweepKeepsRecentTerminalSessions() {
	s.fund("player-1", 500)
	resolved := s.start(100, card(model.RankAce), card("5"), card(model.RankKing), card("9"))

	s.clock.Advance(10 * time.Minute)

	s.Equal(0, s.controller.Sweep(time.Hour))
	_, err := s.controller.GetSession(s.ctx, resolved.ID)
	s.NoError(err)
}
