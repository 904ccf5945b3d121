package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// Phase represents the state machine position of a session
type Phase string

const (
	PhaseDealing    Phase = "dealing"     // initial deal in progress
	PhasePlayerTurn Phase = "player_turn" // awaiting a hit/stand decision
	PhaseDealerTurn Phase = "dealer_turn" // dealer playing out the house policy
	PhaseResolved   Phase = "resolved"    // outcome computed and settled
	PhaseAborted    Phase = "aborted"     // timed out or failed, no settlement
)

// Decision is a player's response to a prompt
type Decision string

const (
	DecisionHit   Decision = "hit"
	DecisionStand Decision = "stand"
)

// Outcome is the terminal result of a resolved session
type Outcome string

const (
	OutcomePlayerBlackjack Outcome = "player_blackjack"
	OutcomePlayerBust      Outcome = "player_bust"
	OutcomeDealerBlackjack Outcome = "dealer_blackjack"
	OutcomeDealerBust      Outcome = "dealer_bust"
	OutcomePush            Outcome = "push"
	OutcomePlayerWin       Outcome = "player_win"
	OutcomeDealerWin       Outcome = "dealer_win"
)

// Prompt is the decision request emitted while a session awaits hit/stand.
// DealerScore counts only the dealer's visible cards.
type Prompt struct {
	PlayerScore int
	DealerScore int
}

// Result is the final outcome of a resolved session. It is captured once
// at settlement and safe to re-read any number of times.
type Result struct {
	Outcome     Outcome
	PlayerScore int
	DealerScore int
	Wager       int64
	NewBalance  int64
}

// Session is one blackjack hand: one deck, two hands, one wager.
// The deck and hands are exclusively owned by the session and never shared.
type Session struct {
	ID       SessionID
	PlayerID PlayerID
	Wager    int64

	Deck       *Deck
	PlayerHand Hand
	DealerHand Hand

	Phase  Phase
	Result *Result // set exactly once when Phase becomes Resolved

	CreatedAt time.Time
	UpdatedAt time.Time
}
