package response

import (
	"time"

	"github.com/cardroom/blackjack-go/internal/model"
)

// Card represents a card in API responses. Face-down cards are rendered
// hidden: the rank and suit are withheld so the hole card cannot leak
// through the transport.
type Card struct {
	Rank   string `json:"rank,omitempty"`
	Suit   string `json:"suit,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}

// CardFromModel converts a model.Card to a response Card
func CardFromModel(c model.Card) Card {
	if c.FaceDown {
		return Card{Hidden: true}
	}
	return Card{
		Rank: string(c.Rank),
		Suit: string(c.Suit),
	}
}

// HandFromModel converts a model.Hand to response cards
func HandFromModel(h model.Hand) []Card {
	cards := make([]Card, len(h))
	for i, c := range h {
		cards[i] = CardFromModel(c)
	}
	return cards
}

// Result represents a resolved session's outcome
type Result struct {
	Outcome     string `json:"outcome"`
	PlayerScore int    `json:"player_score"`
	DealerScore int    `json:"dealer_score"`
	Wager       int64  `json:"wager"`
	NewBalance  int64  `json:"new_balance"`
}

// ResultFromModel converts a model.Result
func ResultFromModel(r *model.Result) Result {
	return Result{
		Outcome:     string(r.Outcome),
		PlayerScore: r.PlayerScore,
		DealerScore: r.DealerScore,
		Wager:       r.Wager,
		NewBalance:  r.NewBalance,
	}
}

// Session represents a blackjack session in API responses
type Session struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"player_id"`
	Wager      int64     `json:"wager"`
	Phase      string    `json:"phase"`
	PlayerHand []Card    `json:"player_hand"`
	DealerHand []Card    `json:"dealer_hand"`
	Result     *Result   `json:"result,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SessionFromModel converts a model.Session
func SessionFromModel(s *model.Session) Session {
	resp := Session{
		ID:         string(s.ID),
		PlayerID:   string(s.PlayerID),
		Wager:      s.Wager,
		Phase:      string(s.Phase),
		PlayerHand: HandFromModel(s.PlayerHand),
		DealerHand: HandFromModel(s.DealerHand),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	if s.Result != nil {
		r := ResultFromModel(s.Result)
		resp.Result = &r
	}
	return resp
}

// Prompt represents a pending decision prompt
type Prompt struct {
	PlayerScore int      `json:"player_score"`
	DealerScore int      `json:"dealer_score"`
	Decisions   []string `json:"decisions"`
}

// PromptFromModel converts a model.Prompt
func PromptFromModel(p *model.Prompt) Prompt {
	return Prompt{
		PlayerScore: p.PlayerScore,
		DealerScore: p.DealerScore,
		Decisions:   []string{string(model.DecisionHit), string(model.DecisionStand)},
	}
}

// Balance is the response for balance queries
type Balance struct {
	PlayerID string `json:"player_id"`
	Balance  int64  `json:"balance"`
}

// Claim is the response for a successful bonus claim
type Claim struct {
	PlayerID string `json:"player_id"`
	Amount   int64  `json:"amount"`
	Balance  int64  `json:"balance"`
}

// LeaderboardEntry is one row of the leaderboard
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Balance  int64  `json:"balance"`
}

// Leaderboard is the response for the leaderboard query
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromEntries converts ledger entries into ranked rows
func LeaderboardFromEntries(entries []*model.LedgerEntry) Leaderboard {
	rows := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		rows[i] = LeaderboardEntry{
			Rank:     i + 1,
			PlayerID: string(e.PlayerID),
			Balance:  e.Balance,
		}
	}
	return Leaderboard{Entries: rows}
}

// Entry is the full ledger entry view used by administrative responses
type Entry struct {
	PlayerID    string     `json:"player_id"`
	Balance     int64      `json:"balance"`
	Credits     int64      `json:"credits"`
	LastClaimAt *time.Time `json:"last_claim_at,omitempty"`
}

// EntryFromModel converts a model.LedgerEntry
func EntryFromModel(e *model.LedgerEntry) Entry {
	entry := Entry{
		PlayerID: string(e.PlayerID),
		Balance:  e.Balance,
		Credits:  e.Credits,
	}
	if !e.LastClaimAt.IsZero() {
		t := e.LastClaimAt
		entry.LastClaimAt = &t
	}
	return entry
}
