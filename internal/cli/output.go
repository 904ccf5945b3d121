package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case Prompt:
		o.printPrompt(v)
	case Result:
		o.printResult(v)
	case Balance:
		o.printBalance(v)
	case Claim:
		o.printClaim(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case Entry:
		o.printEntry(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Card response type (matches API)
type Card struct {
	Rank   string `json:"rank,omitempty"`
	Suit   string `json:"suit,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}

// Session response type
type Session struct {
	ID         string  `json:"id"`
	PlayerID   string  `json:"player_id"`
	Wager      int64   `json:"wager"`
	Phase      string  `json:"phase"`
	PlayerHand []Card  `json:"player_hand"`
	DealerHand []Card  `json:"dealer_hand"`
	Result     *Result `json:"result,omitempty"`
}

// Prompt response type
type Prompt struct {
	PlayerScore int      `json:"player_score"`
	DealerScore int      `json:"dealer_score"`
	Decisions   []string `json:"decisions"`
}

// Result response type
type Result struct {
	Outcome     string `json:"outcome"`
	PlayerScore int    `json:"player_score"`
	DealerScore int    `json:"dealer_score"`
	Wager       int64  `json:"wager"`
	NewBalance  int64  `json:"new_balance"`
}

// Balance response type
type Balance struct {
	PlayerID string `json:"player_id"`
	Balance  int64  `json:"balance"`
}

// Claim response type
type Claim struct {
	PlayerID string `json:"player_id"`
	Amount   int64  `json:"amount"`
	Balance  int64  `json:"balance"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Balance  int64  `json:"balance"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// Entry response type (administrative ledger view)
type Entry struct {
	PlayerID    string     `json:"player_id"`
	Balance     int64      `json:"balance"`
	Credits     int64      `json:"credits"`
	LastClaimAt *time.Time `json:"last_claim_at,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

var suitSymbols = map[string]string{
	"clubs":    "♣",
	"diamonds": "♦",
	"hearts":   "♥",
	"spades":   "♠",
}

func formatCard(c Card) string {
	if c.Hidden {
		return "[??]"
	}
	symbol, ok := suitSymbols[c.Suit]
	if !ok {
		symbol = c.Suit
	}
	return c.Rank + symbol
}

func formatHand(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = formatCard(c)
	}
	return strings.Join(parts, " ")
}

func formatOutcome(outcome string) string {
	switch outcome {
	case "player_blackjack":
		return "Blackjack! You win."
	case "player_win":
		return "You win."
	case "player_bust":
		return "Bust. You lose."
	case "dealer_blackjack":
		return "Dealer blackjack. You lose."
	case "dealer_bust":
		return "Dealer busts. You win."
	case "dealer_win":
		return "Dealer wins."
	case "push":
		return "Push."
	default:
		return outcome
	}
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Table: %s\n", s.ID)
	fmt.Printf("Player: %s (wager %d)\n", s.PlayerID, s.Wager)
	fmt.Printf("Phase: %s\n", s.Phase)
	fmt.Printf("Your hand:   %s\n", formatHand(s.PlayerHand))
	fmt.Printf("Dealer hand: %s\n", formatHand(s.DealerHand))
	if s.Result != nil {
		fmt.Println()
		o.printResult(*s.Result)
	}
}

func (o *Output) printPrompt(p Prompt) {
	fmt.Printf("You show %d, the dealer shows %d\n", p.PlayerScore, p.DealerScore)
	fmt.Printf("Decisions: %s\n", strings.Join(p.Decisions, ", "))
}

func (o *Output) printResult(r Result) {
	fmt.Println(formatOutcome(r.Outcome))
	fmt.Printf("You: %d, dealer: %d\n", r.PlayerScore, r.DealerScore)
	fmt.Printf("Balance: %d\n", r.NewBalance)
}

func (o *Output) printBalance(b Balance) {
	fmt.Printf("%s has %d chips\n", b.PlayerID, b.Balance)
}

func (o *Output) printClaim(c Claim) {
	fmt.Printf("Claimed %d chips\n", c.Amount)
	fmt.Printf("Balance: %d\n", c.Balance)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Entries) == 0 {
		fmt.Println("No entries yet")
		return
	}
	for _, e := range l.Entries {
		fmt.Printf("%3d. %-24s %d\n", e.Rank, e.PlayerID, e.Balance)
	}
}

func (o *Output) printEntry(e Entry) {
	fmt.Printf("Player: %s\n", e.PlayerID)
	fmt.Printf("Balance: %d\n", e.Balance)
	fmt.Printf("Credits: %d\n", e.Credits)
	if e.LastClaimAt != nil {
		fmt.Printf("Last claim: %s\n", e.LastClaimAt.Format(time.RFC3339))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
