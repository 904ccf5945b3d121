package model

import "github.com/cardroom/blackjack-go/internal/dependencies/random"

// Suit is one of the four card suits
type Suit string

const (
	SuitClubs    Suit = "clubs"
	SuitDiamonds Suit = "diamonds"
	SuitHearts   Suit = "hearts"
	SuitSpades   Suit = "spades"
)

// Suits lists all suits in canonical order
var Suits = []Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}

// Rank is a card rank (A, 2-10, J, Q, K)
type Rank string

const (
	RankAce   Rank = "A"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
)

// Ranks lists all ranks in canonical order
var Ranks = []Rank{
	RankAce, "2", "3", "4", "5", "6", "7", "8", "9", "10",
	RankJack, RankQueen, RankKing,
}

// Card is a single playing card. Rank and suit are fixed at creation;
// FaceDown is the only mutable field (the dealer's hole card is dealt
// face-down and flipped in place when revealed).
type Card struct {
	Rank     Rank
	Suit     Suit
	FaceDown bool
}

// IsAce returns true if the card is an ace
func (c Card) IsAce() bool {
	return c.Rank == RankAce
}

// Flip toggles the face-down flag in place and returns the card
// so a freshly drawn card can be flipped before it is dealt
func (c *Card) Flip() *Card {
	c.FaceDown = !c.FaceDown
	return c
}

// Deck is an ordered sequence of cards owned by exactly one session.
// Cards are drawn by popping from the end; a deck is never shared or reused.
type Deck struct {
	cards []Card
}

// NewDeck returns all 52 cards in canonical order (suits × ranks)
func NewDeck() *Deck {
	cards := make([]Card, 0, len(Suits)*len(Ranks))
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return &Deck{cards: cards}
}

// Shuffle permutes the deck using the provided random source
func (d *Deck) Shuffle(r random.Random) {
	r.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card.
// Drawing from an empty deck is an invariant violation: a single-session
// blackjack deck never comes close to 52 draws, so the caller treats
// ErrDeckExhausted as fatal and aborts the session without settlement.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Len returns the number of cards remaining
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards in order
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// StackedDeck builds a deck that deals the given cards in the order
// listed. Used by tests to deal known hands.
func StackedDeck(cards ...Card) *Deck {
	cs := make([]Card, len(cards))
	for i, c := range cards {
		cs[len(cards)-1-i] = c
	}
	return &Deck{cards: cs}
}
