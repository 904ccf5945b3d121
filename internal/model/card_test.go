package model

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/blackjack-go/internal/dependencies/random"
)

func TestNewDeckHas52DistinctCards(t *testing.T) {
	deck := NewDeck()
	require.Equal(t, 52, deck.Len())

	seen := make(map[Card]bool)
	for _, c := range deck.Cards() {
		require.False(t, c.FaceDown)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestShufflePreservesCardMultiset(t *testing.T) {
	original := NewDeck()
	shuffled := NewDeck()
	shuffled.Shuffle(random.New())

	assert.ElementsMatch(t, original.Cards(), shuffled.Cards())
}

func TestDrawPopsFromTheEnd(t *testing.T) {
	deck := NewDeck()
	top := deck.Cards()[deck.Len()-1]

	card, err := deck.Draw()
	require.NoError(t, err)
	assert.Equal(t, top, card)
	assert.Equal(t, 51, deck.Len())
}

func TestDrawFromEmptyDeckFails(t *testing.T) {
	deck := StackedDeck()
	_, err := deck.Draw()
	assert.ErrorIs(t, err, ErrDeckExhausted)
}

func TestStackedDeckDealsInOrder(t *testing.T) {
	first := Card{Rank: RankAce, Suit: SuitSpades}
	second := Card{Rank: "10", Suit: SuitHearts}
	deck := StackedDeck(first, second)

	card, err := deck.Draw()
	require.NoError(t, err)
	assert.Equal(t, first, card)

	card, err = deck.Draw()
	require.NoError(t, err)
	assert.Equal(t, second, card)
}

func TestFlipTogglesInPlace(t *testing.T) {
	hand := Hand{{Rank: RankKing, Suit: SuitClubs}}
	require.False(t, hand[0].FaceDown)

	hand[0].Flip()
	assert.True(t, hand[0].FaceDown)

	hand[0].Flip()
	assert.False(t, hand[0].FaceDown)
}

func TestRevealAllFlipsOnlyFaceDownCards(t *testing.T) {
	hand := Hand{
		{Rank: RankQueen, Suit: SuitClubs},
		{Rank: RankAce, Suit: SuitDiamonds, FaceDown: true},
	}

	hand.RevealAll()

	assert.False(t, hand[0].FaceDown)
	assert.False(t, hand[1].FaceDown)
}

func TestHandCopyIsIndependent(t *testing.T) {
	hand := Hand{{Rank: "2", Suit: SuitClubs}}
	copied := hand.Copy()
	copied[0].Flip()

	assert.False(t, hand[0].FaceDown)
	assert.True(t, copied[0].FaceDown)
}

func TestCanonicalDeckOrderIsStable(t *testing.T) {
	a := NewDeck().Cards()
	b := NewDeck().Cards()
	require.Equal(t, a, b)

	// Suits appear in blocks of 13 in canonical order
	suits := make([]string, 0, 4)
	for i := 0; i < 52; i += 13 {
		suits = append(suits, string(a[i].Suit))
	}
	sorted := append([]string(nil), suits...)
	sort.Strings(sorted)
	assert.Len(t, suits, 4)
	assert.ElementsMatch(t, sorted, suits)
}
