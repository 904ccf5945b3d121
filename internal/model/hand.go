package model

// Hand is an ordered sequence of cards belonging to the player or the
// dealer within one session. Insertion order is preserved for display;
// scores are always recomputed from the current cards, never cached.
type Hand []Card

// Add appends a card to the hand
func (h *Hand) Add(c Card) {
	*h = append(*h, c)
}

// RevealAll flips any face-down cards face-up in place
func (h Hand) RevealAll() {
	for i := range h {
		if h[i].FaceDown {
			h[i].Flip()
		}
	}
}

// HasFaceDown returns true if any card in the hand is face-down
func (h Hand) HasFaceDown() bool {
	for _, c := range h {
		if c.FaceDown {
			return true
		}
	}
	return false
}

// Copy returns an independent copy of the hand
func (h Hand) Copy() Hand {
	out := make(Hand, len(h))
	copy(out, h)
	return out
}
