package scenario

import (
	"github.com/montelab/montelab/montecarlo"
	"github.com/montelab/montelab/rng"
)

// Rank 1 is the ace; 11 through 13 are the face cards.
type Card struct {
	Rank int
	Suit int
}

// Value returns the blackjack value of the card, counting aces as 11.
func (c Card) Value() int {
	switch {
	case c.Rank == 1:
		return 11
	case c.Rank >= 10:
		return 10
	default:
		return c.Rank
	}
}

// NewDeck builds a standard 52-card deck in canonical order.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for suit := 0; suit < 4; suit++ {
		for rank := 1; rank <= 13; rank++ {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// Deal draws n cards from the deck without replacement.
func Deal(src *rng.Source, deck []Card, n int) []Card {
	idx := src.Perm(len(deck))[:n]
	hand := make([]Card, n)
	for i, j := range idx {
		hand[i] = deck[j]
	}
	return hand
}

// Blackjack reports whether the two-card hand is a natural 21.
func Blackjack(hand []Card) bool {
	if len(hand) != 2 {
		return false
	}
	return hand[0].Value()+hand[1].Value() == 21
}

func init() {
	register(&Scenario{
		Name:        "cards",
		Description: "probability of dealing a natural blackjack from a fresh shuffled deck",
		Unit:        "probability",
		Params: []Param{
			{Name: "decks", Usage: "number of 52-card decks shuffled together", Default: 1},
		},
		Build: func(v Values) (montecarlo.Trial, error) {
			nDecks := max(1, int(v.Get("decks")))
			shoe := make([]Card, 0, 52*nDecks)
			for i := 0; i < nDecks; i++ {
				shoe = append(shoe, NewDeck()...)
			}
			return func(src *rng.Source) (float64, error) {
				if Blackjack(Deal(src, shoe, 2)) {
					return 1, nil
				}
				return 0, nil
			}, nil
		},
	})
}
