package shared

import (
	"fmt"
	"math/rand/v2"
)

const (
	// DeckSize is four 14-rank suits plus the wild card.
	DeckSize  = 57
	HandSize  = 13
	KittySize = 5
	NumSeats  = 4
)

// Deck represents an ordered collection of cards.
type Deck struct {
	Cards []Card
}

// NewDeck creates the fixed 57-card deck in suit-then-rank order, wild card last.
func NewDeck() Deck {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := MinRank; rank <= MaxRank; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	cards = append(cards, WildCard())
	return Deck{Cards: cards}
}

// Len returns the number of cards left in the deck.
func (d Deck) Len() int { return len(d.Cards) }

// Shuffle returns a shuffled copy of the deck; the input is left untouched.
func Shuffle(d Deck, rng *rand.Rand) Deck {
	out := make([]Card, len(d.Cards))
	copy(out, d.Cards)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return Deck{Cards: out}
}

// Deal is the result of distributing a deck: one hand per seat plus the kitty.
type Deal struct {
	Hands [][]Card
	Kitty []Card
}

// DealCards deals handSize cards to each seat in turn order; whatever remains becomes the kitty.
func DealCards(d Deck, seats, handSize int) (Deal, error) {
	needed := seats * handSize
	if seats <= 0 || handSize <= 0 || len(d.Cards) < needed {
		return Deal{}, fmt.Errorf("not enough cards in deck (%d) to deal %d cards to %d seats", len(d.Cards), handSize, seats)
	}

	hands := make([][]Card, seats)
	start := 0
	for i := 0; i < seats; i++ {
		end := start + handSize
		// copy so later hand edits never alias the deck's backing array
		hand := make([]Card, handSize)
		copy(hand, d.Cards[start:end])
		hands[i] = hand
		start = end
	}
	kitty := make([]Card, len(d.Cards)-start)
	copy(kitty, d.Cards[start:])

	return Deal{Hands: hands, Kitty: kitty}, nil
}
