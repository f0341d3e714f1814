package shared

import "sort"

// RemoveCard returns a copy of hand without the first occurrence of card.
// The second result is false when the card is not in the hand.
func RemoveCard(hand []Card, card Card) ([]Card, bool) {
	for i, c := range hand {
		if c == card {
			out := make([]Card, 0, len(hand)-1)
			out = append(out, hand[:i]...)
			out = append(out, hand[i+1:]...)
			return out, true
		}
	}
	return CloneCards(hand), false
}

// ContainsCard reports whether the card is in the hand.
func ContainsCard(hand []Card, card Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}

// HasSuit reports whether the hand holds a card playing as suit under the given power suit.
func HasSuit(hand []Card, suit, power Suit) bool {
	for _, c := range hand {
		if c.EffectiveSuit(power) == suit {
			return true
		}
	}
	return false
}

// CountSuit counts the cards of a plain suit. The wild card is never counted.
func CountSuit(hand []Card, suit Suit) int {
	n := 0
	for _, c := range hand {
		if !c.IsWild() && c.Suit == suit {
			n++
		}
	}
	return n
}

// CloneCards returns an independent copy of cards (nil stays nil).
func CloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// SortHand orders cards by suit, then by descending strength. The wild card sorts first.
func SortHand(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if a.IsWild() != b.IsWild() {
			return a.IsWild()
		}
		if a.Suit != b.Suit {
			return a.Suit < b.Suit
		}
		return a.Order() > b.Order()
	})
}
