package ai

import "rook-game/internal/shared"

// TeammateWinning reports whether seat's partner currently holds trick.
func TeammateWinning(trick []shared.Play, seat shared.Seat, power shared.Suit) bool {
	if len(trick) == 0 {
		return false
	}
	return trick[shared.WinningPlay(trick, power)].Seat == seat.Partner()
}

// ChooseCard picks the card to play. Every candidate comes from shared.LegalPlays.
//
// Leading: the highest power-suit card, else the highest card. Following: the cheapest
// card that takes the trick; failing that, feed points to a winning partner, otherwise
// shed the lowest non-point card and only leak points when forced.
func ChooseCard(hand []shared.Card, trick []shared.Play, power shared.Suit, teammateWinning bool) shared.Card {
	legal := shared.LegalPlays(hand, trick, power)
	if len(legal) == 0 {
		return shared.Card{}
	}

	if len(trick) == 0 {
		var powerCards []shared.Card
		for _, c := range legal {
			if c.IsPower(power) {
				powerCards = append(powerCards, c)
			}
		}
		if len(powerCards) > 0 {
			return pick(powerCards, higher(power))
		}
		return pick(legal, higher(power))
	}

	seat := trick[len(trick)-1].Seat.Next()
	var winners []shared.Card
	for _, c := range legal {
		if wins(trick, shared.Play{Seat: seat, Card: c}, power) {
			winners = append(winners, c)
		}
	}
	if len(winners) > 0 {
		return pick(winners, cheaper(power))
	}

	var pointCards, blanks []shared.Card
	for _, c := range legal {
		if c.IsPointCard() {
			pointCards = append(pointCards, c)
		} else {
			blanks = append(blanks, c)
		}
	}

	if teammateWinning {
		if len(pointCards) > 0 {
			return pick(pointCards, func(a, b shared.Card) bool {
				if a.Points() != b.Points() {
					return a.Points() > b.Points()
				}
				return cheaper(power)(a, b)
			})
		}
		return pick(legal, cheaper(power))
	}

	if len(blanks) > 0 {
		return pick(blanks, cheaper(power))
	}
	return pick(pointCards, func(a, b shared.Card) bool {
		if a.Points() != b.Points() {
			return a.Points() < b.Points()
		}
		return cheaper(power)(a, b)
	})
}

func wins(trick []shared.Play, p shared.Play, power shared.Suit) bool {
	next := append(shared.ClonePlays(trick), p)
	return next[shared.WinningPlay(next, power)].Seat == p.Seat
}

// pick returns the first card c for which better(c, other) holds against every other card.
func pick(cards []shared.Card, better func(a, b shared.Card) bool) shared.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if better(c, best) {
			best = c
		}
	}
	return best
}

// higher prefers power cards, then rank order.
func higher(power shared.Suit) func(a, b shared.Card) bool {
	return func(a, b shared.Card) bool {
		if a.IsPower(power) != b.IsPower(power) {
			return a.IsPower(power)
		}
		return a.Order() > b.Order()
	}
}

// cheaper prefers non-power cards, then the lowest rank, then fewer points.
func cheaper(power shared.Suit) func(a, b shared.Card) bool {
	return func(a, b shared.Card) bool {
		if a.IsPower(power) != b.IsPower(power) {
			return !a.IsPower(power)
		}
		if a.Order() != b.Order() {
			return a.Order() < b.Order()
		}
		return a.Points() < b.Points()
	}
}
