// Package ai is the heuristic opponent: a fast scorer-and-chooser with no lookahead.
package ai

import (
	"sort"

	"rook-game/internal/shared"
)

// HandStrength scores a hand assuming candidate is the power suit.
func HandStrength(cfg Config, hand []shared.Card, candidate shared.Suit) float64 {
	score := 0.0
	for _, c := range hand {
		if c.IsWild() {
			score += cfg.WildCard
			continue
		}
		if c.IsTopRank() {
			score += cfg.HighCard
		}
		if c.Suit == candidate {
			score += cfg.ControlCard
		}
	}

	for _, suit := range shared.Suits {
		n := shared.CountSuit(hand, suit)
		switch {
		case suit == candidate:
			score += cfg.PowerSuitLength * float64(n)
		case n == 0:
			score += cfg.Void
		case n > 3:
			score += cfg.SuitLength * float64(n-3)
		}
	}
	return score
}

// ChoosePowerSuit returns the candidate suit with the highest hand strength.
// Ties go to the suit listed first in shared.Suits.
func ChoosePowerSuit(cfg Config, hand []shared.Card) shared.Suit {
	best := shared.Suits[0]
	bestScore := HandStrength(cfg, hand, best)
	for _, suit := range shared.Suits[1:] {
		if s := HandStrength(cfg, hand, suit); s > bestScore {
			best, bestScore = suit, s
		}
	}
	return best
}

// ChooseKitty decides the declarer's exchange: the power suit and the 13 cards to keep
// out of the 18-card pool. Power-suit cards (wild first) are kept ahead of everything
// else, then cards by rank order.
func ChooseKitty(cfg Config, hand, kitty []shared.Card) (keep, discard []shared.Card, power shared.Suit) {
	pool := make([]shared.Card, 0, len(hand)+len(kitty))
	pool = append(pool, hand...)
	pool = append(pool, kitty...)

	power = ChoosePowerSuit(cfg, pool)
	sort.SliceStable(pool, func(i, j int) bool {
		return keepsBefore(pool[i], pool[j], power)
	})

	keepN := len(hand)
	keep = shared.CloneCards(pool[:keepN])
	discard = shared.CloneCards(pool[keepN:])
	return keep, discard, power
}

func keepsBefore(a, b shared.Card, power shared.Suit) bool {
	ap, bp := a.IsPower(power), b.IsPower(power)
	if ap != bp {
		return ap
	}
	if a.Order() != b.Order() {
		return a.Order() > b.Order()
	}
	return a.Suit < b.Suit
}
