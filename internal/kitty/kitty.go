// Package kitty handles the declarer's exchange with the five leftover cards.
package kitty

import (
	"rook-game/internal/ai"
	"rook-game/internal/shared"
)

// Result is the outcome of an exchange. Kitty holds the discarded cards; their points
// go to whichever team takes the last trick.
type Result struct {
	Hand      []shared.Card `json:"hand"`
	Kitty     []shared.Card `json:"kitty"`
	PowerSuit shared.Suit   `json:"power_suit"`
}

// Pool returns the declarer's hand together with the kitty.
func Pool(hand, kitty []shared.Card) []shared.Card {
	pool := make([]shared.Card, 0, len(hand)+len(kitty))
	pool = append(pool, hand...)
	return append(pool, kitty...)
}

// Exchange applies a declarer's explicit choice: discard names exactly five distinct
// cards from the hand-plus-kitty pool, and power must be a real suit.
func Exchange(hand, kitty []shared.Card, power shared.Suit, discard []shared.Card) (Result, error) {
	if !power.Valid() {
		return Result{}, shared.Errorf(shared.KindInvalidKittySelection, "invalid power suit %d", power)
	}
	if len(discard) != shared.KittySize {
		return Result{}, shared.Errorf(shared.KindInvalidKittySelection, "must discard %d cards, got %d", shared.KittySize, len(discard))
	}

	remaining := Pool(hand, kitty)
	for _, c := range discard {
		var ok bool
		remaining, ok = shared.RemoveCard(remaining, c)
		if !ok {
			return Result{}, shared.Errorf(shared.KindInvalidKittySelection, "%s is not available to discard", c)
		}
	}

	return Result{
		Hand:      remaining,
		Kitty:     shared.CloneCards(discard),
		PowerSuit: power,
	}, nil
}

// AutoExchange lets the heuristic opponent pick both the power suit and the discards.
func AutoExchange(cfg ai.Config, hand, kitty []shared.Card) Result {
	keep, discard, power := ai.ChooseKitty(cfg, hand, kitty)
	return Result{Hand: keep, Kitty: discard, PowerSuit: power}
}
