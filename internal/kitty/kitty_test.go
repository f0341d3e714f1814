package kitty

import (
	"errors"
	"math/rand/v2"
	"testing"

	"rook-game/internal/ai"
	"rook-game/internal/shared"
)

func dealt(t *testing.T, seed uint64) ([]shared.Card, []shared.Card) {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed+1))
	deal, err := shared.DealCards(shared.Shuffle(shared.NewDeck(), rng), shared.NumSeats, shared.HandSize)
	if err != nil {
		t.Fatalf("deal: %v", err)
	}
	return deal.Hands[0], deal.Kitty
}

func TestExchange(t *testing.T) {
	hand, kit := dealt(t, 1)
	discard := []shared.Card{hand[0], hand[1], kit[0], kit[2], kit[4]}

	res, err := Exchange(hand, kit, shared.Green, discard)
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if len(res.Hand) != shared.HandSize || len(res.Kitty) != shared.KittySize {
		t.Fatalf("hand %d kitty %d", len(res.Hand), len(res.Kitty))
	}
	if res.PowerSuit != shared.Green {
		t.Fatalf("power = %s", res.PowerSuit)
	}
	for _, c := range discard {
		if shared.ContainsCard(res.Hand, c) {
			t.Fatalf("discarded %s still in hand", c)
		}
	}
	for _, c := range []shared.Card{kit[1], kit[3]} {
		if !shared.ContainsCard(res.Hand, c) {
			t.Fatalf("kept kitty card %s missing from hand", c)
		}
	}
	if shared.SumPoints(res.Hand)+shared.SumPoints(res.Kitty) != shared.SumPoints(hand)+shared.SumPoints(kit) {
		t.Fatalf("exchange changed total points")
	}
}

func TestExchangeRejects(t *testing.T) {
	hand, kit := dealt(t, 2)
	var outside shared.Card
	for _, c := range shared.NewDeck().Cards {
		if !shared.ContainsCard(Pool(hand, kit), c) {
			outside = c
			break
		}
	}

	tests := []struct {
		name    string
		power   shared.Suit
		discard []shared.Card
	}{
		{name: "too few", power: shared.Black, discard: kit[:4]},
		{name: "too many", power: shared.Black, discard: append(shared.CloneCards(kit), hand[0])},
		{name: "duplicate", power: shared.Black, discard: []shared.Card{kit[0], kit[0], kit[1], kit[2], kit[3]}},
		{name: "card not in pool", power: shared.Black, discard: []shared.Card{outside, kit[1], kit[2], kit[3], kit[4]}},
		{name: "no power suit", power: shared.NoSuit, discard: kit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Exchange(hand, kit, tt.power, tt.discard); !errors.Is(err, shared.ErrInvalidKittySelection) {
				t.Fatalf("expected invalid kitty selection, got %v", err)
			}
		})
	}
}

func TestAutoExchange(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		hand, kit := dealt(t, seed)
		res := AutoExchange(ai.DefaultConfig, hand, kit)
		if len(res.Hand) != shared.HandSize || len(res.Kitty) != shared.KittySize {
			t.Fatalf("seed %d: hand %d kitty %d", seed, len(res.Hand), len(res.Kitty))
		}
		if !res.PowerSuit.Valid() {
			t.Fatalf("seed %d: invalid power suit", seed)
		}
		pool := Pool(hand, kit)
		for _, c := range append(shared.CloneCards(res.Hand), res.Kitty...) {
			var ok bool
			if pool, ok = shared.RemoveCard(pool, c); !ok {
				t.Fatalf("seed %d: %s not from the pool", seed, c)
			}
		}
	}
}
