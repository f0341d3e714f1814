package ai

import (
	"math"

	"rook-game/internal/bidding"
	"rook-game/internal/shared"
)

// BidDecision is either a pass or a bid of Amount.
type BidDecision struct {
	Pass   bool
	Amount int
}

// ChooseBid sizes a bid against the current high bid (0 when nobody has bid).
// An unopened auction is always opened at the table minimum. Otherwise the bot passes
// below cfg.BidFloor, and raises in steps of 5, 10 or 15 (by hand strength) up to a
// ceiling of strength * aggression * scale.
func ChooseBid(cfg Config, hand []shared.Card, currentHighBid int) BidDecision {
	if currentHighBid == 0 {
		return BidDecision{Amount: bidding.MinBid}
	}

	strength := HandStrength(cfg, hand, ChoosePowerSuit(cfg, hand))
	if strength < cfg.BidFloor {
		return BidDecision{Pass: true}
	}

	ceiling := roundDown(strength*cfg.Aggression*cfg.BidScale, bidding.Increment)
	if ceiling > bidding.MaxBid {
		ceiling = bidding.MaxBid
	}

	step := bidding.Increment
	switch {
	case strength >= cfg.StrongHand:
		step = 3 * bidding.Increment
	case strength >= cfg.MediumHand:
		step = 2 * bidding.Increment
	}

	bid := currentHighBid + step
	if bid > ceiling {
		bid = ceiling
	}
	if bid < currentHighBid+bidding.Increment || bid < bidding.MinBid {
		return BidDecision{Pass: true}
	}
	return BidDecision{Amount: bid}
}

func roundDown(v float64, step int) int {
	if v <= 0 {
		return 0
	}
	return int(math.Floor(v/float64(step))) * step
}
