package ai

import "fmt"

// Config holds the named weights the heuristic opponent scores hands with.
type Config struct {
	HighCard        float64 `json:"high_card"`         // per card of rank 1, 14 or 13
	WildCard        float64 `json:"wild_card"`         // holding the wild card
	SuitLength      float64 `json:"suit_length"`       // per card beyond three in a side suit
	Void            float64 `json:"void"`              // per side suit with no cards
	PowerSuitLength float64 `json:"power_suit_length"` // per card of the candidate power suit
	ControlCard     float64 `json:"control_card"`      // per power-suit card, on top of length
	Aggression      float64 `json:"aggression"`

	// Bidding thresholds, all expressed in strength units.
	BidFloor   float64 `json:"bid_floor"`   // pass below this once the auction is open
	BidScale   float64 `json:"bid_scale"`   // bid ceiling = strength * aggression * scale
	MediumHand float64 `json:"medium_hand"` // raise by 10 at or above this
	StrongHand float64 `json:"strong_hand"` // raise by 15 at or above this
}

// DefaultConfig balances a cautious floor against a moderately aggressive ceiling.
var DefaultConfig = Config{
	HighCard:        2.0,
	WildCard:        5.0,
	SuitLength:      0.5,
	Void:            3.0,
	PowerSuitLength: 1.5,
	ControlCard:     1.0,
	Aggression:      1.0,

	BidFloor:   14,
	BidScale:   5,
	MediumHand: 20,
	StrongHand: 26,
}

// Validate rejects weight sets that would make the bidding arithmetic meaningless.
func (c Config) Validate() error {
	if c.Aggression <= 0 {
		return fmt.Errorf("aggression must be positive, got %v", c.Aggression)
	}
	if c.BidScale <= 0 {
		return fmt.Errorf("bid_scale must be positive, got %v", c.BidScale)
	}
	if c.StrongHand < c.MediumHand {
		return fmt.Errorf("strong_hand (%v) below medium_hand (%v)", c.StrongHand, c.MediumHand)
	}
	return nil
}
