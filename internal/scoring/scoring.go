// Package scoring tallies captured points, settles a round against the bid and decides
// when a match is over.
package scoring

import (
	"fmt"

	"rook-game/internal/shared"
)

// LastTrickBonus goes to the team that takes the final trick, along with the kitty.
const LastTrickBonus = 20

// RoundPoints is every point available in a round: all card points plus the bonus.
const RoundPoints = 200

// DefaultTarget is the cumulative score that ends a match.
const DefaultTarget = 500

// CaptureTrickPoints credits the trick's card points to the winning seat's team.
// On the final trick the kitty and the last-trick bonus are added.
func CaptureTrickPoints(trick []shared.Play, winner shared.Seat, final bool, kitty []shared.Card) (shared.Team, int) {
	points := shared.SumPoints(shared.TrickCards(trick))
	if final {
		points += shared.SumPoints(kitty) + LastTrickBonus
	}
	return winner.Team(), points
}

// Settlement is the result of one round.
type Settlement struct {
	Declarer   shared.Team `json:"declarer"`
	Captured   [2]int      `json:"captured"`
	Deltas     [2]int      `json:"deltas"`
	BidAmount  int         `json:"bid_amount"`
	BidMade    bool        `json:"bid_made"`
	FinalScore int         `json:"final_score"` // points the declaring team actually took
}

// Settle applies the bid: a declaring team that made its bid scores what it captured,
// otherwise it loses the bid amount. The defenders always keep what they captured.
func Settle(declarer shared.Team, captured [2]int, bid int) (Settlement, error) {
	if captured[0]+captured[1] != RoundPoints {
		return Settlement{}, shared.Errorf(shared.KindInvariantViolation,
			"captured points %d+%d do not add up to %d", captured[0], captured[1], RoundPoints)
	}

	s := Settlement{
		Declarer:   declarer,
		Captured:   captured,
		BidAmount:  bid,
		FinalScore: captured[declarer],
	}
	s.BidMade = captured[declarer] >= bid
	if s.BidMade {
		s.Deltas[declarer] = captured[declarer]
	} else {
		s.Deltas[declarer] = -bid
	}
	s.Deltas[declarer.Other()] = captured[declarer.Other()]
	return s, nil
}

// Ledger holds the cumulative match score per team.
type Ledger [2]int

// Apply returns the ledger after a settlement.
func (l Ledger) Apply(s Settlement) Ledger {
	l[shared.NorthSouth] += s.Deltas[shared.NorthSouth]
	l[shared.EastWest] += s.Deltas[shared.EastWest]
	return l
}

func (l Ledger) String() string {
	return fmt.Sprintf("%s %d, %s %d", shared.NorthSouth, l[shared.NorthSouth], shared.EastWest, l[shared.EastWest])
}

// CheckMatchEnd reports the match winner once either team has reached target.
// If both have, the higher score wins; equal scores go to the team with the larger delta
// in the last round, and failing that to the team that declared it.
func CheckMatchEnd(l Ledger, last Settlement, target int) (shared.Team, bool) {
	ns, ew := l[shared.NorthSouth], l[shared.EastWest]
	if ns < target && ew < target {
		return 0, false
	}
	switch {
	case ns > ew:
		return shared.NorthSouth, true
	case ew > ns:
		return shared.EastWest, true
	}
	switch {
	case last.Deltas[shared.NorthSouth] > last.Deltas[shared.EastWest]:
		return shared.NorthSouth, true
	case last.Deltas[shared.EastWest] > last.Deltas[shared.NorthSouth]:
		return shared.EastWest, true
	}
	return last.Declarer, true
}
