package scoring

import (
	"errors"
	"math/rand/v2"
	"testing"

	"rook-game/internal/shared"
)

func TestCaptureTrickPoints(t *testing.T) {
	trick := []shared.Play{
		{Seat: shared.East, Card: shared.NewCard(shared.Black, 1)},
		{Seat: shared.South, Card: shared.NewCard(shared.Black, 5)},
		{Seat: shared.West, Card: shared.NewCard(shared.Black, 9)},
		{Seat: shared.North, Card: shared.NewCard(shared.Black, 10)},
	}
	kitty := []shared.Card{shared.WildCard(), shared.NewCard(shared.Green, 3)}

	team, pts := CaptureTrickPoints(trick, shared.East, false, kitty)
	if team != shared.EastWest || pts != 30 {
		t.Fatalf("got %s %d, want east/west 30", team, pts)
	}
	team, pts = CaptureTrickPoints(trick, shared.North, true, kitty)
	if team != shared.NorthSouth || pts != 30+20+LastTrickBonus {
		t.Fatalf("final trick got %s %d, want north/south %d", team, pts, 30+20+LastTrickBonus)
	}
}

// A full round of random tricks always distributes exactly RoundPoints.
func TestRoundPointsConserved(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 9))
	for round := 0; round < 100; round++ {
		deal, err := shared.DealCards(shared.Shuffle(shared.NewDeck(), rng), shared.NumSeats, shared.HandSize)
		if err != nil {
			t.Fatalf("deal: %v", err)
		}
		var captured [2]int
		for n := 0; n < shared.HandSize; n++ {
			trick := make([]shared.Play, shared.NumSeats)
			for i, seat := range shared.Seats {
				trick[i] = shared.Play{Seat: seat, Card: deal.Hands[seat][n]}
			}
			team, pts := CaptureTrickPoints(trick, shared.Seat(rng.IntN(shared.NumSeats)), n == shared.HandSize-1, deal.Kitty)
			captured[team] += pts
		}
		if captured[0]+captured[1] != RoundPoints {
			t.Fatalf("round %d distributed %d points", round, captured[0]+captured[1])
		}
	}
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name     string
		declarer shared.Team
		captured [2]int
		bid      int
		made     bool
		deltas   [2]int
	}{
		{name: "bid made", declarer: shared.NorthSouth, captured: [2]int{120, 80}, bid: 100, made: true, deltas: [2]int{120, 80}},
		{name: "bid made exactly", declarer: shared.EastWest, captured: [2]int{90, 110}, bid: 110, made: true, deltas: [2]int{90, 110}},
		{name: "bid failed", declarer: shared.EastWest, captured: [2]int{105, 95}, bid: 120, made: false, deltas: [2]int{105, -120}},
		{name: "shut out", declarer: shared.NorthSouth, captured: [2]int{0, 200}, bid: 70, made: false, deltas: [2]int{-70, 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Settle(tt.declarer, tt.captured, tt.bid)
			if err != nil {
				t.Fatalf("settle: %v", err)
			}
			if s.BidMade != tt.made || s.Deltas != tt.deltas {
				t.Fatalf("got made=%v deltas=%v, want made=%v deltas=%v", s.BidMade, s.Deltas, tt.made, tt.deltas)
			}
			if s.FinalScore != tt.captured[tt.declarer] || s.BidAmount != tt.bid {
				t.Fatalf("final score %d bid %d", s.FinalScore, s.BidAmount)
			}
		})
	}
}

func TestSettleRejectsLostPoints(t *testing.T) {
	if _, err := Settle(shared.NorthSouth, [2]int{100, 80}, 70); !errors.Is(err, shared.ErrInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
}

func TestLedgerApply(t *testing.T) {
	l := Ledger{100, 50}
	next := l.Apply(Settlement{Deltas: [2]int{-80, 130}})
	if next != (Ledger{20, 180}) {
		t.Fatalf("ledger = %v", next)
	}
	if l != (Ledger{100, 50}) {
		t.Fatalf("apply modified the original ledger")
	}
}

func TestCheckMatchEnd(t *testing.T) {
	tests := []struct {
		name   string
		ledger Ledger
		last   Settlement
		want   shared.Team
		over   bool
	}{
		{name: "nobody at target", ledger: Ledger{480, 499}, over: false},
		{name: "reaches target exactly", ledger: Ledger{500, 300}, want: shared.NorthSouth, over: true},
		{name: "both cross, higher wins", ledger: Ledger{520, 560}, want: shared.EastWest, over: true},
		{
			name:   "tie goes to larger last delta",
			ledger: Ledger{510, 510},
			last:   Settlement{Declarer: shared.EastWest, Deltas: [2]int{130, 70}},
			want:   shared.NorthSouth, over: true,
		},
		{
			name:   "tie on delta goes to declarer",
			ledger: Ledger{600, 600},
			last:   Settlement{Declarer: shared.EastWest, Deltas: [2]int{100, 100}},
			want:   shared.EastWest, over: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, over := CheckMatchEnd(tt.ledger, tt.last, DefaultTarget)
			if over != tt.over || (over && got != tt.want) {
				t.Fatalf("got %s %v, want %s %v", got, over, tt.want, tt.over)
			}
		})
	}
}
