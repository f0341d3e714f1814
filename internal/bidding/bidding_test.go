package bidding

import (
	"errors"
	"math/rand/v2"
	"testing"

	"rook-game/internal/shared"
)

func mustBid(t *testing.T, s State, seat shared.Seat, amount int) State {
	t.Helper()
	next, err := SubmitBid(s, seat, amount)
	if err != nil {
		t.Fatalf("bid %d by %s: %v", amount, seat, err)
	}
	return next
}

func mustPass(t *testing.T, s State, seat shared.Seat) State {
	t.Helper()
	next, err := SubmitPass(s, seat)
	if err != nil {
		t.Fatalf("pass by %s: %v", seat, err)
	}
	return next
}

func TestSubmitBidValidation(t *testing.T) {
	opened := mustBid(t, Start(shared.North), shared.North, 80)

	tests := []struct {
		name   string
		state  State
		seat   shared.Seat
		amount int
		kind   error
	}{
		{name: "not a multiple of five", state: Start(shared.North), seat: shared.North, amount: 72, kind: shared.ErrInvalidBid},
		{name: "below table minimum", state: Start(shared.North), seat: shared.North, amount: 65, kind: shared.ErrInvalidBid},
		{name: "above table maximum", state: Start(shared.North), seat: shared.North, amount: 205, kind: shared.ErrInvalidBid},
		{name: "does not raise by five", state: opened, seat: shared.East, amount: 80, kind: shared.ErrInvalidBid},
		{name: "out of turn", state: opened, seat: shared.South, amount: 90, kind: shared.ErrOutOfTurn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := SubmitBid(tt.state, tt.seat, tt.amount)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			if next.Version != tt.state.Version || next.HighestBid != tt.state.HighestBid {
				t.Fatalf("rejected bid changed state")
			}
		})
	}
}

func TestTurnOrderSkipsPassedSeats(t *testing.T) {
	s := Start(shared.East)
	s = mustBid(t, s, shared.East, 70)
	if s.Turn != shared.South {
		t.Fatalf("turn = %s, want south", s.Turn)
	}
	s = mustPass(t, s, shared.South)
	s = mustBid(t, s, shared.West, 75)
	s = mustBid(t, s, shared.North, 80)
	if s.Turn != shared.East {
		t.Fatalf("turn = %s, want east", s.Turn)
	}
	s = mustBid(t, s, shared.East, 85)
	if s.Turn != shared.West {
		t.Fatalf("passed seat was not skipped, turn = %s", s.Turn)
	}
	if _, err := SubmitPass(s, shared.South); !errors.Is(err, shared.ErrOutOfTurn) {
		t.Fatalf("passed seat acting should be out of turn, got %v", err)
	}
}

func TestThreePassesEndAuction(t *testing.T) {
	s := Start(shared.North)
	s = mustBid(t, s, shared.North, 90)
	s = mustPass(t, s, shared.East)
	s = mustBid(t, s, shared.South, 95)
	s = mustPass(t, s, shared.West)
	if s.Done() {
		t.Fatalf("auction ended after two passes")
	}
	s = mustPass(t, s, shared.North)
	seat, amount, ok := s.Winner()
	if !ok || seat != shared.South || amount != 95 {
		t.Fatalf("winner = %s %d %v, want south 95", seat, amount, ok)
	}
	if _, err := SubmitBid(s, shared.South, 100); !errors.Is(err, shared.ErrOutOfTurn) {
		t.Fatalf("bidding after the auction should be rejected, got %v", err)
	}
}

func TestMaximumBidEndsImmediately(t *testing.T) {
	s := Start(shared.West)
	s = mustBid(t, s, shared.West, 120)
	s = mustBid(t, s, shared.North, MaxBid)
	seat, amount, ok := s.Winner()
	if !ok || seat != shared.North || amount != MaxBid {
		t.Fatalf("winner = %s %d %v, want north %d", seat, amount, ok, MaxBid)
	}
}

func TestAllPassForcesLastSeat(t *testing.T) {
	s := Start(shared.South)
	s = mustPass(t, s, shared.South)
	s = mustPass(t, s, shared.West)
	s = mustPass(t, s, shared.North)
	seat, amount, ok := s.Winner()
	if !ok || seat != shared.East || amount != MinBid || !s.Forced {
		t.Fatalf("winner = %s %d %v forced=%v, want east %d forced", seat, amount, ok, s.Forced, MinBid)
	}
}

func TestRandomAuctionsTerminate(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for game := 0; game < 500; game++ {
		s := Start(shared.Seat(rng.IntN(shared.NumSeats)))
		for steps := 0; !s.Done(); steps++ {
			if steps > 200 {
				t.Fatalf("auction %d did not terminate", game)
			}
			var err error
			if rng.IntN(3) == 0 && s.MinimumNext() <= MaxBid {
				raise := s.MinimumNext() + Increment*rng.IntN(3)
				if raise > MaxBid {
					raise = MaxBid
				}
				s, err = SubmitBid(s, s.Turn, raise)
			} else {
				s, err = SubmitPass(s, s.Turn)
			}
			if err != nil {
				t.Fatalf("auction %d: %v", game, err)
			}
		}
		seat, amount, ok := s.Winner()
		if !ok || amount < MinBid || amount > MaxBid || amount%Increment != 0 {
			t.Fatalf("auction %d ended with bad winner %s %d", game, seat, amount)
		}
		if s.Passed[seat] {
			t.Fatalf("auction %d won by a seat that passed", game)
		}
	}
}
