// Package bidding implements the turn-taking auction that decides the declarer.
//
// Every transition takes a State by value and returns a new State; a rejected action
// returns the input unchanged together with a *shared.Error.
package bidding

import (
	"rook-game/internal/shared"
)

const (
	MinBid    = 70
	MaxBid    = 200
	Increment = 5
)

// State holds the current auction.
type State struct {
	HighestBid    int                   `json:"highest_bid"` // 0 while nobody has bid
	HighestBidder shared.Seat           `json:"highest_bidder"`
	Passed        [shared.NumSeats]bool `json:"passed"`
	Turn          shared.Seat           `json:"turn"`
	Terminal      bool                  `json:"terminal"`
	Forced        bool                  `json:"forced"` // declarer was stuck with the minimum after three passes
	History       []Action              `json:"history"`
	Version       int                   `json:"version"`
}

// Action records one bid or pass.
type Action struct {
	Seat   shared.Seat `json:"seat"`
	Amount int         `json:"amount"` // 0 means pass
}

// Start opens an auction with firstSeat to act.
func Start(firstSeat shared.Seat) State {
	return State{Turn: firstSeat}
}

// HasBid reports whether any seat has bid yet.
func (s State) HasBid() bool { return s.HighestBid > 0 }

// Done reports whether the auction is over.
func (s State) Done() bool { return s.Terminal }

// Winner returns the declarer and the winning amount once the auction is over.
func (s State) Winner() (shared.Seat, int, bool) {
	if !s.Terminal {
		return 0, 0, false
	}
	return s.HighestBidder, s.HighestBid, true
}

// MinimumNext is the smallest amount the seat on turn may bid.
func (s State) MinimumNext() int {
	if !s.HasBid() {
		return MinBid
	}
	return s.HighestBid + Increment
}

// PassCount returns how many seats have passed.
func (s State) PassCount() int {
	n := 0
	for _, p := range s.Passed {
		if p {
			n++
		}
	}
	return n
}

// ValidateBid checks amount against the table rules without touching turn order.
func ValidateBid(s State, amount int) error {
	if amount%Increment != 0 {
		return shared.Errorf(shared.KindInvalidBid, "bid %d is not a multiple of %d", amount, Increment)
	}
	if amount < MinBid || amount > MaxBid {
		return shared.Errorf(shared.KindInvalidBid, "bid %d outside [%d,%d]", amount, MinBid, MaxBid)
	}
	if amount < s.MinimumNext() {
		return shared.Errorf(shared.KindInvalidBid, "bid %d below minimum %d", amount, s.MinimumNext())
	}
	return nil
}

func checkTurn(s State, seat shared.Seat) error {
	if s.Terminal {
		return shared.Errorf(shared.KindOutOfTurn, "bidding is over")
	}
	if seat != s.Turn {
		return shared.Errorf(shared.KindOutOfTurn, "not %s's turn to bid, waiting on %s", seat, s.Turn)
	}
	return nil
}

// SubmitBid raises the auction. A maximum bid ends bidding immediately.
func SubmitBid(s State, seat shared.Seat, amount int) (State, error) {
	if err := checkTurn(s, seat); err != nil {
		return s, err
	}
	if err := ValidateBid(s, amount); err != nil {
		return s, err
	}

	next := s.clone()
	next.HighestBid = amount
	next.HighestBidder = seat
	next.History = append(next.History, Action{Seat: seat, Amount: amount})
	if amount == MaxBid {
		next.Terminal = true
	} else {
		next.Turn = next.nextActive(seat)
	}
	next.Version++
	return next, nil
}

// SubmitPass drops seat from the auction. Once three seats have passed the auction closes.
// If nobody bid before the third pass, the remaining seat is declarer at MinBid.
func SubmitPass(s State, seat shared.Seat) (State, error) {
	if err := checkTurn(s, seat); err != nil {
		return s, err
	}

	next := s.clone()
	next.Passed[seat] = true
	next.History = append(next.History, Action{Seat: seat})
	if next.PassCount() == shared.NumSeats-1 {
		last := next.nextActive(seat)
		if !next.HasBid() {
			next.HighestBid = MinBid
			next.HighestBidder = last
			next.Forced = true
		}
		next.Terminal = true
		next.Turn = last
	} else {
		next.Turn = next.nextActive(seat)
	}
	next.Version++
	return next, nil
}

// nextActive returns the next seat after from that has not passed.
func (s State) nextActive(from shared.Seat) shared.Seat {
	seat := from.Next()
	for i := 0; i < shared.NumSeats; i++ {
		if !s.Passed[seat] {
			return seat
		}
		seat = seat.Next()
	}
	return from
}

func (s State) clone() State {
	out := s
	out.History = append([]Action(nil), s.History...)
	return out
}
