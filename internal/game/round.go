package game

import (
	"rook-game/internal/ai"
	"rook-game/internal/bidding"
	"rook-game/internal/kitty"
	"rook-game/internal/scoring"
	"rook-game/internal/shared"
)

// Phase is the stage a round is in.
type Phase string

const (
	Bidding    Phase = "Bidding"    // seats bid or pass in turn
	Exchanging Phase = "Exchanging" // declarer picks up the kitty and names the power suit
	Playing    Phase = "Playing"    // thirteen tricks
	RoundOver  Phase = "RoundOver"  // every trick played, ready to settle
)

// Round is one deal from shuffle to settlement. Transitions take a Round by value and
// return the next one; on error the input is returned unchanged.
type Round struct {
	Phase        Phase                          `json:"phase"`
	Dealer       shared.Seat                    `json:"dealer"`
	Hands        [shared.NumSeats][]shared.Card `json:"-"`
	Kitty        []shared.Card                  `json:"-"`
	Auction      bidding.State                  `json:"auction"`
	Declarer     shared.Seat                    `json:"declarer"`
	Bid          int                            `json:"bid"`
	PowerSuit    shared.Suit                    `json:"power_suit"`
	TrickNumber  int                            `json:"trick_number"` // completed tricks, 0..13
	TrickLeader  shared.Seat                    `json:"trick_leader"`
	CurrentTrick []shared.Play                  `json:"current_trick"`
	Tricks       [][]shared.Play                `json:"-"`
	Captured     [2]int                         `json:"captured"`
	TrickWinners []shared.Seat                  `json:"trick_winners"`
	Version      int                            `json:"version"`
}

// Deal starts a round from an already shuffled deck. The seat after the dealer opens the bidding.
func Deal(dealer shared.Seat, deck shared.Deck) (Round, error) {
	if deck.Len() != shared.DeckSize {
		return Round{}, shared.Errorf(shared.KindInvariantViolation, "deck has %d cards, want %d", deck.Len(), shared.DeckSize)
	}
	d, err := shared.DealCards(deck, shared.NumSeats, shared.HandSize)
	if err != nil {
		return Round{}, shared.Errorf(shared.KindInvariantViolation, "deal failed: %v", err)
	}

	r := Round{
		Phase:   Bidding,
		Dealer:  dealer,
		Kitty:   d.Kitty,
		Auction: bidding.Start(dealer.Next()),
	}
	for i := range r.Hands {
		r.Hands[i] = d.Hands[i]
	}
	if err := r.reconcile(); err != nil {
		return Round{}, err
	}
	return r, nil
}

// Turn returns the seat expected to act next.
func (r Round) Turn() shared.Seat {
	switch r.Phase {
	case Bidding:
		return r.Auction.Turn
	case Exchanging:
		return r.Declarer
	case Playing:
		return shared.Seat((int(r.TrickLeader) + len(r.CurrentTrick)) % shared.NumSeats)
	default:
		return r.TrickLeader
	}
}

// LegalPlays lists what the seat on turn may play.
func (r Round) LegalPlays() []shared.Card {
	if r.Phase != Playing {
		return nil
	}
	return shared.LegalPlays(r.Hands[r.Turn()], r.CurrentTrick, r.PowerSuit)
}

// Hand returns a copy of seat's cards.
func (r Round) Hand(seat shared.Seat) []shared.Card {
	return shared.CloneCards(r.Hands[seat])
}

// LastTrick returns the most recently completed trick, if any.
func (r Round) LastTrick() ([]shared.Play, shared.Seat, bool) {
	if len(r.Tricks) == 0 {
		return nil, 0, false
	}
	n := len(r.Tricks) - 1
	return shared.ClonePlays(r.Tricks[n]), r.TrickWinners[n], true
}

func (r Round) expect(phase Phase, seat shared.Seat) error {
	if r.Phase != phase {
		return shared.Errorf(shared.KindOutOfTurn, "round is in %s, not %s", r.Phase, phase)
	}
	if seat != r.Turn() {
		return shared.Errorf(shared.KindOutOfTurn, "not %s's turn, waiting on %s", seat, r.Turn())
	}
	return nil
}

// Bid submits a bid for seat.
func Bid(r Round, seat shared.Seat, amount int) (Round, error) {
	if r.Phase != Bidding {
		return r, shared.Errorf(shared.KindOutOfTurn, "round is in %s, not bidding", r.Phase)
	}
	auction, err := bidding.SubmitBid(r.Auction, seat, amount)
	if err != nil {
		return r, err
	}
	return r.withAuction(auction), nil
}

// Pass drops seat from the auction.
func Pass(r Round, seat shared.Seat) (Round, error) {
	if r.Phase != Bidding {
		return r, shared.Errorf(shared.KindOutOfTurn, "round is in %s, not bidding", r.Phase)
	}
	auction, err := bidding.SubmitPass(r.Auction, seat)
	if err != nil {
		return r, err
	}
	return r.withAuction(auction), nil
}

func (r Round) withAuction(auction bidding.State) Round {
	next := r.clone()
	next.Auction = auction
	if declarer, amount, ok := auction.Winner(); ok {
		next.Declarer = declarer
		next.Bid = amount
		next.Phase = Exchanging
	}
	next.Version++
	return next
}

// ExchangeKitty applies the declarer's own choice of power suit and discards.
func ExchangeKitty(r Round, seat shared.Seat, power shared.Suit, discard []shared.Card) (Round, error) {
	if err := r.expect(Exchanging, seat); err != nil {
		return r, err
	}
	res, err := kitty.Exchange(r.Hands[seat], r.Kitty, power, discard)
	if err != nil {
		return r, err
	}
	return r.withExchange(res)
}

// AutoExchange lets the heuristic opponent handle the kitty for seat.
func AutoExchange(r Round, seat shared.Seat, cfg ai.Config) (Round, error) {
	if err := r.expect(Exchanging, seat); err != nil {
		return r, err
	}
	return r.withExchange(kitty.AutoExchange(cfg, r.Hands[seat], r.Kitty))
}

func (r Round) withExchange(res kitty.Result) (Round, error) {
	next := r.clone()
	next.Hands[r.Declarer] = res.Hand
	next.Kitty = res.Kitty
	next.PowerSuit = res.PowerSuit
	next.Phase = Playing
	next.TrickLeader = r.Declarer
	if err := next.reconcile(); err != nil {
		return r, err
	}
	next.Version++
	return next, nil
}

// Play plays card for seat. Completing the fourth play resolves the trick, credits its
// points and hands the lead to the winner; the thirteenth trick ends the round.
func Play(r Round, seat shared.Seat, card shared.Card) (Round, error) {
	if err := r.expect(Playing, seat); err != nil {
		return r, err
	}
	hand := r.Hands[seat]
	if !shared.ContainsCard(hand, card) {
		return r, shared.Errorf(shared.KindIllegalPlay, "%s does not hold %s", seat, card)
	}
	if !shared.IsLegalPlay(hand, r.CurrentTrick, r.PowerSuit, card) {
		led, _ := shared.LedSuit(r.CurrentTrick, r.PowerSuit)
		return r, shared.Errorf(shared.KindIllegalPlay, "%s must follow %s", seat, led)
	}

	next := r.clone()
	next.Hands[seat], _ = shared.RemoveCard(hand, card)
	next.CurrentTrick = append(next.CurrentTrick, shared.Play{Seat: seat, Card: card})

	if len(next.CurrentTrick) == shared.NumSeats {
		winner, err := shared.ResolveTrick(next.CurrentTrick, next.PowerSuit)
		if err != nil {
			return r, err
		}
		final := next.TrickNumber == shared.HandSize-1
		team, points := scoring.CaptureTrickPoints(next.CurrentTrick, winner, final, next.Kitty)
		next.Captured[team] += points
		next.Tricks = append(next.Tricks, next.CurrentTrick)
		next.TrickWinners = append(next.TrickWinners, winner)
		next.CurrentTrick = nil
		next.TrickLeader = winner
		next.TrickNumber++
		if final {
			next.Phase = RoundOver
		}
		if err := next.reconcile(); err != nil {
			return r, err
		}
	}
	next.Version++
	return next, nil
}

// Settle scores a finished round.
func Settle(r Round) (scoring.Settlement, error) {
	if r.Phase != RoundOver {
		return scoring.Settlement{}, shared.Errorf(shared.KindOutOfTurn, "round is in %s, not finished", r.Phase)
	}
	return scoring.Settle(r.Declarer.Team(), r.Captured, r.Bid)
}

// StepBot makes the heuristic decision for whichever seat is on turn.
func StepBot(r Round, cfg ai.Config) (Round, error) {
	seat := r.Turn()
	switch r.Phase {
	case Bidding:
		d := ai.ChooseBid(cfg, r.Hands[seat], r.Auction.HighestBid)
		if d.Pass {
			return Pass(r, seat)
		}
		return Bid(r, seat, d.Amount)
	case Exchanging:
		return AutoExchange(r, seat, cfg)
	case Playing:
		c := ai.ChooseCard(r.Hands[seat], r.CurrentTrick, r.PowerSuit, ai.TeammateWinning(r.CurrentTrick, seat, r.PowerSuit))
		return Play(r, seat, c)
	default:
		return r, shared.Errorf(shared.KindOutOfTurn, "round is over")
	}
}

// reconcile checks that every card is accounted for exactly once and that captured
// points never exceed what the completed tricks can hold.
func (r Round) reconcile() error {
	seen := make(map[shared.Card]bool, shared.DeckSize)
	count := func(cards []shared.Card) error {
		for _, c := range cards {
			if seen[c] {
				return shared.Errorf(shared.KindInvariantViolation, "card %s appears twice", c)
			}
			seen[c] = true
		}
		return nil
	}

	for _, h := range r.Hands {
		if err := count(h); err != nil {
			return err
		}
	}
	if err := count(r.Kitty); err != nil {
		return err
	}
	if err := count(shared.TrickCards(r.CurrentTrick)); err != nil {
		return err
	}
	taken := 0
	for _, t := range r.Tricks {
		if err := count(shared.TrickCards(t)); err != nil {
			return err
		}
		taken += shared.SumPoints(shared.TrickCards(t))
	}
	if len(seen) != shared.DeckSize {
		return shared.Errorf(shared.KindInvariantViolation, "%d cards accounted for, want %d", len(seen), shared.DeckSize)
	}

	if r.Phase == RoundOver {
		taken += shared.SumPoints(r.Kitty) + scoring.LastTrickBonus
	}
	if r.Captured[0]+r.Captured[1] != taken {
		return shared.Errorf(shared.KindInvariantViolation, "captured %d points but tricks hold %d", r.Captured[0]+r.Captured[1], taken)
	}
	if r.Phase == RoundOver && taken != scoring.RoundPoints {
		return shared.Errorf(shared.KindInvariantViolation, "round distributed %d points, want %d", taken, scoring.RoundPoints)
	}
	return nil
}

func (r Round) clone() Round {
	out := r
	for i := range r.Hands {
		out.Hands[i] = shared.CloneCards(r.Hands[i])
	}
	out.Kitty = shared.CloneCards(r.Kitty)
	out.CurrentTrick = shared.ClonePlays(r.CurrentTrick)
	out.Tricks = make([][]shared.Play, len(r.Tricks))
	for i, t := range r.Tricks {
		out.Tricks[i] = shared.ClonePlays(t)
	}
	out.TrickWinners = append([]shared.Seat(nil), r.TrickWinners...)
	return out
}
