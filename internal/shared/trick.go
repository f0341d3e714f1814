package shared

// Play stores a card along with the seat that played it.
type Play struct {
	Seat Seat `json:"seat"`
	Card Card `json:"card"`
}

// LedSuit returns the suit a trick was led in. A wild lead counts as the power suit.
// The second result is false for an empty trick.
func LedSuit(trick []Play, power Suit) (Suit, bool) {
	if len(trick) == 0 {
		return NoSuit, false
	}
	return trick[0].Card.EffectiveSuit(power), true
}

// LegalPlays returns the cards from hand that may be played onto trick.
// Leading, any card is legal. Following, cards of the led suit (the wild card counts when
// the power suit was led) are the only legal plays if held; otherwise any card is legal.
func LegalPlays(hand []Card, trick []Play, power Suit) []Card {
	led, ok := LedSuit(trick, power)
	if !ok {
		return CloneCards(hand)
	}
	var follow []Card
	for _, c := range hand {
		if c.EffectiveSuit(power) == led {
			follow = append(follow, c)
		}
	}
	if len(follow) > 0 {
		return follow
	}
	return CloneCards(hand)
}

// IsLegalPlay reports whether card may be played from hand onto trick.
func IsLegalPlay(hand []Card, trick []Play, power Suit, card Card) bool {
	return ContainsCard(LegalPlays(hand, trick, power), card)
}

// Beats reports whether a outranks b in a trick led in led under power.
// Power-suit cards beat everything else; otherwise only led-suit cards can win.
func Beats(a, b Card, led, power Suit) bool {
	aPower, bPower := a.IsPower(power), b.IsPower(power)
	if aPower != bPower {
		return aPower
	}
	if aPower {
		return a.Order() > b.Order()
	}
	aLed, bLed := a.EffectiveSuit(power) == led, b.EffectiveSuit(power) == led
	if aLed != bLed {
		return aLed
	}
	if aLed {
		return a.Order() > b.Order()
	}
	return false
}

// WinningPlay returns the index of the currently winning play in trick.
func WinningPlay(trick []Play, power Suit) int {
	led, ok := LedSuit(trick, power)
	if !ok {
		return -1
	}
	best := 0
	for i := 1; i < len(trick); i++ {
		if Beats(trick[i].Card, trick[best].Card, led, power) {
			best = i
		}
	}
	return best
}

// ResolveTrick determines which seat wins a complete trick.
func ResolveTrick(plays []Play, power Suit) (Seat, error) {
	if len(plays) != NumSeats {
		return 0, Errorf(KindInvariantViolation, "cannot resolve trick with %d plays", len(plays))
	}
	seen := make(map[Seat]bool, NumSeats)
	for _, p := range plays {
		if seen[p.Seat] {
			return 0, Errorf(KindInvariantViolation, "seat %s played twice in one trick", p.Seat)
		}
		seen[p.Seat] = true
	}
	return plays[WinningPlay(plays, power)].Seat, nil
}

// TrickCards returns just the cards of a trick.
func TrickCards(plays []Play) []Card {
	cards := make([]Card, len(plays))
	for i, p := range plays {
		cards[i] = p.Card
	}
	return cards
}

// ClonePlays returns an independent copy of plays.
func ClonePlays(plays []Play) []Play {
	if plays == nil {
		return nil
	}
	out := make([]Play, len(plays))
	copy(out, plays)
	return out
}
