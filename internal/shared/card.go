package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit represents one of the four ordinary suits. The wild card carries NoSuit.
type Suit int

const (
	NoSuit Suit = iota
	Black
	Green
	Orange
	Yellow
)

// Suits lists the four power-suit candidates in a fixed order.
var Suits = [4]Suit{Black, Green, Orange, Yellow}

var suitNames = map[Suit]string{
	NoSuit: "none",
	Black:  "black",
	Green:  "green",
	Orange: "orange",
	Yellow: "yellow",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return "suit(" + strconv.Itoa(int(s)) + ")"
}

// Valid reports whether s is one of the four ordinary suits.
func (s Suit) Valid() bool {
	return s >= Black && s <= Yellow
}

// ParseSuit converts a suit name ("orange") back into a Suit.
func ParseSuit(name string) (Suit, error) {
	for s, n := range suitNames {
		if s != NoSuit && n == strings.ToLower(name) {
			return s, nil
		}
	}
	return NoSuit, fmt.Errorf("unknown suit %q", name)
}

func (s Suit) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Suit) UnmarshalText(b []byte) error {
	if string(b) == "none" || len(b) == 0 {
		*s = NoSuit
		return nil
	}
	parsed, err := ParseSuit(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Rank is the printed number on an ordinary card, 1 through 14.
type Rank int

const (
	MinRank Rank = 1
	MaxRank Rank = 14
)

// CardKind tags a Card as ordinary or wild.
type CardKind int

const (
	Ordinary CardKind = iota
	Wild
)

// Card is a tagged value: an ordinary {Suit, Rank} card or the single wild card.
// Cards are comparable and can be used as map keys.
type Card struct {
	Kind CardKind
	Suit Suit
	Rank Rank
}

// NewCard builds an ordinary card.
func NewCard(suit Suit, rank Rank) Card {
	return Card{Kind: Ordinary, Suit: suit, Rank: rank}
}

// WildCard returns the single wild card.
func WildCard() Card {
	return Card{Kind: Wild}
}

func (c Card) IsWild() bool { return c.Kind == Wild }

// Wild ranks above the power suit's "1", which itself ranks above 14.
const (
	wildOrder = 16
	oneOrder  = 15
)

// Order is the strength of a card within its (effective) suit. Higher is better.
func (c Card) Order() int {
	if c.IsWild() {
		return wildOrder
	}
	if c.Rank == 1 {
		return oneOrder
	}
	return int(c.Rank)
}

// Points returns the fixed score value of the card.
func (c Card) Points() int {
	if c.IsWild() {
		return 20
	}
	switch c.Rank {
	case 1:
		return 15
	case 14, 10:
		return 10
	case 5:
		return 5
	default:
		return 0
	}
}

// IsPointCard reports whether capturing the card scores anything.
func (c Card) IsPointCard() bool { return c.Points() > 0 }

// EffectiveSuit is the suit the card plays as; the wild card always plays as the power suit.
func (c Card) EffectiveSuit(power Suit) Suit {
	if c.IsWild() {
		return power
	}
	return c.Suit
}

// IsPower reports whether the card counts as a power-suit card.
func (c Card) IsPower(power Suit) bool {
	return c.EffectiveSuit(power) == power
}

// IsTopRank reports whether the card is one of the three highest ranks (1, 14, 13).
func (c Card) IsTopRank() bool {
	return !c.IsWild() && (c.Rank == 1 || c.Rank == 14 || c.Rank == 13)
}

func (c Card) String() string {
	if c.IsWild() {
		return "wild"
	}
	return fmt.Sprintf("%s-%d", c.Suit, c.Rank)
}

// ParseCard reads the String form ("orange-5", "wild").
func ParseCard(s string) (Card, error) {
	if strings.EqualFold(s, "wild") {
		return WildCard(), nil
	}
	name, num, ok := strings.Cut(s, "-")
	if !ok {
		return Card{}, fmt.Errorf("malformed card %q", s)
	}
	suit, err := ParseSuit(name)
	if err != nil {
		return Card{}, err
	}
	n, err := strconv.Atoi(num)
	if err != nil || Rank(n) < MinRank || Rank(n) > MaxRank {
		return Card{}, fmt.Errorf("malformed rank in card %q", s)
	}
	return NewCard(suit, Rank(n)), nil
}

// Cards serialize as their string form.
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(b []byte) error {
	parsed, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// SumPoints totals the point values of cards.
func SumPoints(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}
