package shared

import "fmt"

// Seat is one of the four fixed table positions. Play proceeds North, East, South, West.
type Seat int

const (
	North Seat = iota
	East
	South
	West
)

// Seats lists every seat in turn order.
var Seats = [NumSeats]Seat{North, East, South, West}

var seatNames = [NumSeats]string{"north", "east", "south", "west"}

func (s Seat) String() string {
	if s.Valid() {
		return seatNames[s]
	}
	return fmt.Sprintf("seat(%d)", int(s))
}

func (s Seat) Valid() bool { return s >= North && s <= West }

// Next returns the seat to the left, wrapping around the table.
func (s Seat) Next() Seat { return (s + 1) % NumSeats }

// Partner returns the seat across the table.
func (s Seat) Partner() Seat { return (s + 2) % NumSeats }

// Team returns the partnership the seat belongs to.
func (s Seat) Team() Team { return Team(s % 2) }

// Team represents the two partnerships: North/South and East/West.
type Team int

const (
	NorthSouth Team = iota
	EastWest
)

// Teams lists both teams.
var Teams = [2]Team{NorthSouth, EastWest}

func (t Team) String() string {
	switch t {
	case NorthSouth:
		return "north-south"
	case EastWest:
		return "east-west"
	default:
		return fmt.Sprintf("team(%d)", int(t))
	}
}

// Other returns the opposing team.
func (t Team) Other() Team { return 1 - t }

// Members returns both seats of the team.
func (t Team) Members() [2]Seat {
	return [2]Seat{Seat(t), Seat(t).Partner()}
}
