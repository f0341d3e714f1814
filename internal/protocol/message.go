package protocol

import (
	"encoding/json"

	"rook-game/internal/scoring"
	"rook-game/internal/shared"
)

// Message represents a generic WebSocket message structure.
type Message struct {
	Type    string          `json:"type"`              // e.g. "new_match", "play_card"
	Payload json.RawMessage `json:"payload,omitempty"` // decoded according to Type
}

// Client -> server message types.
const (
	TypeNewMatch = "new_match"
	TypeBid      = "bid"
	TypePass     = "pass"
	TypeKitty    = "kitty"
	TypePlayCard = "play_card"
	TypePing     = "ping"
)

// Server -> client message types.
const (
	TypeMatchStart = "match_start"
	TypeState      = "state"
	TypeYourTurn   = "your_turn"
	TypeTrickEnd   = "trick_end"
	TypeRoundEnd   = "round_end"
	TypeMatchOver  = "match_over"
	TypeError      = "error"
	TypePong       = "pong"
)

// --- Client -> Server Payload Structs ---

type NewMatchPayload struct {
	Name   string `json:"name"`
	Target int    `json:"target,omitempty"` // server default when zero
}

type BidPayload struct {
	Amount int `json:"amount"`
}

type KittyPayload struct {
	PowerSuit shared.Suit   `json:"power_suit"`
	Discard   []shared.Card `json:"discard"`
}

type PlayCardPayload struct {
	Card shared.Card `json:"card"`
}

// --- Server -> Client Payload Structs ---

type PlayerInfo struct {
	Name string      `json:"name"`
	Seat shared.Seat `json:"seat"`
	Team shared.Team `json:"team"`
	Bot  bool        `json:"bot"`
}

type MatchStartPayload struct {
	MatchID string       `json:"match_id"`
	Seat    shared.Seat  `json:"seat"` // the receiving player's seat
	Players []PlayerInfo `json:"players"`
	Target  int          `json:"target"`
}

// StatePayload is the table as the human seat sees it: only their own hand is included.
type StatePayload struct {
	MatchID       string         `json:"match_id"`
	RoundNumber   int            `json:"round_number"`
	Phase         string         `json:"phase"`
	Dealer        shared.Seat    `json:"dealer"`
	Turn          shared.Seat    `json:"turn"`
	Hand          []shared.Card  `json:"hand"`
	HighestBid    int            `json:"highest_bid"`
	HighestBidder shared.Seat    `json:"highest_bidder"`
	Passed        [4]bool        `json:"passed"`
	Declarer      shared.Seat    `json:"declarer"`
	Bid           int            `json:"bid"`
	PowerSuit     shared.Suit    `json:"power_suit,omitempty"`
	TrickNumber   int            `json:"trick_number"`
	CurrentTrick  []shared.Play  `json:"current_trick"`
	Captured      [2]int         `json:"captured"`
	Scores        scoring.Ledger `json:"scores"`
	Version       int            `json:"version"`
}

// YourTurnPayload tells the human what they may do. Only the fields for the current
// phase are set.
type YourTurnPayload struct {
	Phase      string        `json:"phase"`
	MinimumBid int           `json:"minimum_bid,omitempty"`
	Kitty      []shared.Card `json:"kitty,omitempty"`
	ValidMoves []shared.Card `json:"valid_moves,omitempty"`
}

type TrickEndPayload struct {
	TrickNumber int           `json:"trick_number"`
	Plays       []shared.Play `json:"plays"`
	Winner      shared.Seat   `json:"winner"`
	Team        shared.Team   `json:"team"`
	Points      int           `json:"points"`
}

type RoundEndPayload struct {
	RoundNumber int                `json:"round_number"`
	Settlement  scoring.Settlement `json:"settlement"`
	Declarer    shared.Seat        `json:"declarer"`
	Kitty       []shared.Card      `json:"kitty"`
	Scores      scoring.Ledger     `json:"scores"`
}

type MatchOverPayload struct {
	MatchID string         `json:"match_id"`
	Winner  shared.Team    `json:"winner"`
	Scores  scoring.Ledger `json:"scores"`
	Rounds  int            `json:"rounds"`
}

type ErrorPayload struct {
	Kind    string `json:"kind,omitempty"` // engine error kind, e.g. "ILLEGAL_PLAY"
	Message string `json:"message"`
}

// NewMessage wraps payload in a Message envelope and encodes it.
func NewMessage(msgType string, payload any) ([]byte, error) {
	if payload == nil {
		return json.Marshal(Message{Type: msgType})
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: msgType, Payload: payloadBytes})
}

// Decode unmarshals a message's payload into v.
func Decode[T any](msg Message) (T, error) {
	var v T
	if len(msg.Payload) == 0 {
		return v, nil
	}
	err := json.Unmarshal(msg.Payload, &v)
	return v, err
}
