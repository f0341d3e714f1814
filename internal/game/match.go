package game

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"rook-game/internal/ai"
	"rook-game/internal/scoring"
	"rook-game/internal/shared"
)

// Match strings rounds together until a team reaches the target score.
type Match struct {
	ID          string               `json:"id"`
	Target      int                  `json:"target"`
	Ledger      scoring.Ledger       `json:"ledger"`
	Dealer      shared.Seat          `json:"dealer"`
	RoundNumber int                  `json:"round_number"` // 1-based
	Round       Round                `json:"round"`
	History     []scoring.Settlement `json:"history"`
	Over        bool                 `json:"over"`
	Winner      shared.Team          `json:"winner"`
}

// NewMatch deals the first round with North dealing.
func NewMatch(target int, rng *rand.Rand) (Match, error) {
	if target <= 0 {
		target = scoring.DefaultTarget
	}
	m := Match{
		ID:     uuid.NewString(),
		Target: target,
		Dealer: shared.North,
	}
	return m.deal(rng)
}

func (m Match) deal(rng *rand.Rand) (Match, error) {
	r, err := Deal(m.Dealer, shared.Shuffle(shared.NewDeck(), rng))
	if err != nil {
		return m, err
	}
	m.Round = r
	m.RoundNumber++
	return m, nil
}

// FinishRound settles the finished round into the ledger. If nobody has reached the
// target the deal passes to the left and a new round is dealt.
func FinishRound(m Match, rng *rand.Rand) (Match, scoring.Settlement, error) {
	if m.Over {
		return m, scoring.Settlement{}, shared.Errorf(shared.KindOutOfTurn, "match %s is over", m.ID)
	}
	s, err := Settle(m.Round)
	if err != nil {
		return m, scoring.Settlement{}, err
	}

	next := m
	next.Ledger = m.Ledger.Apply(s)
	next.History = append(append([]scoring.Settlement(nil), m.History...), s)
	if winner, over := scoring.CheckMatchEnd(next.Ledger, s, m.Target); over {
		next.Over = true
		next.Winner = winner
		return next, s, nil
	}

	next.Dealer = m.Dealer.Next()
	next, err = next.deal(rng)
	if err != nil {
		return m, scoring.Settlement{}, err
	}
	return next, s, nil
}

// PlayAllBots runs rounds with every seat driven by StepBot until the match ends.
// maxRounds guards against runaway matches; zero means no limit.
func PlayAllBots(m Match, cfg ai.Config, rng *rand.Rand, maxRounds int) (Match, error) {
	for !m.Over {
		if maxRounds > 0 && m.RoundNumber > maxRounds {
			return m, shared.Errorf(shared.KindInvariantViolation, "match %s still running after %d rounds", m.ID, maxRounds)
		}
		r := m.Round
		for r.Phase != RoundOver {
			var err error
			if r, err = StepBot(r, cfg); err != nil {
				return m, err
			}
		}
		m.Round = r
		var err error
		if m, _, err = FinishRound(m, rng); err != nil {
			return m, err
		}
	}
	return m, nil
}
