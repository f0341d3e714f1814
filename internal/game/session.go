package game

import (
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"rook-game/internal/ai"
	"rook-game/internal/protocol"
	"rook-game/internal/scoring"
	"rook-game/internal/shared"
)

// HumanSeat is where the connected player always sits; the other three seats are bots.
const HumanSeat = shared.South

// MessageSender delivers an encoded message to a client.
type MessageSender func(clientID string, message []byte)

// ResultRecorder is told about every settled round and every finished match.
type ResultRecorder interface {
	RecordRound(player string, seat shared.Seat, s scoring.Settlement, declarer shared.Seat) error
	RecordMatch(player string, m Match) error
}

// SessionOptions configures a Session.
type SessionOptions struct {
	ClientID   string
	PlayerName string
	Target     int
	BotDelay   time.Duration
	AI         ai.Config
	Rand       *rand.Rand
	Sender     MessageSender
	Recorder   ResultRecorder // optional
	Logger     *zap.SugaredLogger
}

// Session is one human against three bots. It owns the authoritative Match and
// serializes every action against it.
type Session struct {
	clientID   string
	playerName string
	target     int
	botDelay   time.Duration
	cfg        ai.Config
	rng        *rand.Rand
	send       MessageSender
	recorder   ResultRecorder
	log        *zap.SugaredLogger

	mu        sync.Mutex
	match     Match
	started   bool
	abandoned atomic.Bool // written without holding mu
	sleep     func(time.Duration)
}

// NewSession builds a session; call Start to deal the first round.
func NewSession(opts SessionOptions) *Session {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	name := opts.PlayerName
	if name == "" {
		name = "Player"
	}
	return &Session{
		clientID:   opts.ClientID,
		playerName: name,
		target:     opts.Target,
		botDelay:   opts.BotDelay,
		cfg:        opts.AI,
		rng:        rng,
		send:       opts.Sender,
		recorder:   opts.Recorder,
		log:        log,
		sleep:      time.Sleep,
	}
}

// Match returns a snapshot of the current match.
func (s *Session) Match() Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match
}

// Start deals the first round and runs bots until the human has to act.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := NewMatch(s.target, s.rng)
	if err != nil {
		s.log.Errorf("Session %s: Failed to start match: %v", s.clientID, err)
		return err
	}
	s.match = m
	s.started = true
	s.log.Infof("Game %s: Starting match for %s, target %d.", m.ID, s.playerName, m.Target)

	players := make([]protocol.PlayerInfo, 0, shared.NumSeats)
	for _, seat := range shared.Seats {
		players = append(players, protocol.PlayerInfo{
			Name: s.seatName(seat),
			Seat: seat,
			Team: seat.Team(),
			Bot:  seat != HumanSeat,
		})
	}
	s.sendMessage(protocol.TypeMatchStart, protocol.MatchStartPayload{
		MatchID: m.ID,
		Seat:    HumanSeat,
		Players: players,
		Target:  m.Target,
	})

	s.advance()
	return nil
}

// HandlePlayerAction applies one action from the human seat.
func (s *Session) HandlePlayerAction(msg protocol.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.abandoned.Load() {
		s.sendError(nil, "No match in progress.")
		return
	}
	if s.match.Over {
		s.log.Infof("Game %s: Action %s received but match is over.", s.match.ID, msg.Type)
		s.sendError(nil, "Match is already over.")
		return
	}

	r := s.match.Round
	var next Round
	var err error
	switch msg.Type {
	case protocol.TypeBid:
		var p protocol.BidPayload
		if p, err = protocol.Decode[protocol.BidPayload](msg); err == nil {
			next, err = Bid(r, HumanSeat, p.Amount)
		}
	case protocol.TypePass:
		next, err = Pass(r, HumanSeat)
	case protocol.TypeKitty:
		var p protocol.KittyPayload
		if p, err = protocol.Decode[protocol.KittyPayload](msg); err == nil {
			next, err = ExchangeKitty(r, HumanSeat, p.PowerSuit, p.Discard)
		}
	case protocol.TypePlayCard:
		var p protocol.PlayCardPayload
		if p, err = protocol.Decode[protocol.PlayCardPayload](msg); err == nil {
			next, err = s.play(r, HumanSeat, p.Card)
		}
	default:
		s.log.Warnf("Game %s: Received unhandled action type '%s'", s.match.ID, msg.Type)
		s.sendError(nil, "Unknown action.")
		return
	}

	if err != nil {
		s.log.Infof("Game %s: Rejected %s from %s: %v", s.match.ID, msg.Type, s.playerName, err)
		s.sendError(err, "Invalid "+msg.Type+" message.")
		if errors.Is(err, shared.ErrInvariantViolation) {
			s.abort(err)
			return
		}
		s.notifyTurn()
		return
	}
	s.logAction(r, next, HumanSeat)
	s.match.Round = next
	s.advance()
}

// HandleDisconnect abandons the match; nothing is recorded for an unfinished match.
// Bots stop at their next step.
func (s *Session) HandleDisconnect() {
	if s.abandoned.CompareAndSwap(false, true) {
		s.log.Infof("Session %s: %s left, match abandoned.", s.clientID, s.playerName)
	}
}

// advance runs bot seats and settles finished rounds until the human must act or the
// match ends. Assumes lock is held.
func (s *Session) advance() {
	for !s.match.Over && !s.abandoned.Load() {
		r := s.match.Round
		if r.Phase == RoundOver {
			if !s.finishRound() {
				return
			}
			continue
		}
		if r.Turn() == HumanSeat {
			s.broadcastState()
			s.notifyTurn()
			return
		}

		if s.botDelay > 0 {
			s.sleep(s.botDelay)
		}
		next, err := StepBot(r, s.cfg)
		if err != nil {
			// bots only ever propose legal actions
			s.abort(err)
			return
		}
		s.logAction(r, next, r.Turn())
		if trickCompleted(r, next) {
			s.notifyTrickEnd(next)
		}
		s.match.Round = next
	}
}

// play wraps Play so a trick completed by the human is announced too.
func (s *Session) play(r Round, seat shared.Seat, card shared.Card) (Round, error) {
	next, err := Play(r, seat, card)
	if err == nil && trickCompleted(r, next) {
		s.notifyTrickEnd(next)
	}
	return next, err
}

func trickCompleted(before, after Round) bool {
	return after.TrickNumber > before.TrickNumber
}

// finishRound settles the round and deals the next one. Assumes lock is held.
func (s *Session) finishRound() bool {
	done := s.match.Round
	m, settlement, err := FinishRound(s.match, s.rng)
	if err != nil {
		s.abort(err)
		return false
	}

	s.log.Infof("Game %s: Round %d settled. Declarer %s bid %d, took %d, made=%v. Scores: %s",
		m.ID, s.match.RoundNumber, done.Declarer, settlement.BidAmount, settlement.FinalScore, settlement.BidMade, m.Ledger)
	s.sendMessage(protocol.TypeRoundEnd, protocol.RoundEndPayload{
		RoundNumber: s.match.RoundNumber,
		Settlement:  settlement,
		Declarer:    done.Declarer,
		Kitty:       shared.CloneCards(done.Kitty),
		Scores:      m.Ledger,
	})
	if s.recorder != nil {
		if err := s.recorder.RecordRound(s.playerName, HumanSeat, settlement, done.Declarer); err != nil {
			s.log.Errorf("Game %s: Failed to record round: %v", m.ID, err)
		}
	}

	s.match = m
	if m.Over {
		s.log.Infof("Game %s: Game Over! Team %s wins after %d rounds. Scores: %s", m.ID, m.Winner, m.RoundNumber, m.Ledger)
		s.sendMessage(protocol.TypeMatchOver, protocol.MatchOverPayload{
			MatchID: m.ID,
			Winner:  m.Winner,
			Scores:  m.Ledger,
			Rounds:  m.RoundNumber,
		})
		if s.recorder != nil {
			if err := s.recorder.RecordMatch(s.playerName, m); err != nil {
				s.log.Errorf("Game %s: Failed to record match: %v", m.ID, err)
			}
		}
	} else {
		s.log.Infof("Game %s: Preparing round %d, %s deals.", m.ID, m.RoundNumber, m.Dealer)
	}
	return true
}

// abort drops a round that can no longer be trusted. Assumes lock is held.
func (s *Session) abort(err error) {
	s.log.Errorf("Game %s: Aborting round %d: %v", s.match.ID, s.match.RoundNumber, err)
	s.sendError(err, "Internal error, round aborted.")
	s.abandoned.Store(true)
}

func (s *Session) logAction(before, after Round, seat shared.Seat) {
	id := s.match.ID
	switch before.Phase {
	case Bidding:
		last := after.Auction.History[len(after.Auction.History)-1]
		if last.Amount == 0 {
			s.log.Debugf("Game %s: %s passed.", id, seat)
		} else {
			s.log.Debugf("Game %s: %s bid %d.", id, seat, last.Amount)
		}
		if after.Phase == Exchanging {
			s.log.Infof("Game %s: Bidding won by %s at %d (forced=%v).", id, after.Declarer, after.Bid, after.Auction.Forced)
		}
	case Exchanging:
		s.log.Infof("Game %s: %s took the kitty, power suit %s.", id, seat, after.PowerSuit)
	case Playing:
		if trickCompleted(before, after) {
			plays, winner, _ := after.LastTrick()
			s.log.Debugf("Game %s: Trick %d won by %s: %v", id, after.TrickNumber, winner, shared.TrickCards(plays))
		}
	}
}

// --- Messaging Helpers (assume lock is held) ---

func (s *Session) seatName(seat shared.Seat) string {
	if seat == HumanSeat {
		return s.playerName
	}
	return "Bot " + seat.String()
}

func (s *Session) sendMessage(msgType string, payload any) {
	if s.send == nil {
		s.log.Errorf("Session %s: sendMessage callback is nil.", s.clientID)
		return
	}
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		s.log.Errorf("Session %s: Error creating %s message: %v", s.clientID, msgType, err)
		return
	}
	s.send(s.clientID, msg)
}

// sendError reports err to the player. Engine errors carry their kind; fallback is used
// for everything else.
func (s *Session) sendError(err error, fallback string) {
	payload := protocol.ErrorPayload{Message: fallback}
	var engineErr *shared.Error
	if errors.As(err, &engineErr) {
		payload.Kind = string(engineErr.Kind)
		payload.Message = engineErr.Error()
	}
	s.sendMessage(protocol.TypeError, payload)
}

func (s *Session) broadcastState() {
	r := s.match.Round
	s.sendMessage(protocol.TypeState, protocol.StatePayload{
		MatchID:       s.match.ID,
		RoundNumber:   s.match.RoundNumber,
		Phase:         string(r.Phase),
		Dealer:        r.Dealer,
		Turn:          r.Turn(),
		Hand:          r.Hand(HumanSeat),
		HighestBid:    r.Auction.HighestBid,
		HighestBidder: r.Auction.HighestBidder,
		Passed:        r.Auction.Passed,
		Declarer:      r.Declarer,
		Bid:           r.Bid,
		PowerSuit:     r.PowerSuit,
		TrickNumber:   r.TrickNumber,
		CurrentTrick:  shared.ClonePlays(r.CurrentTrick),
		Captured:      r.Captured,
		Scores:        s.match.Ledger,
		Version:       r.Version,
	})
}

// notifyTurn sends 'your_turn' if the human is the seat on turn.
func (s *Session) notifyTurn() {
	r := s.match.Round
	if s.match.Over || r.Phase == RoundOver || r.Turn() != HumanSeat {
		return
	}
	payload := protocol.YourTurnPayload{Phase: string(r.Phase)}
	switch r.Phase {
	case Bidding:
		payload.MinimumBid = r.Auction.MinimumNext()
	case Exchanging:
		payload.Kitty = shared.CloneCards(r.Kitty)
	case Playing:
		payload.ValidMoves = r.LegalPlays()
	}
	s.sendMessage(protocol.TypeYourTurn, payload)
}

func (s *Session) notifyTrickEnd(r Round) {
	plays, winner, ok := r.LastTrick()
	if !ok {
		return
	}
	points := shared.SumPoints(shared.TrickCards(plays))
	if r.Phase == RoundOver {
		points += shared.SumPoints(r.Kitty) + scoring.LastTrickBonus
	}
	s.sendMessage(protocol.TypeTrickEnd, protocol.TrickEndPayload{
		TrickNumber: r.TrickNumber,
		Plays:       plays,
		Winner:      winner,
		Team:        winner.Team(),
		Points:      points,
	})
}
