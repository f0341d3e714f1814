package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"rook-game/internal/game"
	"rook-game/internal/scoring"
	"rook-game/internal/shared"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

type Service struct {
	db     *sql.DB
	m      *sync.Mutex
	driver string
}

const schema = `
create table if not exists match_results (
	id varchar(64) not null primary key,
	created_at varchar(64),
	player varchar(128),
	north varchar(128),
	east varchar(128),
	south varchar(128),
	west varchar(128),
	ns_score integer,
	ew_score integer,
	winner_team integer,
	rounds integer
);
create table if not exists player_stats (
	name varchar(128) not null primary key,
	matches integer not null default 0,
	wins integer not null default 0,
	losses integer not null default 0,
	points integer not null default 0,
	bids_made integer not null default 0,
	bids_failed integer not null default 0
);
`

const resultColumns = "id, created_at, player, north, east, south, west, ns_score, ew_score, winner_team, rounds"

// New opens the store with driver "sqlite3" or "pgx" and creates the tables.
func New(driver, dsn string) (*Service, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return &Service{
		db:     db,
		m:      &sync.Mutex{},
		driver: driver,
	}, nil
}

func (s *Service) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders as $1, $2... for postgres.
func (s *Service) rebind(query string) string {
	if s.driver != "pgx" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func scanResults(rows *sql.Rows) ([]MatchResult, error) {
	var results []MatchResult
	for rows.Next() {
		var r MatchResult
		if err := rows.Scan(
			&r.ID,
			&r.CreatedAt,
			&r.Player,
			&r.North,
			&r.East,
			&r.South,
			&r.West,
			&r.NSScore,
			&r.EWScore,
			&r.WinnerTeam,
			&r.Rounds); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *Service) GetAll() ([]MatchResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query("SELECT " + resultColumns + " FROM match_results ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResults(rows)
}

func (s *Service) GetByID(id string) (MatchResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	var r MatchResult
	err := s.db.QueryRow(s.rebind("SELECT "+resultColumns+" FROM match_results WHERE id = ?"), id).Scan(
		&r.ID,
		&r.CreatedAt,
		&r.Player,
		&r.North,
		&r.East,
		&r.South,
		&r.West,
		&r.NSScore,
		&r.EWScore,
		&r.WinnerTeam,
		&r.Rounds)
	if errors.Is(err, sql.ErrNoRows) {
		return MatchResult{}, ErrNotFound
	}
	if err != nil {
		return MatchResult{}, err
	}
	return r, nil
}

func (s *Service) Insert(r MatchResult) error {
	s.m.Lock()
	defer s.m.Unlock()
	_, err := s.db.Exec(s.rebind("INSERT INTO match_results ("+resultColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		r.ID,
		r.CreatedAt,
		r.Player,
		r.North,
		r.East,
		r.South,
		r.West,
		r.NSScore,
		r.EWScore,
		r.WinnerTeam,
		r.Rounds)
	return err
}

func (s *Service) GetByPlayer(name string) ([]MatchResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query(s.rebind("SELECT "+resultColumns+" FROM match_results"+
		" WHERE north = ? OR east = ? OR south = ? OR west = ? ORDER BY created_at"),
		name, name, name, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results, err := scanResults(rows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return results, nil
}

// addStats adds delta to name's record, creating it if needed. Assumes lock is held.
func (s *Service) addStats(d PlayerStats) error {
	_, err := s.db.Exec(s.rebind(`INSERT INTO player_stats (name, matches, wins, losses, points, bids_made, bids_failed)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (name) DO UPDATE SET
		matches = player_stats.matches + excluded.matches,
		wins = player_stats.wins + excluded.wins,
		losses = player_stats.losses + excluded.losses,
		points = player_stats.points + excluded.points,
		bids_made = player_stats.bids_made + excluded.bids_made,
		bids_failed = player_stats.bids_failed + excluded.bids_failed`),
		d.Name, d.Matches, d.Wins, d.Losses, d.Points, d.BidsMade, d.BidsFailed)
	return err
}

func (s *Service) GetStats(name string) (PlayerStats, error) {
	s.m.Lock()
	defer s.m.Unlock()
	var p PlayerStats
	err := s.db.QueryRow(s.rebind("SELECT name, matches, wins, losses, points, bids_made, bids_failed FROM player_stats WHERE name = ?"), name).Scan(
		&p.Name, &p.Matches, &p.Wins, &p.Losses, &p.Points, &p.BidsMade, &p.BidsFailed)
	if errors.Is(err, sql.ErrNoRows) {
		return PlayerStats{}, ErrNotFound
	}
	if err != nil {
		return PlayerStats{}, err
	}
	return p, nil
}

// RecordRound credits the settlement to player's record. Bids count only when the
// player personally declared.
func (s *Service) RecordRound(player string, seat shared.Seat, st scoring.Settlement, declarer shared.Seat) error {
	d := PlayerStats{Name: player, Points: st.Deltas[seat.Team()]}
	if declarer == seat {
		if st.BidMade {
			d.BidsMade = 1
		} else {
			d.BidsFailed = 1
		}
	}
	s.m.Lock()
	defer s.m.Unlock()
	return s.addStats(d)
}

// RecordMatch stores the finished match and updates the human player's win/loss record.
func (s *Service) RecordMatch(player string, m game.Match) error {
	names := [shared.NumSeats]string{}
	for _, seat := range shared.Seats {
		names[seat] = "Bot " + seat.String()
	}
	names[game.HumanSeat] = player

	if err := s.Insert(MatchResult{
		ID:         m.ID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
		Player:     player,
		North:      names[shared.North],
		East:       names[shared.East],
		South:      names[shared.South],
		West:       names[shared.West],
		NSScore:    m.Ledger[shared.NorthSouth],
		EWScore:    m.Ledger[shared.EastWest],
		WinnerTeam: int(m.Winner),
		Rounds:     m.RoundNumber,
	}); err != nil {
		return fmt.Errorf("failed to insert match %s: %w", m.ID, err)
	}

	d := PlayerStats{Name: player, Matches: 1}
	if m.Winner == game.HumanSeat.Team() {
		d.Wins = 1
	} else {
		d.Losses = 1
	}
	s.m.Lock()
	defer s.m.Unlock()
	return s.addStats(d)
}
