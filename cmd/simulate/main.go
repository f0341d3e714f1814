// Command simulate plays seeded all-bot matches and prints a summary.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rook-game/internal/ai"
	"rook-game/internal/config"
	"rook-game/internal/game"
	"rook-game/internal/logging"
	"rook-game/internal/scoring"
	"rook-game/internal/shared"
)

var (
	clrBorder = lipgloss.Color("#30363d")
	clrSubtle = lipgloss.Color("#8b949e")
	clrGreen  = lipgloss.Color("#3fb950")
	clrRed    = lipgloss.Color("#f85149")
	clrTitle  = lipgloss.Color("#58a6ff")

	titleStyle = lipgloss.NewStyle().Foreground(clrTitle).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(clrSubtle).Width(22)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(clrBorder).Padding(0, 2)
)

// summary aggregates a batch of matches.
type summary struct {
	Matches   int
	Rounds    int
	Wins      [2]int
	Bids      int
	BidsMade  int
	BidTotal  int
	Shutouts  int
	HighScore int
}

func (s *summary) addMatch(m game.Match) {
	s.Matches++
	s.Rounds += m.RoundNumber
	s.Wins[m.Winner]++
	for _, st := range m.History {
		s.Bids++
		s.BidTotal += st.BidAmount
		if st.BidMade {
			s.BidsMade++
		}
		if st.Captured[st.Declarer] == 0 {
			s.Shutouts++
		}
	}
	for _, score := range m.Ledger {
		if score > s.HighScore {
			s.HighScore = score
		}
	}
}

func run(matches int, seed uint64, target int, cfg ai.Config) (summary, error) {
	var s summary
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := 0; i < matches; i++ {
		m, err := game.NewMatch(target, rng)
		if err != nil {
			return s, err
		}
		m, err = game.PlayAllBots(m, cfg, rng, 500)
		if err != nil {
			return s, fmt.Errorf("match %d: %w", i, err)
		}
		s.addMatch(m)
	}
	return s, nil
}

func pct(n, d int) string {
	if d == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(d))
}

func render(s summary, seed uint64, target int) string {
	row := func(label, value string) string {
		return labelStyle.Render(label) + value
	}
	avgBid := "-"
	if s.Bids > 0 {
		avgBid = fmt.Sprintf("%.1f", float64(s.BidTotal)/float64(s.Bids))
	}
	made := lipgloss.NewStyle().Foreground(clrGreen).Render(pct(s.BidsMade, s.Bids))
	failed := lipgloss.NewStyle().Foreground(clrRed).Render(pct(s.Bids-s.BidsMade, s.Bids))

	lines := []string{
		titleStyle.Render(fmt.Sprintf("Rook simulation  seed %d  target %d", seed, target)),
		"",
		row("matches", fmt.Sprint(s.Matches)),
		row("rounds", fmt.Sprint(s.Rounds)),
		row(shared.NorthSouth.String()+" wins", fmt.Sprintf("%d (%s)", s.Wins[shared.NorthSouth], pct(s.Wins[shared.NorthSouth], s.Matches))),
		row(shared.EastWest.String()+" wins", fmt.Sprintf("%d (%s)", s.Wins[shared.EastWest], pct(s.Wins[shared.EastWest], s.Matches))),
		row("bids made / failed", made+" / "+failed),
		row("average bid", avgBid),
		row("declarer shut out", fmt.Sprint(s.Shutouts)),
		row("highest final score", fmt.Sprint(s.HighScore)),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func main() {
	matches := flag.Int("matches", 100, "number of matches to play")
	seed := flag.Uint64("seed", 1, "random seed")
	target := flag.Int("target", scoring.DefaultTarget, "score that ends a match")
	weights := flag.String("ai", "", "JSON file with heuristic weights")
	verbose := flag.Bool("v", false, "log progress")
	flag.Parse()

	logger, err := logging.New("info", true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg := ai.DefaultConfig
	if *weights != "" {
		if cfg, err = config.ReadAIConfig(*weights); err != nil {
			log.Fatalf("Failed to load AI weights: %v", err)
		}
	}

	if *verbose {
		log.Infof("Simulating %d matches (seed %d, target %d)", *matches, *seed, *target)
	}
	s, err := run(*matches, *seed, *target, cfg)
	if err != nil {
		log.Fatalf("Simulation failed after %d matches: %v", s.Matches, err)
	}
	fmt.Println(render(s, *seed, *target))
}
