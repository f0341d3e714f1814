package main

import (
	"strings"
	"testing"

	"rook-game/internal/ai"
)

func TestRunSeeded(t *testing.T) {
	a, err := run(3, 7, 200, ai.DefaultConfig)
	if err != nil {
		t.Fatal(err)
	}
	if a.Matches != 3 || a.Wins[0]+a.Wins[1] != 3 {
		t.Fatalf("summary = %+v", a)
	}
	if a.Bids != a.Rounds {
		t.Fatalf("bids %d != rounds %d", a.Bids, a.Rounds)
	}
	if a.Bids > 0 && a.BidTotal < 70*a.Bids {
		t.Fatalf("average bid below minimum: %d over %d", a.BidTotal, a.Bids)
	}

	b, err := run(3, 7, 200, ai.DefaultConfig)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("same seed gave %+v and %+v", a, b)
	}
}

func TestRender(t *testing.T) {
	out := render(summary{Matches: 2, Rounds: 5, Wins: [2]int{1, 1}, Bids: 5, BidsMade: 4, BidTotal: 450}, 9, 500)
	for _, want := range []string{"seed 9", "average bid", "90.0", "80.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render output missing %q:\n%s", want, out)
		}
	}
}

func TestPct(t *testing.T) {
	if pct(1, 0) != "-" || pct(1, 4) != "25.0%" {
		t.Fatalf("pct gave %q %q", pct(1, 0), pct(1, 4))
	}
}
