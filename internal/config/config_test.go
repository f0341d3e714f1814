package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"rook-game/internal/ai"
	"rook-game/internal/scoring"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_PORT", "DB_DRIVER", "DB_DSN", "TARGET_SCORE", "BOT_DELAY_MS", "LOG_LEVEL", "DEV", "AI_CONFIG_PATH", "ALLOWED_ORIGIN"} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.HTTPPort != "8080" || c.DBDriver != "sqlite3" || c.TargetScore != scoring.DefaultTarget {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.BotDelay != 600*time.Millisecond {
		t.Fatalf("bot delay = %s", c.BotDelay)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("TARGET_SCORE", "300")
	t.Setenv("BOT_DELAY_MS", "0")
	t.Setenv("DEV", "true")
	t.Setenv("ALLOWED_ORIGIN", "http://rook.example")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.HTTPPort != "9000" || c.DBDriver != "pgx" || c.TargetScore != 300 || c.BotDelay != 0 || !c.Dev || c.AllowedOrigin != "http://rook.example" {
		t.Fatalf("overrides not applied: %+v", c)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TARGET_SCORE=250\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("TARGET_SCORE", "")
	os.Unsetenv("TARGET_SCORE")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.TargetScore != 250 {
		t.Fatalf("target = %d, want 250 from .env", c.TargetScore)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{name: "bad target", key: "TARGET_SCORE", value: "lots"},
		{name: "negative target", key: "TARGET_SCORE", value: "-5"},
		{name: "bad delay", key: "BOT_DELAY_MS", value: "soon"},
		{name: "unknown driver", key: "DB_DRIVER", value: "mongo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestReadAIConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai.json")
	if err := os.WriteFile(path, []byte(`{"aggression": 1.4, "bid_floor": 10}`), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := ReadAIConfig(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if c.Aggression != 1.4 || c.BidFloor != 10 || c.WildCard != ai.DefaultConfig.WildCard {
		t.Fatalf("weights not overlaid on defaults: %+v", c)
	}

	if err := os.WriteFile(path, []byte(`{"aggression": 0}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadAIConfig(path); err == nil {
		t.Fatalf("zero aggression should be rejected")
	}
}
