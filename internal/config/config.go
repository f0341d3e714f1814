// Package config reads server settings from the environment (optionally seeded from a
// .env file) and the heuristic opponent's weights from a JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"rook-game/internal/ai"
	"rook-game/internal/scoring"
)

type Config struct {
	HTTPPort      string
	DBDriver      string // "sqlite3" or "pgx"
	DBDSN         string
	TargetScore   int
	BotDelay      time.Duration
	LogLevel      string
	Dev           bool
	AIConfigPath  string
	AllowedOrigin string // empty accepts any websocket origin
}

// Load reads .env (if present) and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	c := Config{
		HTTPPort:      getenv("HTTP_PORT", "8080"),
		DBDriver:      getenv("DB_DRIVER", "sqlite3"),
		DBDSN:         getenv("DB_DSN", "./rook.db"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		AIConfigPath:  os.Getenv("AI_CONFIG_PATH"),
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
	}

	var err error
	if c.TargetScore, err = getint("TARGET_SCORE", scoring.DefaultTarget); err != nil {
		return Config{}, err
	}
	if c.TargetScore <= 0 {
		return Config{}, fmt.Errorf("TARGET_SCORE must be positive, got %d", c.TargetScore)
	}
	delay, err := getint("BOT_DELAY_MS", 600)
	if err != nil {
		return Config{}, err
	}
	c.BotDelay = time.Duration(delay) * time.Millisecond
	if c.Dev, err = strconv.ParseBool(getenv("DEV", "false")); err != nil {
		return Config{}, fmt.Errorf("invalid DEV: %w", err)
	}

	switch c.DBDriver {
	case "sqlite3", "pgx":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return c, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

var (
	aiCfg    = ai.DefaultConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadAIConfig overlays the weights in the JSON file at path onto ai.DefaultConfig.
// Only the first call reads the file. An empty path keeps the defaults.
func LoadAIConfig(path string) error {
	loadOnce.Do(func() {
		if path == "" {
			return
		}
		c, err := ReadAIConfig(path)
		if err != nil {
			loadErr = err
			return
		}
		aiCfg = c
	})
	return loadErr
}

// AIConfig returns the loaded weights, or the defaults if nothing was loaded.
func AIConfig() ai.Config {
	return aiCfg
}

// ReadAIConfig parses a weights file without touching the process-wide copy.
func ReadAIConfig(path string) (ai.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ai.Config{}, fmt.Errorf("failed to read ai config: %w", err)
	}
	c := ai.DefaultConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return ai.Config{}, fmt.Errorf("failed to unmarshal ai config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return ai.Config{}, fmt.Errorf("invalid ai config: %w", err)
	}
	return c, nil
}
