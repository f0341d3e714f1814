package main

import (
	"log"

	"rook-game/internal/config"
	"rook-game/internal/database"
	"rook-game/internal/logging"
	"rook-game/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Dev)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	sugar.Info("Starting Rook server...")

	if err := config.LoadAIConfig(cfg.AIConfigPath); err != nil {
		sugar.Fatalf("Failed to load AI config: %v", err)
	}

	db, err := database.New(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		sugar.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	hub := server.NewHub(server.Settings{
		Target:        cfg.TargetScore,
		BotDelay:      cfg.BotDelay,
		AI:            config.AIConfig(),
		AllowedOrigin: cfg.AllowedOrigin,
	}, db, sugar)
	go hub.Run()

	e := server.NewRouter(hub, db)
	sugar.Infof("Listening on :%s (db %s, target %d)", cfg.HTTPPort, cfg.DBDriver, cfg.TargetScore)
	if err := e.Start(":" + cfg.HTTPPort); err != nil {
		sugar.Fatalf("Server stopped: %v", err)
	}
}
