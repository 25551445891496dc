package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/boneekim/Dalmuni-game/internal/config"
	"github.com/boneekim/Dalmuni-game/internal/game"
	"github.com/boneekim/Dalmuni-game/internal/logger"
	"github.com/boneekim/Dalmuni-game/internal/storage"
)

func main() {
	games := flag.Int("games", 100, "number of games to play")
	players := flag.Int("players", 4, "players per game (2-8)")
	seed := flag.Uint64("seed", 0, "seed of the first game, 0 picks one from the clock")
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	logger.InitWriter(os.Stderr)

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		logger.LogError("load config: %v", err)
		os.Exit(1)
	}
	if *players < game.MinPlayers || *players > game.MaxPlayers {
		logger.LogError("-players must be between %d and %d", game.MinPlayers, game.MaxPlayers)
		os.Exit(2)
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	ctx := context.Background()
	recorder, err := storage.Open(ctx, cfg.Redis)
	if err != nil {
		logger.LogError("ledger unavailable, results will not be recorded: %v", err)
		recorder = storage.NopRecorder{}
	}
	defer func() { _ = recorder.Close() }()

	difficulty, _ := game.ParseDifficulty(cfg.Game.Difficulty)
	logger.LogInfo("simulating %d games with %d players, seed %d", *games, *players, *seed)

	sum, err := runSimulation(ctx, simOptions{
		Games:      *games,
		Players:    *players,
		Seed:       *seed,
		Difficulty: difficulty,
		SkipTax:    !cfg.Game.TaxEnabled(),
	}, recorder, time.Now)
	if err != nil {
		logger.LogError("simulation failed: %v", err)
		os.Exit(1)
	}

	out, err := renderSummary(sum)
	if err != nil {
		logger.LogError("render summary: %v", err)
		os.Exit(1)
	}
	pterm.DefaultSection.Println("Finish distribution")
	pterm.Println(out)
}
