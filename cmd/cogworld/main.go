// Package main provides the Cog World player console: it loads the player
// profile, places the player on the tile map, and reads commands from stdin.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/cogworld/internal/clock"
	"github.com/cory-johannsen/cogworld/internal/config"
	"github.com/cory-johannsen/cogworld/internal/frontend/console"
	"github.com/cory-johannsen/cogworld/internal/game/player"
	"github.com/cory-johannsen/cogworld/internal/game/session"
	"github.com/cory-johannsen/cogworld/internal/game/world"
	"github.com/cory-johannsen/cogworld/internal/observability"
	"github.com/cory-johannsen/cogworld/internal/server"
	"github.com/cory-johannsen/cogworld/internal/storage/backend"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (defaults and COG_* environment when empty)")
	color := flag.Bool("color", true, "style output with ANSI colors")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("note: .env not loaded: %v", err)
	}

	ctx := context.Background()

	cfg, err := config.LoadPath(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	tp, err := observability.NewTracerProvider(ctx, cfg.Tracing)
	if err != nil {
		logger.Fatal("initializing tracing", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("shutting down tracing", zap.Error(err))
		}
	}()

	blobs, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("opening storage", zap.Error(err))
	}
	defer blobs.Close()

	clk := clock.System()
	sess := session.Start(ctx, session.Deps{
		Tiles:    world.NewTileStore(blobs, cfg.Storage.TilesPrefix, clk, logger),
		Profiles: player.NewStore(blobs, cfg.Storage.ProfileKey, cfg.Player.Name, clk, logger),
		Tracer:   tp.Tracer(),
		Logger:   logger,
	})
	p := console.NewPlayer(console.NewTerm(os.Stdin, os.Stdout, *color), sess, logger)

	logger.Info("session ready",
		zap.String("backend", blobs.Name),
		zap.Duration("startup", time.Since(start)),
	)

	lc := server.NewLifecycle(logger)
	lc.Add("player", &server.FuncService{StartFn: p.Run, StopFn: p.Close})
	if err := lc.Run(ctx); err != nil {
		logger.Error("session ended with error", zap.Error(err))
		os.Exit(1)
	}
}
