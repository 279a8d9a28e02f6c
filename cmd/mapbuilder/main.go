// Package main provides the map builder: a console editor that authors tile
// records one coordinate at a time.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/cogworld/internal/clock"
	"github.com/cory-johannsen/cogworld/internal/config"
	"github.com/cory-johannsen/cogworld/internal/frontend/console"
	"github.com/cory-johannsen/cogworld/internal/game/editor"
	"github.com/cory-johannsen/cogworld/internal/game/world"
	"github.com/cory-johannsen/cogworld/internal/observability"
	"github.com/cory-johannsen/cogworld/internal/server"
	"github.com/cory-johannsen/cogworld/internal/storage/backend"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (defaults and COG_* environment when empty)")
	x := flag.Int("x", 0, "starting x coordinate")
	y := flag.Int("y", 0, "starting y coordinate")
	z := flag.Int("z", 0, "starting z coordinate")
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

	blobs, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("opening storage", zap.Error(err))
	}
	defer blobs.Close()

	tiles := world.NewTileStore(blobs, cfg.Storage.TilesPrefix, clock.System(), logger)
	ed := editor.Open(ctx, tiles, world.Coord{X: *x, Y: *y, Z: *z}, logger)
	b := console.NewBuilder(console.NewTerm(os.Stdin, os.Stdout, *color), ed, logger)

	lc := server.NewLifecycle(logger)
	lc.Add("builder", &server.FuncService{StartFn: b.Run})
	if err := lc.Run(ctx); err != nil {
		logger.Error("builder ended with error", zap.Error(err))
		os.Exit(1)
	}
}
