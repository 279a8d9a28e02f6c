// Package main imports tiles from a YAML seed file into the configured store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/cogworld/internal/clock"
	"github.com/cory-johannsen/cogworld/internal/config"
	"github.com/cory-johannsen/cogworld/internal/game/world"
	"github.com/cory-johannsen/cogworld/internal/observability"
	"github.com/cory-johannsen/cogworld/internal/storage/backend"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (defaults and COG_* environment when empty)")
	seedPath := flag.String("seed", "", "path to the YAML seed file")
	flag.Parse()

	if *seedPath == "" {
		fmt.Fprintln(os.Stderr, "usage: import-tiles -seed <file.yaml> [-config <file>]")
		os.Exit(1)
	}

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

	tiles, err := world.LoadSeedFromFile(*seedPath)
	if err != nil {
		logger.Fatal("loading seed", zap.Error(err))
	}

	blobs, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("opening storage", zap.Error(err))
	}
	defer blobs.Close()

	store := world.NewTileStore(blobs, cfg.Storage.TilesPrefix, clock.System(), logger)
	n, err := store.SaveAll(ctx, tiles)
	if err != nil {
		logger.Error("import failed", zap.Int("saved", n), zap.Error(err))
		os.Exit(1)
	}
	fmt.Printf("imported %d tiles into %s storage in %s\n", n, blobs.Name, time.Since(start).Round(time.Millisecond))
}
