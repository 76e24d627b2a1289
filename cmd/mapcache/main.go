package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/OCharnyshevich/mapcache/internal/config"
	"github.com/OCharnyshevich/mapcache/internal/render"
	"github.com/OCharnyshevich/mapcache/internal/server"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "mapcache.yaml", "path to YAML config file")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "data directory")
	flag.StringVar(&cfg.Database, "database", cfg.Database, "database file, relative to the data directory")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.StringVar(&cfg.Generator, "generator", cfg.Generator, "terrain generator (default, flat)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flag.StringVar(&cfg.HideStyleName, "hide-style", cfg.HideStyleName, "fill for hidden chunks (air, stone, ocean)")
	flag.IntVar(&cfg.TileSize, "tile-size", cfg.TileSize, "chunks per tile edge")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "render workers")
	flag.BoolVar(&cfg.SaveTiles, "save-tiles", cfg.SaveTiles, "store rendered tiles in the database")
	flag.IntVar(&cfg.PreservedChunks, "preserved-chunks", cfg.PreservedChunks, "capacity of the unloaded-chunk cache")
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	fromFile := config.DefaultConfig()
	if err := config.Load(*configPath, fromFile); err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicit)

	level, err := cfg.Level()
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stats, err := server.New(cfg, log).Run(ctx)
	printSummary(stats)
	if err != nil {
		log.Error("render error", "error", err)
		os.Exit(1)
	}
}

func printSummary(s render.Stats) {
	color.Green("Rendered %d tiles (%d columns)", s.Tiles, s.Columns)
	color.Cyan("Chunks requested: %d, captured: %d, hidden: %d", s.Chunks, s.Captured, s.Hidden)
	if s.Unavailable > 0 || s.Failed > 0 {
		color.Yellow("Chunks unavailable: %d, capture failures: %d", s.Unavailable, s.Failed)
	}
}
