package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OCharnyshevich/mapcache/internal/config"
	"github.com/OCharnyshevich/mapcache/internal/mapcache"
	"github.com/OCharnyshevich/mapcache/internal/render"
	"github.com/OCharnyshevich/mapcache/internal/world"
	"github.com/OCharnyshevich/mapcache/internal/world/gen"
	"github.com/OCharnyshevich/mapcache/internal/world/store"
)

// Server renders the configured region of a world.
type Server struct {
	cfg *config.Config
	log *slog.Logger
}

// New creates a new Server with the given config and logger.
func New(cfg *config.Config, log *slog.Logger) *Server {
	return &Server{cfg: cfg, log: log}
}

// Run opens the world, renders every tile of the region once and saves
// modified chunks. It blocks until rendering is done or ctx is cancelled.
func (s *Server) Run(ctx context.Context) (render.Stats, error) {
	if err := s.cfg.Validate(); err != nil {
		return render.Stats{}, fmt.Errorf("invalid config: %w", err)
	}
	style, err := s.cfg.HideStyle()
	if err != nil {
		return render.Stats{}, err
	}
	generator, err := gen.New(s.cfg.Generator, s.cfg.Seed)
	if err != nil {
		return render.Stats{}, fmt.Errorf("create generator: %w", err)
	}

	st, err := store.Open(s.cfg.DatabasePath())
	if err != nil {
		return render.Stats{}, fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	if n, err := st.ChunkCount(); err == nil {
		s.log.Info("store opened", "path", s.cfg.DatabasePath(), "chunks", n)
	}

	w := world.New(generator, st, world.Options{
		Generate:        true,
		PreservedChunks: s.cfg.PreservedChunks,
	}, s.log.With("component", "world"))

	loop := world.NewLoop()
	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()
	defer func() {
		loop.Stop()
		<-loopDone
	}()

	cache := mapcache.New(w, mapcache.Probe(w), s.log)
	cache.SetHiddenFillStyle(style)
	for _, lim := range s.cfg.Limits() {
		cache.AddVisibilityLimit(lim)
	}

	var sink render.Sink
	if s.cfg.SaveTiles {
		sink = func(_ context.Context, m *render.SurfaceMap) error {
			b, err := m.MarshalBinary()
			if err != nil {
				return fmt.Errorf("encode tile %s: %w", m.Key, err)
			}
			return st.SaveTile(m.Key, b)
		}
	}

	tiles := render.PlanTiles(s.cfg.Region, s.cfg.TileSize)
	s.log.Info("render started",
		"tiles", len(tiles),
		"generator", s.cfg.Generator,
		"seed", s.cfg.Seed,
		"hideStyle", style.String(),
		"limits", len(cache.Limits()),
	)

	p := render.NewPipeline(loop, cache, s.cfg.Workers, sink, s.log.With("component", "render"))
	stats, err := p.Run(ctx, tiles)
	if err != nil {
		return stats, fmt.Errorf("render: %w", err)
	}

	if err := loop.Do(ctx, w.Save); err != nil {
		s.log.Warn("save world", "error", err)
	}
	return stats, nil
}
