package render

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/mapcache/internal/mapcache"
)

// Executor runs a function on the goroutine that owns the world.
type Executor interface {
	Do(ctx context.Context, fn func()) error
}

// GridBuilder captures the chunks of a tile into a grid.
type GridBuilder interface {
	Build(coords []mapcache.ChunkCoord) *mapcache.Grid
}

// Sink receives finished surface maps. It is called from worker goroutines.
type Sink func(ctx context.Context, m *SurfaceMap) error

// Stats summarizes a pipeline run.
type Stats struct {
	Tiles       int64
	Chunks      int64
	Captured    int64
	Hidden      int64
	Unavailable int64
	Failed      int64
	Columns     int64
}

type counters struct {
	tiles, chunks, captured, hidden, unavailable, failed, columns atomic.Int64
}

func (c *counters) stats() Stats {
	return Stats{
		Tiles:       c.tiles.Load(),
		Chunks:      c.chunks.Load(),
		Captured:    c.captured.Load(),
		Hidden:      c.hidden.Load(),
		Unavailable: c.unavailable.Load(),
		Failed:      c.failed.Load(),
		Columns:     c.columns.Load(),
	}
}

type job struct {
	tile Tile
	grid *mapcache.Grid
}

// Pipeline builds tile grids on the world goroutine and renders them on a
// pool of workers.
type Pipeline struct {
	exec    Executor
	builder GridBuilder
	workers int
	sink    Sink
	log     *slog.Logger
}

// NewPipeline creates a Pipeline. sink may be nil.
func NewPipeline(exec Executor, builder GridBuilder, workers int, sink Sink, log *slog.Logger) *Pipeline {
	return &Pipeline{
		exec:    exec,
		builder: builder,
		workers: max(1, workers),
		sink:    sink,
		log:     log,
	}
}

// Run renders tiles. Grids are handed to workers one at a time and released
// once their surface map is done.
func (p *Pipeline) Run(ctx context.Context, tiles []Tile) (Stats, error) {
	var cnt counters
	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan job)

	g.Go(func() error {
		defer close(jobs)
		for _, t := range tiles {
			var grid *mapcache.Grid
			if err := p.exec.Do(ctx, func() { grid = p.builder.Build(t.Chunks) }); err != nil {
				return fmt.Errorf("build tile %s: %w", t.Key, err)
			}
			st := grid.Stats()
			cnt.chunks.Add(int64(st.Requested))
			cnt.captured.Add(int64(st.Captured))
			cnt.hidden.Add(int64(st.Hidden))
			cnt.unavailable.Add(int64(st.Unavailable))
			cnt.failed.Add(int64(st.CaptureFailed))
			p.log.Debug("built tile grid", "tile", t.Key, "chunks", st.Requested, "captured", st.Captured)

			select {
			case jobs <- job{tile: t, grid: grid}:
			case <-ctx.Done():
				grid.Release()
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < p.workers; w++ {
		g.Go(func() error {
			for j := range jobs {
				m := Surface(j.grid, j.tile)
				j.grid.Release()
				cnt.tiles.Inc()
				cnt.columns.Add(int64(len(m.Columns)))
				if p.sink == nil {
					continue
				}
				if err := p.sink(ctx, m); err != nil {
					return fmt.Errorf("emit tile %s: %w", j.tile.Key, err)
				}
			}
			return nil
		})
	}

	err := g.Wait()
	stats := cnt.stats()
	if err != nil {
		return stats, err
	}
	p.log.Info("render finished", "tiles", stats.Tiles, "chunks", stats.Chunks, "captured", stats.Captured)
	return stats, nil
}
