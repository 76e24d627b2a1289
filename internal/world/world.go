// Package world holds the live, mutable block world that map rendering
// captures chunk snapshots from.
package world

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/mapcache/internal/mapcache"
	"github.com/OCharnyshevich/mapcache/internal/world/gen"
)

// ErrChunkNotLoaded is returned for operations on a chunk that is not resident.
var ErrChunkNotLoaded = errors.New("chunk not loaded")

// ChunkStore persists chunk columns. LoadChunk returns nil, nil for a chunk
// that was never saved.
type ChunkStore interface {
	LoadChunk(pos mapcache.ChunkCoord) (*gen.ChunkData, error)
	SaveChunk(pos mapcache.ChunkCoord, c *gen.ChunkData) error
}

// Options controls how the world sources and retains chunks.
type Options struct {
	// Generate creates chunks missing from the store with the generator.
	Generate bool
	// PreservedChunks is the capacity of the unloaded-chunk cache. Zero disables it.
	PreservedChunks int
}

type column struct {
	data  *gen.ChunkData
	dirty bool
}

// World tracks resident chunk columns and the entities inside them. A World
// is not safe for concurrent use; all calls belong on the goroutine running
// its Loop.
type World struct {
	generator gen.Generator
	store     ChunkStore
	opts      Options
	log       *slog.Logger

	loaded    map[mapcache.ChunkCoord]*column
	preserved *preservedCache
	entities  map[uuid.UUID]*Entity
	byChunk   map[mapcache.ChunkCoord]map[uuid.UUID]struct{}
}

// New creates a World. store may be nil, in which case chunks only come
// from the generator and are never saved.
func New(generator gen.Generator, store ChunkStore, opts Options, log *slog.Logger) *World {
	w := &World{
		generator: generator,
		store:     store,
		opts:      opts,
		log:       log,
		loaded:    make(map[mapcache.ChunkCoord]*column),
		entities:  make(map[uuid.UUID]*Entity),
		byChunk:   make(map[mapcache.ChunkCoord]map[uuid.UUID]struct{}),
	}
	if opts.PreservedChunks > 0 {
		w.preserved = newPreservedCache(opts.PreservedChunks, w.flush)
	}
	return w
}

// Capabilities reports capture support and whether released chunks are
// dropped from the preserved cache.
func (w *World) Capabilities() mapcache.Capabilities {
	return mapcache.Capabilities{
		Capture:          true,
		PreservedRelease: w.preserved != nil,
	}
}

// IsLoaded reports whether the chunk is resident.
func (w *World) IsLoaded(c mapcache.ChunkCoord) bool {
	_, ok := w.loaded[c]
	return ok
}

// Load makes the chunk resident from the preserved cache, the store or the
// generator, in that order. It reports whether the chunk is resident afterwards.
func (w *World) Load(c mapcache.ChunkCoord) bool {
	if w.IsLoaded(c) {
		return true
	}
	if w.preserved != nil {
		if col, ok := w.preserved.take(c); ok {
			w.loaded[c] = col
			return true
		}
	}
	if w.store != nil {
		data, err := w.store.LoadChunk(c)
		if err != nil {
			w.log.Warn("failed to load chunk from store", "chunk", c, "error", err)
			return false
		}
		if data != nil {
			w.loaded[c] = &column{data: data}
			return true
		}
	}
	if !w.opts.Generate || w.generator == nil {
		return false
	}
	w.loaded[c] = &column{data: w.generator.Generate(c.X, c.Z), dirty: w.store != nil}
	return true
}

// Capture copies the chunk's blocks, height map and light into a new buffer.
func (w *World) Capture(c mapcache.ChunkCoord) (*mapcache.RawChunk, error) {
	col, ok := w.loaded[c]
	if !ok {
		return nil, fmt.Errorf("capture chunk %s: %w", c, ErrChunkNotLoaded)
	}
	return captureColumn(col.data), nil
}

// Release drops a chunk the map cache loaded: its entities are removed, the
// chunk is unloaded and then evicted from the preserved cache.
func (w *World) Release(c mapcache.ChunkCoord) {
	for id := range w.byChunk[c] {
		delete(w.entities, id)
	}
	delete(w.byChunk, c)

	if !w.Unload(c) {
		w.log.Warn("release of chunk that is not loaded", "chunk", c)
	}
	if w.preserved != nil {
		if !w.preserved.pop(c) {
			w.log.Warn("released chunk missing from preserved cache", "chunk", c)
		}
	}
}

// Unload removes a resident chunk. With a preserved cache the chunk is kept
// there for a fast reload; otherwise it is saved if modified.
func (w *World) Unload(c mapcache.ChunkCoord) bool {
	col, ok := w.loaded[c]
	if !ok {
		return false
	}
	delete(w.loaded, c)
	if w.preserved != nil {
		w.preserved.push(c, col)
		return true
	}
	w.flush(c, col)
	return true
}

func (w *World) flush(c mapcache.ChunkCoord, col *column) {
	if !col.dirty || w.store == nil {
		return
	}
	if err := w.store.SaveChunk(c, col.data); err != nil {
		w.log.Warn("failed to save chunk", "chunk", c, "error", err)
		return
	}
	col.dirty = false
}

// Save writes every modified resident chunk to the store.
func (w *World) Save() {
	for c, col := range w.loaded {
		w.flush(c, col)
	}
}

// SetBlock changes a block in a resident chunk.
func (w *World) SetBlock(x, y, z int32, id uint16, meta byte) error {
	if y < 0 || y >= mapcache.ChunkHeight {
		return fmt.Errorf("set block at y=%d: out of range", y)
	}
	c := mapcache.ChunkOf(x, z)
	col, ok := w.loaded[c]
	if !ok {
		return fmt.Errorf("set block in chunk %s: %w", c, ErrChunkNotLoaded)
	}
	col.data.SetBlock(int(x&0xF), int(y), int(z&0xF), gen.State(id, meta))
	col.dirty = true
	return nil
}

// LoadedCount returns the number of resident chunks.
func (w *World) LoadedCount() int { return len(w.loaded) }

// PreservedCount returns the number of chunks held in the preserved cache.
func (w *World) PreservedCount() int {
	if w.preserved == nil {
		return 0
	}
	return w.preserved.len()
}
