// Package mapcache captures a rectangle of world chunks into a read-only grid
// that render workers can query without touching the live world.
//
// Grids are built on the goroutine that owns the world and then handed to a
// single consumer. Nothing mutates a grid after Build returns except Release.
package mapcache

import "log/slog"

// Cache builds grids from a world accessor using the configured fill style
// and visibility limits.
type Cache struct {
	world  WorldAccessor
	caps   Capabilities
	log    *slog.Logger
	style  HiddenChunkStyle
	limits []VisibilityLimit
}

// New creates a Cache. caps comes from a single Probe done by the host.
func New(w WorldAccessor, caps Capabilities, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	if caps.Capture && w != nil {
		log.Info("chunk snapshot support enabled", "preservedRelease", caps.PreservedRelease)
	} else {
		log.Error("chunk snapshot support not found, rendering will use empty chunks")
	}
	return &Cache{world: w, caps: caps, log: log}
}

// SetHiddenFillStyle selects the fill for hidden chunks. The default is FillAir.
func (c *Cache) SetHiddenFillStyle(style HiddenChunkStyle) {
	c.style = style
}

// AddVisibilityLimit adds a block-coordinate rectangle. Limits are OR-ed and
// only affect grids built afterwards.
func (c *Cache) AddVisibilityLimit(lim VisibilityLimit) {
	c.limits = append(c.limits, NormalizeLimit(lim))
}

// Limits returns the normalized limits in chunk coordinates.
func (c *Cache) Limits() []VisibilityLimit {
	return append([]VisibilityLimit(nil), c.limits...)
}

// Build captures the requested chunks. It must run on the world's goroutine.
func (c *Cache) Build(coords []ChunkCoord) *Grid {
	if !c.caps.Capture || c.world == nil {
		g := newGrid(coords)
		g.stats.Requested = len(coords)
		g.stats.Unavailable = len(coords)
		g.fillUnresolved()
		return g
	}
	return build(c.world, coords, c.style, c.limits, c.log)
}

// Bounds is the chunk rectangle covered by a grid.
type Bounds struct {
	XMin, XMax, ZMin, ZMax int32
}

// XDim is the number of chunks along X.
func (b Bounds) XDim() int32 { return b.XMax - b.XMin + 1 }

// ZDim is the number of chunks along Z.
func (b Bounds) ZDim() int32 { return b.ZMax - b.ZMin + 1 }

// BoundsOf returns the min/max rectangle of coords, or a 1×1 rectangle at the
// origin when coords is empty.
func BoundsOf(coords []ChunkCoord) Bounds {
	if len(coords) == 0 {
		return Bounds{}
	}
	b := Bounds{XMin: coords[0].X, XMax: coords[0].X, ZMin: coords[0].Z, ZMax: coords[0].Z}
	for _, c := range coords[1:] {
		b.XMin = min(b.XMin, c.X)
		b.XMax = max(b.XMax, c.X)
		b.ZMin = min(b.ZMin, c.Z)
		b.ZMax = max(b.ZMax, c.Z)
	}
	return b
}

// BuildGrid loads, captures and releases each requested chunk in order, then
// backfills every unresolved slot with Empty. limits must already be normalized.
func BuildGrid(w WorldAccessor, coords []ChunkCoord, style HiddenChunkStyle, limits []VisibilityLimit) *Grid {
	return build(w, coords, style, limits, nil)
}

func build(w WorldAccessor, coords []ChunkCoord, style HiddenChunkStyle, limits []VisibilityLimit, log *slog.Logger) *Grid {
	g := newGrid(coords)
	hidden := style.Snapshot()
	g.stats.Requested = len(coords)

	for _, coord := range coords {
		vis := isVisible(limits, coord)
		wasLoaded := w.IsLoaded(coord)
		if !w.Load(coord) {
			g.stats.Unavailable++
			continue
		}

		var snap Snapshot
		if !vis {
			snap = hidden
			g.stats.Hidden++
		} else {
			l, err := capture(w, coord)
			if err != nil {
				g.stats.CaptureFailed++
				if log != nil {
					log.Debug("capture failed", "chunk", coord, "error", err)
				}
			} else {
				snap = l
				g.stats.Captured++
			}
		}
		// A failed capture clears any earlier entry for a duplicated coordinate.
		g.snaps[g.index(coord)] = snap

		if !wasLoaded {
			w.Release(coord)
			g.stats.Released++
		}
	}

	g.fillUnresolved()
	return g
}

func capture(w WorldAccessor, coord ChunkCoord) (*Loaded, error) {
	raw, err := w.Capture(coord)
	if err != nil {
		return nil, &CaptureError{Coord: coord, Err: err}
	}
	if raw == nil {
		return nil, &CaptureError{Coord: coord, Err: ErrCaptureUnsupported}
	}
	return NewLoaded(coord, raw)
}

// BuildStats counts what happened to each requested coordinate.
type BuildStats struct {
	Requested     int
	Captured      int
	Hidden        int
	Unavailable   int
	CaptureFailed int
	Released      int
}

// Grid is a dense, read-only array of snapshots.
// Index = (x-XMin) + (z-ZMin)*XDim.
type Grid struct {
	bounds Bounds
	xdim   int32
	snaps  []Snapshot
	stats  BuildStats
}

func newGrid(coords []ChunkCoord) *Grid {
	b := BoundsOf(coords)
	return &Grid{
		bounds: b,
		xdim:   b.XDim(),
		snaps:  make([]Snapshot, int(b.XDim())*int(b.ZDim())),
	}
}

func (g *Grid) fillUnresolved() {
	for i, s := range g.snaps {
		if s == nil {
			g.snaps[i] = Empty
		}
	}
}

func (g *Grid) index(c ChunkCoord) int {
	return int(c.X-g.bounds.XMin) + int(c.Z-g.bounds.ZMin)*int(g.xdim)
}

// snapshot returns the snapshot for a chunk, or Empty outside the grid.
func (g *Grid) snapshot(cx, cz int32) Snapshot {
	b := g.bounds
	if cx < b.XMin || cx > b.XMax || cz < b.ZMin || cz > b.ZMax {
		return Empty
	}
	i := int(cx-b.XMin) + int(cz-b.ZMin)*int(g.xdim)
	if i < 0 || i >= len(g.snaps) {
		return Empty
	}
	return g.snaps[i]
}

// Bounds returns the chunk rectangle of the grid.
func (g *Grid) Bounds() Bounds { return g.bounds }

// Stats returns the build counters.
func (g *Grid) Stats() BuildStats { return g.stats }

// Len returns the number of slots; zero after Release.
func (g *Grid) Len() int { return len(g.snaps) }

// SnapshotAt returns the snapshot stored for a chunk coordinate.
func (g *Grid) SnapshotAt(c ChunkCoord) Snapshot { return g.snapshot(c.X, c.Z) }

// LoadedCount returns how many slots hold captured data.
func (g *Grid) LoadedCount() int {
	n := 0
	for _, s := range g.snaps {
		if _, ok := s.(*Loaded); ok {
			n++
		}
	}
	return n
}

// Block is the per-block answer of a Query.
type Block struct {
	TypeID       int
	Data         int
	SkyLight     int
	EmittedLight int
}

// Query returns everything known about block (x, y, z).
func (g *Grid) Query(x, y, z int32) Block {
	s := g.snapshot(x>>4, z>>4)
	lx, ly, lz := int(x&0xF), int(y), int(z&0xF)
	return Block{
		TypeID:       s.BlockTypeID(lx, ly, lz),
		Data:         s.BlockData(lx, ly, lz),
		SkyLight:     s.SkyLight(lx, ly, lz),
		EmittedLight: s.EmittedLight(lx, ly, lz),
	}
}

func (g *Grid) BlockTypeID(x, y, z int32) int {
	return g.snapshot(x>>4, z>>4).BlockTypeID(int(x&0xF), int(y), int(z&0xF))
}

func (g *Grid) BlockData(x, y, z int32) int {
	return g.snapshot(x>>4, z>>4).BlockData(int(x&0xF), int(y), int(z&0xF))
}

func (g *Grid) SkyLight(x, y, z int32) int {
	return g.snapshot(x>>4, z>>4).SkyLight(int(x&0xF), int(y), int(z&0xF))
}

func (g *Grid) EmittedLight(x, y, z int32) int {
	return g.snapshot(x>>4, z>>4).EmittedLight(int(x&0xF), int(y), int(z&0xF))
}

// HighestY returns the height map value of column (x, z).
func (g *Grid) HighestY(x, z int32) int {
	return g.snapshot(x>>4, z>>4).HighestBlockY(int(x&0xF), int(z&0xF))
}

// Iterator returns a new cursor positioned at (x, y, z).
func (g *Grid) Iterator(x, y, z int32) *Iterator {
	it := &Iterator{grid: g}
	it.Initialize(x, y, z)
	return it
}

// Release drops every snapshot. Queries on a released grid answer as Empty.
// Calling it more than once is safe.
func (g *Grid) Release() {
	clear(g.snaps)
	g.snaps = nil
}
