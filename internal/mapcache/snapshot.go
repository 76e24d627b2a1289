package mapcache

const (
	blockStone = 1
	blockWater = 9

	fillLevel = 64
	fullLight = 15
)

// Snapshot is a read-only view of one chunk column in local coordinates.
type Snapshot interface {
	BlockTypeID(x, y, z int) int
	BlockData(x, y, z int) int
	SkyLight(x, y, z int) int
	EmittedLight(x, y, z int) int
	HighestBlockY(x, z int) int
}

// emptyChunk stands in for unloaded, unavailable or air-filled chunks.
type emptyChunk struct{}

func (emptyChunk) BlockTypeID(_, _, _ int) int  { return 0 }
func (emptyChunk) BlockData(_, _, _ int) int    { return 0 }
func (emptyChunk) SkyLight(_, _, _ int) int     { return fullLight }
func (emptyChunk) EmittedLight(_, _, _ int) int { return 0 }
func (emptyChunk) HighestBlockY(_, _ int) int   { return 0 }

// plainChunk is solid fill below y=64 and open sky above.
type plainChunk struct {
	fill int
}

func (p plainChunk) BlockTypeID(_, y, _ int) int {
	if y < fillLevel {
		return p.fill
	}
	return 0
}

func (plainChunk) BlockData(_, _, _ int) int { return 0 }

func (plainChunk) SkyLight(_, y, _ int) int {
	if y < fillLevel {
		return 0
	}
	return fullLight
}

func (plainChunk) EmittedLight(_, _, _ int) int { return 0 }
func (plainChunk) HighestBlockY(_, _ int) int   { return fillLevel }

// Shared synthetic snapshots. They hold no state and are safe to share across goroutines.
var (
	Empty     Snapshot = emptyChunk{}
	StoneFill Snapshot = plainChunk{fill: blockStone}
	OceanFill Snapshot = plainChunk{fill: blockWater}
)

// Loaded is a snapshot backed by a captured chunk buffer.
type Loaded struct {
	coord ChunkCoord
	raw   *RawChunk
}

// NewLoaded wraps a validated raw buffer. The snapshot takes ownership of raw.
func NewLoaded(coord ChunkCoord, raw *RawChunk) (*Loaded, error) {
	if err := raw.Validate(); err != nil {
		return nil, &CaptureError{Coord: coord, Err: err}
	}
	return &Loaded{coord: coord, raw: raw}, nil
}

// Coord returns the chunk this snapshot was captured from.
func (l *Loaded) Coord() ChunkCoord { return l.coord }

func (l *Loaded) BlockTypeID(x, y, z int) int {
	if y < 0 || y >= ChunkHeight {
		return 0
	}
	return int(l.raw.Types[BlockIndex(x, y, z)])
}

func (l *Loaded) BlockData(x, y, z int) int {
	if y < 0 || y >= ChunkHeight {
		return 0
	}
	return nibble(l.raw.Data, BlockIndex(x, y, z))
}

func (l *Loaded) SkyLight(x, y, z int) int {
	if y < 0 || y >= ChunkHeight {
		return fullLight
	}
	return nibble(l.raw.SkyLight, BlockIndex(x, y, z))
}

func (l *Loaded) EmittedLight(x, y, z int) int {
	if y < 0 || y >= ChunkHeight {
		return 0
	}
	return nibble(l.raw.BlockLight, BlockIndex(x, y, z))
}

func (l *Loaded) HighestBlockY(x, z int) int {
	return int(l.raw.HeightMap[z<<4|x])
}
