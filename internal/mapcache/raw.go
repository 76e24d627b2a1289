package mapcache

import "fmt"

const (
	// ChunkHeight is the number of block layers in a chunk column.
	ChunkHeight = 256

	blocksPerChunk = 16 * 16 * ChunkHeight // 65536
	nibbleBytes    = blocksPerChunk / 2    // 32768
	columnCount    = 16 * 16
)

// ChunkCoord identifies a chunk column by its chunk X and Z coordinates.
type ChunkCoord struct {
	X, Z int32
}

// ChunkOf returns the coordinate of the chunk containing block (x, z).
func ChunkOf(x, z int32) ChunkCoord {
	return ChunkCoord{X: x >> 4, Z: z >> 4}
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// RawChunk is a captured copy of one chunk column.
// Block index = y<<8 | z<<4 | x. Nibble arrays store the even index in the low nibble.
type RawChunk struct {
	Types      []uint16
	Data       []byte
	SkyLight   []byte
	BlockLight []byte
	HeightMap  [columnCount]uint16 // index = z<<4 | x, value = y above the topmost non-air block
}

// NewRawChunk allocates a zeroed buffer: all air, no light.
func NewRawChunk() *RawChunk {
	return &RawChunk{
		Types:      make([]uint16, blocksPerChunk),
		Data:       make([]byte, nibbleBytes),
		SkyLight:   make([]byte, nibbleBytes),
		BlockLight: make([]byte, nibbleBytes),
	}
}

// Validate reports whether every array has the expected length.
func (r *RawChunk) Validate() error {
	switch {
	case len(r.Types) != blocksPerChunk:
		return fmt.Errorf("types length %d, want %d", len(r.Types), blocksPerChunk)
	case len(r.Data) != nibbleBytes:
		return fmt.Errorf("data length %d, want %d", len(r.Data), nibbleBytes)
	case len(r.SkyLight) != nibbleBytes:
		return fmt.Errorf("sky light length %d, want %d", len(r.SkyLight), nibbleBytes)
	case len(r.BlockLight) != nibbleBytes:
		return fmt.Errorf("block light length %d, want %d", len(r.BlockLight), nibbleBytes)
	}
	return nil
}

// BlockIndex returns the buffer index for local coordinates.
func BlockIndex(x, y, z int) int {
	return y<<8 | z<<4 | x
}

// SetBlock writes type and data at local coordinates.
func (r *RawChunk) SetBlock(x, y, z int, id uint16, data byte) {
	i := BlockIndex(x, y, z)
	r.Types[i] = id
	setNibble(r.Data, i, data)
}

// SetLight writes sky and emitted light at local coordinates.
func (r *RawChunk) SetLight(x, y, z int, sky, emitted byte) {
	i := BlockIndex(x, y, z)
	setNibble(r.SkyLight, i, sky)
	setNibble(r.BlockLight, i, emitted)
}

func setNibble(arr []byte, index int, val byte) {
	b := index >> 1
	if index&1 == 0 {
		arr[b] = (arr[b] & 0xF0) | (val & 0x0F)
	} else {
		arr[b] = (arr[b] & 0x0F) | ((val & 0x0F) << 4)
	}
}

func nibble(arr []byte, index int) int {
	v := arr[index>>1]
	if index&1 == 0 {
		return int(v & 0x0F)
	}
	return int(v >> 4)
}
