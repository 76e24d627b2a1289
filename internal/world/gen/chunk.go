// Package gen produces chunk columns deterministically from a seed.
package gen

// Section holds block data for a 16×16×16 vertical slice of a chunk.
// Index = y*256 + z*16 + x, value = blockID<<4 | metadata.
type Section struct {
	Blocks [4096]uint16
}

// ChunkData holds the blocks of one chunk column.
type ChunkData struct {
	Sections [16]*Section // nil = all-air
	Biomes   [256]byte    // index = z*16 + x
}

// State packs a block ID and its metadata.
func State(id uint16, meta byte) uint16 {
	return id<<4 | uint16(meta&0xF)
}

// SetBlock sets a block state at local coordinates.
// x, z must be in [0,16), y must be in [0,256).
func (c *ChunkData) SetBlock(x, y, z int, state uint16) {
	sec := y >> 4
	if c.Sections[sec] == nil {
		if state == 0 {
			return
		}
		c.Sections[sec] = &Section{}
	}
	c.Sections[sec].Blocks[(y&0xF)*256+z*16+x] = state
}

// GetBlock returns the block state at local coordinates.
func (c *ChunkData) GetBlock(x, y, z int) uint16 {
	sec := y >> 4
	if c.Sections[sec] == nil {
		return 0
	}
	return c.Sections[sec].Blocks[(y&0xF)*256+z*16+x]
}

// SetBiome sets the biome ID at local x, z.
func (c *ChunkData) SetBiome(x, z int, biome byte) {
	c.Biomes[z*16+x] = biome
}

// Height returns the y above the topmost non-air block of column (x, z),
// or 0 for an empty column.
func (c *ChunkData) Height(x, z int) int {
	for sec := 15; sec >= 0; sec-- {
		s := c.Sections[sec]
		if s == nil {
			continue
		}
		for ly := 15; ly >= 0; ly-- {
			if s.Blocks[ly*256+z*16+x] != 0 {
				return sec*16 + ly + 1
			}
		}
	}
	return 0
}
