package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"

	"github.com/OCharnyshevich/mapcache/internal/world/gen"
)

// Chunk payload layout, little endian:
//
//	version   uint8
//	mask      uint16 (bit n set = section n present)
//	sections  4096 uint16 each, in mask order
//	biomes    256 bytes
const (
	chunkVersion = 1

	sectionBytes = 4096 * 2
	biomeBytes   = 256
)

var errChunkSize = errors.New("chunk payload size mismatch")

func encodeChunk(c *gen.ChunkData) []byte {
	var mask uint16
	for i, s := range c.Sections {
		if s != nil {
			mask |= 1 << i
		}
	}

	buf := make([]byte, 0, 3+bits.OnesCount16(mask)*sectionBytes+biomeBytes)
	buf = append(buf, chunkVersion)
	buf = binary.LittleEndian.AppendUint16(buf, mask)
	for _, s := range c.Sections {
		if s == nil {
			continue
		}
		for _, v := range s.Blocks {
			buf = binary.LittleEndian.AppendUint16(buf, v)
		}
	}
	return append(buf, c.Biomes[:]...)
}

func decodeChunk(b []byte) (*gen.ChunkData, error) {
	if len(b) < 3 {
		return nil, errChunkSize
	}
	if b[0] != chunkVersion {
		return nil, fmt.Errorf("unsupported chunk version %d", b[0])
	}
	mask := binary.LittleEndian.Uint16(b[1:3])
	b = b[3:]
	if want := bits.OnesCount16(mask)*sectionBytes + biomeBytes; len(b) != want {
		return nil, fmt.Errorf("%w: %d bytes, want %d", errChunkSize, len(b), want)
	}

	c := &gen.ChunkData{}
	for i := range c.Sections {
		if mask&(1<<i) == 0 {
			continue
		}
		s := &gen.Section{}
		for j := range s.Blocks {
			s.Blocks[j] = binary.LittleEndian.Uint16(b[j*2:])
		}
		c.Sections[i] = s
		b = b[sectionBytes:]
	}
	copy(c.Biomes[:], b)
	return c, nil
}
