package world

import (
	"github.com/OCharnyshevich/mapcache/internal/mapcache"
	"github.com/OCharnyshevich/mapcache/internal/world/gen"
)

const maxLight = 15

type lightNode struct {
	x, y, z int
	level   byte
}

// captureColumn copies a chunk column into a RawChunk. Sky light is full at
// and above the height map and dark below it. Emitted light spreads from
// emitting blocks through transparent blocks, losing one level per step,
// and does not cross the chunk border.
func captureColumn(data *gen.ChunkData) *mapcache.RawChunk {
	raw := mapcache.NewRawChunk()
	emitted := make([]byte, len(raw.Types))
	var queue []lightNode

	for sec, s := range data.Sections {
		if s == nil {
			continue
		}
		for i, state := range s.Blocks {
			if state == 0 {
				continue
			}
			x, z, y := i&0xF, (i>>4)&0xF, sec*16+(i>>8)
			id := state >> 4
			raw.SetBlock(x, y, z, id, byte(state&0xF))
			if level := gen.LightEmission(id); level > 0 {
				emitted[mapcache.BlockIndex(x, y, z)] = level
				queue = append(queue, lightNode{x, y, z, level})
			}
		}
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.level <= 1 {
			continue
		}
		for _, d := range [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}} {
			x, y, z := n.x+d[0], n.y+d[1], n.z+d[2]
			if x < 0 || x > 15 || z < 0 || z > 15 || y < 0 || y >= mapcache.ChunkHeight {
				continue
			}
			i := mapcache.BlockIndex(x, y, z)
			if !gen.Transparent(raw.Types[i]) || emitted[i] >= n.level-1 {
				continue
			}
			emitted[i] = n.level - 1
			queue = append(queue, lightNode{x, y, z, n.level - 1})
		}
	}

	for z := 0; z < 16; z++ {
		for x := 0; x < 16; x++ {
			height := data.Height(x, z)
			raw.HeightMap[z<<4|x] = uint16(height)
			for y := 0; y < mapcache.ChunkHeight; y++ {
				var sky byte
				if y >= height {
					sky = maxLight
				}
				raw.SetLight(x, y, z, sky, emitted[mapcache.BlockIndex(x, y, z)])
			}
		}
	}
	return raw
}
