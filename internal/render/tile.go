// Package render turns chunk grids into per-tile surface maps.
package render

import (
	"fmt"

	"github.com/OCharnyshevich/mapcache/internal/mapcache"
)

// Region is an inclusive rectangle of block coordinates.
type Region struct {
	X0 int32 `yaml:"x0" json:"x0"`
	Z0 int32 `yaml:"z0" json:"z0"`
	X1 int32 `yaml:"x1" json:"x1"`
	Z1 int32 `yaml:"z1" json:"z1"`
}

// Tile is a square of chunks rendered together. Chunks lists the interior
// chunks plus a one-chunk border so edge columns can see their neighbours.
type Tile struct {
	Key    string
	TX, TZ int32
	Min    mapcache.ChunkCoord // interior, inclusive
	Max    mapcache.ChunkCoord
	Chunks []mapcache.ChunkCoord
}

// Interior returns the number of chunks the tile renders.
func (t Tile) Interior() int {
	return int(t.Max.X-t.Min.X+1) * int(t.Max.Z-t.Min.Z+1)
}

// PlanTiles splits region into tiles of tileSize×tileSize chunks aligned to
// multiples of tileSize. Tiles at the region edge are clipped to it.
func PlanTiles(region Region, tileSize int) []Tile {
	if tileSize < 1 {
		tileSize = 1
	}
	ts := int32(tileSize)
	x0, x1 := min(region.X0, region.X1)>>4, max(region.X0, region.X1)>>4
	z0, z1 := min(region.Z0, region.Z1)>>4, max(region.Z0, region.Z1)>>4

	var tiles []Tile
	for tz := floorDiv(z0, ts); tz <= floorDiv(z1, ts); tz++ {
		for tx := floorDiv(x0, ts); tx <= floorDiv(x1, ts); tx++ {
			t := Tile{
				Key: fmt.Sprintf("%d_%d", tx, tz),
				TX:  tx,
				TZ:  tz,
				Min: mapcache.ChunkCoord{X: max(tx*ts, x0), Z: max(tz*ts, z0)},
				Max: mapcache.ChunkCoord{X: min(tx*ts+ts-1, x1), Z: min(tz*ts+ts-1, z1)},
			}
			for cz := t.Min.Z - 1; cz <= t.Max.Z+1; cz++ {
				for cx := t.Min.X - 1; cx <= t.Max.X+1; cx++ {
					t.Chunks = append(t.Chunks, mapcache.ChunkCoord{X: cx, Z: cz})
				}
			}
			tiles = append(tiles, t)
		}
	}
	return tiles
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
