package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OCharnyshevich/mapcache/internal/mapcache"
)

func TestPlanTilesSingleChunk(t *testing.T) {
	tiles := PlanTiles(Region{X0: 3, Z0: 3, X1: 10, Z1: 12}, 8)
	if len(tiles) != 1 {
		t.Fatalf("tiles = %d, want 1", len(tiles))
	}
	tile := tiles[0]
	if tile.Key != "0_0" {
		t.Errorf("Key = %q, want 0_0", tile.Key)
	}
	if tile.Interior() != 1 {
		t.Errorf("Interior = %d, want 1", tile.Interior())
	}
	var want []mapcache.ChunkCoord
	for z := int32(-1); z <= 1; z++ {
		for x := int32(-1); x <= 1; x++ {
			want = append(want, mapcache.ChunkCoord{X: x, Z: z})
		}
	}
	if diff := cmp.Diff(want, tile.Chunks); diff != "" {
		t.Errorf("Chunks mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanTilesAlignsAndClips(t *testing.T) {
	// chunks -3..4 on x, 0..1 on z
	tiles := PlanTiles(Region{X0: 79, Z0: 31, X1: -48, Z1: 0}, 4)

	type span struct {
		Key      string
		Min, Max mapcache.ChunkCoord
	}
	var got []span
	for _, tile := range tiles {
		got = append(got, span{tile.Key, tile.Min, tile.Max})
	}
	want := []span{
		{"-1_0", mapcache.ChunkCoord{X: -3, Z: 0}, mapcache.ChunkCoord{X: -1, Z: 1}},
		{"0_0", mapcache.ChunkCoord{X: 0, Z: 0}, mapcache.ChunkCoord{X: 3, Z: 1}},
		{"1_0", mapcache.ChunkCoord{X: 4, Z: 0}, mapcache.ChunkCoord{X: 4, Z: 1}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tiles mismatch (-want +got):\n%s", diff)
	}
	for _, tile := range tiles {
		wantChunks := int(tile.Max.X-tile.Min.X+3) * int(tile.Max.Z-tile.Min.Z+3)
		if len(tile.Chunks) != wantChunks {
			t.Errorf("tile %s chunks = %d, want %d", tile.Key, len(tile.Chunks), wantChunks)
		}
	}
}

func TestPlanTilesZeroSize(t *testing.T) {
	tiles := PlanTiles(Region{X0: 0, Z0: 0, X1: 31, Z1: 15}, 0)
	if len(tiles) != 2 {
		t.Errorf("tiles = %d, want 2", len(tiles))
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int32 }{
		{7, 4, 1},
		{8, 4, 2},
		{-1, 4, -1},
		{-4, 4, -1},
		{-5, 4, -2},
		{0, 4, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
