package store

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/OCharnyshevich/mapcache/internal/mapcache"
	"github.com/OCharnyshevich/mapcache/internal/world/gen"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "world.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Open(\"\") should fail")
	}
}

func TestChunkRoundTrip(t *testing.T) {
	s := openTemp(t)
	pos := mapcache.ChunkCoord{X: -4, Z: 9}
	c := gen.NewTerrainGenerator(7).Generate(pos.X, pos.Z)
	c.SetBlock(3, 200, 5, gen.State(gen.BlockGlowstone, 2))

	if err := s.SaveChunk(pos, c); err != nil {
		t.Fatalf("SaveChunk: %v", err)
	}
	got, err := s.LoadChunk(pos)
	if err != nil {
		t.Fatalf("LoadChunk: %v", err)
	}
	if got == nil {
		t.Fatal("LoadChunk returned nil")
	}
	for i := range c.Sections {
		if (c.Sections[i] == nil) != (got.Sections[i] == nil) {
			t.Fatalf("section %d presence differs", i)
		}
		if c.Sections[i] != nil && c.Sections[i].Blocks != got.Sections[i].Blocks {
			t.Fatalf("section %d blocks differ", i)
		}
	}
	if c.Biomes != got.Biomes {
		t.Error("biomes differ")
	}
}

func TestSaveChunkReplaces(t *testing.T) {
	s := openTemp(t)
	pos := mapcache.ChunkCoord{X: 1, Z: 1}
	c := gen.NewFlatGenerator(0).Generate(1, 1)

	if err := s.SaveChunk(pos, c); err != nil {
		t.Fatalf("SaveChunk: %v", err)
	}
	c.SetBlock(0, 4, 0, gen.State(gen.BlockSand, 0))
	if err := s.SaveChunk(pos, c); err != nil {
		t.Fatalf("SaveChunk again: %v", err)
	}

	n, err := s.ChunkCount()
	if err != nil {
		t.Fatalf("ChunkCount: %v", err)
	}
	if n != 1 {
		t.Errorf("ChunkCount = %d, want 1", n)
	}
	got, _ := s.LoadChunk(pos)
	if id := got.GetBlock(0, 4, 0) >> 4; id != gen.BlockSand {
		t.Errorf("block after replace = %d, want sand", id)
	}
}

func TestLoadMissing(t *testing.T) {
	s := openTemp(t)

	c, err := s.LoadChunk(mapcache.ChunkCoord{X: 100, Z: 100})
	if err != nil || c != nil {
		t.Errorf("LoadChunk missing = %v, %v; want nil, nil", c, err)
	}
	tile, err := s.LoadTile("nope")
	if err != nil || tile != nil {
		t.Errorf("LoadTile missing = %v, %v; want nil, nil", tile, err)
	}
}

func TestTileRoundTrip(t *testing.T) {
	s := openTemp(t)
	data := bytes.Repeat([]byte{1, 2, 3, 4}, 1024)

	if err := s.SaveTile("0_0", data); err != nil {
		t.Fatalf("SaveTile: %v", err)
	}
	got, err := s.LoadTile("0_0")
	if err != nil {
		t.Fatalf("LoadTile: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("tile payload differs: %d bytes, want %d", len(got), len(data))
	}
}

func TestReopenKeepsChunks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.sqlite")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	pos := mapcache.ChunkCoord{X: 2, Z: 3}
	if err := s.SaveChunk(pos, gen.NewFlatGenerator(0).Generate(2, 3)); err != nil {
		t.Fatalf("SaveChunk: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	c, err := s.LoadChunk(pos)
	if err != nil || c == nil {
		t.Fatalf("LoadChunk after reopen = %v, %v", c, err)
	}
}

func TestDecodeChunkRejectsBadPayloads(t *testing.T) {
	good := encodeChunk(gen.NewFlatGenerator(0).Generate(0, 0))

	if _, err := decodeChunk(good[:2]); !errors.Is(err, errChunkSize) {
		t.Errorf("short header error = %v, want errChunkSize", err)
	}
	if _, err := decodeChunk(good[:len(good)-1]); !errors.Is(err, errChunkSize) {
		t.Errorf("truncated payload error = %v, want errChunkSize", err)
	}
	bad := append([]byte{}, good...)
	bad[0] = 9
	if _, err := decodeChunk(bad); err == nil {
		t.Error("unknown version should fail")
	}
}
