package mapcache

import "errors"

type call struct {
	Op    string
	Coord ChunkCoord
}

var errCaptureBroken = errors.New("broken chunk")

// fakeWorld records accessor calls. Chunks in present can be loaded; chunks in
// loaded start resident.
type fakeWorld struct {
	present  map[ChunkCoord]bool
	loaded   map[ChunkCoord]bool
	broken   map[ChunkCoord]bool
	captures map[ChunkCoord]int
	calls    []call
}

func newFakeWorld(coords ...ChunkCoord) *fakeWorld {
	w := &fakeWorld{
		present:  make(map[ChunkCoord]bool),
		loaded:   make(map[ChunkCoord]bool),
		broken:   make(map[ChunkCoord]bool),
		captures: make(map[ChunkCoord]int),
	}
	for _, c := range coords {
		w.present[c] = true
	}
	return w
}

func (w *fakeWorld) IsLoaded(c ChunkCoord) bool {
	w.calls = append(w.calls, call{"isLoaded", c})
	return w.loaded[c]
}

func (w *fakeWorld) Load(c ChunkCoord) bool {
	w.calls = append(w.calls, call{"load", c})
	if !w.present[c] {
		return false
	}
	w.loaded[c] = true
	return true
}

func (w *fakeWorld) Capture(c ChunkCoord) (*RawChunk, error) {
	w.calls = append(w.calls, call{"capture", c})
	w.captures[c]++
	if w.broken[c] {
		return nil, errCaptureBroken
	}
	return markedChunk(c, w.captures[c]), nil
}

func (w *fakeWorld) Release(c ChunkCoord) {
	w.calls = append(w.calls, call{"release", c})
	delete(w.loaded, c)
}

func (w *fakeWorld) count(op string) int {
	n := 0
	for _, c := range w.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// markedID is the block type at local (0,0,0) of a captured chunk.
func markedID(c ChunkCoord, capture int) int {
	return 100 + int(c.X) + int(c.Z)*10 + capture*1000
}

// markedChunk has a distinguishable block at (0,0,0), a stone floor at y=0
// elsewhere and a torch-lit block at (1,1,1).
func markedChunk(c ChunkCoord, capture int) *RawChunk {
	raw := NewRawChunk()
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			raw.SetBlock(x, 0, z, blockStone, 0)
			raw.HeightMap[z<<4|x] = 1
			for y := 1; y < ChunkHeight; y++ {
				raw.SetLight(x, y, z, 15, 0)
			}
		}
	}
	raw.SetBlock(0, 0, 0, uint16(markedID(c, capture)), 3)
	raw.SetLight(1, 1, 1, 15, 14)
	return raw
}

// unsupportedWorld reports no capture capability.
type unsupportedWorld struct {
	*fakeWorld
}

func (unsupportedWorld) Capabilities() Capabilities { return Capabilities{} }
