package mapcache

// Iterator is a block cursor over a Grid. The chunk snapshot under (x, z) is
// cached and looked up again only when a step crosses a 16-block boundary.
type Iterator struct {
	grid    *Grid
	x, y, z int32
	snap    Snapshot
}

// Initialize moves the cursor to (x, y, z) and refreshes the cached snapshot.
func (it *Iterator) Initialize(x, y, z int32) {
	it.x, it.y, it.z = x, y, z
	it.lookup()
}

func (it *Iterator) lookup() {
	it.snap = it.grid.snapshot(it.x>>4, it.z>>4)
}

func (it *Iterator) BlockTypeID() int {
	return it.snap.BlockTypeID(int(it.x&0xF), int(it.y), int(it.z&0xF))
}

func (it *Iterator) BlockData() int {
	return it.snap.BlockData(int(it.x&0xF), int(it.y), int(it.z&0xF))
}

func (it *Iterator) HighestBlockY() int {
	return it.snap.HighestBlockY(int(it.x&0xF), int(it.z&0xF))
}

func (it *Iterator) SkyLight() int {
	return it.snap.SkyLight(int(it.x&0xF), int(it.y), int(it.z&0xF))
}

func (it *Iterator) EmittedLight() int {
	return it.snap.EmittedLight(int(it.x&0xF), int(it.y), int(it.z&0xF))
}

func (it *Iterator) IncrementX() {
	it.x++
	if it.x&0xF == 0 {
		it.lookup()
	}
}

func (it *Iterator) DecrementX() {
	it.x--
	if it.x&0xF == 15 {
		it.lookup()
	}
}

func (it *Iterator) IncrementZ() {
	it.z++
	if it.z&0xF == 0 {
		it.lookup()
	}
}

func (it *Iterator) DecrementZ() {
	it.z--
	if it.z&0xF == 15 {
		it.lookup()
	}
}

func (it *Iterator) IncrementY() { it.y++ }
func (it *Iterator) DecrementY() { it.y-- }
func (it *Iterator) SetY(y int32) { it.y = y }
func (it *Iterator) Y() int32     { return it.y }

// X returns the cursor's block X coordinate.
func (it *Iterator) X() int32 { return it.x }

// Z returns the cursor's block Z coordinate.
func (it *Iterator) Z() int32 { return it.z }

// Snapshot returns the cached snapshot for the current chunk.
func (it *Iterator) Snapshot() Snapshot { return it.snap }
