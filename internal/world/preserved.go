package world

import (
	"github.com/brentp/intintmap"

	"github.com/OCharnyshevich/mapcache/internal/mapcache"
)

type preservedSlot struct {
	coord mapcache.ChunkCoord
	col   *column
}

// preservedCache is a fixed-size ring of recently unloaded chunks. The
// oldest entry is evicted through onEvict when the ring is full.
type preservedCache struct {
	slots   []preservedSlot
	next    int
	index   *intintmap.Map // packed coord -> slot
	onEvict func(mapcache.ChunkCoord, *column)
}

func newPreservedCache(capacity int, onEvict func(mapcache.ChunkCoord, *column)) *preservedCache {
	return &preservedCache{
		slots:   make([]preservedSlot, capacity),
		index:   intintmap.New(capacity, 0.6),
		onEvict: onEvict,
	}
}

func packCoord(c mapcache.ChunkCoord) int64 {
	return int64(c.X)<<32 | int64(uint32(c.Z))
}

func (p *preservedCache) push(c mapcache.ChunkCoord, col *column) {
	if i, ok := p.index.Get(packCoord(c)); ok {
		p.slots[i].col = col
		return
	}
	if old := p.slots[p.next]; old.col != nil {
		p.index.Del(packCoord(old.coord))
		p.onEvict(old.coord, old.col)
	}
	p.slots[p.next] = preservedSlot{coord: c, col: col}
	p.index.Put(packCoord(c), int64(p.next))
	p.next = (p.next + 1) % len(p.slots)
}

// take removes the chunk from the cache without evicting it.
func (p *preservedCache) take(c mapcache.ChunkCoord) (*column, bool) {
	key := packCoord(c)
	i, ok := p.index.Get(key)
	if !ok {
		return nil, false
	}
	col := p.slots[i].col
	p.slots[i] = preservedSlot{}
	p.index.Del(key)
	return col, true
}

// pop evicts the chunk immediately.
func (p *preservedCache) pop(c mapcache.ChunkCoord) bool {
	col, ok := p.take(c)
	if !ok {
		return false
	}
	p.onEvict(c, col)
	return true
}

func (p *preservedCache) len() int { return p.index.Size() }
