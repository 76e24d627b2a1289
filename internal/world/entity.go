package world

import (
	"math"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/mapcache/internal/mapcache"
)

// Entity is a non-block object placed in the world.
type Entity struct {
	ID      uuid.UUID
	Kind    string
	X, Y, Z float64
}

// Chunk returns the chunk containing the entity.
func (e *Entity) Chunk() mapcache.ChunkCoord {
	return mapcache.ChunkOf(int32(math.Floor(e.X)), int32(math.Floor(e.Z)))
}

// SpawnEntity places a new entity and returns its ID.
func (w *World) SpawnEntity(kind string, x, y, z float64) uuid.UUID {
	e := &Entity{ID: uuid.New(), Kind: kind, X: x, Y: y, Z: z}
	w.entities[e.ID] = e

	c := e.Chunk()
	ids, ok := w.byChunk[c]
	if !ok {
		ids = make(map[uuid.UUID]struct{})
		w.byChunk[c] = ids
	}
	ids[e.ID] = struct{}{}
	return e.ID
}

// Entity returns the entity with the given ID.
func (w *World) Entity(id uuid.UUID) (*Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Entities returns the entities inside chunk c.
func (w *World) Entities(c mapcache.ChunkCoord) []*Entity {
	ids := w.byChunk[c]
	out := make([]*Entity, 0, len(ids))
	for id := range ids {
		out = append(out, w.entities[id])
	}
	return out
}

// EntityCount returns the number of entities in the world.
func (w *World) EntityCount() int { return len(w.entities) }
