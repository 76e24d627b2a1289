package mapcache

import (
	"errors"
	"fmt"
)

// ErrCaptureUnsupported is reported when the world cannot produce chunk buffers.
var ErrCaptureUnsupported = errors.New("chunk capture not supported")

// CaptureError is a capture failure for a single chunk.
type CaptureError struct {
	Coord ChunkCoord
	Err   error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture chunk %s: %v", e.Coord, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// WorldAccessor is the live world as seen by the cache builder.
// All methods are called from the goroutine that owns the world.
type WorldAccessor interface {
	// IsLoaded reports whether the chunk is currently resident.
	IsLoaded(c ChunkCoord) bool
	// Load makes the chunk resident and reports whether it is available afterwards.
	Load(c ChunkCoord) bool
	// Capture copies the chunk's blocks, light and height map.
	Capture(c ChunkCoord) (*RawChunk, error)
	// Release unloads a chunk this builder loaded. Failures are handled by the accessor.
	Release(c ChunkCoord)
}

// Capabilities describes what the world accessor supports. It is probed once
// at startup and passed to New.
type Capabilities struct {
	Capture          bool
	PreservedRelease bool
}

// CapabilityReporter is implemented by accessors that can lack capture support.
type CapabilityReporter interface {
	Capabilities() Capabilities
}

// Probe returns the accessor's capabilities. Accessors that do not report
// capabilities are assumed to support everything.
func Probe(w WorldAccessor) Capabilities {
	if w == nil {
		return Capabilities{}
	}
	if r, ok := w.(CapabilityReporter); ok {
		return r.Capabilities()
	}
	return Capabilities{Capture: true, PreservedRelease: true}
}
