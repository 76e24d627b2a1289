package mapcache

import (
	"errors"
	"fmt"
	"strings"
)

// HiddenChunkStyle selects the synthetic fill used for chunks outside every visibility limit.
type HiddenChunkStyle int

const (
	FillAir HiddenChunkStyle = iota
	FillStone
	FillOcean
)

// ErrInvalidHideStyle is returned by ParseHiddenChunkStyle for unknown names.
var ErrInvalidHideStyle = errors.New("invalid hidden chunk style")

// ParseHiddenChunkStyle accepts "air", "stone" or "ocean" (case-insensitive). Empty means air.
func ParseHiddenChunkStyle(s string) (HiddenChunkStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "air":
		return FillAir, nil
	case "stone":
		return FillStone, nil
	case "ocean":
		return FillOcean, nil
	}
	return FillAir, fmt.Errorf("%w: %q", ErrInvalidHideStyle, s)
}

func (s HiddenChunkStyle) String() string {
	switch s {
	case FillStone:
		return "stone"
	case FillOcean:
		return "ocean"
	default:
		return "air"
	}
}

// Snapshot returns the shared synthetic snapshot for the style.
func (s HiddenChunkStyle) Snapshot() Snapshot {
	switch s {
	case FillStone:
		return StoneFill
	case FillOcean:
		return OceanFill
	default:
		return Empty
	}
}

// VisibilityLimit is an inclusive rectangle. Values passed to NormalizeLimit are
// block coordinates; normalized limits hold chunk coordinates.
type VisibilityLimit struct {
	X0, Z0, X1, Z1 int32
}

// NormalizeLimit converts a block-coordinate limit into chunk coordinates,
// ordering each axis and rounding the upper bound outward.
func NormalizeLimit(lim VisibilityLimit) VisibilityLimit {
	var n VisibilityLimit
	if lim.X0 > lim.X1 {
		n.X0, n.X1 = lim.X1>>4, (lim.X0+15)>>4
	} else {
		n.X0, n.X1 = lim.X0>>4, (lim.X1+15)>>4
	}
	if lim.Z0 > lim.Z1 {
		n.Z0, n.Z1 = lim.Z1>>4, (lim.Z0+15)>>4
	} else {
		n.Z0, n.Z1 = lim.Z0>>4, (lim.Z1+15)>>4
	}
	return n
}

// Contains reports whether a chunk lies inside a normalized limit.
func (l VisibilityLimit) Contains(c ChunkCoord) bool {
	return c.X >= l.X0 && c.X <= l.X1 && c.Z >= l.Z0 && c.Z <= l.Z1
}

// isVisible is true with no limits, or when any limit contains the chunk.
func isVisible(limits []VisibilityLimit, c ChunkCoord) bool {
	if len(limits) == 0 {
		return true
	}
	for _, l := range limits {
		if l.Contains(c) {
			return true
		}
	}
	return false
}
