package render

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/OCharnyshevich/mapcache/internal/mapcache"
)

const (
	waterFlowing    = 8
	waterStationary = 9
)

// Column is the visible top of one block column.
type Column struct {
	TypeID       uint16
	Data         uint8
	Height       int16 // y of the top block, -1 for an empty column
	SkyLight     uint8 // light in the block above the top
	EmittedLight uint8
	WaterDepth   uint8
	FloorTypeID  uint16 // block under the water, or TypeID when dry
}

// SurfaceMap holds the top column of every block in a tile's interior,
// row-major by z then x.
type SurfaceMap struct {
	Key     string
	OriginX int32 // block coordinates of Columns[0]
	OriginZ int32
	Width   int
	Depth   int
	Columns []Column
}

// At returns the column at block (x, z) relative to the origin.
func (m *SurfaceMap) At(dx, dz int) Column {
	return m.Columns[dz*m.Width+dx]
}

// Surface walks every interior column of the tile from its height map down
// to the first visible block.
func Surface(grid *mapcache.Grid, tile Tile) *SurfaceMap {
	m := &SurfaceMap{
		Key:     tile.Key,
		OriginX: tile.Min.X * 16,
		OriginZ: tile.Min.Z * 16,
		Width:   int(tile.Max.X-tile.Min.X+1) * 16,
		Depth:   int(tile.Max.Z-tile.Min.Z+1) * 16,
	}
	m.Columns = make([]Column, 0, m.Width*m.Depth)

	it := grid.Iterator(m.OriginX, 0, m.OriginZ)
	for dz := 0; dz < m.Depth; dz++ {
		it.Initialize(m.OriginX, 0, m.OriginZ+int32(dz))
		for dx := 0; dx < m.Width; dx++ {
			m.Columns = append(m.Columns, topColumn(it))
			it.IncrementX()
		}
	}
	return m
}

func topColumn(it *mapcache.Iterator) Column {
	y := int32(min(it.HighestBlockY(), mapcache.ChunkHeight)) - 1
	it.SetY(y)
	for y >= 0 && it.BlockTypeID() == 0 {
		y--
		it.DecrementY()
	}
	if y < 0 {
		return Column{Height: -1, SkyLight: 15}
	}

	col := Column{
		TypeID: uint16(it.BlockTypeID()),
		Data:   uint8(it.BlockData()),
		Height: int16(y),
	}
	it.IncrementY()
	col.SkyLight = uint8(it.SkyLight())
	col.EmittedLight = uint8(it.EmittedLight())
	it.DecrementY()

	for y >= 0 && isWater(it.BlockTypeID()) {
		col.WaterDepth++
		y--
		it.DecrementY()
	}
	col.FloorTypeID = col.TypeID
	if col.WaterDepth > 0 && y >= 0 {
		col.FloorTypeID = uint16(it.BlockTypeID())
	}
	return col
}

func isWater(id int) bool {
	return id == waterFlowing || id == waterStationary
}

const surfaceVersion = 1

var errSurfaceSize = errors.New("surface payload size mismatch")

const columnBytes = 10

// MarshalBinary encodes the map for storage. The key is not included.
func (m *SurfaceMap) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 17+len(m.Columns)*columnBytes)
	buf = append(buf, surfaceVersion)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.OriginX))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.OriginZ))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.Width))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.Depth))
	for _, c := range m.Columns {
		buf = binary.LittleEndian.AppendUint16(buf, c.TypeID)
		buf = append(buf, c.Data)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(c.Height))
		buf = append(buf, c.SkyLight, c.EmittedLight, c.WaterDepth)
		buf = binary.LittleEndian.AppendUint16(buf, c.FloorTypeID)
	}
	return buf, nil
}

// UnmarshalBinary decodes a map written by MarshalBinary.
func (m *SurfaceMap) UnmarshalBinary(b []byte) error {
	if len(b) < 17 {
		return errSurfaceSize
	}
	if b[0] != surfaceVersion {
		return fmt.Errorf("unsupported surface version %d", b[0])
	}
	m.OriginX = int32(binary.LittleEndian.Uint32(b[1:]))
	m.OriginZ = int32(binary.LittleEndian.Uint32(b[5:]))
	m.Width = int(binary.LittleEndian.Uint32(b[9:]))
	m.Depth = int(binary.LittleEndian.Uint32(b[13:]))
	b = b[17:]
	if len(b) != m.Width*m.Depth*columnBytes {
		return fmt.Errorf("%w: %d bytes for %dx%d columns", errSurfaceSize, len(b), m.Width, m.Depth)
	}

	m.Columns = make([]Column, m.Width*m.Depth)
	for i := range m.Columns {
		p := b[i*columnBytes:]
		m.Columns[i] = Column{
			TypeID:       binary.LittleEndian.Uint16(p),
			Data:         p[2],
			Height:       int16(binary.LittleEndian.Uint16(p[3:])),
			SkyLight:     p[5],
			EmittedLight: p[6],
			WaterDepth:   p[7],
			FloorTypeID:  binary.LittleEndian.Uint16(p[8:]),
		}
	}
	return nil
}
