package gen

// Block IDs used by the generators (1.8 numbering).
const (
	BlockAir       uint16 = 0
	BlockStone     uint16 = 1
	BlockGrass     uint16 = 2
	BlockDirt      uint16 = 3
	BlockBedrock   uint16 = 7
	BlockWater     uint16 = 9 // stationary water
	BlockLava      uint16 = 11
	BlockSand      uint16 = 12
	BlockGravel    uint16 = 13
	BlockSandstone uint16 = 24
	BlockTorch     uint16 = 50
	BlockFire      uint16 = 51
	BlockGlowstone uint16 = 89
	BlockLantern   uint16 = 91 // jack o'lantern
)

const (
	biomeOcean  byte = 0
	biomePlains byte = 1
	biomeDesert byte = 2
	biomeBeach  byte = 16

	// SeaLevel is the topmost water layer of generated oceans.
	SeaLevel = 62
)

var emission = map[uint16]byte{
	10:             15, // flowing lava
	BlockLava:      15,
	BlockFire:      15,
	BlockGlowstone: 15,
	BlockLantern:   15,
	BlockTorch:     14,
	76:             7, // redstone torch
}

// LightEmission returns the light level a block emits.
func LightEmission(id uint16) byte {
	return emission[id]
}

// Transparent reports whether light passes through a block.
func Transparent(id uint16) bool {
	switch id {
	case BlockAir, BlockTorch, BlockFire, 76:
		return true
	}
	return false
}
