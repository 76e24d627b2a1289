package gen

// TerrainGenerator produces rolling noise terrain with oceans, beaches,
// deserts and lava pockets near bedrock.
type TerrainGenerator struct {
	terrain *Noise
	detail  *Noise
	climate *Noise
	caves   *Noise
}

// NewTerrainGenerator creates a TerrainGenerator from a seed.
func NewTerrainGenerator(seed int64) *TerrainGenerator {
	return &TerrainGenerator{
		terrain: NewNoise(seed),
		detail:  NewNoise(seed + 1),
		climate: NewNoise(seed + 100),
		caves:   NewNoise(seed + 300),
	}
}

func (g *TerrainGenerator) Generate(chunkX, chunkZ int32) *ChunkData {
	c := &ChunkData{}
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			bx := chunkX*16 + int32(x)
			bz := chunkZ*16 + int32(z)
			height := g.HeightAt(bx, bz)
			biome := g.biomeAt(bx, bz, height)
			c.SetBiome(x, z, biome)
			g.fillColumn(c, x, z, height, biome)
			g.carveLava(c, x, z, bx, bz, height)
		}
	}
	return c
}

// HeightAt returns the y of the top solid block at a world column.
func (g *TerrainGenerator) HeightAt(blockX, blockZ int32) int {
	base := g.terrain.Octave2D(float64(blockX)/128, float64(blockZ)/128, 6, 0.5)
	detail := g.detail.Octave2D(float64(blockX)/32, float64(blockZ)/32, 3, 0.5)

	h := int(float64(SeaLevel) + base*24 + detail*4)
	return max(1, min(h, 250))
}

func (g *TerrainGenerator) biomeAt(bx, bz int32, height int) byte {
	switch {
	case height < SeaLevel-4:
		return biomeOcean
	case height <= SeaLevel+1:
		return biomeBeach
	}
	if g.climate.Octave2D(float64(bx)/512, float64(bz)/512, 4, 0.5) > 0.35 {
		return biomeDesert
	}
	return biomePlains
}

func (g *TerrainGenerator) fillColumn(c *ChunkData, x, z, height int, biome byte) {
	c.SetBlock(x, 0, z, State(BlockBedrock, 0))
	for y := 1; y <= height-4; y++ {
		c.SetBlock(x, y, z, State(BlockStone, 0))
	}

	var top, filler uint16
	switch biome {
	case biomeOcean:
		top, filler = BlockGravel, BlockDirt
	case biomeBeach:
		top, filler = BlockSand, BlockSandstone
	case biomeDesert:
		top, filler = BlockSand, BlockSand
	default:
		top, filler = BlockGrass, BlockDirt
		if height <= SeaLevel {
			top = BlockDirt
		}
	}
	for y := max(1, height-3); y < height; y++ {
		c.SetBlock(x, y, z, State(filler, 0))
	}
	c.SetBlock(x, height, z, State(top, 0))

	for y := height + 1; y <= SeaLevel; y++ {
		c.SetBlock(x, y, z, State(BlockWater, 0))
	}
}

// carveLava replaces dense cave noise below y=10 with lava.
func (g *TerrainGenerator) carveLava(c *ChunkData, x, z int, bx, bz int32, height int) {
	const (
		threshold = 0.45
		lavaLevel = 10
	)
	for y := 2; y < lavaLevel && y < height-4; y++ {
		if g.caves.Noise3D(float64(bx)/16, float64(y)/12, float64(bz)/16) > threshold {
			c.SetBlock(x, y, z, State(BlockLava, 0))
		}
	}
}
