package gen

import "fmt"

// Generator produces chunk data deterministically from a seed.
type Generator interface {
	Generate(chunkX, chunkZ int32) *ChunkData
	HeightAt(blockX, blockZ int32) int
}

// New returns the generator registered under kind ("default" or "flat").
func New(kind string, seed int64) (Generator, error) {
	switch kind {
	case "", "default":
		return NewTerrainGenerator(seed), nil
	case "flat":
		return NewFlatGenerator(seed), nil
	}
	return nil, fmt.Errorf("unknown generator %q", kind)
}

// FlatGenerator generates a superflat world:
// bedrock at y=0, stone y=1..2, dirt y=3, grass y=4.
type FlatGenerator struct{}

// NewFlatGenerator creates a FlatGenerator. The seed is unused.
func NewFlatGenerator(_ int64) *FlatGenerator {
	return &FlatGenerator{}
}

func (g *FlatGenerator) Generate(_, _ int32) *ChunkData {
	c := &ChunkData{}
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			c.SetBlock(x, 0, z, State(BlockBedrock, 0))
			c.SetBlock(x, 1, z, State(BlockStone, 0))
			c.SetBlock(x, 2, z, State(BlockStone, 0))
			c.SetBlock(x, 3, z, State(BlockDirt, 0))
			c.SetBlock(x, 4, z, State(BlockGrass, 0))
			c.SetBiome(x, z, biomePlains)
		}
	}
	return c
}

// HeightAt returns the y of the top solid block (grass).
func (g *FlatGenerator) HeightAt(_, _ int32) int {
	return 4
}
