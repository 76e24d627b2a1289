package gen

// Simplex noise producing values in [-1, 1].

var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Noise is a seeded simplex noise source.
type Noise struct {
	perm [512]uint8
}

// NewNoise shuffles a permutation table with an LCG seeded by seed.
func NewNoise(seed int64) *Noise {
	n := &Noise{}
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	s := uint64(seed)
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s >> 33) % uint64(i+1))
		p[i], p[j] = p[j], p[i]
	}
	for i := range n.perm {
		n.perm[i] = p[i&255]
	}
	return n
}

func (n *Noise) hash(i int) int { return int(n.perm[i&511]) }

// Noise2D samples 2D simplex noise.
func (n *Noise) Noise2D(x, y float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	s := (x + y) * f2
	i, j := floor(x+s), floor(y+s)
	t := float64(i+j) * g2
	x0, y0 := x-(float64(i)-t), y-(float64(j)-t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	corners := [3][2]float64{
		{x0, y0},
		{x0 - float64(i1) + g2, y0 - float64(j1) + g2},
		{x0 - 1 + 2*g2, y0 - 1 + 2*g2},
	}
	ii, jj := i&255, j&255
	grads := [3]int{
		n.hash(ii+n.hash(jj)) % 12,
		n.hash(ii+i1+n.hash(jj+j1)) % 12,
		n.hash(ii+1+n.hash(jj+1)) % 12,
	}

	var sum float64
	for k, c := range corners {
		a := 0.5 - c[0]*c[0] - c[1]*c[1]
		if a < 0 {
			continue
		}
		a *= a
		g := grad3[grads[k]]
		sum += a * a * (g[0]*c[0] + g[1]*c[1])
	}
	return 70 * sum
}

// Noise3D samples 3D simplex noise.
func (n *Noise) Noise3D(x, y, z float64) float64 {
	const (
		f3 = 1.0 / 3.0
		g3 = 1.0 / 6.0
	)

	s := (x + y + z) * f3
	i, j, k := floor(x+s), floor(y+s), floor(z+s)
	t := float64(i+j+k) * g3
	x0, y0, z0 := x-(float64(i)-t), y-(float64(j)-t), z-(float64(k)-t)

	var o1, o2 [3]int
	switch {
	case x0 >= y0 && y0 >= z0:
		o1, o2 = [3]int{1, 0, 0}, [3]int{1, 1, 0}
	case x0 >= y0 && x0 >= z0:
		o1, o2 = [3]int{1, 0, 0}, [3]int{1, 0, 1}
	case x0 >= y0:
		o1, o2 = [3]int{0, 0, 1}, [3]int{1, 0, 1}
	case y0 < z0:
		o1, o2 = [3]int{0, 0, 1}, [3]int{0, 1, 1}
	case x0 < z0:
		o1, o2 = [3]int{0, 1, 0}, [3]int{0, 1, 1}
	default:
		o1, o2 = [3]int{0, 1, 0}, [3]int{1, 1, 0}
	}

	offsets := [4][3]int{{0, 0, 0}, o1, o2, {1, 1, 1}}
	ii, jj, kk := i&255, j&255, k&255

	var sum float64
	for c, o := range offsets {
		cx := x0 - float64(o[0]) + float64(c)*g3
		cy := y0 - float64(o[1]) + float64(c)*g3
		cz := z0 - float64(o[2]) + float64(c)*g3
		a := 0.6 - cx*cx - cy*cy - cz*cz
		if a < 0 {
			continue
		}
		a *= a
		g := grad3[n.hash(ii+o[0]+n.hash(jj+o[1]+n.hash(kk+o[2])))%12]
		sum += a * a * (g[0]*cx + g[1]*cy + g[2]*cz)
	}
	return 32 * sum
}

// Octave2D layers octaves of 2D noise. The result stays roughly in [-1, 1].
func (n *Noise) Octave2D(x, y float64, octaves int, persistence float64) float64 {
	var total, maxVal float64
	amp, freq := 1.0, 1.0
	for o := 0; o < octaves; o++ {
		total += n.Noise2D(x*freq, y*freq) * amp
		maxVal += amp
		amp *= persistence
		freq *= 2
	}
	return total / maxVal
}

func floor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}
