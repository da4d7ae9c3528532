package mapgen

import (
	"time"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"hammer2d/internal/physics"
)

// Options controls procedural obstacle map generation.
// Width/Depth are in tiles; TileSize is the world size of one tile.
// Tiles whose noise value reaches Threshold are blocked.
// Seed controls randomness; Seed == 0 uses a time-based seed.
// Octaves, Frequency, Lacunarity, and Gain control the fractal noise shape.
type Options struct {
	Width     int
	Depth     int
	TileSize  float32
	Threshold float32

	Seed       int64
	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32
}

// DefaultOptions returns a sane default configuration.
func DefaultOptions() Options {
	return Options{
		Width:      32,
		Depth:      32,
		TileSize:   1.0,
		Threshold:  0.62,
		Seed:       0,
		Octaves:    4,
		Frequency:  0.08,
		Lacunarity: 2.0,
		Gain:       0.5,
	}
}

// Map is a generated tile map. Heights are noise values in [0,1], row-major by z.
type Map struct {
	Width    int
	Depth    int
	TileSize float32
	Heights  []float32
	Blocked  []bool
}

// Generate samples fractal noise for every tile and blocks those above the threshold.
// Zero-valued tuning fields fall back to DefaultOptions.
func Generate(opts Options) *Map {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Depth <= 0 {
		opts.Depth = def.Depth
	}
	if opts.TileSize <= 0 {
		opts.TileSize = def.TileSize
	}
	if opts.Threshold <= 0 {
		opts.Threshold = def.Threshold
	}
	if opts.Octaves <= 0 {
		opts.Octaves = def.Octaves
	}
	if opts.Frequency <= 0 {
		opts.Frequency = def.Frequency
	}
	if opts.Lacunarity <= 0 {
		opts.Lacunarity = def.Lacunarity
	}
	if opts.Gain <= 0 {
		opts.Gain = def.Gain
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := &Map{
		Width:    opts.Width,
		Depth:    opts.Depth,
		TileSize: opts.TileSize,
		Heights:  make([]float32, opts.Width*opts.Depth),
		Blocked:  make([]bool, opts.Width*opts.Depth),
	}
	for z := 0; z < opts.Depth; z++ {
		for x := 0; x < opts.Width; x++ {
			h := fractalValueNoise2D(float32(x)*opts.Frequency, float32(z)*opts.Frequency, seed, opts.Octaves, opts.Lacunarity, opts.Gain)
			if !isFinite(h) {
				h = 0
			}
			h = math32.Max(0, math32.Min(1, h))
			i := z*opts.Width + x
			m.Heights[i] = h
			m.Blocked[i] = h >= opts.Threshold
		}
	}
	return m
}

// Walkable reports whether tile (x, z) is open. Out-of-range tiles are not walkable.
func (m *Map) Walkable(x, z int) bool {
	if x < 0 || z < 0 || x >= m.Width || z >= m.Depth {
		return false
	}
	return !m.Blocked[z*m.Width+x]
}

// Clear opens tile (x, z), e.g. to guarantee a path's endpoints.
func (m *Map) Clear(x, z int) {
	if x >= 0 && z >= 0 && x < m.Width && z < m.Depth {
		m.Blocked[z*m.Width+x] = false
	}
}

// WalkableCell has the shape of a pathfinding walkability predicate for a grid whose
// cells line up with the map's tiles.
func (m *Map) WalkableCell(x, y int, _ rl.Vector3) bool {
	return m.Walkable(x, y)
}

// TileAABBs returns one box per horizontal run of blocked tiles, in map space with the
// map's corner at the origin. Physics Y corresponds to the map's z axis.
func (m *Map) TileAABBs() []physics.AABB {
	var boxes []physics.AABB
	for z := 0; z < m.Depth; z++ {
		x := 0
		for x < m.Width {
			if m.Walkable(x, z) {
				x++
				continue
			}
			start := x
			for x < m.Width && !m.Walkable(x, z) {
				x++
			}
			boxes = append(boxes, physics.NewAABB(
				float32(start)*m.TileSize, float32(z)*m.TileSize,
				float32(x)*m.TileSize, float32(z+1)*m.TileSize,
			))
		}
	}
	return boxes
}

// Tilemap returns shape settings for a static tilemap body covering the blocked tiles.
func (m *Map) Tilemap() physics.ShapeSettings {
	return physics.NewShapeSettings(physics.Mesh{}, m.TileAABBs(), physics.Tilemap)
}

// fractalValueNoise2D is simple fractal value noise: layered smooth value noise with
// configurable octaves, lacunarity, and gain. Output is in [0,1].
func fractalValueNoise2D(x, y float32, seed int64, octaves int, lacunarity, gain float32) float32 {
	var sum, maxAmp float32
	amplitude, freq := float32(1), float32(1)
	for i := 0; i < octaves; i++ {
		sum += valueNoise2D(x*freq, y*freq, int32(seed)+int32(i)) * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

// valueNoise2D is smooth value noise in [0,1] over a hashed lattice.
func valueNoise2D(x, y float32, seed int32) float32 {
	x0 := int32(math32.Floor(x))
	y0 := int32(math32.Floor(y))
	sx := smoothStep(x - float32(x0))
	sy := smoothStep(y - float32(y0))

	ix0 := lerp(hash2D(x0, y0, seed), hash2D(x0+1, y0, seed), sx)
	ix1 := lerp(hash2D(x0, y0+1, seed), hash2D(x0+1, y0+1, seed), sx)
	return lerp(ix0, ix1, sy)
}

// hash2D maps lattice coordinates to a deterministic value in [0,1].
func hash2D(x, y, seed int32) float32 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothStep is 3t^2 - 2t^3 clamped to [0,1].
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
