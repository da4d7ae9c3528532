package primitives

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"hammer2d/internal/physics"
)

// ErrUnknownPrimitive is returned for a name or type the registry cannot build.
var ErrUnknownPrimitive = errors.New("unknown primitive")

const (
	minPolygonSides     = 3
	defaultPolygonSides = 8
)

// Registry maps preset names to shape definitions and builds physics meshes from them.
// "quad", "tile", "triangle" and "polygon" are always present with unit size.
type Registry struct {
	defs map[string]PrimitiveDef
}

// NewRegistry returns a registry holding the built-in unit presets.
func NewRegistry() *Registry {
	r := &Registry{defs: make(map[string]PrimitiveDef)}
	for _, t := range []string{TypeQuad, TypeTile, TypeTriangle, TypePolygon} {
		r.defs[t] = PrimitiveDef{Name: t, Type: t, Size: [2]float32{1, 1}}
	}
	return r
}

// Register adds or replaces a preset. A zero size becomes 1x1.
func (r *Registry) Register(def PrimitiveDef) error {
	if def.Name == "" {
		return fmt.Errorf("register primitive: empty name")
	}
	switch def.Type {
	case TypeQuad, TypeTile, TypeTriangle, TypePolygon:
	default:
		return fmt.Errorf("register %q: %w: type %q", def.Name, ErrUnknownPrimitive, def.Type)
	}
	if def.Size[0] == 0 {
		def.Size[0] = 1
	}
	if def.Size[1] == 0 {
		def.Size[1] = 1
	}
	r.defs[def.Name] = def
	return nil
}

// Load reads one or more YAML documents of PrimitiveDef and registers each.
func (r *Registry) Load(in io.Reader) error {
	dec := yaml.NewDecoder(in)
	for {
		var def PrimitiveDef
		err := dec.Decode(&def)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode primitive: %w", err)
		}
		if err := r.Register(def); err != nil {
			return err
		}
	}
}

// LoadFile is Load for a file on disk.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return r.Load(bytes.NewReader(data))
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (PrimitiveDef, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Mesh builds the mesh for a preset. Quads and tiles have their corner at the origin;
// triangles and polygons are centred on it.
func (r *Registry) Mesh(name string) (physics.Mesh, error) {
	def, ok := r.defs[name]
	if !ok {
		return physics.Mesh{}, fmt.Errorf("%w: %q", ErrUnknownPrimitive, name)
	}
	w, h := def.Size[0], def.Size[1]
	switch def.Type {
	case TypeQuad, TypeTile:
		return physics.Mesh{
			Vertices: []rl.Vector2{rl.NewVector2(0, 0), rl.NewVector2(w, 0), rl.NewVector2(w, h), rl.NewVector2(0, h)},
			Indices:  []uint16{0, 1, 2, 2, 3, 0},
		}, nil
	case TypeTriangle:
		return physics.Mesh{
			Vertices: []rl.Vector2{rl.NewVector2(-w/2, -h/2), rl.NewVector2(w/2, -h/2), rl.NewVector2(0, h/2)},
			Indices:  []uint16{0, 1, 2},
		}, nil
	case TypePolygon:
		return polygon(w/2, h/2, def.Sides), nil
	}
	return physics.Mesh{}, fmt.Errorf("%w: type %q", ErrUnknownPrimitive, def.Type)
}

// Settings builds shape settings for a preset. Tiles always become tilemap shapes.
func (r *Registry) Settings(name string, objectType physics.ObjectType) (physics.ShapeSettings, error) {
	mesh, err := r.Mesh(name)
	if err != nil {
		return physics.ShapeSettings{}, err
	}
	if def := r.defs[name]; def.Type == TypeTile {
		objectType = physics.Tilemap
	}
	return physics.NewShapeSettings(mesh, nil, objectType), nil
}

// polygon is a triangle fan around the centre, which is vertex 0.
func polygon(rx, ry float32, sides int) physics.Mesh {
	if sides < minPolygonSides {
		sides = defaultPolygonSides
	}
	m := physics.Mesh{Vertices: make([]rl.Vector2, 0, sides+1)}
	m.Vertices = append(m.Vertices, rl.Vector2{})
	for i := 0; i < sides; i++ {
		a := 2 * math32.Pi * float32(i) / float32(sides)
		m.Vertices = append(m.Vertices, rl.NewVector2(rx*math32.Cos(a), ry*math32.Sin(a)))
	}
	for i := 1; i <= sides; i++ {
		next := i%sides + 1
		m.Indices = append(m.Indices, 0, uint16(i), uint16(next))
	}
	return m
}
