package primitives

import (
	"errors"
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"hammer2d/internal/physics"
)

func TestBuiltinsProduceValidShapes(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{TypeQuad, TypeTile, TypeTriangle, TypePolygon} {
		t.Run(name, func(t *testing.T) {
			mesh, err := r.Mesh(name)
			if err != nil {
				t.Fatalf("Mesh: %v", err)
			}
			if len(mesh.Indices)%3 != 0 {
				t.Fatalf("indices not triangles: %v", mesh.Indices)
			}
			for _, i := range mesh.Indices {
				if int(i) >= len(mesh.Vertices) {
					t.Fatalf("index %d out of range", i)
				}
			}
			box, err := physics.ComputeAABB(mesh.Vertices)
			if err != nil {
				t.Fatalf("ComputeAABB: %v", err)
			}
			if box.Width() < 0.99 || box.Width() > 1.01 {
				t.Fatalf("unit preset has width %v", box.Width())
			}
		})
	}
}

func TestLoadYAMLPresets(t *testing.T) {
	const doc = `name: crate
type: quad
size: [2, 3]
---
name: wheel
type: polygon
size: [1, 1]
sides: 6
`
	r := NewRegistry()
	if err := r.Load(strings.NewReader(doc)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	mesh, err := r.Mesh("crate")
	if err != nil {
		t.Fatalf("Mesh: %v", err)
	}
	box, _ := physics.ComputeAABB(mesh.Vertices)
	if box != physics.NewAABB(0, 0, 2, 3) {
		t.Fatalf("crate bounds = %v", box)
	}
	wheel, _ := r.Mesh("wheel")
	if len(wheel.Vertices) != 7 || len(wheel.Indices) != 18 {
		t.Fatalf("wheel = %d vertices, %d indices", len(wheel.Vertices), len(wheel.Indices))
	}
}

func TestRejectsUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Mesh("ghost"); !errors.Is(err, ErrUnknownPrimitive) {
		t.Fatalf("expected ErrUnknownPrimitive, got %v", err)
	}
	if err := r.Load(strings.NewReader("name: x\ntype: blob\n")); !errors.Is(err, ErrUnknownPrimitive) {
		t.Fatalf("expected ErrUnknownPrimitive for bad type, got %v", err)
	}
}

func TestSettingsTileIsTilemap(t *testing.T) {
	r := NewRegistry()
	s, err := r.Settings(TypeTile, physics.Sprite)
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if s.ObjectType != physics.Tilemap {
		t.Fatalf("tile preset object type = %v", s.ObjectType)
	}

	w := physics.NewWorld()
	s, _ = r.Settings("triangle", physics.Sprite)
	if _, err := w.CreateAndAddBody(s, physics.Dynamic, rl.Vector2{}); err != nil {
		t.Fatalf("CreateAndAddBody from preset: %v", err)
	}
}
