package physics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ObjectType tags what kind of engine object a body stands for.
type ObjectType uint8

const (
	// Sprite bodies take part in the sprite-sprite broad phase.
	Sprite ObjectType = iota
	// Tilemap bodies are built from a union of tile boxes.
	Tilemap
)

func (o ObjectType) String() string {
	switch o {
	case Sprite:
		return "sprite"
	case Tilemap:
		return "tilemap"
	}
	return fmt.Sprintf("objecttype(%d)", uint8(o))
}

// Mesh is a 2D collision mesh in local space.
type Mesh struct {
	Vertices []rl.Vector2
	Indices  []uint16
}

// MeshFromVertices3 drops Z from render-mesh vertices to build a local collision mesh.
func MeshFromVertices3(vertices []rl.Vector3, indices []uint16) Mesh {
	out := make([]rl.Vector2, len(vertices))
	for i, v := range vertices {
		out[i] = rl.NewVector2(v.X, v.Y)
	}
	idx := make([]uint16, len(indices))
	copy(idx, indices)
	return Mesh{Vertices: out, Indices: idx}
}

// ShapeSettings describes the shape passed to CreateAndAddBody.
// For Tilemap shapes UserData may carry the pre-built []AABB tile colliders.
type ShapeSettings struct {
	Mesh       Mesh
	UserData   any
	ObjectType ObjectType
}

// NewShapeSettings returns settings for mesh tagged with objectType.
func NewShapeSettings(mesh Mesh, userData any, objectType ObjectType) ShapeSettings {
	return ShapeSettings{Mesh: mesh, UserData: userData, ObjectType: objectType}
}

// bounds resolves the body-level AABB and tile colliders for the settings.
// A tilemap with no mesh takes its bounds from the union of its tiles.
func (s ShapeSettings) bounds() (AABB, []AABB, error) {
	var tiles []AABB
	if s.ObjectType == Tilemap {
		if t, ok := s.UserData.([]AABB); ok {
			tiles = make([]AABB, len(t))
			copy(tiles, t)
		}
	}
	if len(s.Mesh.Vertices) == 0 && len(tiles) > 0 {
		verts := make([]rl.Vector2, 0, len(tiles)*2)
		for _, t := range tiles {
			verts = append(verts, t.Min, t.Max)
		}
		box, err := ComputeAABB(verts)
		return box, tiles, err
	}
	// A sprite may pass an explicit box instead of a mesh.
	if box, ok := s.UserData.(AABB); ok && len(s.Mesh.Vertices) == 0 {
		checked, err := ComputeAABB([]rl.Vector2{box.Min, box.Max})
		return checked, nil, err
	}
	box, err := ComputeAABB(s.Mesh.Vertices)
	return box, tiles, err
}
