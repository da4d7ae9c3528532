package physics

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// AABB is an axis-aligned bounding box in the body's local space.
// It is computed once from a shape's vertices; recomputing means building a new AABB.
type AABB struct {
	Min rl.Vector2
	Max rl.Vector2
}

// NewAABB returns the box spanning (minX, minY) to (maxX, maxY).
func NewAABB(minX, minY, maxX, maxY float32) AABB {
	return AABB{Min: rl.NewVector2(minX, minY), Max: rl.NewVector2(maxX, maxY)}
}

// Width is Max.X - Min.X.
func (a AABB) Width() float32 { return a.Max.X - a.Min.X }

// Height is Max.Y - Min.Y.
func (a AABB) Height() float32 { return a.Max.Y - a.Min.Y }

// ComputeAABB takes the per-axis min and max over vertices.
// An empty vertex set, or any NaN/Inf coordinate, returns ErrInvalidShape so that
// no infinite extents leak into collision tests.
func ComputeAABB(vertices []rl.Vector2) (AABB, error) {
	if len(vertices) == 0 {
		return AABB{}, fmt.Errorf("compute aabb: no vertices: %w", ErrInvalidShape)
	}
	var minX, minY float32 = math32.MaxFloat32, math32.MaxFloat32
	var maxX, maxY float32 = -math32.MaxFloat32, -math32.MaxFloat32
	for i, v := range vertices {
		if !isFinite(v.X) || !isFinite(v.Y) {
			return AABB{}, fmt.Errorf("compute aabb: vertex %d (%v, %v) is not finite: %w", i, v.X, v.Y, ErrInvalidShape)
		}
		minX = math32.Min(minX, v.X)
		minY = math32.Min(minY, v.Y)
		maxX = math32.Max(maxX, v.X)
		maxY = math32.Max(maxY, v.Y)
	}
	return NewAABB(minX, minY, maxX, maxY), nil
}

// CheckCollision reports whether a box of this size placed at aPos overlaps a box
// of size b placed at bPos. Width and Height are treated as offsets from each
// body's position, not as absolute extents; Min is ignored. Touching edges count.
func (a AABB) CheckCollision(aPos, bPos rl.Vector2, b AABB) bool {
	collX := aPos.X+a.Width() >= bPos.X && bPos.X+b.Width() >= aPos.X
	collY := aPos.Y+a.Height() >= bPos.Y && bPos.Y+b.Height() >= aPos.Y
	return collX && collY
}

// Contains reports whether p lies inside the box, edges included.
func (a AABB) Contains(p rl.Vector2) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

// Translate returns the box moved by offset.
func (a AABB) Translate(offset rl.Vector2) AABB {
	return AABB{Min: rl.Vector2Add(a.Min, offset), Max: rl.Vector2Add(a.Max, offset)}
}

// Rectangle converts the box to a raylib rectangle for drawing.
func (a AABB) Rectangle() rl.Rectangle {
	return rl.NewRectangle(a.Min.X, a.Min.Y, a.Width(), a.Height())
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
