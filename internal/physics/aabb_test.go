package physics

import (
	"errors"
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestComputeAABBEnclosesAllVertices(t *testing.T) {
	sets := map[string][]rl.Vector2{
		"single":   {rl.NewVector2(3, -2)},
		"quad":     {rl.NewVector2(0, 0), rl.NewVector2(1, 0), rl.NewVector2(1, 1), rl.NewVector2(0, 1)},
		"negative": {rl.NewVector2(-5, -7), rl.NewVector2(-1, 2), rl.NewVector2(-3, 9)},
		"mixed":    {rl.NewVector2(0.5, 100), rl.NewVector2(-0.25, -100), rl.NewVector2(42, 0)},
	}

	for name, verts := range sets {
		t.Run(name, func(t *testing.T) {
			box, err := ComputeAABB(verts)
			if err != nil {
				t.Fatalf("ComputeAABB: %v", err)
			}
			for i, v := range verts {
				if !box.Contains(v) {
					t.Fatalf("vertex %d %v outside %v", i, v, box)
				}
			}
			if box.Width() < 0 || box.Height() < 0 {
				t.Fatalf("negative extent: %v", box)
			}
		})
	}
}

func TestComputeAABBTightBounds(t *testing.T) {
	box, err := ComputeAABB([]rl.Vector2{rl.NewVector2(1, 2), rl.NewVector2(4, -1), rl.NewVector2(2, 6)})
	if err != nil {
		t.Fatalf("ComputeAABB: %v", err)
	}
	want := NewAABB(1, -1, 4, 6)
	if box != want {
		t.Fatalf("got %v, want %v", box, want)
	}
	if box.Width() != 3 || box.Height() != 7 {
		t.Fatalf("width/height = %v/%v, want 3/7", box.Width(), box.Height())
	}
}

func TestComputeAABBRejectsDegenerateInput(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	cases := map[string][]rl.Vector2{
		"empty": nil,
		"nan":   {rl.NewVector2(0, 0), rl.NewVector2(nan, 1)},
		"inf":   {rl.NewVector2(inf, 0)},
	}
	for name, verts := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ComputeAABB(verts); !errors.Is(err, ErrInvalidShape) {
				t.Fatalf("expected ErrInvalidShape, got %v", err)
			}
		})
	}
}

func TestCheckCollisionIsPositionRelative(t *testing.T) {
	unit := NewAABB(0, 0, 2, 2)
	// Min is far from the origin but only the width/height matter.
	offset := NewAABB(50, 50, 52, 52)

	tests := []struct {
		name string
		a    AABB
		aPos rl.Vector2
		bPos rl.Vector2
		b    AABB
		want bool
	}{
		{"overlap", unit, rl.NewVector2(0, 0), rl.NewVector2(1, 1), unit, true},
		{"touching edge", unit, rl.NewVector2(0, 0), rl.NewVector2(2, 0), unit, true},
		{"apart on x", unit, rl.NewVector2(0, 0), rl.NewVector2(2.5, 0), unit, false},
		{"apart on y", unit, rl.NewVector2(0, 0), rl.NewVector2(0, -3), unit, false},
		{"min ignored", offset, rl.NewVector2(0, 0), rl.NewVector2(1, 1), offset, true},
		{"b left of a", unit, rl.NewVector2(5, 5), rl.NewVector2(3, 4), unit, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.CheckCollision(tt.aPos, tt.bPos, tt.b); got != tt.want {
				t.Fatalf("CheckCollision = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAABBTranslate(t *testing.T) {
	box := NewAABB(0, 0, 1, 2).Translate(rl.NewVector2(3, -1))
	if box != NewAABB(3, -1, 4, 1) {
		t.Fatalf("unexpected translated box %v", box)
	}
}
