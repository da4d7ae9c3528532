package pathfinding

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"hammer2d/internal/logger"
)

func cell(x, y int) rl.Vector3 {
	return rl.NewVector3(float32(x)+0.5, 0, float32(y)+0.5)
}

func newFinder(t *testing.T, cols, rows int, blocked [][2]int, opts Options) *Pathfinder {
	t.Helper()
	g, err := NewCellGrid(cols, rows, 1, nil)
	if err != nil {
		t.Fatalf("NewCellGrid: %v", err)
	}
	for _, b := range blocked {
		g.SetWalkable(b[0], b[1], false)
	}
	return NewPathfinder(g, opts, logger.New(""))
}

func TestDistance(t *testing.T) {
	tests := []struct {
		ax, ay, bx, by int
		want           int
	}{
		{0, 0, 0, 0, 0},
		{0, 0, 3, 0, 30},
		{0, 0, 0, 2, 20},
		{0, 0, 4, 4, 56},
		{0, 0, 3, 1, 34},
		{5, 2, 1, 4, 48},
	}
	for _, tt := range tests {
		a := &Node{GridX: tt.ax, GridY: tt.ay}
		b := &Node{GridX: tt.bx, GridY: tt.by}
		if got := Distance(a, b); got != tt.want {
			t.Fatalf("Distance(%d,%d -> %d,%d) = %d, want %d", tt.ax, tt.ay, tt.bx, tt.by, got, tt.want)
		}
		if Distance(b, a) != Distance(a, b) {
			t.Fatalf("Distance not symmetric for %+v", tt)
		}
	}
}

func TestFindPathDiagonalOpenGrid(t *testing.T) {
	p := newFinder(t, 5, 5, nil, Options{})
	path, ok := p.FindPath(cell(0, 0), cell(4, 4))
	if !ok {
		t.Fatalf("no path on an open grid")
	}
	want := []rl.Vector3{cell(1, 1), cell(2, 2), cell(3, 3), cell(4, 4)}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("waypoint %d = %v, want %v", i, path[i], want[i])
		}
	}
}

func TestFindPathSameCell(t *testing.T) {
	p := newFinder(t, 3, 3, nil, Options{})
	path, ok := p.FindPath(cell(1, 1), rl.NewVector3(1.9, 0, 1.1))
	if !ok || len(path) != 0 {
		t.Fatalf("same-cell search = %v, %v", path, ok)
	}
}

func TestFindPathBlocked(t *testing.T) {
	wall := [][2]int{{2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4}}

	tests := []struct {
		name       string
		start, end rl.Vector3
	}{
		{"wall splits grid", cell(0, 2), cell(4, 2)},
		{"start blocked", cell(2, 1), cell(4, 4)},
		{"target blocked", cell(0, 0), cell(2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFinder(t, 5, 5, wall, Options{})
			path, ok := p.FindPath(tt.start, tt.end)
			if ok {
				t.Fatalf("found a path through a wall: %v", path)
			}
			if path == nil || len(path) != 0 {
				t.Fatalf("failed search must return an empty path, got %#v", path)
			}
		})
	}
}

func TestFindPathAroundObstacle(t *testing.T) {
	// Wall with a gap at the top.
	wall := [][2]int{{2, 0}, {2, 1}, {2, 2}, {2, 3}}
	for _, refresh := range []bool{false, true} {
		p := newFinder(t, 5, 5, wall, Options{RefreshOpenNodes: refresh})
		path, ok := p.FindPath(cell(0, 0), cell(4, 0))
		if !ok {
			t.Fatalf("refresh=%v: no path through the gap", refresh)
		}
		if last := path[len(path)-1]; last != cell(4, 0) {
			t.Fatalf("refresh=%v: path ends at %v", refresh, last)
		}
		through := false
		for i, wp := range path {
			n := p.Grid().Node(p.Grid().NodeFromWorldPoint(wp))
			if !n.Walkable {
				t.Fatalf("refresh=%v: waypoint %d %v is blocked", refresh, i, wp)
			}
			if n.GridX == 2 && n.GridY == 4 {
				through = true
			}
		}
		if !through {
			t.Fatalf("refresh=%v: path %v skipped the gap", refresh, path)
		}
	}
}

func TestRefreshOpenNodes(t *testing.T) {
	// Start (0,4) reaches (2,4) diagonally from (1,5) before the straight route from
	// (1,4) lowers its cost while it is still open.
	tests := []struct {
		refresh  bool
		wantSlot int
	}{
		{refresh: false, wantSlot: 1},
		{refresh: true, wantSlot: 0},
	}
	for _, tt := range tests {
		p := newFinder(t, 6, 6, [][2]int{{2, 5}}, Options{RefreshOpenNodes: tt.refresh})
		g := p.Grid()
		improved, _ := g.NodeAt(2, 4)

		var seen []NodeID
		var slots []int
		p.relaxed = func(id NodeID) {
			seen = append(seen, id)
			slots = append(slots, g.Node(id).HeapIndex)
		}
		path, ok := p.FindPath(cell(0, 4), cell(5, 5))
		if !ok || len(path) != 5 {
			t.Fatalf("refresh=%v: path %v ok=%v", tt.refresh, path, ok)
		}
		if len(seen) != 1 || seen[0] != improved {
			t.Fatalf("refresh=%v: relaxed %v, want only node %d", tt.refresh, seen, improved)
		}
		if slots[0] != tt.wantSlot {
			t.Fatalf("refresh=%v: improved node in slot %d, want %d", tt.refresh, slots[0], tt.wantSlot)
		}
	}
}

func TestFindPathIsDeterministic(t *testing.T) {
	wall := [][2]int{{1, 1}, {2, 1}, {3, 1}, {3, 2}, {3, 3}}
	p := newFinder(t, 6, 6, wall, Options{})
	first, ok := p.FindPath(cell(0, 0), cell(5, 5))
	if !ok {
		t.Fatalf("no path")
	}
	for i := 0; i < 5; i++ {
		again, _ := p.FindPath(cell(0, 0), cell(5, 5))
		if len(again) != len(first) {
			t.Fatalf("run %d: %v vs %v", i, again, first)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d differs at %d", i, j)
			}
		}
	}
}

func TestFindPathSimplify(t *testing.T) {
	p := newFinder(t, 5, 5, nil, Options{Simplify: true})
	path, ok := p.FindPath(cell(0, 0), cell(4, 4))
	if !ok || len(path) != 1 || path[0] != cell(4, 4) {
		t.Fatalf("straight diagonal should collapse to its target, got %v", path)
	}

	// Right along the bottom row then up the last column.
	p = newFinder(t, 5, 5, [][2]int{{0, 1}, {1, 1}, {2, 1}, {3, 1}}, Options{Simplify: true})
	path, ok = p.FindPath(cell(0, 0), cell(4, 2))
	if !ok {
		t.Fatalf("no path")
	}
	if path[len(path)-1] != cell(4, 2) {
		t.Fatalf("simplified path lost its target: %v", path)
	}
	if len(path) > 3 {
		t.Fatalf("path not simplified: %v", path)
	}
}
