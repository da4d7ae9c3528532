package pathfinding

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"hammer2d/internal/physics"
)

// ErrInvalidGrid is returned when grid options describe no cells.
var ErrInvalidGrid = errors.New("invalid grid")

// GridOptions places a grid of square cells on the X/Z plane (Y is up).
type GridOptions struct {
	// WorldSize is the covered extent along X and Z.
	WorldSize rl.Vector2
	// NodeRadius is half a cell's side.
	NodeRadius float32
	// Origin is the centre of the grid in world space; waypoints take its Y.
	Origin rl.Vector3
}

// WalkableFunc decides whether the cell at (x, y) with centre world is walkable.
type WalkableFunc func(x, y int, world rl.Vector3) bool

// Grid owns the node arena used by Pathfinder.
type Grid struct {
	opts         GridOptions
	nodeDiameter float32
	sizeX, sizeY int
	bottomLeft   rl.Vector3
	nodes        []Node
}

// NewGrid allocates every node once. A nil walkable marks all cells walkable.
func NewGrid(opts GridOptions, walkable WalkableFunc) (*Grid, error) {
	if opts.NodeRadius <= 0 || opts.WorldSize.X <= 0 || opts.WorldSize.Y <= 0 {
		return nil, fmt.Errorf("grid %vx%v radius %v: %w", opts.WorldSize.X, opts.WorldSize.Y, opts.NodeRadius, ErrInvalidGrid)
	}
	d := opts.NodeRadius * 2
	g := &Grid{
		opts:         opts,
		nodeDiameter: d,
		sizeX:        int(math32.Round(opts.WorldSize.X / d)),
		sizeY:        int(math32.Round(opts.WorldSize.Y / d)),
		bottomLeft: rl.NewVector3(
			opts.Origin.X-opts.WorldSize.X/2,
			opts.Origin.Y,
			opts.Origin.Z-opts.WorldSize.Y/2,
		),
	}
	if g.sizeX < 1 || g.sizeY < 1 {
		return nil, fmt.Errorf("grid of %dx%d cells: %w", g.sizeX, g.sizeY, ErrInvalidGrid)
	}

	g.nodes = make([]Node, g.sizeX*g.sizeY)
	for y := 0; y < g.sizeY; y++ {
		for x := 0; x < g.sizeX; x++ {
			world := rl.NewVector3(
				g.bottomLeft.X+float32(x)*d+opts.NodeRadius,
				g.bottomLeft.Y,
				g.bottomLeft.Z+float32(y)*d+opts.NodeRadius,
			)
			n := &g.nodes[g.index(x, y)]
			n.GridX, n.GridY = x, y
			n.WorldPosition = world
			n.Walkable = walkable == nil || walkable(x, y, world)
			n.reset()
		}
	}
	return g, nil
}

// NewCellGrid is a shortcut for a cols x rows grid of cellSize cells whose
// bottom-left corner sits at the world origin.
func NewCellGrid(cols, rows int, cellSize float32, walkable WalkableFunc) (*Grid, error) {
	w, h := float32(cols)*cellSize, float32(rows)*cellSize
	return NewGrid(GridOptions{
		WorldSize:  rl.NewVector2(w, h),
		NodeRadius: cellSize / 2,
		Origin:     rl.NewVector3(w/2, 0, h/2),
	}, walkable)
}

func (g *Grid) index(x, y int) int {
	return y*g.sizeX + x
}

// Size returns the number of cells along X and Z.
func (g *Grid) Size() (int, int) { return g.sizeX, g.sizeY }

// MaxSize is the total number of nodes, the open set's capacity.
func (g *Grid) MaxSize() int { return len(g.nodes) }

// NodeDiameter is a cell's side length.
func (g *Grid) NodeDiameter() float32 { return g.nodeDiameter }

// Node returns the node for id. The pointer aliases the arena.
func (g *Grid) Node(id NodeID) *Node {
	return &g.nodes[id]
}

// NodeAt returns the id at grid coordinates; ok is false outside the grid.
func (g *Grid) NodeAt(x, y int) (NodeID, bool) {
	if x < 0 || y < 0 || x >= g.sizeX || y >= g.sizeY {
		return NoNode, false
	}
	return NodeID(g.index(x, y)), true
}

// NodeFromWorldPoint maps a world position to the cell containing it; points outside
// the grid clamp to the nearest edge cell.
func (g *Grid) NodeFromWorldPoint(p rl.Vector3) NodeID {
	percentX := clamp01((p.X - g.bottomLeft.X) / g.opts.WorldSize.X)
	percentY := clamp01((p.Z - g.bottomLeft.Z) / g.opts.WorldSize.Y)
	x := min(int(math32.Floor(percentX*float32(g.sizeX))), g.sizeX-1)
	y := min(int(math32.Floor(percentY*float32(g.sizeY))), g.sizeY-1)
	return NodeID(g.index(x, y))
}

// WorldPoint returns the centre of the cell at (x, y).
func (g *Grid) WorldPoint(x, y int) rl.Vector3 {
	id, ok := g.NodeAt(x, y)
	if !ok {
		return g.bottomLeft
	}
	return g.nodes[id].WorldPosition
}

// Neighbours appends the up to eight surrounding cells of id to buf, always in the
// same order (x-major from -1 to +1), and returns the extended slice.
func (g *Grid) Neighbours(id NodeID, buf []NodeID) []NodeID {
	n := &g.nodes[id]
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if nb, ok := g.NodeAt(n.GridX+dx, n.GridY+dy); ok {
				buf = append(buf, nb)
			}
		}
	}
	return buf
}

// SetWalkable toggles one cell; out-of-range coordinates are ignored.
func (g *Grid) SetWalkable(x, y int, walkable bool) {
	if id, ok := g.NodeAt(x, y); ok {
		g.nodes[id].Walkable = walkable
	}
}

// Rebuild re-evaluates walkability for every cell. A nil walkable opens all cells.
func (g *Grid) Rebuild(walkable WalkableFunc) {
	for i := range g.nodes {
		n := &g.nodes[i]
		n.Walkable = walkable == nil || walkable(n.GridX, n.GridY, n.WorldPosition)
	}
}

// MarkBlocked makes unwalkable every cell whose centre lies inside one of boxes placed
// at offset. Physics X maps to world X and physics Y to world Z, so tilemap colliders
// can block the grid directly.
func (g *Grid) MarkBlocked(boxes []physics.AABB, offset rl.Vector2) int {
	blocked := 0
	for _, box := range boxes {
		world := box.Translate(offset)
		for i := range g.nodes {
			n := &g.nodes[i]
			if !n.Walkable {
				continue
			}
			if world.Contains(rl.NewVector2(n.WorldPosition.X, n.WorldPosition.Z)) {
				n.Walkable = false
				blocked++
			}
		}
	}
	return blocked
}

// Reset clears per-search state on every node.
func (g *Grid) Reset() {
	for i := range g.nodes {
		g.nodes[i].reset()
	}
}

func clamp01(f float32) float32 {
	return math32.Max(0, math32.Min(1, f))
}
