package pathfinding

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/slices"

	"hammer2d/internal/heap"
	"hammer2d/internal/logger"
)

// Straight and diagonal step costs.
const (
	costStraight = 10
	costDiagonal = 14
)

// Options tune the search.
type Options struct {
	// Simplify drops waypoints that continue in the same direction as the previous one.
	Simplify bool
	// RefreshOpenNodes re-sorts an open node in the heap when a cheaper route to it is
	// found. Without it the node keeps its old heap position until popped.
	RefreshOpenNodes bool
}

// Finder runs one synchronous path search.
type Finder interface {
	FindPath(start, end rl.Vector3) ([]rl.Vector3, bool)
}

var _ Finder = (*Pathfinder)(nil)

// Pathfinder runs A* over a Grid. It reuses the grid's nodes and its own open and
// closed sets between searches, so it is not safe for concurrent use.
type Pathfinder struct {
	grid   *Grid
	opts   Options
	log    *logger.Logger
	open   *heap.Heap[NodeID]
	closed []bool
	nbuf   []NodeID

	// relaxed, when set, sees every open node whose cost just dropped.
	relaxed func(id NodeID)
}

// NewPathfinder binds a pathfinder to grid.
func NewPathfinder(grid *Grid, opts Options, log *logger.Logger) *Pathfinder {
	return &Pathfinder{
		grid:   grid,
		opts:   opts,
		log:    log,
		open:   heap.New(grid.MaxSize(), grid.compareNodes, grid.heapSlot),
		closed: make([]bool, grid.MaxSize()),
		nbuf:   make([]NodeID, 0, 8),
	}
}

// Grid returns the searched grid.
func (p *Pathfinder) Grid() *Grid { return p.grid }

// Distance is the octile heuristic between two nodes: 14 per diagonal step and
// 10 per straight step.
func Distance(a, b *Node) int {
	dx := abs(a.GridX - b.GridX)
	dy := abs(a.GridY - b.GridY)
	if dx > dy {
		return costDiagonal*dy + costStraight*(dx-dy)
	}
	return costDiagonal*dx + costStraight*(dy-dx)
}

// FindPath returns the waypoints from start to end, excluding the start cell itself.
// It reports false with an empty path when either endpoint is blocked or the target
// cannot be reached.
func (p *Pathfinder) FindPath(start, end rl.Vector3) ([]rl.Vector3, bool) {
	g := p.grid
	startID := g.NodeFromWorldPoint(start)
	targetID := g.NodeFromWorldPoint(end)
	if !g.nodes[startID].Walkable || !g.nodes[targetID].Walkable {
		return []rl.Vector3{}, false
	}

	g.Reset()
	clear(p.closed)
	p.open.Clear()
	target := &g.nodes[targetID]

	if err := p.open.Add(startID); err != nil {
		p.log.Logf("pathfinding: %v", err)
		return []rl.Vector3{}, false
	}

	for p.open.Count() > 0 {
		currentID, _ := p.open.RemoveFirst()
		p.closed[currentID] = true
		if currentID == targetID {
			return p.retrace(startID, targetID), true
		}
		current := &g.nodes[currentID]

		p.nbuf = g.Neighbours(currentID, p.nbuf[:0])
		for _, nbID := range p.nbuf {
			nb := &g.nodes[nbID]
			if !nb.Walkable || p.closed[nbID] {
				continue
			}
			cost := current.GCost + Distance(current, nb)
			inOpen := p.open.Contains(nbID)
			if inOpen && cost >= nb.GCost {
				continue
			}
			nb.GCost = cost
			nb.HCost = Distance(nb, target)
			nb.Parent = currentID
			if !inOpen {
				if err := p.open.Add(nbID); err != nil {
					p.log.Logf("pathfinding: %v", err)
					return []rl.Vector3{}, false
				}
			} else {
				if p.opts.RefreshOpenNodes {
					p.open.UpdateItem(nbID)
				}
				if p.relaxed != nil {
					p.relaxed(nbID)
				}
			}
		}
	}
	return []rl.Vector3{}, false
}

func (p *Pathfinder) retrace(startID, endID NodeID) []rl.Vector3 {
	var ids []NodeID
	for id := endID; id != startID && id != NoNode; id = p.grid.nodes[id].Parent {
		ids = append(ids, id)
	}
	slices.Reverse(ids)
	if p.opts.Simplify {
		ids = p.simplify(startID, ids)
	}

	path := make([]rl.Vector3, len(ids))
	for i, id := range ids {
		path[i] = p.grid.nodes[id].WorldPosition
	}
	return path
}

// simplify keeps the last node of every straight run. The final node always survives.
func (p *Pathfinder) simplify(startID NodeID, ids []NodeID) []NodeID {
	if len(ids) < 2 {
		return ids
	}
	out := make([]NodeID, 0, len(ids))
	prev := startID
	for i, id := range ids {
		if i == len(ids)-1 {
			out = append(out, id)
			break
		}
		next := ids[i+1]
		if p.direction(prev, id) != p.direction(id, next) {
			out = append(out, id)
		}
		prev = id
	}
	return out
}

func (p *Pathfinder) direction(from, to NodeID) [2]int {
	a, b := &p.grid.nodes[from], &p.grid.nodes[to]
	return [2]int{b.GridX - a.GridX, b.GridY - a.GridY}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
