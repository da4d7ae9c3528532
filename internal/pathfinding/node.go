package pathfinding

import rl "github.com/gen2brain/raylib-go/raylib"

// NodeID indexes a node in its Grid's arena.
type NodeID int

// NoNode marks a missing parent.
const NoNode NodeID = -1

// Node is one walkability cell. Nodes are allocated once per grid and reused by every
// search; the cost fields, Parent and HeapIndex are reset at the start of each search.
type Node struct {
	GridX, GridY  int
	WorldPosition rl.Vector3
	Walkable      bool

	GCost int
	HCost int
	// Parent is a back-reference into the same arena, not ownership.
	Parent    NodeID
	HeapIndex int
}

// FCost is GCost + HCost.
func (n *Node) FCost() int {
	return n.GCost + n.HCost
}

func (n *Node) reset() {
	n.GCost = 0
	n.HCost = 0
	n.Parent = NoNode
	n.HeapIndex = -1
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareNodes ranks a above b (positive result) when a has the lower FCost,
// falling back to the lower HCost on ties.
func (g *Grid) compareNodes(a, b NodeID) int {
	na, nb := &g.nodes[a], &g.nodes[b]
	c := cmpInt(na.FCost(), nb.FCost())
	if c == 0 {
		c = cmpInt(na.HCost, nb.HCost)
	}
	return -c
}

func (g *Grid) heapSlot(id NodeID) *int {
	return &g.nodes[id].HeapIndex
}
