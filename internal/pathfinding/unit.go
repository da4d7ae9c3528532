package pathfinding

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// arriveDistance is how close a Unit must get before advancing to the next waypoint.
const arriveDistance = 0.01

// Unit walks a path handed to it by a RequestManager callback.
type Unit struct {
	Position rl.Vector3
	Speed    float32

	path   []rl.Vector3
	target int
}

// NewUnit places a unit at position.
func NewUnit(position rl.Vector3, speed float32) *Unit {
	return &Unit{Position: position, Speed: speed}
}

// OnPathFound is a PathCallback. A successful path replaces the current one.
func (u *Unit) OnPathFound(path []rl.Vector3, success bool) {
	if !success || len(path) == 0 {
		return
	}
	u.path = append(u.path[:0], path...)
	u.target = 0
}

// Moving reports whether waypoints remain.
func (u *Unit) Moving() bool {
	return u.target < len(u.path)
}

// Path returns the remaining waypoints.
func (u *Unit) Path() []rl.Vector3 {
	if !u.Moving() {
		return nil
	}
	return u.path[u.target:]
}

// Update advances the unit by Speed*dt along its path.
func (u *Unit) Update(dt float32) {
	budget := u.Speed * dt
	for budget > 0 && u.Moving() {
		wp := u.path[u.target]
		delta := rl.Vector3Subtract(wp, u.Position)
		dist := rl.Vector3Length(delta)
		if dist <= budget || dist <= arriveDistance {
			u.Position = wp
			u.target++
			budget -= dist
			continue
		}
		u.Position = rl.Vector3Add(u.Position, rl.Vector3Scale(delta, budget/dist))
		budget = 0
	}
}
