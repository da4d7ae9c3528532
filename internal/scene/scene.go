package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"hammer2d/internal/pathfinding"
	"hammer2d/internal/physics"
)

const (
	defaultZoom = 20
	minZoom     = 2
	maxZoom     = 200
	zoomStep    = 1.1
	panSpeed    = 400

	cellAlpha    = 40
	blockedAlpha = 200
	waypointSize = 0.15
)

var (
	colorCell    = rl.NewColor(128, 128, 128, cellAlpha)
	colorBlocked = rl.NewColor(90, 90, 110, blockedAlpha)
	colorPath    = rl.NewColor(240, 200, 40, 255)
	colorDynamic = rl.NewColor(80, 220, 80, 255)
	colorStatic  = rl.NewColor(220, 80, 80, 255)
	colorKinetic = rl.NewColor(80, 140, 220, 255)
	colorTiles   = rl.NewColor(160, 120, 80, 160)
)

// Scene draws a physics world and a pathfinding grid through a 2D camera. One world unit
// is Zoom pixels; physics X/Y and grid X/Z share the screen's x/y axes.
type Scene struct {
	Camera      rl.Camera2D
	GridVisible bool

	world *physics.World
	grid  *pathfinding.Grid
	paths [][]rl.Vector3
}

// New returns a scene centred on the world origin. grid may be nil.
func New(world *physics.World, grid *pathfinding.Grid) *Scene {
	s := &Scene{world: world, grid: grid, GridVisible: true}
	s.Camera.Zoom = defaultZoom
	return s
}

// SetPaths replaces the paths drawn on top of the grid.
func (s *Scene) SetPaths(paths ...[]rl.Vector3) {
	s.paths = paths
}

// Update pans with the arrow keys and zooms with the mouse wheel.
func (s *Scene) Update(dt float32) {
	s.Camera.Offset = rl.NewVector2(float32(rl.GetScreenWidth())/2, float32(rl.GetScreenHeight())/2)

	pan := rl.Vector2Zero()
	if rl.IsKeyDown(rl.KeyRight) {
		pan.X++
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		pan.X--
	}
	if rl.IsKeyDown(rl.KeyDown) {
		pan.Y++
	}
	if rl.IsKeyDown(rl.KeyUp) {
		pan.Y--
	}
	s.Camera.Target = rl.Vector2Add(s.Camera.Target, rl.Vector2Scale(pan, panSpeed*dt/s.Camera.Zoom))

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		zoom := s.Camera.Zoom
		if wheel > 0 {
			zoom *= zoomStep
		} else {
			zoom /= zoomStep
		}
		s.Camera.Zoom = rl.Clamp(zoom, minZoom, maxZoom)
	}
}

// Focus moves the camera to p.
func (s *Scene) Focus(p rl.Vector2) {
	s.Camera.Target = p
}

// Draw renders grid, bodies and paths in world space.
func (s *Scene) Draw() {
	rl.BeginMode2D(s.Camera)
	if s.GridVisible && s.grid != nil {
		s.drawGrid()
	}
	if s.world != nil {
		s.drawBodies()
	}
	for _, p := range s.paths {
		drawPath(p)
	}
	rl.EndMode2D()
}

func (s *Scene) drawGrid() {
	cols, rows := s.grid.Size()
	d := s.grid.NodeDiameter()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			id, _ := s.grid.NodeAt(x, y)
			n := s.grid.Node(id)
			r := rl.NewRectangle(n.WorldPosition.X-d/2, n.WorldPosition.Z-d/2, d, d)
			if !n.Walkable {
				rl.DrawRectangleRec(r, colorBlocked)
				continue
			}
			rl.DrawRectangleLinesEx(r, 1/s.Camera.Zoom, colorCell)
		}
	}
}

func (s *Scene) drawBodies() {
	for _, id := range s.world.BodyIDs() {
		b, err := s.world.Body(id)
		if err != nil {
			continue
		}
		if b.ObjectType == physics.Tilemap {
			for _, tile := range b.TilemapAABBs {
				rl.DrawRectangleRec(tile.Translate(b.Position).Rectangle(), colorTiles)
			}
			continue
		}
		c := colorDynamic
		switch b.MotionType {
		case physics.Static:
			c = colorStatic
		case physics.Kinematic:
			c = colorKinetic
		}
		rl.DrawRectangleLinesEx(b.AABB.Translate(b.Position).Rectangle(), 2/s.Camera.Zoom, c)
	}
}

func drawPath(path []rl.Vector3) {
	for i, wp := range path {
		p := rl.NewVector2(wp.X, wp.Z)
		rl.DrawCircleV(p, waypointSize, colorPath)
		if i > 0 {
			prev := rl.NewVector2(path[i-1].X, path[i-1].Z)
			rl.DrawLineV(prev, p, colorPath)
		}
	}
}
