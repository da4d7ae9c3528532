// Package sandbox wires physics, pathfinding and the ECS into one steppable scenario
// shared by the command line tools and viewers.
package sandbox

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"hammer2d/internal/bodysync"
	"hammer2d/internal/engineconfig"
	"hammer2d/internal/logger"
	"hammer2d/internal/mapgen"
	"hammer2d/internal/pathfinding"
	"hammer2d/internal/physics"
	"hammer2d/internal/primitives"
)

// Options sizes a scenario.
type Options struct {
	Seed   int64
	Bodies int
	// Shape is the primitives preset used for falling bodies.
	Shape string
}

// Scenario is a generated obstacle map with a tilemap body, falling sprites and one unit
// walking between random open cells.
type Scenario struct {
	Map      *mapgen.Map
	Physics  *physics.Instance
	ECS      ecs.World
	Sync     *bodysync.System
	Grid     *pathfinding.Grid
	Finder   *pathfinding.Pathfinder
	Requests *pathfinding.RequestManager
	Unit     *pathfinding.Unit

	log      *logger.Logger
	rng      *rand.Rand
	awaiting bool
	found    int
	failed   int
}

// New builds a scenario from cfg. Map tiles match grid cells, the tilemap body sits at
// the origin and sprites spawn along the top edge.
func New(cfg engineconfig.Config, opts Options, log *logger.Logger) (*Scenario, error) {
	pf := cfg.Pathfinding
	grid, err := pathfinding.NewGrid(pathfinding.GridOptions{
		WorldSize:  rl.NewVector2(pf.WorldWidth, pf.WorldDepth),
		NodeRadius: pf.NodeRadius,
		Origin:     rl.NewVector3(pf.WorldWidth/2, 0, pf.WorldDepth/2),
	}, nil)
	if err != nil {
		return nil, err
	}
	cols, rows := grid.Size()
	seed := opts.Seed
	if seed == 0 {
		seed = 1
	}
	m := mapgen.Generate(mapgen.Options{Width: cols, Depth: rows, TileSize: grid.NodeDiameter(), Seed: seed})
	grid.Rebuild(m.WalkableCell)

	s := &Scenario{
		Map:     m,
		Physics: physics.NewInstance(physics.WithGravity(cfg.Physics.Gravity), physics.WithLogger(log)),
		ECS:     ecs.NewWorld(),
		Grid:    grid,
		log:     log,
		rng:     rand.New(rand.NewSource(seed)),
	}
	s.Sync = bodysync.NewSystem(&s.ECS, s.Physics, log)
	s.Finder = pathfinding.NewPathfinder(grid, pathfinding.Options{
		Simplify:         pf.Simplify,
		RefreshOpenNodes: pf.RefreshOpenNodes,
	}, log)
	s.Requests = pathfinding.NewRequestManagerWithOptions(s.Finder, pathfinding.ManagerOptions{
		Deferred:     pf.Deferred,
		MaxPerUpdate: pf.MaxPerUpdate,
	}, log)

	if tiles := m.TileAABBs(); len(tiles) > 0 {
		if _, err := s.Physics.Interface.CreateAndAddBody(m.Tilemap(), physics.Static, rl.Vector2{}); err != nil {
			return nil, fmt.Errorf("tilemap body: %w", err)
		}
	}

	shape := opts.Shape
	if shape == "" {
		shape = primitives.TypeQuad
	}
	settings, err := primitives.NewRegistry().Settings(shape, physics.Sprite)
	if err != nil {
		return nil, err
	}
	for i := 0; i < opts.Bodies; i++ {
		x := (float32(i) + 0.5) * pf.WorldWidth / float32(opts.Bodies)
		s.Sync.Spawn(rl.NewVector2(x, 0), bodysync.Rigidbody2D{
			MotionType: physics.Dynamic,
			Shape:      settings,
			Velocity:   rl.NewVector2(float32(s.rng.Intn(7)-3), 0),
		})
	}

	start, ok := s.randomOpenCell()
	if !ok {
		return nil, fmt.Errorf("map seed %d has no open cell: %w", seed, pathfinding.ErrInvalidGrid)
	}
	s.Unit = pathfinding.NewUnit(start, 4)
	return s, nil
}

// Step advances the ECS and physics by dt, wraps sprites that fell past the map back to
// the top, moves the unit and hands it a new destination once it stops.
func (s *Scenario) Step(dt float32) error {
	err := s.Sync.Update(dt)

	in := s.Physics.Interface
	depth := float32(s.Map.Depth) * s.Map.TileSize
	for _, id := range s.Physics.World.BodyIDs() {
		pos, perr := in.Position(id)
		if perr != nil || pos.Y <= depth {
			continue
		}
		if err := in.SetPosition(id, rl.NewVector2(pos.X, math32.Mod(pos.Y, depth))); err != nil {
			continue
		}
	}

	s.Requests.Update()
	s.Unit.Update(dt)
	if !s.Unit.Moving() && !s.awaiting {
		if dst, ok := s.randomOpenCell(); ok {
			s.awaiting = true
			s.Requests.RequestPath(s.Unit.Position, dst, s.onPath)
		}
	}
	return err
}

func (s *Scenario) onPath(path []rl.Vector3, ok bool) {
	s.awaiting = false
	if ok {
		s.found++
	} else {
		s.failed++
	}
	s.Unit.OnPathFound(path, ok)
}

// Stats returns overlay lines for the viewers.
func (s *Scenario) Stats() []string {
	return []string{
		fmt.Sprintf("bodies: %d", s.Physics.World.Len()),
		fmt.Sprintf("paths: %d found, %d failed, %d queued", s.found, s.failed, s.Requests.Pending()),
	}
}

func (s *Scenario) randomOpenCell() (rl.Vector3, bool) {
	cols, rows := s.Grid.Size()
	for tries := 0; tries < cols*rows; tries++ {
		x, y := s.rng.Intn(cols), s.rng.Intn(rows)
		if s.Map.Walkable(x, y) {
			return s.Grid.WorldPoint(x, y), true
		}
	}
	return rl.Vector3{}, false
}
