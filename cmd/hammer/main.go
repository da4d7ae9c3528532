package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"hammer2d/internal/commands"
	"hammer2d/internal/debug"
	"hammer2d/internal/engineconfig"
	"hammer2d/internal/env"
	"hammer2d/internal/graphics"
	"hammer2d/internal/logger"
	"hammer2d/internal/physics"
	"hammer2d/internal/sandbox"
	"hammer2d/internal/scene"
	"hammer2d/internal/termview"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reg := commands.NewRegistry()
	register(ctx, reg)
	if len(os.Args) < 2 {
		reg.Usage(os.Stderr, "hammer")
		os.Exit(2)
	}
	if err := reg.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "hammer: %v\n", err)
		if errors.Is(err, commands.ErrUnknownCommand) {
			reg.Usage(os.Stderr, "hammer")
		}
		os.Exit(1)
	}
}

// setup loads .env, the config file and HAMMER_* overrides, then opens the log.
func setup(configPath string) (engineconfig.Config, *logger.Logger, error) {
	if err := env.Load(".env"); err != nil {
		return engineconfig.Config{}, nil, err
	}
	cfg, err := engineconfig.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}
	if err := engineconfig.ApplyEnv(&cfg); err != nil {
		return cfg, nil, err
	}
	return cfg, logger.New(cfg.Log.Path), nil
}

func register(ctx context.Context, reg *commands.Registry) {
	registerSimulate(ctx, reg)
	registerPath(reg)
	registerView(ctx, reg)
	registerDemo(reg)
}

func registerSimulate(ctx context.Context, reg *commands.Registry) {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	configPath := fs.String("config", engineconfig.DefaultPath, "config file (yaml or json)")
	steps := fs.Int("steps", 0, "steps to run (0 = config)")
	bodies := fs.Int("bodies", 8, "falling bodies")
	seed := fs.Int64("seed", 1, "map seed")
	load := fs.String("load", "", "restore a msgpack snapshot before stepping")
	save := fs.String("save", "", "write a msgpack snapshot after stepping")

	reg.Register("simulate", "step a generated world and print body states", fs, func([]string) error {
		cfg, log, err := setup(*configPath)
		if err != nil {
			return err
		}
		s, err := sandbox.New(cfg, sandbox.Options{Seed: *seed, Bodies: *bodies}, log)
		if err != nil {
			return err
		}
		world := s.Physics.World
		if *load != "" {
			data, err := os.ReadFile(*load)
			if err != nil {
				return err
			}
			snap, err := physics.DecodeSnapshot(data)
			if err != nil {
				return err
			}
			if err := world.Restore(snap); err != nil {
				return err
			}
		}
		n := *steps
		if n <= 0 {
			n = cfg.Physics.Steps
		}
		if err := world.Step(ctx, cfg.Physics.TimeStep, n); err != nil {
			return err
		}
		for _, id := range world.BodyIDs() {
			b, _ := world.Body(id)
			fmt.Printf("%s\t%s\t%s\tpos=(%.3f, %.3f)\tvel=(%.3f, %.3f)\n",
				id, b.ObjectType, b.MotionType, b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y)
		}
		if *save == "" {
			return nil
		}
		snap, err := world.Snapshot()
		if err != nil {
			return err
		}
		data, err := physics.EncodeSnapshot(snap)
		if err != nil {
			return err
		}
		return os.WriteFile(*save, data, 0644)
	})
}

func registerPath(reg *commands.Registry) {
	fs := flag.NewFlagSet("path", flag.ContinueOnError)
	configPath := fs.String("config", engineconfig.DefaultPath, "config file (yaml or json)")
	seed := fs.Int64("seed", 1, "map seed")
	from := fs.String("from", "0,0", "start cell x,y")
	to := fs.String("to", "", "target cell x,y (default: opposite corner)")
	simplify := fs.Bool("simplify", false, "merge straight runs")

	reg.Register("path", "find a path across a generated map", fs, func([]string) error {
		cfg, log, err := setup(*configPath)
		if err != nil {
			return err
		}
		cfg.Pathfinding.Simplify = cfg.Pathfinding.Simplify || *simplify
		cfg.Pathfinding.Deferred = false
		s, err := sandbox.New(cfg, sandbox.Options{Seed: *seed}, log)
		if err != nil {
			return err
		}
		cols, rows := s.Grid.Size()
		sx, sy, err := parseCell(*from)
		if err != nil {
			return err
		}
		tx, ty := cols-1, rows-1
		if *to != "" {
			if tx, ty, err = parseCell(*to); err != nil {
				return err
			}
		}
		for _, c := range [][2]int{{sx, sy}, {tx, ty}} {
			if c[0] < 0 || c[1] < 0 || c[0] >= cols || c[1] >= rows {
				return fmt.Errorf("cell %d,%d outside %dx%d grid", c[0], c[1], cols, rows)
			}
		}
		s.Map.Clear(sx, sy)
		s.Map.Clear(tx, ty)
		s.Grid.Rebuild(s.Map.WalkableCell)

		var (
			result []rl.Vector3
			found  bool
		)
		id := s.Requests.RequestPath(s.Grid.WorldPoint(sx, sy), s.Grid.WorldPoint(tx, ty), func(p []rl.Vector3, ok bool) {
			result, found = p, ok
		})
		if !found {
			return fmt.Errorf("request %s: no path from %d,%d to %d,%d", id, sx, sy, tx, ty)
		}
		for _, wp := range result {
			fmt.Printf("%.2f,%.2f\n", wp.X, wp.Z)
		}
		return nil
	})
}

func registerView(ctx context.Context, reg *commands.Registry) {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	configPath := fs.String("config", engineconfig.DefaultPath, "config file (yaml or json)")
	seed := fs.Int64("seed", 1, "map seed")
	bodies := fs.Int("bodies", 6, "falling bodies")

	reg.Register("view", "run the sandbox in the terminal", fs, func([]string) error {
		cfg, log, err := setup(*configPath)
		if err != nil {
			return err
		}
		s, err := sandbox.New(cfg, sandbox.Options{Seed: *seed, Bodies: *bodies}, log)
		if err != nil {
			return err
		}
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()

		v := termview.New(screen, s.Grid, s.Physics.World)
		err = v.Run(ctx, func(dt float32) {
			if err := s.Step(dt); err != nil {
				log.Logf("view: %v", err)
			}
			v.SetPath(append([]rl.Vector3{s.Unit.Position}, s.Unit.Path()...))
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
}

func registerDemo(reg *commands.Registry) {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	configPath := fs.String("config", engineconfig.DefaultPath, "config file (yaml or json)")
	seed := fs.Int64("seed", 1, "map seed")
	bodies := fs.Int("bodies", 12, "falling bodies")

	reg.Register("demo", "run the sandbox in a window", fs, func([]string) error {
		cfg, log, err := setup(*configPath)
		if err != nil {
			return err
		}
		s, err := sandbox.New(cfg, sandbox.Options{Seed: *seed, Bodies: *bodies}, log)
		if err != nil {
			return err
		}
		scn := scene.New(s.Physics.World, s.Grid)
		scn.GridVisible = cfg.View.GridVisible
		scn.Focus(rl.NewVector2(cfg.Pathfinding.WorldWidth/2, cfg.Pathfinding.WorldDepth/2))
		dbg := debug.New(s.Stats)
		dbg.ShowFPS = cfg.View.ShowFPS
		dbg.ShowMemAlloc = cfg.View.ShowMemAlloc

		update := func(dt float32) {
			if rl.IsKeyPressed(rl.KeyF1) {
				dbg.Toggle()
			}
			if rl.IsKeyPressed(rl.KeyG) {
				scn.GridVisible = !scn.GridVisible
			}
			scn.Update(dt)
			if err := s.Step(dt); err != nil {
				log.Logf("demo: %v", err)
			}
			scn.SetPaths(append([]rl.Vector3{s.Unit.Position}, s.Unit.Path()...))
		}
		draw := func() {
			scn.Draw()
			dbg.Draw()
		}
		graphics.Run(graphics.DefaultWindow(), update, draw)
		return nil
	})
}

func parseCell(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("cell %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, fmt.Errorf("cell %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, 0, fmt.Errorf("cell %q: %w", s, err)
	}
	return x, y, nil
}
