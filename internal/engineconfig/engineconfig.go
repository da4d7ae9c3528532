package engineconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"hammer2d/internal/env"
	"hammer2d/internal/logger"
	"hammer2d/internal/physics"
)

// DefaultPath is the config file read by the hammer tools, relative to the working directory.
const DefaultPath = "config/hammer.yaml"

// envPrefix is prepended to every override variable, e.g. HAMMER_GRAVITY.
const envPrefix = "HAMMER_"

// Config holds the settings for a physics world, its pathfinding grid and the tools around them.
type Config struct {
	Physics     PhysicsConfig     `json:"physics" yaml:"physics"`
	Pathfinding PathfindingConfig `json:"pathfinding" yaml:"pathfinding"`
	Log         LogConfig         `json:"log" yaml:"log"`
	View        ViewConfig        `json:"view" yaml:"view"`
}

// PhysicsConfig sets world gravity and the fixed step used by the simulate command.
type PhysicsConfig struct {
	Gravity  float32 `json:"gravity" yaml:"gravity"`
	TimeStep float32 `json:"time_step" yaml:"time_step"`
	Steps    int     `json:"steps" yaml:"steps"`
}

// PathfindingConfig sizes the grid and tunes the finder and request manager.
type PathfindingConfig struct {
	WorldWidth       float32 `json:"world_width" yaml:"world_width"`
	WorldDepth       float32 `json:"world_depth" yaml:"world_depth"`
	NodeRadius       float32 `json:"node_radius" yaml:"node_radius"`
	Simplify         bool    `json:"simplify" yaml:"simplify"`
	RefreshOpenNodes bool    `json:"refresh_open_nodes" yaml:"refresh_open_nodes"`
	Deferred         bool    `json:"deferred" yaml:"deferred"`
	MaxPerUpdate     int     `json:"max_per_update,omitempty" yaml:"max_per_update,omitempty"`
}

// LogConfig locates the log file.
type LogConfig struct {
	// Path is the log file; empty keeps logs in memory.
	Path string `json:"path" yaml:"path"`
}

// ViewConfig holds viewer overlays (window and terminal).
type ViewConfig struct {
	ShowFPS      bool `json:"show_fps" yaml:"show_fps"`
	ShowMemAlloc bool `json:"show_memalloc" yaml:"show_memalloc"`
	GridVisible  bool `json:"grid_visible" yaml:"grid_visible"`
}

// Default returns standard gravity, a 60 Hz step and a 32x32 grid of unit cells.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:  physics.DefaultGravity,
			TimeStep: 1.0 / 60,
			Steps:    120,
		},
		Pathfinding: PathfindingConfig{
			WorldWidth: 32,
			WorldDepth: 32,
			NodeRadius: 0.5,
		},
		Log:  LogConfig{Path: logger.DefaultPath},
		View: ViewConfig{GridVisible: true},
	}
}

// Load reads a config file, YAML or JSON by extension. A missing file yields Default()
// and no error; fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if isJSON(path) {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(cfg, "", "\t")
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides cfg from HAMMER_* environment variables. Malformed values are
// reported in a fixed order (floats, ints, bools) and leave the field unchanged.
func ApplyEnv(cfg *Config) error {
	var errs []error
	get := func(name string) string { return envPrefix + name }

	floats := []struct {
		name string
		dst  *float32
	}{
		{"GRAVITY", &cfg.Physics.Gravity},
		{"TIME_STEP", &cfg.Physics.TimeStep},
		{"WORLD_WIDTH", &cfg.Pathfinding.WorldWidth},
		{"WORLD_DEPTH", &cfg.Pathfinding.WorldDepth},
		{"NODE_RADIUS", &cfg.Pathfinding.NodeRadius},
	}
	for _, f := range floats {
		if err := env.Float32(get(f.name), f.dst); err != nil {
			errs = append(errs, err)
		}
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"STEPS", &cfg.Physics.Steps},
		{"MAX_PER_UPDATE", &cfg.Pathfinding.MaxPerUpdate},
	}
	for _, i := range ints {
		if err := env.Int(get(i.name), i.dst); err != nil {
			errs = append(errs, err)
		}
	}
	bools := []struct {
		name string
		dst  *bool
	}{
		{"SIMPLIFY", &cfg.Pathfinding.Simplify},
		{"REFRESH_OPEN_NODES", &cfg.Pathfinding.RefreshOpenNodes},
		{"DEFERRED", &cfg.Pathfinding.Deferred},
		{"SHOW_FPS", &cfg.View.ShowFPS},
	}
	for _, b := range bools {
		if err := env.Bool(get(b.name), b.dst); err != nil {
			errs = append(errs, err)
		}
	}
	env.String(get("LOG_PATH"), &cfg.Log.Path)
	return errors.Join(errs...)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
