// Package config provides configuration loading and access for the tank.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tank configuration parameters.
type Config struct {
	Tank      TankConfig      `yaml:"tank"`
	Frame     FrameConfig     `yaml:"frame"`
	Fish      FishConfig      `yaml:"fish"`
	Food      FoodConfig      `yaml:"food"`
	Bubbles   BubbleConfig    `yaml:"bubbles"`
	Render    RenderConfig    `yaml:"render"`
	Window    WindowConfig    `yaml:"window"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// TankConfig holds the character grid dimensions.
type TankConfig struct {
	Width  int `yaml:"width"`  // Columns, including both side walls
	Height int `yaml:"height"` // Rows, including the wave row and the floor
}

// FrameConfig holds frame pacing parameters.
type FrameConfig struct {
	FPS         int `yaml:"fps"`          // Target simulation rate
	SchedulerHz int `yaml:"scheduler_hz"` // Rate at which the run loop polls the frame driver
}

// FishConfig holds fish population and behavior parameters.
// Velocities are in cells per update call, times in milliseconds.
type FishConfig struct {
	Count            int     `yaml:"count"`
	SpeedMin         float64 `yaml:"speed_min"`         // Initial |vx| lower bound
	SpeedMax         float64 `yaml:"speed_max"`         // Initial |vx| upper bound
	MinSpeed         float64 `yaml:"min_speed"`         // |vx| floor applied every update
	InitialVY        float64 `yaml:"initial_vy"`        // Initial vy drawn from [-v, v]
	TurnMin          float64 `yaml:"turn_min"`          // Wander turn interval lower bound (ms)
	TurnMax          float64 `yaml:"turn_max"`          // Wander turn interval upper bound (ms)
	AttractionRadius float64 `yaml:"attraction_radius"` // Distance at which food is noticed
	ReactionMin      float64 `yaml:"reaction_min"`      // Notice delay lower bound (ms)
	ReactionMax      float64 `yaml:"reaction_max"`      // Notice delay upper bound (ms)
	SteerStrength    float64 `yaml:"steer_strength"`    // Lerp factor per update call
	EatDistance      float64 `yaml:"eat_distance"`
	ArriveThreshold  float64 `yaml:"arrive_threshold"` // |dx| below which facing speed is held
	SeekGain         float64 `yaml:"seek_gain"`        // Desired vy = dy * gain
	VYLimit          float64 `yaml:"vy_limit"`         // |vy| clamp for steering and drift
	Drift            float64 `yaml:"drift"`            // Per-update vy jitter bound
	EatSlowdown      float64 `yaml:"eat_slowdown"`     // Velocity factor applied after eating
	SpawnMarginX     float64 `yaml:"spawn_margin_x"`
	SpawnMarginY     float64 `yaml:"spawn_margin_y"`
	SpriteRight      string  `yaml:"sprite_right"`
	SpriteLeft       string  `yaml:"sprite_left"`
}

// FoodConfig holds food particle physics parameters.
type FoodConfig struct {
	Gravity      float64 `yaml:"gravity"`
	Drag         float64 `yaml:"drag"`          // Multiplicative vy damping per update
	Sway         float64 `yaml:"sway"`          // Horizontal sway amplitude
	SwayFreq     float64 `yaml:"sway_freq"`     // Sway phase per millisecond of wall-clock time
	CutoffMargin float64 `yaml:"cutoff_margin"` // Rows below the tank at which food is dropped
	Glyph        string  `yaml:"glyph"`
}

// BubbleConfig holds bubble spawn and motion parameters.
type BubbleConfig struct {
	SpawnChance float64 `yaml:"spawn_chance"` // Probability of one spawn per update
	SpeedMin    float64 `yaml:"speed_min"`
	SpeedMax    float64 `yaml:"speed_max"`
	Glyphs      string  `yaml:"glyphs"` // One glyph is picked uniformly per bubble
}

// RenderConfig holds glyphs used by the grid compositor.
type RenderConfig struct {
	WavePattern string  `yaml:"wave_pattern"`
	WaveSpeed   float64 `yaml:"wave_speed"` // Wave phase per millisecond
	Wall        string  `yaml:"wall"`
	Floor       string  `yaml:"floor"`
	CornerLeft  string  `yaml:"corner_left"`
	CornerRight string  `yaml:"corner_right"`
}

// WindowConfig holds raylib window settings.
type WindowConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
	FontSize   int `yaml:"font_size"`
	PanelWidth int `yaml:"panel_width"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of simulated time per window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameTime   float64 // Minimum ms between processed frames
	FishWidth   int     // Sprite width in glyphs
	FoodFloor   float64 // Lowest row food can rest on
	FoodCutoff  float64 // Food at or below this row is removed
	BubbleStart float64 // Spawn row for bubbles
	TankW       float64 // Tank.Width as float64
	TankH       float64 // Tank.Height as float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	spriteW := len([]rune(c.Fish.SpriteRight))
	switch {
	case c.Tank.Width < 4 || c.Tank.Height < 5:
		return fmt.Errorf("tank too small: %dx%d", c.Tank.Width, c.Tank.Height)
	case c.Frame.FPS <= 0:
		return fmt.Errorf("frame.fps must be positive, got %d", c.Frame.FPS)
	case spriteW == 0 || spriteW != len([]rune(c.Fish.SpriteLeft)):
		return fmt.Errorf("fish sprites must be non-empty and equal width")
	case len([]rune(c.Render.WavePattern)) == 0:
		return fmt.Errorf("render.wave_pattern must not be empty")
	case len([]rune(c.Bubbles.Glyphs)) == 0:
		return fmt.Errorf("bubbles.glyphs must not be empty")
	case c.Fish.TurnMax < c.Fish.TurnMin || c.Fish.ReactionMax < c.Fish.ReactionMin:
		return fmt.Errorf("fish interval bounds are inverted")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FrameTime = 1000.0 / float64(c.Frame.FPS)
	c.Derived.FishWidth = len([]rune(c.Fish.SpriteRight))
	c.Derived.TankW = float64(c.Tank.Width)
	c.Derived.TankH = float64(c.Tank.Height)
	c.Derived.FoodFloor = c.Derived.TankH - 2
	c.Derived.FoodCutoff = c.Derived.TankH + c.Food.CutoffMargin
	c.Derived.BubbleStart = c.Derived.TankH - 2

	if c.Frame.SchedulerHz <= 0 {
		c.Frame.SchedulerHz = 60
	}
	if c.Telemetry.PerfCollectorWindow <= 0 {
		c.Telemetry.PerfCollectorWindow = c.Frame.FPS
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// SetFPS overrides the frame rate and recomputes derived values.
func (c *Config) SetFPS(fps int) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}
	c.Frame.FPS = fps
	c.computeDerived()
	return nil
}
