// Package game drives the fish tank: it owns the tank state, advances it one
// frame at a time and hands composed frames to a display surface.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/renderer"
	"github.com/pthm-cable/fishtank/systems"
	"github.com/pthm-cable/fishtank/telemetry"
)

// Options configures a Game.
type Options struct {
	Config        *config.Config // nil uses config.Cfg()
	Seed          int64          // 0 seeds from the clock
	LogStats      bool           // Log WindowStats and PerfStats with slog
	OutputDir     string         // CSV and config output; empty disables
	StatsCallback func(telemetry.WindowStats)
	MaxFrames     int64 // Stop Run after this many frames; 0 runs until cancelled
	FeedEvery     int64 // Drop food at a random column every N frames; 0 disables
}

// Game holds the complete tank state and the stages that advance it.
type Game struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	tank       *Tank
	fish       *systems.FishBehavior
	food       *systems.FoodPhysics
	bubbles    *systems.BubblePhysics
	compositor *renderer.Compositor

	// State
	frame   int64   // Processed frames
	simTime float64 // Sum of processed dt, ms
	paused  bool
	last    *renderer.Grid

	maxFrames int64
	feedEvery int64

	// Telemetry
	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool
}

// NewGame creates a game with default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a game and populates the tank with its fish.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		cfg:           cfg,
		rng:           rng,
		seed:          seed,
		tank:          NewTank(),
		fish:          systems.NewFishBehavior(cfg, rng),
		food:          systems.NewFoodPhysics(cfg),
		bubbles:       systems.NewBubblePhysics(cfg, rng),
		compositor:    renderer.NewCompositor(cfg),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.FrameTime),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
		maxFrames:     opts.MaxFrames,
		feedEvery:     opts.FeedEvery,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	for i := 0; i < cfg.Fish.Count; i++ {
		g.tank.AddFish(g.fish.Spawn())
	}

	slog.Info("tank created",
		"seed", seed,
		"width", cfg.Tank.Width,
		"height", cfg.Tank.Height,
		"fish", cfg.Fish.Count,
		"fps", cfg.Frame.FPS,
	)

	return g
}

// Tank returns the simulation state.
func (g *Game) Tank() *Tank { return g.tank }

// Config returns the configuration the game runs with.
func (g *Game) Config() *config.Config { return g.cfg }

// Seed returns the seed of the game's random source.
func (g *Game) Seed() int64 { return g.seed }

// FrameCount returns the number of processed frames.
func (g *Game) FrameCount() int64 { return g.frame }

// SimTime returns the simulated time in milliseconds.
func (g *Game) SimTime() float64 { return g.simTime }

// Paused reports whether updates are suspended.
func (g *Game) Paused() bool { return g.paused }

// Last returns the most recently composed frame, or nil before the first one.
func (g *Game) Last() *renderer.Grid { return g.last }

// Close flushes a final telemetry window and closes output files.
func (g *Game) Close() error {
	if g.collector.Pending(g.frame) {
		g.flushWindow()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
		return err
	}
	return nil
}
