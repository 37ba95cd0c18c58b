package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/game"
	"github.com/pthm-cable/fishtank/ui"
	"github.com/pthm-cable/fishtank/ui/window"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mode := flag.String("mode", "terminal", "Display mode: terminal, window or headless")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logFile := flag.String("log-file", "", "Write logs to this file (terminal mode discards logs otherwise)")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, frames and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited, required for headless)")
	feedEvery := flag.Int64("feed-every", 0, "Drop food at a random column every N frames (0 = never)")
	fps := flag.Int("fps", 0, "Frame rate override (0 = use config)")

	flag.Parse()

	closeLog, err := setupLogging(*mode, *logFile)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *fps > 0 {
		if err := cfg.SetFPS(*fps); err != nil {
			slog.Error("invalid fps", "error", err)
			os.Exit(1)
		}
	}
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Config:    cfg,
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		MaxFrames: *maxFrames,
		FeedEvery: *feedEvery,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "terminal":
		err = runTerminal(ctx, opts)
	case "window":
		err = runWindow(ctx, opts)
	case "headless":
		err = runHeadless(ctx, opts)
	default:
		slog.Error("unknown mode", "mode", *mode)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("run failed", "mode", *mode, "error", err)
		closeLog()
		os.Exit(1)
	}
}

// setupLogging installs a JSON slog handler. The terminal owns stdout in
// terminal mode, so logs go to logFile or nowhere.
func setupLogging(mode, logFile string) (func(), error) {
	var w io.Writer = os.Stdout
	closeFn := func() {}

	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return closeFn, err
		}
		w = f
		closeFn = func() { f.Close() }
	case mode == "terminal":
		w = io.Discard
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(w, nil)))
	return closeFn, nil
}

func runTerminal(ctx context.Context, opts game.Options) error {
	term, err := ui.NewTerminal(ui.NewPalette(opts.Config))
	if err != nil {
		return err
	}
	defer term.Close()

	g := game.NewGameWithOptions(opts)
	defer g.Close()

	return g.Run(ctx, term, term)
}

// runWindow drives the game from raylib's own loop, which must stay on the
// main goroutine.
func runWindow(ctx context.Context, opts game.Options) error {
	win := window.Open("Fish Tank", opts.Config, ui.NewPalette(opts.Config))
	defer win.Close()

	g := game.NewGameWithOptions(opts)
	defer g.Close()

	for ctx.Err() == nil && !g.LimitReached() {
		win.Poll()
		if !g.DrainInput(win) {
			break
		}

		processed := g.Frame(win.Now())

		tank := g.Tank()
		win.SetHUD(window.HUDData{
			Frame:   g.FrameCount(),
			Fish:    tank.FishCount(),
			Food:    tank.FoodCount(),
			Bubbles: tank.BubbleCount(),
			Chasing: tank.Chasing(),
			Seed:    g.Seed(),
			Paused:  g.Paused(),
		})

		t0 := time.Now()
		if err := win.Present(g.Last()); err != nil {
			return err
		}
		if processed {
			g.RecordPresent(time.Since(t0))
		}
	}
	return nil
}

func runHeadless(ctx context.Context, opts game.Options) error {
	g := game.NewGameWithOptions(opts)

	slog.Info("starting headless simulation",
		"seed", g.Seed(),
		"max_frames", opts.MaxFrames,
		"feed_every", opts.FeedEvery,
	)

	if err := g.RunHeadless(ctx); err != nil {
		g.Close()
		return err
	}
	g.DumpFrame()
	return g.Close()
}
