package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/fishtank/ui"
)

// statusSurface is implemented by surfaces that show a status line.
type statusSurface interface {
	SetStatus(status string)
}

// Run drives the game from a ticker at the configured scheduler rate until
// ctx is cancelled, the user quits or the frame limit is reached. All state
// changes happen on the calling goroutine; input only arrives over channels.
// input may be nil.
func (g *Game) Run(ctx context.Context, surface ui.Surface, input ui.InputSource) error {
	var (
		clicks   <-chan ui.Click
		commands <-chan ui.Command
		done     <-chan struct{}
	)
	if input != nil {
		clicks, commands, done = input.Clicks(), input.Commands(), input.Done()
	}

	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.Frame.SchedulerHz))
	defer ticker.Stop()
	start := time.Now()

	slog.Info("run started", "scheduler_hz", g.cfg.Frame.SchedulerHz, "max_frames", g.maxFrames)

	for {
		select {
		case <-ctx.Done():
			slog.Info("run stopped", "reason", "cancelled", "frame", g.frame)
			return nil
		case <-done:
			slog.Info("run stopped", "reason", "quit", "frame", g.frame)
			return nil
		case c := <-clicks:
			g.HandleClick(c)
		case cmd := <-commands:
			g.HandleCommand(cmd)
			g.updateStatus(surface)
		case now := <-ticker.C:
			ts := float64(now.Sub(start)) / float64(time.Millisecond)
			if !g.Frame(ts) {
				continue
			}
			if err := g.Present(surface); err != nil {
				return err
			}
			if g.LimitReached() {
				slog.Info("run stopped", "reason", "max frames", "frame", g.frame)
				return nil
			}
		}
	}
}

// Present hands the last composed frame to surface and records how long it
// took.
func (g *Game) Present(surface ui.Surface) error {
	if g.last == nil {
		return nil
	}
	t0 := time.Now()
	if err := surface.Present(g.last); err != nil {
		return fmt.Errorf("presenting frame: %w", err)
	}
	g.RecordPresent(time.Since(t0))
	return nil
}

// RunHeadless steps the game with a fixed dt of one frame interval and no
// display until MaxFrames is reached or ctx is cancelled.
func (g *Game) RunHeadless(ctx context.Context) error {
	if g.maxFrames <= 0 {
		return fmt.Errorf("headless run needs a frame limit")
	}

	dt := g.cfg.Derived.FrameTime
	ts := g.tank.LastFrame()
	start := time.Now()

	slog.Info("headless run started", "max_frames", g.maxFrames, "feed_every", g.feedEvery)

	for !g.LimitReached() {
		if err := ctx.Err(); err != nil {
			slog.Info("run stopped", "reason", "cancelled", "frame", g.frame)
			return nil
		}
		ts += dt
		g.tank.MarkFrame(ts)
		g.process(dt, ts)
	}

	elapsed := time.Since(start)
	slog.Info("headless run finished",
		"frames", g.frame,
		"sim_time_sec", g.simTime/1000,
		"wall_time", elapsed.Round(time.Millisecond),
		"frames_per_sec", float64(g.frame)/elapsed.Seconds(),
	)
	return nil
}

// LimitReached reports whether the frame limit, if any, has been reached.
func (g *Game) LimitReached() bool {
	return g.maxFrames > 0 && g.frame >= g.maxFrames
}

func (g *Game) updateStatus(surface ui.Surface) {
	s, ok := surface.(statusSurface)
	if !ok {
		return
	}
	if g.paused {
		s.SetStatus("PAUSED  space: resume  q: quit")
	} else {
		s.SetStatus("")
	}
}
