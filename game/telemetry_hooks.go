package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/fishtank/telemetry"
)

// flushTelemetry flushes the stats window once it is full.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.simTime) {
		return
	}
	g.flushWindow()
}

// flushWindow closes the current stats window and reports it.
func (g *Game) flushWindow() {
	stats := g.collector.Flush(g.frame, g.simTime, g.population(), g.tank.FishSpeeds())
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// population samples entity counts for the stats window.
func (g *Game) population() telemetry.Population {
	return telemetry.Population{
		Fish:    g.tank.FishCount(),
		Food:    g.tank.FoodCount(),
		Bubbles: g.tank.BubbleCount(),
		Chasing: g.tank.Chasing(),
	}
}

// RecordPresent adds display time to the frame that was just presented.
func (g *Game) RecordPresent(d time.Duration) {
	g.perf.RecordPresent(d)
}

// DumpFrame appends the last composed frame to the output directory, if any.
func (g *Game) DumpFrame() {
	if g.last == nil || g.outputManager == nil {
		return
	}
	if err := g.outputManager.WriteFrame(g.frame, g.last.String()); err != nil {
		slog.Error("failed to write frame", "error", err)
	}
}
