package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/fishtank/systems"
	"github.com/pthm-cable/fishtank/ui"
)

// ClickColumn converts a horizontal click offset within a surface of the
// given width into a tank column, clamped to the interior [1, tankWidth-2].
// Clamping happens before the int conversion so huge offsets cannot overflow.
func ClickColumn(offset, width float64, tankWidth int) int {
	if width <= 0 || math.IsNaN(offset) {
		return 1
	}
	col := math.Floor(offset / width * float64(tankWidth))
	return int(systems.Clamp(col, 1, float64(tankWidth-2)))
}

// DropFood drops one food particle under a click at offset within a
// surface of the given width.
func (g *Game) DropFood(offset, width float64) {
	g.DropFoodAt(ClickColumn(offset, width, g.cfg.Tank.Width))
}

// DropFoodAt drops one food particle at column col, clamped to the interior.
func (g *Game) DropFoodAt(col int) {
	col = int(systems.Clamp(float64(col), 1, float64(g.cfg.Tank.Width-2)))
	g.spawnFood(float64(col))
}

// FeedRandom drops food at a random interior column.
func (g *Game) FeedRandom() {
	g.DropFoodAt(1 + g.rng.Intn(g.cfg.Tank.Width-2))
}

// TogglePause suspends or resumes updates.
func (g *Game) TogglePause() {
	g.SetPaused(!g.paused)
}

// SetPaused suspends or resumes updates.
func (g *Game) SetPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	slog.Info("pause toggled", "paused", paused, "frame", g.frame)
}

// HandleClick drops food under c.
func (g *Game) HandleClick(c ui.Click) {
	g.DropFood(c.Offset, c.Width)
}

// HandleCommand applies a user command.
func (g *Game) HandleCommand(cmd ui.Command) {
	switch cmd {
	case ui.CommandPause:
		g.TogglePause()
	case ui.CommandFeed:
		g.FeedRandom()
	}
}

// DrainInput applies every click and command already queued on in without
// blocking. It reports false once the user asked to quit.
func (g *Game) DrainInput(in ui.InputSource) bool {
	for {
		select {
		case <-in.Done():
			return false
		case c := <-in.Clicks():
			g.HandleClick(c)
		case cmd := <-in.Commands():
			g.HandleCommand(cmd)
		default:
			return true
		}
	}
}
