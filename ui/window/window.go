// Package window presents the tank in a raylib window with a control panel.
package window

import (
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/renderer"
	"github.com/pthm-cable/fishtank/ui"
)

const margin = 16

// Window is a raylib surface. All methods must be called from the goroutine
// that called Open, which raylib requires.
type Window struct {
	cellW, cellH int32
	fontSize     int32
	palette      *ui.Palette
	theme        Theme
	hud          *HUD
	hudData      HUDData

	bounds ui.Rect
	height int32

	clicks   chan ui.Click
	commands chan ui.Command
	done     chan struct{}
	doneOnce sync.Once
}

// Open creates the window sized for cfg's tank plus the side panel.
func Open(title string, cfg *config.Config, palette *ui.Palette) *Window {
	wc := cfg.Window
	tankW := int32(cfg.Tank.Width * wc.CellWidth)
	tankH := int32(cfg.Tank.Height * wc.CellHeight)
	panelW := int32(wc.PanelWidth)

	screenW := margin + tankW + margin + panelW + margin
	screenH := margin + tankH + margin

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(screenW, screenH, title)
	rl.SetTargetFPS(int32(max(cfg.Frame.SchedulerHz, cfg.Frame.FPS)))

	return &Window{
		cellW:    int32(wc.CellWidth),
		cellH:    int32(wc.CellHeight),
		fontSize: int32(wc.FontSize),
		palette:  palette,
		theme:    DefaultTheme(),
		hud:      NewHUD(margin+tankW+margin, margin, panelW),
		bounds:   ui.Rect{X: margin, Y: margin, Width: float64(tankW), Height: float64(tankH)},
		height:   tankH,
		clicks:   make(chan ui.Click, 16),
		commands: make(chan ui.Command, 16),
		done:     make(chan struct{}),
	}
}

// Clicks implements ui.InputSource.
func (w *Window) Clicks() <-chan ui.Click { return w.clicks }

// Commands implements ui.InputSource.
func (w *Window) Commands() <-chan ui.Command { return w.commands }

// Done implements ui.InputSource.
func (w *Window) Done() <-chan struct{} { return w.done }

// Bounds implements ui.Surface.
func (w *Window) Bounds() ui.Rect { return w.bounds }

// Now returns the time since the window opened in milliseconds.
func (w *Window) Now() float64 {
	return rl.GetTime() * 1000
}

// SetHUD updates the numbers drawn in the side panel.
func (w *Window) SetHUD(data HUDData) {
	w.hudData = data
}

// Poll reads mouse and keyboard state for this frame.
func (w *Window) Poll() {
	if rl.WindowShouldClose() {
		w.doneOnce.Do(func() { close(w.done) })
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		pos := rl.GetMousePosition()
		if click, ok := ui.ClickAt(w.bounds, float64(pos.X), float64(pos.Y)); ok {
			w.sendClick(click)
		}
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		w.sendCommand(ui.CommandPause)
	}
	if rl.IsKeyPressed(rl.KeyF) {
		w.sendCommand(ui.CommandFeed)
	}
}

// Present draws grid and the side panel. raylib needs a full redraw every
// loop iteration, so this is called even when the grid did not change.
func (w *Window) Present(grid *renderer.Grid) error {
	rl.BeginDrawing()
	rl.ClearBackground(w.theme.Background)

	ox, oy := int32(w.bounds.X), int32(w.bounds.Y)
	rl.DrawRectangle(ox, oy, int32(w.bounds.Width), int32(w.bounds.Height), w.theme.Water)

	if grid != nil {
		var buf [1]byte
		grid.Each(func(x, y int, r rune) {
			if r == renderer.Blank {
				return
			}
			buf[0] = byte(ui.ASCII(r))
			px := ox + int32(x)*w.cellW + (w.cellW-rl.MeasureText(string(buf[:]), w.fontSize))/2
			py := oy + int32(y)*w.cellH + (w.cellH-w.fontSize)/2
			rl.DrawText(string(buf[:]), px, py, w.fontSize, w.colorFor(r))
		})
	}

	for _, cmd := range w.hud.Draw(w.hudData, w.height) {
		w.sendCommand(cmd)
	}

	rl.EndDrawing()
	return nil
}

func (w *Window) colorFor(r rune) rl.Color {
	switch w.palette.Class(r) {
	case ui.ClassFrame:
		return w.theme.Frame
	case ui.ClassWave:
		return w.theme.Wave
	case ui.ClassFish:
		return w.theme.Fish
	case ui.ClassFood:
		return w.theme.Food
	case ui.ClassBubble:
		return w.theme.Bubble
	}
	return w.theme.Value
}

func (w *Window) sendClick(c ui.Click) {
	select {
	case w.clicks <- c:
	default:
	}
}

func (w *Window) sendCommand(cmd ui.Command) {
	select {
	case w.commands <- cmd:
	default:
	}
}

// Close closes the window.
func (w *Window) Close() error {
	rl.CloseWindow()
	return nil
}
