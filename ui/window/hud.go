package window

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishtank/ui"
)

// HUDData holds the numbers shown in the side panel.
type HUDData struct {
	Frame   int64
	Fish    int
	Food    int
	Bubbles int
	Chasing int
	Seed    int64
	Paused  bool
}

// HUD draws the side panel: tank counters and the Feed / Pause buttons.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a HUD anchored at (x, y).
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the panel and returns the commands requested by its buttons.
func (h *HUD) Draw(data HUDData, height int32) []ui.Command {
	r := h.renderer
	pad := r.Theme.Padding

	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + pad
	y := r.DrawHeader(x, h.y+pad, "Fish Tank")
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%d", data.Frame))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", rl.GetFPS()))
	y = r.DrawLabelValue(x, y, "Fish", fmt.Sprintf("%d", data.Fish))
	y = r.DrawLabelValue(x, y, "Chasing", fmt.Sprintf("%d", data.Chasing))
	y = r.DrawLabelValue(x, y, "Food", fmt.Sprintf("%d", data.Food))
	y = r.DrawLabelValue(x, y, "Bubbles", fmt.Sprintf("%d", data.Bubbles))
	y = r.DrawLabelValue(x, y, "Seed", fmt.Sprintf("%d", data.Seed))
	y += pad

	var cmds []ui.Command
	btnW := float32(h.width - 2*pad)
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: btnW, Height: 28}, "Feed") {
		cmds = append(cmds, ui.CommandFeed)
	}
	y += 36
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: btnW, Height: 28}, toggleText(data.Paused, "Resume", "Pause")) {
		cmds = append(cmds, ui.CommandPause)
	}
	y += 40

	if data.Paused {
		rl.DrawText("PAUSED", x, y, r.Theme.HeaderSize, r.Theme.Status)
	}
	return cmds
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
