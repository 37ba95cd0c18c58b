package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds window styling constants.
type Theme struct {
	Background  rl.Color
	Water       rl.Color
	Frame       rl.Color
	Wave        rl.Color
	Fish        rl.Color
	Food        rl.Color
	Bubble      rl.Color
	PanelBg     rl.Color
	PanelBorder rl.Color
	Header      rl.Color
	Label       rl.Color
	Value       rl.Color
	Status      rl.Color
	Padding     int32
	LineHeight  int32
	LabelWidth  int32
	FontSize    int32
	HeaderSize  int32
}

// DefaultTheme returns the default window theme.
func DefaultTheme() Theme {
	return Theme{
		Background:  rl.Color{R: 8, G: 12, B: 18, A: 255},
		Water:       rl.Color{R: 12, G: 30, B: 48, A: 255},
		Frame:       rl.Color{R: 150, G: 160, B: 170, A: 255},
		Wave:        rl.Color{R: 90, G: 170, B: 230, A: 255},
		Fish:        rl.Color{R: 250, G: 170, B: 60, A: 255},
		Food:        rl.Color{R: 210, G: 150, B: 100, A: 255},
		Bubble:      rl.Color{R: 190, G: 230, B: 250, A: 255},
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		Header:      rl.White,
		Label:       rl.LightGray,
		Value:       rl.White,
		Status:      rl.Yellow,
		Padding:     10,
		LineHeight:  18,
		LabelWidth:  64,
		FontSize:    14,
		HeaderSize:  16,
	}
}

// Renderer handles panel drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawHeader draws a header line and returns the next Y position.
func (r *Renderer) DrawHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderSize, r.Theme.Header)
	return y + r.Theme.LineHeight + 4
}

// DrawLabelValue draws a label and value on the same line and returns the
// next Y position.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.Label)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.Value)
	return y + r.Theme.LineHeight
}
