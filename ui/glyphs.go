package ui

import "github.com/pthm-cable/fishtank/config"

// GlyphClass groups glyphs that share a color.
type GlyphClass uint8

const (
	ClassWater GlyphClass = iota // Blank cells
	ClassFrame
	ClassWave
	ClassFish
	ClassFood
	ClassBubble
)

// Palette classifies composed glyphs for coloring. A glyph used by several
// layers keeps the class of the first one registered: frame, wave, food,
// bubble, fish.
type Palette struct {
	classes map[rune]GlyphClass
}

// NewPalette builds a palette from the configured glyphs.
func NewPalette(cfg *config.Config) *Palette {
	p := &Palette{classes: make(map[rune]GlyphClass)}
	add := func(s string, class GlyphClass) {
		for _, r := range s {
			if _, ok := p.classes[r]; !ok {
				p.classes[r] = class
			}
		}
	}
	add(cfg.Render.Wall+cfg.Render.Floor+cfg.Render.CornerLeft+cfg.Render.CornerRight, ClassFrame)
	add(cfg.Render.WavePattern, ClassWave)
	add(cfg.Food.Glyph, ClassFood)
	add(cfg.Bubbles.Glyphs, ClassBubble)
	add(cfg.Fish.SpriteRight+cfg.Fish.SpriteLeft, ClassFish)
	return p
}

// Class returns the class of r. Unknown glyphs are treated as water.
func (p *Palette) Class(r rune) GlyphClass {
	if p == nil {
		return ClassWater
	}
	return p.classes[r]
}

// asciiFallback maps box-drawing and other non-ASCII glyphs to ASCII for
// fonts without them.
var asciiFallback = map[rune]rune{
	'│': '|',
	'─': '-',
	'└': '\\',
	'┘': '/',
	'°': 'o',
}

// ASCII returns an ASCII stand-in for r, or r itself.
func ASCII(r rune) rune {
	if r < 0x80 {
		return r
	}
	if a, ok := asciiFallback[r]; ok {
		return a
	}
	return '?'
}

// ClickAt converts a position inside bounds into a Click. ok is false when
// the position lies outside the rendered area.
func ClickAt(bounds Rect, x, y float64) (Click, bool) {
	if !bounds.Contains(x, y) {
		return Click{}, false
	}
	return Click{Offset: x - bounds.X, Width: bounds.Width}, true
}
