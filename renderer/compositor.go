package renderer

import (
	"math"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/config"
)

// Scene exposes the tank's entities to the compositor. Each visitor walks a
// collection in insertion order.
type Scene interface {
	EachBubble(fn func(pos components.Position, bubble components.Bubble))
	EachFood(fn func(pos components.Position))
	EachFish(fn func(pos components.Position, fish components.Fish))
}

// Compositor draws borders and entities into a grid with a fixed z-order:
// frame, bubbles, food, fish.
type Compositor struct {
	width, height int

	wave        []rune
	waveSpeed   float64
	wall        rune
	floor       rune
	cornerLeft  rune
	cornerRight rune
	food        rune
	fishRight   []rune
	fishLeft    []rune
}

// NewCompositor caches grid size and glyphs from cfg.
func NewCompositor(cfg *config.Config) *Compositor {
	r := &cfg.Render
	return &Compositor{
		width:       cfg.Tank.Width,
		height:      cfg.Tank.Height,
		wave:        []rune(r.WavePattern),
		waveSpeed:   r.WaveSpeed,
		wall:        firstRune(r.Wall, '|'),
		floor:       firstRune(r.Floor, '-'),
		cornerLeft:  firstRune(r.CornerLeft, '\\'),
		cornerRight: firstRune(r.CornerRight, '/'),
		food:        firstRune(cfg.Food.Glyph, '*'),
		fishRight:   []rune(cfg.Fish.SpriteRight),
		fishLeft:    []rune(cfg.Fish.SpriteLeft),
	}
}

// Compose builds a complete frame for scene at global time now (ms).
func (c *Compositor) Compose(scene Scene, now float64) *Grid {
	g := NewGrid(c.width, c.height)

	c.DrawBorders(g, now)
	scene.EachBubble(func(pos components.Position, bubble components.Bubble) {
		c.DrawBubble(g, pos, bubble)
	})
	scene.EachFood(func(pos components.Position) {
		c.DrawFood(g, pos)
	})
	scene.EachFish(func(pos components.Position, fish components.Fish) {
		c.DrawFish(g, pos, fish.Direction)
	})

	return g
}

// DrawBorders draws the side walls, the animated water line and the floor.
func (c *Compositor) DrawBorders(g *Grid, now float64) {
	if g.Width == 0 || g.Height == 0 {
		return
	}
	last := g.Width - 1
	bottom := g.Height - 1

	// Water line: walls at the ends, scrolling waves between them
	offset := int(math.Floor(now * c.waveSpeed))
	n := len(c.wave)
	for x := 0; x < g.Width; x++ {
		if x == 0 || x == last {
			g.Set(x, 0, c.wall)
			continue
		}
		idx := ((x+offset)%n + n) % n
		g.Set(x, 0, c.wave[idx])
	}

	for y := 1; y < bottom; y++ {
		g.Set(0, y, c.wall)
		g.Set(last, y, c.wall)
	}

	g.Set(0, bottom, c.cornerLeft)
	g.Set(last, bottom, c.cornerRight)
	for x := 1; x < last; x++ {
		g.Set(x, bottom, c.floor)
	}
}

// DrawBubble draws a bubble only onto blank water, never over the frame.
func (c *Compositor) DrawBubble(g *Grid, pos components.Position, bubble components.Bubble) {
	x, y := cell(pos)
	if g.At(x, y) == Blank {
		g.Set(x, y, bubble.Glyph)
	}
}

// DrawFood draws a food particle.
func (c *Compositor) DrawFood(g *Grid, pos components.Position) {
	x, y := cell(pos)
	g.Set(x, y, c.food)
}

// DrawFish draws the sprite for direction starting at the fish's cell.
// Glyphs that fall outside the grid are skipped individually.
func (c *Compositor) DrawFish(g *Grid, pos components.Position, direction int) {
	sprite := c.Sprite(direction)
	x, y := cell(pos)
	if y < 0 || y >= g.Height {
		return
	}
	for i, r := range sprite {
		g.Set(x+i, y, r)
	}
}

// Sprite returns the glyphs for a fish facing direction.
func (c *Compositor) Sprite(direction int) []rune {
	if direction == components.FacingRight {
		return c.fishRight
	}
	return c.fishLeft
}

// cell floors a position to grid coordinates.
func cell(pos components.Position) (int, int) {
	return int(math.Floor(pos.X)), int(math.Floor(pos.Y))
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
