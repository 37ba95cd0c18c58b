package renderer

import (
	"strings"
	"testing"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/config"
)

type fakeScene struct {
	bubbles []components.Position
	glyphs  []rune
	food    []components.Position
	fish    []components.Position
	dirs    []int
}

func (s *fakeScene) EachBubble(fn func(pos components.Position, bubble components.Bubble)) {
	for i, p := range s.bubbles {
		fn(p, components.Bubble{Glyph: s.glyphs[i]})
	}
}

func (s *fakeScene) EachFood(fn func(pos components.Position)) {
	for _, p := range s.food {
		fn(p)
	}
}

func (s *fakeScene) EachFish(fn func(pos components.Position, fish components.Fish)) {
	for i, p := range s.fish {
		fn(p, components.Fish{Direction: s.dirs[i]})
	}
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(4, 3)

	if g.Set(4, 0, 'x') || g.Set(-1, 0, 'x') || g.Set(0, 3, 'x') {
		t.Error("out-of-bounds Set reported success")
	}
	if !g.Set(3, 2, 'x') {
		t.Error("in-bounds Set failed")
	}
	if got := g.At(3, 2); got != 'x' {
		t.Errorf("At(3, 2) = %q, want 'x'", got)
	}
	if got := g.At(10, 10); got != Blank {
		t.Errorf("At out of bounds = %q, want blank", got)
	}
	if got, want := g.String(), "    \n    \n   x"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := g.Row(5); got != "" {
		t.Errorf("Row(5) = %q, want empty", got)
	}

	empty := NewGrid(-1, -1)
	if empty.Width != 0 || empty.Height != 0 || empty.String() != "" {
		t.Errorf("negative size grid = %dx%d %q", empty.Width, empty.Height, empty.String())
	}
}

func TestDrawBorders(t *testing.T) {
	cfg := config.Default()
	cfg.Render.WavePattern = "~-^"
	c := NewCompositor(cfg)
	w, h := cfg.Tank.Width, cfg.Tank.Height

	g := c.Compose(&fakeScene{}, 0)

	if g.Width != w || g.Height != h {
		t.Fatalf("grid is %dx%d, want %dx%d", g.Width, g.Height, w, h)
	}

	top := []rune(g.Row(0))
	if top[0] != '│' || top[w-1] != '│' {
		t.Errorf("water line ends = %q %q, want walls", top[0], top[w-1])
	}
	if top[1] != '-' || top[2] != '^' || top[3] != '~' {
		t.Errorf("water line starts %q, want \"-^~\"", string(top[1:4]))
	}

	for y := 1; y < h-1; y++ {
		row := []rune(g.Row(y))
		if row[0] != '│' || row[w-1] != '│' {
			t.Errorf("row %d = %q, want walls at both ends", y, g.Row(y))
		}
		if strings.TrimSpace(string(row[1:w-1])) != "" {
			t.Errorf("row %d interior not blank: %q", y, g.Row(y))
		}
	}

	want := "└" + strings.Repeat("─", w-2) + "┘"
	if got := g.Row(h - 1); got != want {
		t.Errorf("floor = %q, want %q", got, want)
	}
}

func TestWavesScroll(t *testing.T) {
	cfg := config.Default()
	cfg.Render.WavePattern = "~-^"
	c := NewCompositor(cfg)

	// Offset floor(1.5) = 1
	g := c.Compose(&fakeScene{}, 1.5/cfg.Render.WaveSpeed)
	top := []rune(g.Row(0))
	if top[1] != '^' || top[2] != '~' {
		t.Errorf("scrolled water line starts %q, want \"^~\"", string(top[1:3]))
	}
}

func TestDrawFishClipsAtEdges(t *testing.T) {
	cfg := config.Default()
	c := NewCompositor(cfg)
	w := cfg.Tank.Width
	right := []rune(cfg.Fish.SpriteRight)
	left := []rune(cfg.Fish.SpriteLeft)

	scene := &fakeScene{
		fish: []components.Position{{X: float64(w - 5), Y: 4}, {X: -2, Y: 6}, {X: 5, Y: 50}},
		dirs: []int{components.FacingRight, components.FacingLeft, components.FacingRight},
	}
	g := c.Compose(scene, 0)

	row := []rune(g.Row(4))
	if len(row) != w {
		t.Fatalf("row width = %d, want %d", len(row), w)
	}
	// Overhangs the right edge by 2 columns
	if string(row[w-5:]) != string(right[:5]) {
		t.Errorf("overhanging fish = %q, want %q", string(row[w-5:]), string(right[:5]))
	}

	row = []rune(g.Row(6))
	if string(row[:5]) != string(left[2:]) {
		t.Errorf("fish past the left edge = %q, want %q", string(row[:5]), string(left[2:]))
	}
}

func TestBubblesStayOffTheFrame(t *testing.T) {
	c := NewCompositor(config.Default())
	scene := &fakeScene{
		bubbles: []components.Position{{X: 0, Y: 5}, {X: 5.7, Y: 4.2}, {X: 6, Y: 0}},
		glyphs:  []rune{'o', 'o', '.'},
	}
	g := c.Compose(scene, 0)

	if got := g.At(0, 5); got != '│' {
		t.Errorf("bubble overwrote wall: %q", got)
	}
	if got := g.At(5, 4); got != 'o' {
		t.Errorf("bubble at (5, 4) = %q, want 'o'", got)
	}
	if got := g.At(6, 0); got == '.' {
		t.Error("bubble overwrote the water line")
	}
}

func TestZOrder(t *testing.T) {
	cfg := config.Default()
	c := NewCompositor(cfg)
	right := []rune(cfg.Fish.SpriteRight)

	scene := &fakeScene{
		bubbles: []components.Position{{X: 10, Y: 5}, {X: 20, Y: 7}},
		glyphs:  []rune{'o', 'o'},
		food:    []components.Position{{X: 10.5, Y: 5.5}, {X: 20.2, Y: 7.9}},
		fish:    []components.Position{{X: 10, Y: 5}},
		dirs:    []int{components.FacingRight},
	}
	g := c.Compose(scene, 0)

	if got := g.At(10, 5); got != right[0] {
		t.Errorf("fish should cover food and bubbles, got %q", got)
	}
	if got := g.At(20, 7); got != '*' {
		t.Errorf("food should cover bubbles, got %q", got)
	}
}
