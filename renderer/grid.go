// Package renderer composes the tank into a character grid.
package renderer

import "strings"

// Blank is the glyph of an empty cell.
const Blank = ' '

// Grid is a fixed-size rectangle of glyphs, indexed [row][column].
type Grid struct {
	Width, Height int
	cells         [][]rune
}

// NewGrid returns a grid filled with Blank.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	backing := make([]rune, width*height)
	for i := range backing {
		backing[i] = Blank
	}
	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = backing[y*width : (y+1)*width : (y+1)*width]
	}
	return &Grid{Width: width, Height: height, cells: cells}
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the glyph at (x, y), or Blank when out of bounds.
func (g *Grid) At(x, y int) rune {
	if !g.InBounds(x, y) {
		return Blank
	}
	return g.cells[y][x]
}

// Set writes r at (x, y). Out-of-bounds writes are dropped and report false.
func (g *Grid) Set(x, y int, r rune) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells[y][x] = r
	return true
}

// Row returns row y as a string.
func (g *Grid) Row(y int) string {
	if y < 0 || y >= g.Height {
		return ""
	}
	return string(g.cells[y])
}

// String flattens the grid, rows separated by newlines.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height * 2)
	for y := 0; y < g.Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range g.cells[y] {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(x, y int, r rune)) {
	for y := 0; y < g.Height; y++ {
		for x, r := range g.cells[y] {
			fn(x, y, r)
		}
	}
}
