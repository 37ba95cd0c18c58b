package ui

import (
	"testing"

	"github.com/pthm-cable/fishtank/config"
)

func TestPaletteClass(t *testing.T) {
	p := NewPalette(config.Default())

	tests := []struct {
		r    rune
		want GlyphClass
	}{
		{' ', ClassWater},
		{'│', ClassFrame},
		{'└', ClassFrame},
		{'~', ClassWave},
		{'*', ClassFood},
		{'o', ClassBubble},
		{'.', ClassBubble},
		{'°', ClassFish},
		{'>', ClassFish},
		{'#', ClassWater},
	}
	for _, tt := range tests {
		if got := p.Class(tt.r); got != tt.want {
			t.Errorf("Class(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}

	var nilPalette *Palette
	if got := nilPalette.Class('>'); got != ClassWater {
		t.Errorf("nil palette Class = %v, want water", got)
	}
}

func TestASCII(t *testing.T) {
	tests := []struct {
		in, want rune
	}{
		{'>', '>'},
		{'~', '~'},
		{'│', '|'},
		{'─', '-'},
		{'└', '\\'},
		{'┘', '/'},
		{'°', 'o'},
		{'█', '?'},
	}
	for _, tt := range tests {
		if got := ASCII(tt.in); got != tt.want {
			t.Errorf("ASCII(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClickAt(t *testing.T) {
	bounds := Rect{X: 10, Y: 20, Width: 360, Height: 240}

	tests := []struct {
		name   string
		x, y   float64
		want   Click
		wantOK bool
	}{
		{"left edge", 10, 30, Click{Offset: 0, Width: 360}, true},
		{"middle", 190, 100, Click{Offset: 180, Width: 360}, true},
		{"right edge is outside", 370, 100, Click{}, false},
		{"above", 100, 19, Click{}, false},
		{"left of", 9, 100, Click{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClickAt(bounds, tt.x, tt.y)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ClickAt(%v, %v) = %+v, %v; want %+v, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
