package ui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/fishtank/renderer"
)

const helpLine = "click: feed  f: feed  space: pause  q: quit"

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleFrame   = styleDefault.Foreground(tcell.ColorDarkGray)
	styleWave    = styleDefault.Foreground(tcell.ColorAqua)
	styleFish    = styleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleFood    = styleDefault.Foreground(tcell.ColorTan)
	styleBubble  = styleDefault.Foreground(tcell.ColorLightCyan)
	styleHelp    = styleDefault.Foreground(tcell.ColorGray)
	stylePaused  = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// Terminal renders the tank on a tcell screen and turns mouse presses and
// keys into input. Events are read on a separate goroutine and only handed
// over through channels.
type Terminal struct {
	screen  tcell.Screen
	palette *Palette

	mu      sync.Mutex
	bounds  Rect // Rendered tank area in cells
	status  string
	pressed bool // Button1 held at the last mouse event

	clicks   chan Click
	commands chan Command
	done     chan struct{}
	doneOnce sync.Once
	closed   chan struct{}
}

// NewTerminal opens the default terminal screen.
func NewTerminal(palette *Palette) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewTerminalWithScreen(s, palette)
}

// NewTerminalWithScreen initializes s and starts reading its events.
func NewTerminalWithScreen(s tcell.Screen, palette *Palette) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	s.SetStyle(styleDefault)
	s.EnableMouse()
	s.HideCursor()
	s.Clear()

	t := &Terminal{
		screen:   s,
		palette:  palette,
		clicks:   make(chan Click, 16),
		commands: make(chan Command, 16),
		done:     make(chan struct{}),
		closed:   make(chan struct{}),
	}
	go t.pollEvents()
	return t, nil
}

// Clicks implements InputSource.
func (t *Terminal) Clicks() <-chan Click { return t.clicks }

// Commands implements InputSource.
func (t *Terminal) Commands() <-chan Command { return t.commands }

// Done implements InputSource.
func (t *Terminal) Done() <-chan struct{} { return t.done }

// SetStatus sets the text shown under the tank, e.g. "PAUSED".
func (t *Terminal) SetStatus(status string) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
}

// Bounds implements Surface.
func (t *Terminal) Bounds() Rect {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bounds
}

// Present draws grid centered on the screen.
func (t *Terminal) Present(grid *renderer.Grid) error {
	sw, sh := t.screen.Size()
	ox := max((sw-grid.Width)/2, 0)
	oy := max((sh-grid.Height-1)/2, 0)

	t.mu.Lock()
	t.bounds = Rect{X: float64(ox), Y: float64(oy), Width: float64(grid.Width), Height: float64(grid.Height)}
	status := t.status
	t.mu.Unlock()

	t.screen.Clear()
	grid.Each(func(x, y int, r rune) {
		t.screen.SetContent(ox+x, oy+y, r, nil, t.styleFor(r))
	})

	line := helpLine
	style := styleHelp
	if status != "" {
		line = status
		style = stylePaused
	}
	drawText(t.screen, ox, oy+grid.Height, line, style)

	t.screen.Show()
	return nil
}

func (t *Terminal) styleFor(r rune) tcell.Style {
	switch t.palette.Class(r) {
	case ClassFrame:
		return styleFrame
	case ClassWave:
		return styleWave
	case ClassFish:
		return styleFish
	case ClassFood:
		return styleFood
	case ClassBubble:
		return styleBubble
	}
	return styleDefault
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	select {
	case <-t.closed:
		return nil
	default:
	}
	close(t.closed)
	t.screen.Fini()
	return nil
}

func (t *Terminal) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			t.handleKey(ev)
		case *tcell.EventMouse:
			t.handleMouse(ev)
		}
	}
}

func (t *Terminal) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		t.quit()
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ev.Rune() {
	case 'q', 'Q':
		t.quit()
	case ' ':
		t.send(CommandPause)
	case 'f', 'F':
		t.send(CommandFeed)
	}
}

// handleMouse emits a click on the press edge of the primary button only;
// drags and releases are ignored.
func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0

	t.mu.Lock()
	wasDown := t.pressed
	t.pressed = down
	bounds := t.bounds
	t.mu.Unlock()

	if !down || wasDown {
		return
	}

	x, y := ev.Position()
	// Aim at the middle of the cell
	click, ok := ClickAt(bounds, float64(x)+0.5, float64(y)+0.5)
	if !ok {
		return
	}
	select {
	case t.clicks <- click:
	default:
		// Run loop is behind; drop the click
	}
}

func (t *Terminal) send(cmd Command) {
	select {
	case t.commands <- cmd:
	default:
	}
}

func (t *Terminal) quit() {
	t.doneOnce.Do(func() { close(t.done) })
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
