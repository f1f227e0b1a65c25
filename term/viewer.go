// Package term shows a schematic preview in a scrollable terminal view.
package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Viewer displays prerendered text in a full-screen scrollable pane.
type Viewer struct {
	lines  []string
	offX   int
	offY   int
	status string
}

// NewViewer creates a viewer over the given text.
func NewViewer(text, status string) *Viewer {
	return &Viewer{lines: strings.Split(text, "\n"), status: status}
}

// Run takes over the terminal until the user quits with q or Escape.
// Arrow keys and hjkl scroll, PgUp/PgDn page, g/G jump to top/bottom.
func (v *Viewer) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	for {
		v.draw(screen)
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(screen, ev) {
				return nil
			}
		}
	}
}

func (v *Viewer) handleKey(screen tcell.Screen, ev *tcell.EventKey) (quit bool) {
	_, h := screen.Size()
	page := h - 2
	if page < 1 {
		page = 1
	}

	switch {
	case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
		return true
	case ev.Key() == tcell.KeyUp, ev.Rune() == 'k':
		v.offY--
	case ev.Key() == tcell.KeyDown, ev.Rune() == 'j':
		v.offY++
	case ev.Key() == tcell.KeyLeft, ev.Rune() == 'h':
		v.offX -= 4
	case ev.Key() == tcell.KeyRight, ev.Rune() == 'l':
		v.offX += 4
	case ev.Key() == tcell.KeyPgUp:
		v.offY -= page
	case ev.Key() == tcell.KeyPgDn:
		v.offY += page
	case ev.Rune() == 'g':
		v.offY = 0
	case ev.Rune() == 'G':
		v.offY = len(v.lines)
	}
	v.clamp(screen)
	return false
}

func (v *Viewer) clamp(screen tcell.Screen) {
	w, h := screen.Size()
	maxY := len(v.lines) - (h - 1)
	if maxY < 0 {
		maxY = 0
	}
	if v.offY > maxY {
		v.offY = maxY
	}
	if v.offY < 0 {
		v.offY = 0
	}

	maxX := 0
	for _, line := range v.lines {
		if n := len([]rune(line)); n > maxX {
			maxX = n
		}
	}
	maxX -= w
	if maxX < 0 {
		maxX = 0
	}
	if v.offX > maxX {
		v.offX = maxX
	}
	if v.offX < 0 {
		v.offX = 0
	}
}

func (v *Viewer) draw(screen tcell.Screen) {
	screen.Clear()
	w, h := screen.Size()
	style := tcell.StyleDefault

	for row := 0; row < h-1; row++ {
		idx := v.offY + row
		if idx >= len(v.lines) {
			break
		}
		runes := []rune(v.lines[idx])
		for col := 0; col < w; col++ {
			src := v.offX + col
			if src >= len(runes) {
				break
			}
			screen.SetContent(col, row, runes[src], nil, style)
		}
	}

	bar := v.status + "  [arrows/hjkl scroll, q quit]"
	barStyle := tcell.StyleDefault.Reverse(true)
	for col := 0; col < w; col++ {
		r := ' '
		if col < len(bar) {
			r = rune(bar[col])
		}
		screen.SetContent(col, h-1, r, nil, barStyle)
	}
	screen.Show()
}
