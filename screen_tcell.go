package main

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// tcellScreen paints cells through a tcell screen.
type tcellScreen struct {
	screen      tcell.Screen
	interrupted chan struct{} // closed on Ctrl-C
}

// newTcellScreen creates a tcellScreen on the controlling terminal.
func newTcellScreen() (*tcellScreen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create tcell screen")
	}
	return &tcellScreen{screen: screen}, nil
}

// Setup initializes the screen, hides the cursor and clears it.
func (s *tcellScreen) Setup() error {
	if err := s.screen.Init(); err != nil {
		return errors.Wrap(err, "init tcell screen")
	}
	s.screen.HideCursor()
	s.screen.Clear()

	s.interrupted = make(chan struct{})
	go s.pollEvents()
	return nil
}

// pollEvents watches for Ctrl-C until the screen is finalized.
// The tty is in raw mode, so Ctrl-C arrives as a key rather than SIGINT.
func (s *tcellScreen) pollEvents() {
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				close(s.interrupted)
				return
			}
		}
	}
}

// Interrupted is closed when the user presses Ctrl-C.
func (s *tcellScreen) Interrupted() <-chan struct{} {
	return s.interrupted
}

// Restore releases the screen.
func (s *tcellScreen) Restore() error {
	s.screen.Fini()
	return nil
}

// Size returns the screen's width and height in characters.
func (s *tcellScreen) Size() (cols, rows int, err error) {
	cols, rows = s.screen.Size()
	if cols <= 0 || rows <= 0 {
		return 0, 0, errors.New("invalid terminal dimensions")
	}
	return cols, rows, nil
}

// Paint sets the content of one cell.
func (s *tcellScreen) Paint(p Point, glyph string, c Color, e Emphasis) error {
	r, _ := utf8.DecodeRuneInString(glyph)
	if r == utf8.RuneError {
		r = ' '
	}
	s.screen.SetContent(p.Col, p.Row, r, nil, tcellStyle(c, e))
	return nil
}

// Flush shows the pending frame.
func (s *tcellScreen) Flush() error {
	s.screen.Show()
	return nil
}

// tcellStyle maps a palette color and emphasis to a tcell style.
func tcellStyle(c Color, e Emphasis) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.PaletteColor(c.Index())).
		Dim(e == EmphasisDim)
}
