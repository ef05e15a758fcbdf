package main

import (
	"bufio"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Sequences not covered by termenv.
const (
	disableLineWrapSeq = termenv.CSI + "?7l"
	enableLineWrapSeq  = termenv.CSI + "?7h"
	purgeScrollbackSeq = termenv.CSI + "3J"
)

// ansiScreen paints cells with ANSI escape sequences through termenv.
type ansiScreen struct {
	buf  *bufio.Writer
	out  *termenv.Output
	size func() (cols, rows int, err error)
}

// newANSIScreen creates an ansiScreen on stdout.
func newANSIScreen() *ansiScreen {
	fd := int(os.Stdout.Fd())
	return newANSIScreenWriter(os.Stdout, func() (int, int, error) {
		return term.GetSize(fd)
	})
}

// newANSIScreenWriter creates an ansiScreen writing to w, sized by size.
func newANSIScreenWriter(w io.Writer, size func() (int, int, error)) *ansiScreen {
	buf := bufio.NewWriter(w)
	return &ansiScreen{
		buf:  buf,
		out:  termenv.NewOutput(buf, termenv.WithProfile(termenv.ANSI256)),
		size: size,
	}
}

// Setup switches to the alternate screen, hides the cursor, clears and purges
// the screen and disables line wrap.
func (s *ansiScreen) Setup() error {
	s.out.AltScreen()
	s.out.HideCursor()
	s.out.ClearScreen()
	if _, err := s.out.WriteString(purgeScrollbackSeq); err != nil {
		return errors.Wrap(err, "purge scrollback")
	}
	if _, err := s.out.WriteString(disableLineWrapSeq); err != nil {
		return errors.Wrap(err, "disable line wrap")
	}
	return s.Flush()
}

// Restore undoes Setup.
func (s *ansiScreen) Restore() error {
	s.out.Reset()
	if _, err := s.out.WriteString(enableLineWrapSeq); err != nil {
		return errors.Wrap(err, "enable line wrap")
	}
	s.out.ShowCursor()
	s.out.ExitAltScreen()
	return s.Flush()
}

// Size returns the terminal's width and height in characters.
func (s *ansiScreen) Size() (cols, rows int, err error) {
	cols, rows, err = s.size()
	if err != nil {
		return 0, 0, errors.Wrap(err, "get terminal size")
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, errors.New("invalid terminal dimensions")
	}
	return cols, rows, nil
}

// Paint moves the cursor to p and writes the styled glyph.
func (s *ansiScreen) Paint(p Point, glyph string, c Color, e Emphasis) error {
	s.out.MoveCursor(p.Row+1, p.Col+1)
	if _, err := s.out.WriteString(s.style(glyph, c, e).String()); err != nil {
		return errors.Wrap(err, "write glyph")
	}
	return nil
}

// style builds the termenv style for one cell.
func (s *ansiScreen) style(glyph string, c Color, e Emphasis) termenv.Style {
	st := s.out.String(glyph).Foreground(termenv.ANSI256Color(c.Index()))
	if e == EmphasisDim {
		st = st.Faint()
	}
	return st
}

// Flush writes the buffered frame to the terminal.
func (s *ansiScreen) Flush() error {
	return errors.Wrap(s.buf.Flush(), "flush terminal")
}
