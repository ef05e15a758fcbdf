package main

// === TERMINAL ===

// Canvas is what the engine paints frames onto.
type Canvas interface {
	Size() (cols, rows int, err error)                      // Queried once at startup
	Paint(p Point, glyph string, c Color, e Emphasis) error // Draw one cell
	Flush() error                                           // Make queued paints visible
}

// Terminal is a Canvas that owns the screen for the duration of a run.
type Terminal interface {
	Canvas
	Setup() error   // Clear, hide cursor, disable line wrap
	Restore() error // Return the terminal to its original state
}

// interrupter is implemented by terminals that read the keyboard themselves
// and so have to report a user interrupt without a signal.
type interrupter interface {
	Interrupted() <-chan struct{}
}

// newTerminal creates the Terminal for the configured backend.
func newTerminal(cfg *Config) (Terminal, error) {
	if cfg.Backend == backendTcell {
		return newTcellScreen()
	}
	return newANSIScreen(), nil
}
