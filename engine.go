package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// === ENGINE ===

// continuation is a stream head that moves one row down on the next pass.
type continuation struct {
	at       Point
	lifetime uint8
}

// Engine owns the cell grid and advances it one tick at a time.
type Engine struct {
	cols, rows int
	cells      []Cell // row-major, len == cols*rows

	minLength int
	maxLength int
	density   float64
	pause     time.Duration
	ticks     int
	random    Source

	occupied []bool         // per column, reset every step
	pending  []continuation // reused between steps
	tick     int
}

// NewEngine creates an Engine with a blank cols x rows grid.
func NewEngine(cols, rows int, cfg *Config, random Source) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cols <= 0 || rows <= 0 {
		return nil, errors.Errorf("invalid grid dimensions %dx%d", cols, rows)
	}
	e := &Engine{
		cols:      cols,
		rows:      rows,
		cells:     make([]Cell, cols*rows),
		minLength: cfg.MinStreamLength,
		maxLength: cfg.MaxStreamLength,
		density:   cfg.Density,
		pause:     cfg.Pause,
		ticks:     cfg.Ticks,
		random:    random,
		occupied:  make([]bool, cols),
		pending:   make([]continuation, 0, cols),
	}
	for i := range e.cells {
		e.cells[i] = blankCell
	}
	return e, nil
}

// Size returns the grid dimensions.
func (e *Engine) Size() (cols, rows int) {
	return e.cols, e.rows
}

// Tick returns the number of completed steps.
func (e *Engine) Tick() int {
	return e.tick
}

// Cell returns a copy of the cell at p.
func (e *Engine) Cell(p Point) (Cell, bool) {
	c := e.at(p)
	if c == nil {
		return Cell{}, false
	}
	return *c, true
}

// at returns the cell at p, or nil if p is outside the grid.
func (e *Engine) at(p Point) *Cell {
	if p.Col < 0 || p.Col >= e.cols || p.Row < 0 || p.Row >= e.rows {
		return nil
	}
	return &e.cells[p.Row*e.cols+p.Col]
}

// Step advances the simulation by one tick: age, continue, spawn.
func (e *Engine) Step() {
	clear(e.occupied)
	e.pending = e.pending[:0]

	e.agePass()
	continued := e.continuationPass()
	spawned := e.spawnPass()

	e.tick++
	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithFields(log.Fields{
			"tick":      e.tick,
			"continued": continued,
			"spawned":   spawned,
		}).Debug("step")
	}
}

// agePass advances every occupied cell and records heads entering their body phase.
func (e *Engine) agePass() {
	for i := range e.cells {
		c := &e.cells[i]
		if !c.Occupied() {
			continue
		}
		lifetime := c.Lifetime
		c.Advance()

		col, row := i%e.cols, i/e.cols
		if c.Age == 2 {
			e.pending = append(e.pending, continuation{
				at:       Point{Col: col, Row: row + 1},
				lifetime: lifetime,
			})
		}
		if c.Occupied() {
			e.occupied[col] = true
		}
	}
}

// continuationPass lights up the cell below every head from the age pass.
// Targets past the bottom edge are dropped.
func (e *Engine) continuationPass() int {
	n := 0
	for _, next := range e.pending {
		c := e.at(next.at)
		if c == nil {
			continue
		}
		c.Activate(next.lifetime, randomGlyph(e.random))
		n++
	}
	return n
}

// spawnPass seeds new stream heads in the top row of unoccupied columns.
func (e *Engine) spawnPass() int {
	n := 0
	for col := 0; col < e.cols; col++ {
		if e.occupied[col] || e.random.Float64() >= e.density {
			continue
		}
		c := e.at(Point{Col: col, Row: 0})
		if c == nil {
			continue
		}
		c.Activate(e.streamLength(), randomGlyph(e.random))
		n++
	}
	return n
}

// streamLength draws a lifetime from [minLength, maxLength].
func (e *Engine) streamLength() uint8 {
	return uint8(e.minLength + e.random.IntN(e.maxLength-e.minLength+1))
}

// Render paints every cell, blank or not, and flushes the canvas.
func (e *Engine) Render(canvas Canvas) error {
	for i := range e.cells {
		c := &e.cells[i]
		p := Point{Col: i % e.cols, Row: i / e.cols}
		if err := canvas.Paint(p, c.Glyph.String(), c.Color, c.Emphasis); err != nil {
			return errors.Wrapf(err, "paint %d,%d", p.Col, p.Row)
		}
	}
	if err := canvas.Flush(); err != nil {
		return errors.Wrap(err, "flush")
	}
	return nil
}

// Run steps, renders and pauses until the tick budget is used up.
// It returns ctx.Err() if ctx is cancelled first.
func (e *Engine) Run(ctx context.Context, canvas Canvas) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for e.ticks == 0 || e.tick < e.ticks {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Step()
		if err := e.Render(canvas); err != nil {
			return err
		}
		if e.ticks != 0 && e.tick >= e.ticks {
			break
		}

		timer.Reset(e.pause)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
