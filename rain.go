package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// === MATRIX RAIN ===

// MatrixRain holds the components of the digital rain animation.
type MatrixRain struct {
	cfg      *Config
	terminal Terminal
	random   Source
	out      io.Writer // receives the closing message
	ctx      context.Context
	stop     context.CancelFunc
}

// NewMatrixRain creates the animation for cfg. Cancelling ctx, or receiving
// SIGINT or SIGTERM, stops it early.
func NewMatrixRain(ctx context.Context, cfg *Config, terminal Terminal, random Source, out io.Writer) *MatrixRain {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	return &MatrixRain{
		cfg:      cfg,
		terminal: terminal,
		random:   random,
		out:      out,
		ctx:      ctx,
		stop:     stop,
	}
}

// Run sets up the terminal, animates until the tick budget is exhausted and
// restores the terminal. The closing message is printed only after a run
// that used up its budget. A panic restores the terminal and is re-raised.
func (r *MatrixRain) Run() (err error) {
	defer r.stop()

	if err := r.terminal.Setup(); err != nil {
		return errors.Wrap(err, "setup terminal")
	}
	defer func() {
		if p := recover(); p != nil {
			r.terminal.Restore()
			panic(p)
		}
		if rerr := r.terminal.Restore(); rerr != nil && err == nil {
			err = errors.Wrap(rerr, "restore terminal")
		}
		if err == nil {
			_, err = fmt.Fprintln(r.out, closingMessage)
		}
	}()

	cols, rows, err := r.terminal.Size()
	if err != nil {
		return errors.Wrap(err, "cannot get terminal size")
	}
	engine, err := NewEngine(cols, rows, r.cfg, r.random)
	if err != nil {
		return errors.Wrap(err, "failed to create engine")
	}
	log.WithFields(log.Fields{
		"cols":    cols,
		"rows":    rows,
		"ticks":   r.cfg.Ticks,
		"backend": r.cfg.Backend,
	}).Info("rain started")

	ctx, cancel := context.WithCancel(r.ctx)
	defer cancel()
	if it, ok := r.terminal.(interrupter); ok {
		go func() {
			select {
			case <-it.Interrupted():
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	if err := engine.Run(ctx, r.terminal); err != nil {
		if errors.Is(err, context.Canceled) {
			log.WithField("tick", engine.Tick()).Info("rain interrupted")
			return errInterrupted
		}
		return errors.Wrap(err, "failed to render frame")
	}
	log.WithField("tick", engine.Tick()).Info("rain finished")
	return nil
}

// errInterrupted reports a run stopped by a signal, Ctrl-C on a raw terminal
// or a cancelled context.
var errInterrupted = errors.New("interrupted")
