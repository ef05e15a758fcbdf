package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// emergencyReset restores a usable terminal after a crash.
const emergencyReset = "\x1b[0m\x1b[?7h\x1b[?25h\x1b[?1049l"

// === MAIN ===

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprint(os.Stdout, emergencyReset)
			fmt.Fprintf(os.Stderr, "crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if errors.Is(err, errInterrupted) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := NewConfigParser(os.Args[0], os.Stderr).Parse(args)
	if err != nil {
		return errors.Wrap(err, "failed to parse config")
	}

	logFile, err := setupLogging(cfg.Debug)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return errors.New("stdout is not a terminal")
	}

	terminal, err := newTerminal(cfg)
	if err != nil {
		return err
	}
	rain := NewMatrixRain(context.Background(), cfg, terminal, NewRNG(cfg.Seed), os.Stdout)
	return rain.Run()
}
