package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedTerminal is a Terminal backed by a recordingCanvas.
type scriptedTerminal struct {
	*recordingCanvas
	setups   int
	restores int
	setupErr error
	sizeErr  error
	panicOn  int // flush number that panics, 0 never
}

func (s *scriptedTerminal) Setup() error {
	s.setups++
	return s.setupErr
}

func (s *scriptedTerminal) Restore() error {
	s.restores++
	return nil
}

func (s *scriptedTerminal) Flush() error {
	if s.panicOn != 0 && s.flushes+1 == s.panicOn {
		panic("canvas exploded")
	}
	return s.recordingCanvas.Flush()
}

func (s *scriptedTerminal) Size() (int, int, error) {
	if s.sizeErr != nil {
		return 0, 0, s.sizeErr
	}
	return s.recordingCanvas.Size()
}

func TestMatrixRainPrintsClosingMessageOnce(t *testing.T) {
	cfg := testConfig(6, 14, 0.1)
	cfg.Ticks = 4
	term := &scriptedTerminal{recordingCanvas: newRecordingCanvas(8, 6)}
	var out bytes.Buffer

	rain := NewMatrixRain(context.Background(), cfg, term, NewRNG(5), &out)
	require.NoError(t, rain.Run())

	assert.Equal(t, closingMessage+"\n", out.String())
	assert.Equal(t, 1, strings.Count(out.String(), closingMessage))
	assert.Equal(t, 1, term.setups)
	assert.Equal(t, 1, term.restores)
	assert.Equal(t, 4, term.flushes)
	assert.Len(t, term.painted, 4*8*6)
}

func TestMatrixRainInterrupted(t *testing.T) {
	cfg := testConfig(6, 14, 0.1)
	term := &scriptedTerminal{recordingCanvas: newRecordingCanvas(8, 6)}
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rain := NewMatrixRain(ctx, cfg, term, NewRNG(5), &out)
	err := rain.Run()

	assert.ErrorIs(t, err, errInterrupted)
	assert.Empty(t, out.String())
	assert.Equal(t, 1, term.restores)
}

func TestMatrixRainSetupFailure(t *testing.T) {
	errNoTerm := errors.New("no terminal")
	term := &scriptedTerminal{recordingCanvas: newRecordingCanvas(8, 6), setupErr: errNoTerm}
	var out bytes.Buffer

	err := NewMatrixRain(context.Background(), testConfig(6, 14, 0.1), term, NewRNG(5), &out).Run()

	assert.ErrorIs(t, err, errNoTerm)
	assert.Zero(t, term.restores)
	assert.Empty(t, out.String())
}

func TestMatrixRainRenderFailure(t *testing.T) {
	errGone := errors.New("terminal gone")
	cfg := testConfig(6, 14, 0.1)
	cfg.Ticks = 3
	canvas := newRecordingCanvas(8, 6)
	canvas.flushErr = errGone
	term := &scriptedTerminal{recordingCanvas: canvas}
	var out bytes.Buffer

	err := NewMatrixRain(context.Background(), cfg, term, NewRNG(5), &out).Run()

	assert.ErrorIs(t, err, errGone)
	assert.Equal(t, 1, term.restores)
	assert.Empty(t, out.String())
}

func TestMatrixRainSizeFailure(t *testing.T) {
	errSize := errors.New("ioctl failed")
	term := &scriptedTerminal{recordingCanvas: newRecordingCanvas(8, 6), sizeErr: errSize}
	var out bytes.Buffer

	err := NewMatrixRain(context.Background(), testConfig(6, 14, 0.1), term, NewRNG(5), &out).Run()

	assert.ErrorIs(t, err, errSize)
	assert.Equal(t, 1, term.restores)
	assert.Empty(t, out.String())
}

func TestMatrixRainOnSimulationScreen(t *testing.T) {
	cfg := testConfig(2, 4, 1)
	cfg.Ticks = 3
	cfg.Backend = backendTcell
	term := &tcellScreen{screen: tcell.NewSimulationScreen("UTF-8")}
	var out bytes.Buffer

	require.NoError(t, NewMatrixRain(context.Background(), cfg, term, NewRNG(9), &out).Run())
	assert.Equal(t, closingMessage+"\n", out.String())
}

func TestMatrixRainPanicRestoresTerminal(t *testing.T) {
	cfg := testConfig(6, 14, 0.1)
	cfg.Ticks = 5
	term := &scriptedTerminal{recordingCanvas: newRecordingCanvas(8, 6), panicOn: 2}
	var out bytes.Buffer

	rain := NewMatrixRain(context.Background(), cfg, term, NewRNG(5), &out)
	assert.PanicsWithValue(t, "canvas exploded", func() { rain.Run() })

	assert.Equal(t, 1, term.restores)
	assert.Empty(t, out.String())
}

// ctrlCScreen presses Ctrl-C on a simulation screen right after setup.
type ctrlCScreen struct {
	*tcellScreen
	sim      tcell.SimulationScreen
	restores int
}

func (s *ctrlCScreen) Setup() error {
	if err := s.tcellScreen.Setup(); err != nil {
		return err
	}
	return s.sim.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
}

func (s *ctrlCScreen) Restore() error {
	s.restores++
	return s.tcellScreen.Restore()
}

func TestMatrixRainCtrlCOnTcellScreen(t *testing.T) {
	cfg := testConfig(6, 14, 0.1)
	cfg.Pause = 10 * time.Millisecond
	cfg.Ticks = 0
	cfg.Backend = backendTcell
	sim := tcell.NewSimulationScreen("UTF-8")
	term := &ctrlCScreen{tcellScreen: &tcellScreen{screen: sim}, sim: sim}
	var out bytes.Buffer

	done := make(chan error, 1)
	go func() {
		done <- NewMatrixRain(context.Background(), cfg, term, NewRNG(5), &out).Run()
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, errInterrupted)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop on Ctrl-C")
	}
	assert.Equal(t, 1, term.restores)
	assert.Empty(t, out.String())
}
