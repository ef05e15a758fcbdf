package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// The screen belongs to the animation, so debug output goes to a file.
const (
	logDir      = "logs"
	logFileName = "digital_rain.log"
)

// setupLogging routes log output to logDir/logFileName when debug is set and
// discards it otherwise. The returned file is nil when logging is disabled.
func setupLogging(debug bool) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		log.SetLevel(log.InfoLevel)
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil, errors.Wrap(err, "create log directory")
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil, errors.Wrap(err, "open log file")
	}

	log.SetOutput(f)
	log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	log.SetLevel(log.DebugLevel)
	return f, nil
}
