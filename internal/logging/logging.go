// Package logging opens the diagnostic log used by tts-cli.
package logging

import (
	"fmt"

	"github.com/book-expert/logger"

	"github.com/book-expert/tts-cli/internal/core"
)

// FileName is the name of the log file created inside the log directory.
const FileName = "tts-cli.log"

// Nop discards every message.
type Nop struct{}

// Info implements core.Logger.
func (Nop) Info(string, ...any) {}

// Warn implements core.Logger.
func (Nop) Warn(string, ...any) {}

// Error implements core.Logger.
func (Nop) Error(string, ...any) {}

// Open returns a file logger writing to dir/FileName together with a close
// function. With an empty dir nothing is opened and a Nop logger is returned,
// so audio on standard output is never interleaved with diagnostics.
func Open(dir string) (core.Logger, func() error, error) {
	if dir == "" {
		return Nop{}, func() error { return nil }, nil
	}

	log, err := logger.New(dir, FileName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger in %s: %w", dir, err)
	}

	return log, log.Close, nil
}
