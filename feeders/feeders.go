// Package feeders provides configuration sources for multicore.Config:
// YAML, TOML and JSON files, and environment variables with optional
// per-core prefixes and suffixes.
package feeders

import (
	"errors"
	"fmt"
)

// Static errors
var (
	ErrNotAPointerToStruct = errors.New("target must be a non-nil pointer to a struct")
	ErrReadingFile         = errors.New("reading config file")
	ErrDecodingFile        = errors.New("decoding config file")
	ErrEnvConversion       = errors.New("converting environment value")
)

// DebugLogger is the subset of a logger the feeders need for verbose output.
type DebugLogger interface {
	Debug(msg string, args ...any)
}

// verbose carries the verbose-debug state shared by every feeder.
type verbose struct {
	verboseDebug bool
	logger       DebugLogger
}

// SetVerboseDebug enables or disables verbose debug logging.
func (v *verbose) SetVerboseDebug(enabled bool, logger interface{ Debug(msg string, args ...any) }) {
	v.verboseDebug = enabled
	v.logger = logger
}

func (v *verbose) debug(msg string, args ...any) {
	if v.verboseDebug && v.logger != nil {
		v.logger.Debug(msg, args...)
	}
}

func wrapFileError(sentinel error, path string, err error) error {
	return fmt.Errorf("%w %s: %w", sentinel, path, err)
}
