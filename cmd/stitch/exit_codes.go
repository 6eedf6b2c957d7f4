package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	stitch "github.com/alnah/go-stitch"
	"github.com/alnah/go-stitch/internal/codec"
	"github.com/alnah/go-stitch/internal/config"
	"github.com/alnah/go-stitch/internal/dateutil"
)

// Exit codes for the stitch CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Merge written (or dry-run reported)
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or dimensions
	ExitIO      = 3 // Unreadable source, unwritable output
	ExitNothing = 4 // No file qualified, or every file was skipped
)

// Sentinel errors for CLI operations.
var (
	ErrUsage   = errors.New("invalid usage")
	ErrNoInput = errors.New("no input path given")
)

// usageError tags a flag parsing error as a usage error.
// flag.ErrHelp is returned unchanged.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Nothing to process (exit 4)
	if errors.Is(err, stitch.ErrEmptyCatalog) ||
		errors.Is(err, stitch.ErrNoPages) {
		return ExitNothing
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, codec.ErrUnsupportedCodec) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, stitch.ErrParse) ||
		errors.Is(err, stitch.ErrInvalidMargin) ||
		errors.Is(err, stitch.ErrInvalidRecursionLimit) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, stitch.ErrReadSource) ||
		errors.Is(err, stitch.ErrWriteOutput) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
