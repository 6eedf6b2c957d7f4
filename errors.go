package stitch

import "errors"

// Sentinel errors for library operations.
var (
	// ErrParse indicates a malformed dimension, unit or paper size.
	ErrParse = errors.New("invalid dimension")

	// ErrEmptyCatalog indicates that no input file qualified for merging.
	ErrEmptyCatalog = errors.New("nothing to process")

	// ErrNoPages indicates that every entry was skipped and no page was produced.
	ErrNoPages = errors.New("no pages to write")

	// Per-entry conditions: the entry is skipped and the run continues.
	ErrToolUnavailable = errors.New("office suite executable not found")
	ErrConversion      = errors.New("document conversion failed")
	ErrUnknownFormat   = errors.New("unknown file type")

	// I/O conditions: the run is aborted.
	ErrReadSource  = errors.New("failed to read source file")
	ErrWriteOutput = errors.New("failed to write output PDF")

	// Configuration validation errors.
	ErrInvalidMargin         = errors.New("invalid margin")
	ErrInvalidRecursionLimit = errors.New("invalid recursion limit")
)
