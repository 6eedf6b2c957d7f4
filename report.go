package stitch

import (
	"fmt"
	"time"
)

// EntryStatus is the outcome of merging one entry.
type EntryStatus string

// Entry statuses.
const (
	StatusMerged                  EntryStatus = "merged"
	StatusSkippedUnknownType      EntryStatus = "skipped-unknown-type"
	StatusSkippedToolMissing      EntryStatus = "skipped-tool-missing"
	StatusSkippedConversionFailed EntryStatus = "skipped-conversion-failed"
)

// Skipped reports whether the entry contributed no pages.
func (s EntryStatus) Skipped() bool {
	return s != StatusMerged
}

// Page size sources reported by Merge.
const (
	PageSizeFromFirstPDF = "first PDF"
	PageSizeFromFallback = "fallback"
)

// EntryResult records what happened to one entry.
type EntryResult struct {
	Entry    FileEntry
	Status   EntryStatus
	Pages    int
	Err      error // reason for a skip, nil when merged
	Duration time.Duration
}

// Report summarizes a merge run.
type Report struct {
	Entries        []EntryResult
	PageCount      int
	OutputPath     string // final path, or the would-be path under dry-run
	DryRun         bool
	PageSize       Dimension
	PageSizeSource string // PageSizeFromFirstPDF or PageSizeFromFallback
}

// Merged returns the number of entries that contributed pages.
func (r *Report) Merged() int {
	n := 0
	for _, e := range r.Entries {
		if !e.Status.Skipped() {
			n++
		}
	}
	return n
}

// Skipped returns the entries that contributed no pages.
func (r *Report) Skipped() []EntryResult {
	var out []EntryResult
	for _, e := range r.Entries {
		if e.Status.Skipped() {
			out = append(out, e)
		}
	}
	return out
}

// Summary returns a one-line description of the run.
func (r *Report) Summary() string {
	verb := "wrote"
	if r.DryRun {
		verb = "would write"
	}
	return fmt.Sprintf("%s %d page(s) from %d of %d file(s) to %s",
		verb, r.PageCount, r.Merged(), len(r.Entries), r.OutputPath)
}

// EventKind distinguishes observer notifications.
type EventKind int

// Observer event kinds.
const (
	EventStart EventKind = iota // entry is about to be processed
	EventDone                   // entry finished, Result is set
)

// EntryEvent is sent to the observer around each entry.
type EntryEvent struct {
	Kind   EventKind
	Index  int // zero-based position in the entry list
	Total  int
	Entry  FileEntry
	Result *EntryResult // nil for EventStart
}
