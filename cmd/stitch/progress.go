package main

import (
	"io"

	"github.com/cheggaaa/pb/v3"

	stitch "github.com/alnah/go-stitch"
)

// progressTemplate shows counters, a bar and the current file.
const progressTemplate = `{{counters . }} {{bar . }} {{percent . }} {{string . "file"}}`

// progress renders merge progress on a terminal. The zero value and a nil
// pointer are no-ops.
type progress struct {
	bar *pb.ProgressBar
}

// newProgress starts a bar of total steps on w, or returns a no-op progress
// when disabled.
func newProgress(w io.Writer, total int, enabled bool) *progress {
	if !enabled || total <= 0 {
		return &progress{}
	}
	bar := pb.New(total).
		SetTemplateString(progressTemplate).
		SetWriter(w).
		SetMaxWidth(80)
	bar.Start()
	return &progress{bar: bar}
}

// observe advances the bar from merge events.
func (p *progress) observe(e stitch.EntryEvent) {
	if p == nil || p.bar == nil {
		return
	}
	switch e.Kind {
	case stitch.EventStart:
		p.bar.Set("file", e.Entry.Name())
	case stitch.EventDone:
		p.bar.Increment()
	}
}

// finish stops the bar and moves to a new line.
func (p *progress) finish() {
	if p == nil || p.bar == nil {
		return
	}
	p.bar.Set("file", "")
	p.bar.Finish()
}
