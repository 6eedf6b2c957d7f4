package stitch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-stitch/internal/fileutil"
)

// MergerOption configures a Merger.
type MergerOption func(*Merger)

// WithOfficeConverter sets the converter used for office documents.
// Without it, office documents are converted with NewSoffice using
// MergeConfig.OfficeExecutables.
func WithOfficeConverter(c OfficeConverter) MergerOption {
	return func(m *Merger) { m.office = c }
}

// WithImageRenderer sets the renderer used for raster images.
func WithImageRenderer(r ImageRenderer) MergerOption {
	return func(m *Merger) { m.images = r }
}

// WithObserver sets a callback notified before and after each entry.
func WithObserver(fn func(EntryEvent)) MergerOption {
	return func(m *Merger) { m.observer = fn }
}

// WithTempDir sets the parent of the run's scratch directory.
// Defaults to os.TempDir.
func WithTempDir(dir string) MergerOption {
	return func(m *Merger) { m.tempParent = dir }
}

// Merger assembles catalog entries into one PDF.
// Entries are processed sequentially; a Merger must not run two merges
// at the same time. Call Close to remove intermediate files.
type Merger struct {
	office     OfficeConverter
	images     ImageRenderer
	observer   func(EntryEvent)
	tempParent string

	mu      sync.Mutex
	tempDir string
}

// NewMerger creates a Merger. Use options to inject adapters (e.g., in tests).
func NewMerger(opts ...MergerOption) *Merger {
	m := &Merger{images: GofpdfRenderer{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge assembles entries in order into outputPath (".pdf" is appended when
// missing) and returns a report of every entry.
//
// Per-entry problems with office documents and unknown types skip the entry.
// Unreadable PDFs and images abort the run, as does a context cancellation.
// Nothing is written under cfg.DryRun, or when no page was produced
// (ErrNoPages).
func (m *Merger) Merge(ctx context.Context, entries []FileEntry, outputPath string, cfg *MergeConfig) (*Report, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	if cfg == nil {
		cfg = DefaultMergeConfig()
	}
	settings, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	report := &Report{
		OutputPath: fileutil.EnsurePDFExtension(outputPath),
		DryRun:     cfg.DryRun,
	}

	report.PageSize, report.PageSizeSource, err = choosePageSize(entries, settings.fallback, cfg.ForceFallback)
	if err != nil {
		return nil, err
	}
	page := report.PageSize.Rect()

	office := m.office
	if office == nil {
		office = NewSoffice(cfg.OfficeExecutables)
	}

	doc := &OutputDocument{}
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.notify(EntryEvent{Kind: EventStart, Index: i, Total: len(entries), Entry: entry})

		start := time.Now()
		result, err := m.mergeEntry(ctx, doc, entry, page, settings.margin, office)
		if err != nil {
			return nil, err
		}
		result.Duration = time.Since(start)

		report.Entries = append(report.Entries, result)
		m.notify(EntryEvent{Kind: EventDone, Index: i, Total: len(entries), Entry: entry, Result: &result})
	}
	report.PageCount = doc.PageCount()

	if cfg.DryRun {
		return report, nil
	}
	if doc.PageCount() == 0 {
		return report, ErrNoPages
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := doc.Save(report.OutputPath); err != nil {
		return nil, err
	}
	return report, nil
}

// mergeEntry dispatches one entry to its adapter. A returned error aborts
// the run; skips are reported through the result.
func (m *Merger) mergeEntry(ctx context.Context, doc *OutputDocument, entry FileEntry, page Rect, margin Dimension, office OfficeConverter) (EntryResult, error) {
	result := EntryResult{Entry: entry}

	switch entry.Format() {
	case FormatPDF:
		n, err := doc.AppendFile(entry.Path)
		if err != nil {
			return result, err
		}
		result.Status, result.Pages = StatusMerged, n

	case FormatImage:
		data, err := m.images.RenderPage(entry.Path, page, margin)
		if err != nil {
			return result, err
		}
		n, err := doc.AppendBytes(entry.Path, data)
		if err != nil {
			return result, err
		}
		result.Status, result.Pages = StatusMerged, n

	case FormatOffice:
		data, err := m.convertOffice(ctx, entry, office)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return result, ctx.Err()
		case errors.Is(err, ErrToolUnavailable):
			result.Status, result.Err = StatusSkippedToolMissing, err
			return result, nil
		case errors.Is(err, ErrConversion):
			result.Status, result.Err = StatusSkippedConversionFailed, err
			return result, nil
		default:
			return result, err
		}
		n, err := doc.AppendBytes(entry.Path, data)
		if err != nil {
			result.Status = StatusSkippedConversionFailed
			result.Err = fmt.Errorf("%w: %v", ErrConversion, err)
			return result, nil
		}
		result.Status, result.Pages = StatusMerged, n

	default:
		result.Status = StatusSkippedUnknownType
		result.Err = fmt.Errorf("%w: %s", ErrUnknownFormat, entry.Name())
	}

	return result, nil
}

// convertOffice runs the converter and reads its output at once, so a later
// conversion of a file with the same stem cannot overwrite it.
func (m *Merger) convertOffice(ctx context.Context, entry FileEntry, office OfficeConverter) ([]byte, error) {
	dir, err := m.scratchDir()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}

	out, err := office.ConvertToPDF(ctx, entry.Path, dir)
	if err != nil {
		return nil, err
	}
	defer os.Remove(out)

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConversion, out, err)
	}
	return data, nil
}

// scratchDir creates the run's scratch directory on first use.
func (m *Merger) scratchDir() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tempDir != "" {
		return m.tempDir, nil
	}
	parent := m.tempParent
	if parent == "" {
		parent = os.TempDir()
	}
	dir := filepath.Join(parent, "stitch-"+uuid.NewString())
	if err := os.MkdirAll(dir, fileutil.DirPerm); err != nil {
		return "", fmt.Errorf("creating scratch directory: %w", err)
	}
	m.tempDir = dir
	return dir, nil
}

// Close removes the scratch directory. Safe to call more than once.
func (m *Merger) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tempDir == "" {
		return nil
	}
	err := os.RemoveAll(m.tempDir)
	m.tempDir = ""
	return err
}

func (m *Merger) notify(e EntryEvent) {
	if m.observer != nil {
		m.observer(e)
	}
}

// choosePageSize applies the page size policy: the first page of the first
// PDF in the catalog, unless forced or absent, in which case fallback.
func choosePageSize(entries []FileEntry, fallback Dimension, force bool) (Dimension, string, error) {
	if force {
		return fallback, PageSizeFromFallback, nil
	}
	for _, e := range entries {
		if e.Format() != FormatPDF {
			continue
		}
		size, err := firstPageSize(e.Path)
		if err != nil {
			return Dimension{}, "", err
		}
		return size, PageSizeFromFirstPDF, nil
	}
	return fallback, PageSizeFromFallback, nil
}
