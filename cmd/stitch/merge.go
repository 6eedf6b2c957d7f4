package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	stitch "github.com/alnah/go-stitch"
	"github.com/alnah/go-stitch/internal/config"
	"github.com/alnah/go-stitch/internal/dateutil"
	"github.com/alnah/go-stitch/internal/fileutil"
	"github.com/alnah/go-stitch/internal/hints"
)

// runMerge orchestrates discovery, merging and reporting.
func runMerge(ctx context.Context, args []string, env *Environment) error {
	flags, paths, err := parseMergeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		printMergeUsage(env.Stderr)
		return ErrNoInput
	}

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return withHints(err)
	}
	applyMergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return withHints(err)
	}

	mc := cfg.MergeConfig()
	mc.DryRun = flags.output.dryRun
	if err := mc.Validate(); err != nil {
		return withHints(err)
	}

	quiet, verbose := cfg.Quiet, flags.common.verbose && !cfg.Quiet
	if !quiet {
		warnUnknownEnvVars(env.Stderr, env.environ())
	}

	found, err := collect(paths, mc.CatalogOptions(), env.Stderr, quiet)
	if err != nil {
		return err
	}
	if flags.output.tree {
		if err := stitch.RenderTree(env.Stdout, found.Trees); err != nil {
			return err
		}
	}
	if len(found.Entries) == 0 {
		return fmt.Errorf("%w%s", stitch.ErrEmptyCatalog, hints.ForEmptyCatalog(mc.RecursionLimit))
	}

	dest, err := resolveDestination(flags.output, cfg, env.Now())
	if err != nil {
		return err
	}

	bar := newProgress(env.Stderr, len(found.Entries),
		env.Interactive && !quiet && !verbose && !flags.output.noProgress)
	observer := bar.observe
	if verbose {
		observer = verboseObserver(env.Stderr)
	}

	opts := []stitch.MergerOption{stitch.WithObserver(observer)}
	if env.Office != nil {
		opts = append(opts, stitch.WithOfficeConverter(env.Office))
	}
	merger := stitch.NewMerger(opts...)
	defer func() {
		if err := merger.Close(); err != nil && verbose {
			fmt.Fprintf(env.Stderr, "warning: removing temporary files: %v\n", err)
		}
	}()

	start := time.Now()
	report, err := merger.Merge(ctx, found.Entries, dest, mc)
	bar.finish()

	if report != nil {
		printReport(env.Stdout, env.Stderr, report, quiet, verbose)
	}
	if err != nil {
		return withHints(err)
	}
	if verbose {
		fmt.Fprintf(env.Stderr, "done in %s\n", time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// applyMergeFlags merges CLI flags into config (CLI wins).
func applyMergeFlags(f *mergeFlags, cfg *config.Config) {
	applyDiscoveryFlags(f.discovery, cfg)

	if f.output.directory != "" {
		cfg.OutputDirectory = f.output.directory
	}
	if f.layout.margin != "" {
		cfg.Margin = f.layout.margin
	}
	if f.layout.fallbackSize != "" {
		cfg.ImagePageFallbackSize = f.layout.fallbackSize
	}
	if f.layout.forceFallback {
		cfg.ForceImagePageFallbackSize = true
	}
	if len(f.office.paths) > 0 {
		cfg.LibreOfficePath = f.office.paths
	}
	if f.common.quiet {
		cfg.Quiet = true
	}
}

// applyDiscoveryFlags merges discovery flags into config (CLI wins).
func applyDiscoveryFlags(f discoveryFlags, cfg *config.Config) {
	if f.alphabetic {
		cfg.AlphabeticFileSorting = true
	}
	if f.limitSet {
		cfg.RecursionLimit = f.recursionLimit
	}
}

// collect runs the catalog and reports dropped roots unless quiet.
func collect(paths []string, opts stitch.CatalogOptions, w io.Writer, quiet bool) (*stitch.CatalogResult, error) {
	catalog, err := stitch.NewCatalog(opts)
	if err != nil {
		return nil, err
	}
	found, err := catalog.Collect(paths)
	if err != nil {
		return nil, err
	}
	if !quiet {
		for _, d := range found.Dropped {
			fmt.Fprintf(w, "warning: %s\n", d)
		}
	}
	return found, nil
}

// resolveDestination picks the output path. An explicit file wins; otherwise
// a generated name goes in the output directory (flag > config > current
// directory). The result always ends in ".pdf".
func resolveDestination(f outputFlags, cfg *config.Config, now time.Time) (string, error) {
	if f.file != "" {
		return fileutil.EnsurePDFExtension(fileutil.ExpandPath(f.file)), nil
	}

	dir := fileutil.ExpandPath(f.directory)
	if dir == "" {
		dir = cfg.OutputDir()
	}
	if dir == "" {
		dir = "."
	}

	nameFormat := cfg.NameFormat
	if nameFormat == "" {
		nameFormat = dateutil.DefaultNameFormat
	}
	name, err := dateutil.Format(nameFormat, now)
	if err != nil {
		return "", fmt.Errorf("name_format: %w", err)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: name_format %q produces a path, not a file name", ErrUsage, nameFormat)
	}
	return filepath.Join(dir, fileutil.EnsurePDFExtension(name)), nil
}

// verboseObserver prints one line per finished entry.
func verboseObserver(w io.Writer) func(stitch.EntryEvent) {
	return func(e stitch.EntryEvent) {
		if e.Kind != stitch.EventDone || e.Result == nil {
			return
		}
		r := e.Result
		fmt.Fprintf(w, "[%d/%d] %s: %s, %d page(s) in %s\n",
			e.Index+1, e.Total, e.Entry.Path, r.Status, r.Pages, r.Duration.Round(time.Millisecond))
	}
}

// printReport prints skip reasons and the dry-run listing on stderr, and the
// summary on stdout.
func printReport(stdout, stderr io.Writer, r *stitch.Report, quiet, verbose bool) {
	if verbose {
		fmt.Fprintf(stderr, "page size: %s (%s)\n", r.PageSize.Format(stitch.UnitMillimeter), r.PageSizeSource)
	}
	if quiet {
		return
	}

	toolMissing := false
	for _, e := range r.Skipped() {
		if errors.Is(e.Err, stitch.ErrToolUnavailable) {
			toolMissing = true
		}
		fmt.Fprintf(stderr, "skipped %s: %v\n", e.Entry.Path, e.Err)
	}
	if toolMissing {
		fmt.Fprintln(stderr, strings.TrimPrefix(hints.ForToolMissing(), "\n"))
	}

	if r.DryRun {
		for _, e := range r.Entries {
			if !e.Status.Skipped() {
				fmt.Fprintf(stdout, "%4d page(s)  %s\n", e.Pages, e.Entry.Path)
			}
		}
	}
	fmt.Fprintln(stdout, r.Summary())
}

// withHints appends an actionable hint to errors that have one.
func withHints(err error) error {
	var notFound *config.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return fmt.Errorf("%w%s", err, hints.ForConfigNotFound(notFound.Tried))
	case errors.Is(err, stitch.ErrNoPages):
		return fmt.Errorf("%w%s", err, hints.ForNoPages())
	case errors.Is(err, stitch.ErrInvalidMargin):
		return fmt.Errorf("%w%s", err, hints.ForMargin())
	case errors.Is(err, stitch.ErrParse):
		return fmt.Errorf("%w%s", err, hints.ForDimension())
	case errors.Is(err, stitch.ErrWriteOutput):
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	}
	return err
}
