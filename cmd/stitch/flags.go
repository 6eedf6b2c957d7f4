package main

import (
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// discoveryFlags holds input discovery flags.
type discoveryFlags struct {
	alphabetic     bool
	recursionLimit int
	limitSet       bool // --recursion-limit given explicitly
}

// layoutFlags holds page geometry flags.
type layoutFlags struct {
	margin        string
	fallbackSize  string
	forceFallback bool
}

// outputFlags holds destination and run mode flags.
type outputFlags struct {
	file       string
	directory  string
	dryRun     bool
	tree       bool
	noProgress bool
}

// officeFlags holds office conversion flags.
type officeFlags struct {
	paths []string
}

// mergeFlags holds all merge command flags.
type mergeFlags struct {
	common    commonFlags
	discovery discoveryFlags
	layout    layoutFlags
	output    outputFlags
	office    officeFlags
}

// flagAliases maps alternate long names to their canonical flag.
var flagAliases = map[string]string{
	"fp":             "force-image-page-fallback-size",
	"force-fallback": "force-image-page-fallback-size",
	"afs":            "alphabetic-file-sorting",
	"alphabetic":     "alphabetic-file-sorting",
	"whatif":         "dry-run",
}

// normalizeFlagName resolves aliases and accepts underscores for dashes.
func normalizeFlagName(_ *flag.FlagSet, name string) flag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return flag.NormalizedName(name)
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file timing and the page size decision")
}

// addDiscoveryFlags adds input discovery flags to a FlagSet.
func addDiscoveryFlags(fs *flag.FlagSet, f *discoveryFlags) {
	fs.BoolVar(&f.alphabetic, "alphabetic-file-sorting", false, "sort the given paths alphabetically")
	fs.IntVarP(&f.recursionLimit, "recursion-limit", "r", 0, "directory depth explored below each path")
}

// addLayoutFlags adds page geometry flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.StringVarP(&f.margin, "margin", "m", "", `margin around images (e.g., "1cm", "0.5in x 1in")`)
	fs.StringVarP(&f.fallbackSize, "image-page-fallback-size", "s", "", `page size when no PDF sets it (e.g., "A4", "letter-l")`)
	fs.BoolVar(&f.forceFallback, "force-image-page-fallback-size", false, "always use the fallback page size")
}

// addOutputFlags adds destination flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.file, "output-file", "o", "", "output PDF file")
	fs.StringVarP(&f.directory, "output-directory", "d", "", "directory for a generated file name")
	fs.BoolVar(&f.dryRun, "dry-run", false, "report what would be merged without writing")
	fs.BoolVar(&f.tree, "tree", false, "print the discovered file tree")
	fs.BoolVar(&f.noProgress, "no-progress", false, "disable the progress bar")
}

// addOfficeFlags adds office conversion flags to a FlagSet.
func addOfficeFlags(fs *flag.FlagSet, f *officeFlags) {
	fs.StringArrayVar(&f.paths, "libreoffice-path", nil, "LibreOffice executable (repeatable, tried in order)")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetNormalizeFunc(normalizeFlagName)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// buildMergeFlagSet registers every merge flag into a new FlagSet.
func buildMergeFlagSet(f *mergeFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("merge", printMergeUsage, w)
	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addLayoutFlags(fs, &f.layout)
	addDiscoveryFlags(fs, &f.discovery)
	addOfficeFlags(fs, &f.office)
	return fs
}

// parseMergeFlags parses merge command flags and returns positional args.
func parseMergeFlags(args []string, w io.Writer) (*mergeFlags, []string, error) {
	f := &mergeFlags{}
	fs := buildMergeFlagSet(f, w)

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	f.discovery.limitSet = fs.Changed("recursion-limit")

	return f, fs.Args(), nil
}

// treeFlags holds tree command flags.
type treeFlags struct {
	common    commonFlags
	discovery discoveryFlags
}

// buildTreeFlagSet registers every tree flag into a new FlagSet.
func buildTreeFlagSet(f *treeFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("tree", printTreeUsage, w)
	addCommonFlags(fs, &f.common)
	addDiscoveryFlags(fs, &f.discovery)
	return fs
}

// parseTreeFlags parses tree command flags and returns positional args.
func parseTreeFlags(args []string, w io.Writer) (*treeFlags, []string, error) {
	f := &treeFlags{}
	fs := buildTreeFlagSet(f, w)

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	f.discovery.limitSet = fs.Changed("recursion-limit")

	return f, fs.Args(), nil
}
