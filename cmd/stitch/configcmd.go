package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-stitch/internal/codec"
	"github.com/alnah/go-stitch/internal/config"
	"github.com/alnah/go-stitch/internal/fileutil"
)

// ErrConfigExists is returned when config would overwrite a file without --force.
var ErrConfigExists = errors.New("config file already exists")

// configFlags holds config command flags.
type configFlags struct {
	output string
	format string
	force  bool
}

// buildConfigFlagSet registers every config flag into a new FlagSet.
func buildConfigFlagSet(f *configFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("config", printConfigUsage, w)
	fs.StringVarP(&f.output, "output", "o", "", `destination file ("-" for stdout)`)
	fs.StringVarP(&f.format, "format", "f", "", "file syntax: toml, yaml (default from extension, else toml)")
	fs.BoolVar(&f.force, "force", false, "overwrite an existing file")
	return fs
}

// runConfig writes the default configuration, commented, to a file or stdout.
// Without --output the file goes to the user config directory.
func runConfig(args []string, env *Environment) error {
	f := &configFlags{}
	fs := buildConfigFlagSet(f, env.Stderr)
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	format := codec.TOML
	if f.output != "" && f.output != "-" {
		format = codec.FormatFor(f.output)
	}
	if f.format != "" {
		var err error
		if format, err = codec.ParseFormat(f.format); err != nil {
			return err
		}
	}

	cfg := config.DefaultConfig()
	if f.output == "-" {
		return cfg.Write(env.Stdout, format)
	}

	path := fileutil.ExpandPath(f.output)
	if path == "" {
		var err error
		if path, err = config.UserConfigPath(format); err != nil {
			return fmt.Errorf("locating user config directory: %w", err)
		}
	}
	if fileutil.FileExists(path) && !f.force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}
	if err := cfg.Save(path, format); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(env.Stdout, "wrote %s\n", path)
	return nil
}
