package main

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"

	stitch "github.com/alnah/go-stitch"
	"github.com/alnah/go-stitch/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and the external tool adapters.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	Config  *config.Config // used when --config is not given

	// Office overrides the LibreOffice converter; nil uses the configured
	// executables.
	Office stitch.OfficeConverter
	// Runner executes external tools for diagnostics.
	Runner stitch.CommandRunner
	// Interactive enables the progress bar. True when stderr is a terminal.
	Interactive bool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Getenv:      os.Getenv,
		Environ:     os.Environ,
		Config:      config.DefaultConfig(),
		Runner:      stitch.ExecRunner{},
		Interactive: term.IsTerminal(int(os.Stderr.Fd())), // #nosec G115 -- fd fits in int
	}
}

// environ lists the environment, tolerating a nil Environ.
func (env *Environment) environ() []string {
	if env.Environ == nil {
		return nil
	}
	return env.Environ()
}

// getenv reads an environment variable through env, tolerating a nil Getenv.
func (env *Environment) getenv(key string) string {
	if env.Getenv == nil {
		return ""
	}
	return env.Getenv(key)
}
