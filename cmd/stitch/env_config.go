package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alnah/go-stitch/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring a config file.
type envConfig struct {
	ConfigPath      string   // STITCH_CONFIG: config file name or path
	OutputDir       string   // STITCH_OUTPUT_DIR: default output directory
	LibreOfficePath []string // STITCH_LIBREOFFICE_PATH: executables, list-separated
	Margin          string   // STITCH_MARGIN: image margin
	FallbackSize    string   // STITCH_FALLBACK_SIZE: image page fallback size
}

// knownEnvVars lists valid STITCH_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"STITCH_CONFIG":           true,
	"STITCH_OUTPUT_DIR":       true,
	"STITCH_LIBREOFFICE_PATH": true,
	"STITCH_MARGIN":           true,
	"STITCH_FALLBACK_SIZE":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:   getenv("STITCH_CONFIG"),
		OutputDir:    getenv("STITCH_OUTPUT_DIR"),
		Margin:       getenv("STITCH_MARGIN"),
		FallbackSize: getenv("STITCH_FALLBACK_SIZE"),
	}
	if paths := getenv("STITCH_LIBREOFFICE_PATH"); paths != "" {
		for _, p := range filepath.SplitList(paths) {
			if p = strings.TrimSpace(p); p != "" {
				cfg.LibreOfficePath = append(cfg.LibreOfficePath, p)
			}
		}
	}
	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized STITCH_* variables.
// Helps catch typos like STITCH_OUTPUT_DIRECTORY instead of STITCH_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "STITCH_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via applyMergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.OutputDirectory = env.OutputDir
	}
	if len(env.LibreOfficePath) > 0 {
		cfg.LibreOfficePath = env.LibreOfficePath
	}
	if env.Margin != "" {
		cfg.Margin = env.Margin
	}
	if env.FallbackSize != "" {
		cfg.ImagePageFallbackSize = env.FallbackSize
	}
}

// loadConfig returns the configuration for a run: the file named by flag
// (or STITCH_CONFIG) when given, else env.Config, with environment
// overrides applied. The result is a copy; env.Config is not modified.
func loadConfig(flagValue string, env *Environment) (*config.Config, error) {
	vars := loadEnvConfig(env.getenv)

	name := flagValue
	if name == "" {
		name = vars.ConfigPath
	}

	var cfg *config.Config
	switch {
	case name != "":
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	case env.Config != nil:
		c := *env.Config
		c.LibreOfficePath = append([]string(nil), env.Config.LibreOfficePath...)
		cfg = &c
	default:
		cfg = config.DefaultConfig()
	}

	applyEnvConfig(vars, cfg)
	return cfg, nil
}
