// Package config loads, validates and writes the stitch configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	stitch "github.com/alnah/go-stitch"
	"github.com/alnah/go-stitch/internal/codec"
	"github.com/alnah/go-stitch/internal/dateutil"
	"github.com/alnah/go-stitch/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// AppName names the config file and the user config subdirectory.
const AppName = "stitch"

// Field length limits.
const (
	MaxPathLength       = 4096
	MaxDimensionLength  = 64
	MaxNameFormatLength = dateutil.MaxDateFormatLength
	MaxOfficePaths      = 32
)

// Config mirrors the configuration file.
type Config struct {
	OutputDirectory            string   `toml:"output_directory" yaml:"output_directory" comment:"Directory for generated files when --output-file is not given (empty = current directory). Supports ~ and environment variables."`
	NameFormat                 string   `toml:"name_format" yaml:"name_format" comment:"Generated file name. Tokens: YYYY YY MMMM MMM MM M DD D HH H mm ss; [text] is literal."`
	LibreOfficePath            []string `toml:"libreoffice_path" yaml:"libreoffice_path" comment:"LibreOffice executables tried in order. Supports ~ and environment variables."`
	Margin                     string   `toml:"margin" yaml:"margin" comment:"Margin around images, e.g. \"1cm\" or \"0.5in x 1in\"."`
	ImagePageFallbackSize      string   `toml:"image_page_fallback_size" yaml:"image_page_fallback_size" comment:"Page size used when no PDF sets it, e.g. \"A4\", \"letter-l\" or \"21cm x 29.7cm\"."`
	ForceImagePageFallbackSize bool     `toml:"force_image_page_fallback_size" yaml:"force_image_page_fallback_size" comment:"Always use the fallback page size, even when a PDF is present."`
	AlphabeticFileSorting      bool     `toml:"alphabetic_file_sorting" yaml:"alphabetic_file_sorting" comment:"Sort the command line paths before processing."`
	RecursionLimit             int      `toml:"recursion_limit" yaml:"recursion_limit" comment:"Directory depth explored below each path (0 and 1 = files directly inside)."`
	Quiet                      bool     `toml:"quiet" yaml:"quiet" comment:"Only print errors."`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		NameFormat:            dateutil.DefaultNameFormat,
		LibreOfficePath:       DefaultOfficePaths(),
		Margin:                stitch.DefaultMargin,
		ImagePageFallbackSize: stitch.DefaultFallbackPageSize,
		RecursionLimit:        stitch.DefaultRecursionLimit,
	}
}

// Validate checks value formats and field lengths.
// Called automatically by LoadConfig, but available for callers that build a
// Config by hand.
func (c *Config) Validate() error {
	if err := validateFieldLength("output_directory", c.OutputDirectory, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("margin", c.Margin, MaxDimensionLength); err != nil {
		return err
	}
	if err := validateFieldLength("image_page_fallback_size", c.ImagePageFallbackSize, MaxDimensionLength); err != nil {
		return err
	}
	if len(c.LibreOfficePath) > MaxOfficePaths {
		return fmt.Errorf("%w: libreoffice_path (%d entries, max %d)", ErrFieldTooLong, len(c.LibreOfficePath), MaxOfficePaths)
	}
	for i, p := range c.LibreOfficePath {
		if err := validateFieldLength(fmt.Sprintf("libreoffice_path[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}

	if c.NameFormat != "" {
		if err := dateutil.Validate(c.NameFormat); err != nil {
			return fmt.Errorf("name_format: %w", err)
		}
	}
	if c.Margin != "" {
		if _, err := stitch.ParseDimension(c.Margin); err != nil {
			return fmt.Errorf("margin: %w", err)
		}
	}
	if c.ImagePageFallbackSize != "" {
		if _, err := stitch.ParseDimension(c.ImagePageFallbackSize); err != nil {
			return fmt.Errorf("image_page_fallback_size: %w", err)
		}
	}
	if c.RecursionLimit < 0 {
		return fmt.Errorf("recursion_limit: %w: %d (must be >= 0)", stitch.ErrInvalidRecursionLimit, c.RecursionLimit)
	}

	return nil
}

// validateFieldLength returns ErrFieldTooLong if value exceeds maxLength.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// MergeConfig converts the file settings into library settings. Paths are
// expanded; empty dimensions take the library defaults.
func (c *Config) MergeConfig() *stitch.MergeConfig {
	mc := stitch.DefaultMergeConfig()
	if c.Margin != "" {
		mc.Margin = stitch.NewDimensionSetting(c.Margin)
	}
	if c.ImagePageFallbackSize != "" {
		mc.FallbackPageSize = stitch.NewDimensionSetting(c.ImagePageFallbackSize)
	}
	mc.ForceFallback = c.ForceImagePageFallbackSize
	mc.AlphabeticSort = c.AlphabeticFileSorting
	mc.RecursionLimit = c.RecursionLimit
	mc.OfficeExecutables = fileutil.ExpandPaths(c.LibreOfficePath)
	return mc
}

// OutputDir returns the expanded output directory.
func (c *Config) OutputDir() string {
	return fileutil.ExpandPath(c.OutputDirectory)
}

// LoadConfig loads a config by name or path.
//
// Resolution:
//   - contains a path separator or has an extension: used as-is
//   - otherwise a name: ./<name>.toml, ./<name>.yaml, ./<name>.yml, then the
//     same in <UserConfigDir>/stitch/
//
// The syntax is chosen from the extension (YAML for .yaml/.yml, TOML
// otherwise). Unknown keys are rejected. Keys missing from the file keep
// their default value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := codec.UnmarshalStrict(codec.FormatFor(configPath), data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	return cfg, nil
}

// Write encodes c to w in the given syntax. TOML output is commented.
func (c *Config) Write(w io.Writer, format codec.Format) error {
	data, err := codec.Marshal(format, c)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Save writes c to path atomically in the given syntax.
func (c *Config) Save(path string, format codec.Format) error {
	return fileutil.WriteAtomic(path, func(w io.Writer) error {
		return c.Write(w, format)
	})
}

// UserConfigPath returns <UserConfigDir>/stitch/stitch<ext>.
func UserConfigPath(format codec.Format) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, AppName+format.Ext()), nil
}

// SearchPaths returns the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".toml", ".yaml", ".yml"}

	var paths []string
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", &NotFoundError{Name: name, Tried: tried}
}

// NotFoundError lists the locations searched for a config name.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q, tried %s", ErrConfigNotFound, e.Name, strings.Join(e.Tried, ", "))
}

// Unwrap makes errors.Is(err, ErrConfigNotFound) hold.
func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }

// isFilePath reports whether nameOrPath designates a file rather than a name.
func isFilePath(nameOrPath string) bool {
	return fileutil.IsFilePath(nameOrPath) || filepath.Ext(nameOrPath) != ""
}
