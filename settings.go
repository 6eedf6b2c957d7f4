package stitch

import (
	"fmt"
	"sync"
)

// Defaults for MergeConfig.
const (
	DefaultMargin           = "0"
	DefaultFallbackPageSize = "A4"
)

// DimensionSetting holds a dimension given either as raw text or as an
// already parsed value. Text is parsed on first use and the outcome is
// memoized; Set resets it.
type DimensionSetting struct {
	mu       sync.Mutex
	text     string
	value    Dimension
	resolved bool
	err      error
}

// NewDimensionSetting returns a setting that parses text on first use.
func NewDimensionSetting(text string) *DimensionSetting {
	return &DimensionSetting{text: text}
}

// DimensionValue returns a setting holding an already parsed dimension.
func DimensionValue(d Dimension) *DimensionSetting {
	return &DimensionSetting{text: d.String(), value: d, resolved: true}
}

// Resolve parses the setting once and returns the cached result afterwards.
// A nil setting resolves to a zero dimension.
func (s *DimensionSetting) Resolve() (Dimension, error) {
	if s == nil {
		return Dimension{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.resolved {
		s.value, s.err = ParseDimension(s.text)
		s.resolved = true
	}
	return s.value, s.err
}

// Set replaces the raw text and discards any cached value.
func (s *DimensionSetting) Set(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	s.value = Dimension{}
	s.err = nil
	s.resolved = false
}

// String returns the text the setting was created from.
func (s *DimensionSetting) String() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// MarshalText implements encoding.TextMarshaler.
func (s *DimensionSetting) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text is kept raw
// and parsed on first Resolve.
func (s *DimensionSetting) UnmarshalText(text []byte) error {
	s.Set(string(text))
	return nil
}

// MergeConfig configures one merge run.
type MergeConfig struct {
	Margin            *DimensionSetting // applied to image pages
	FallbackPageSize  *DimensionSetting // used when no PDF sets the page size
	ForceFallback     bool              // ignore the first PDF's page size
	AlphabeticSort    bool              // sort root arguments
	RecursionLimit    int               // see Catalog
	OfficeExecutables []string          // candidate office suite paths, expanded
	DryRun            bool              // report without writing
}

// DefaultMergeConfig returns a config with default values.
func DefaultMergeConfig() *MergeConfig {
	return &MergeConfig{
		Margin:           NewDimensionSetting(DefaultMargin),
		FallbackPageSize: NewDimensionSetting(DefaultFallbackPageSize),
		RecursionLimit:   DefaultRecursionLimit,
	}
}

// Validate resolves both dimension settings and checks the recursion limit.
// Returns nil if c is nil (nil means use defaults).
func (c *MergeConfig) Validate() error {
	if c == nil {
		return nil
	}
	if c.RecursionLimit < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidRecursionLimit, c.RecursionLimit)
	}
	if _, err := c.Margin.Resolve(); err != nil {
		return fmt.Errorf("margin: %w", err)
	}
	if _, err := c.FallbackPageSize.Resolve(); err != nil {
		return fmt.Errorf("fallback page size: %w", err)
	}
	return nil
}

// CatalogOptions derives the discovery options from c.
func (c *MergeConfig) CatalogOptions() CatalogOptions {
	if c == nil {
		c = DefaultMergeConfig()
	}
	return CatalogOptions{
		AlphabeticSort: c.AlphabeticSort,
		RecursionLimit: c.RecursionLimit,
	}
}

// resolved is a MergeConfig with its dimensions parsed.
type resolved struct {
	margin   Dimension
	fallback Dimension
}

// resolve parses both settings. Nil settings take the defaults.
func (c *MergeConfig) resolve() (resolved, error) {
	margin := c.Margin
	if margin == nil {
		margin = NewDimensionSetting(DefaultMargin)
	}
	fallback := c.FallbackPageSize
	if fallback == nil {
		fallback = NewDimensionSetting(DefaultFallbackPageSize)
	}

	m, err := margin.Resolve()
	if err != nil {
		return resolved{}, fmt.Errorf("margin: %w", err)
	}
	f, err := fallback.Resolve()
	if err != nil {
		return resolved{}, fmt.Errorf("fallback page size: %w", err)
	}
	return resolved{margin: m, fallback: f}, nil
}
