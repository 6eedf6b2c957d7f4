package stitch

import (
	"errors"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDimensionSetting - Lazy, memoized resolution
// ---------------------------------------------------------------------------

func TestDimensionSetting_Resolve(t *testing.T) {
	t.Parallel()

	s := NewDimensionSetting("1in x 2in")
	d, err := s.Resolve()
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if !d.Equal(FromPoints(72, 144)) {
		t.Errorf("Resolve() = %v, want 72x144pt", d.Format(UnitPoint))
	}
	if s.String() != "1in x 2in" {
		t.Errorf("String() = %q, want raw text", s.String())
	}
}

func TestDimensionSetting_ErrorIsMemoized(t *testing.T) {
	t.Parallel()

	s := NewDimensionSetting("nonsense")
	_, err1 := s.Resolve()
	_, err2 := s.Resolve()
	if !errors.Is(err1, ErrParse) || err1 != err2 {
		t.Errorf("Resolve() errors = %v, %v; want the same ErrParse twice", err1, err2)
	}

	s.Set("5mm")
	if _, err := s.Resolve(); err != nil {
		t.Errorf("Resolve() after Set unexpected error: %v", err)
	}
}

func TestDimensionSetting_Concurrent(t *testing.T) {
	t.Parallel()

	s := NewDimensionSetting("A4")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Resolve(); err != nil {
				t.Errorf("Resolve() unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestDimensionSetting_Text(t *testing.T) {
	t.Parallel()

	var s DimensionSetting
	if err := s.UnmarshalText([]byte("letter-l")); err != nil {
		t.Fatalf("UnmarshalText() unexpected error: %v", err)
	}
	out, err := s.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() unexpected error: %v", err)
	}
	if string(out) != "letter-l" {
		t.Errorf("MarshalText() = %q, want letter-l", out)
	}

	v := DimensionValue(FromPoints(1, 2))
	if got, _ := v.Resolve(); !got.Equal(FromPoints(1, 2)) {
		t.Errorf("DimensionValue().Resolve() = %v", got)
	}

	var nilSetting *DimensionSetting
	if d, err := nilSetting.Resolve(); err != nil || !d.Equal(Dimension{}) {
		t.Errorf("nil Resolve() = %v, %v; want zero, nil", d, err)
	}
}

// ---------------------------------------------------------------------------
// TestMergeConfig_Validate
// ---------------------------------------------------------------------------

func TestMergeConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *MergeConfig
		wantErr error
	}{
		{name: "nil is valid (use defaults)", cfg: nil},
		{name: "defaults", cfg: DefaultMergeConfig()},
		{
			name:    "negative recursion limit",
			cfg:     &MergeConfig{RecursionLimit: -2},
			wantErr: ErrInvalidRecursionLimit,
		},
		{
			name:    "bad margin",
			cfg:     &MergeConfig{Margin: NewDimensionSetting("1cm x 1in")},
			wantErr: ErrParse,
		},
		{
			name:    "bad fallback",
			cfg:     &MergeConfig{FallbackPageSize: NewDimensionSetting("a99")},
			wantErr: ErrParse,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMergeConfig_CatalogOptions(t *testing.T) {
	t.Parallel()

	cfg := &MergeConfig{AlphabeticSort: true, RecursionLimit: 3}
	opts := cfg.CatalogOptions()
	if !opts.AlphabeticSort || opts.RecursionLimit != 3 {
		t.Errorf("CatalogOptions() = %+v", opts)
	}

	var nilCfg *MergeConfig
	if got := nilCfg.CatalogOptions().RecursionLimit; got != DefaultRecursionLimit {
		t.Errorf("nil CatalogOptions().RecursionLimit = %d, want %d", got, DefaultRecursionLimit)
	}
}
