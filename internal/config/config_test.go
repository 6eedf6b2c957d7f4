package config

// Notes:
// - LoadConfig name resolution tests use os.Chdir and t.Setenv (HOME,
//   XDG_CONFIG_HOME, AppData) and cannot run in parallel.
// - LookPathCandidates replaces the package-level lookPath and is not
//   parallel-safe either.

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	stitch "github.com/alnah/go-stitch"
	"github.com/alnah/go-stitch/internal/codec"
	"github.com/alnah/go-stitch/internal/dateutil"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() unexpected error: %v", err)
	}
	if cfg.RecursionLimit != stitch.DefaultRecursionLimit {
		t.Errorf("RecursionLimit = %d, want %d", cfg.RecursionLimit, stitch.DefaultRecursionLimit)
	}
	if cfg.ImagePageFallbackSize != "A4" {
		t.Errorf("ImagePageFallbackSize = %q, want A4", cfg.ImagePageFallbackSize)
	}
	if len(cfg.LibreOfficePath) == 0 {
		t.Error("LibreOfficePath is empty")
	}
	if cfg.OutputDirectory != "" || cfg.Quiet || cfg.ForceImagePageFallbackSize {
		t.Errorf("unexpected non-zero defaults: %+v", cfg)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Explicit paths, both syntaxes
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "toml",
			file: "a.toml",
			content: `margin = "1cm"
image_page_fallback_size = "letter"
recursion_limit = 2
libreoffice_path = ["/x/soffice"]
quiet = true
`,
			check: func(t *testing.T, c *Config) {
				if c.Margin != "1cm" || c.ImagePageFallbackSize != "letter" || c.RecursionLimit != 2 || !c.Quiet {
					t.Errorf("decoded = %+v", c)
				}
				if !slices.Equal(c.LibreOfficePath, []string{"/x/soffice"}) {
					t.Errorf("LibreOfficePath = %v", c.LibreOfficePath)
				}
			},
		},
		{
			name:    "yaml",
			file:    "b.yaml",
			content: "margin: 0.5in\nalphabetic_file_sorting: true\n",
			check: func(t *testing.T, c *Config) {
				if c.Margin != "0.5in" || !c.AlphabeticFileSorting {
					t.Errorf("decoded = %+v", c)
				}
				if c.RecursionLimit != stitch.DefaultRecursionLimit {
					t.Errorf("missing key lost its default: RecursionLimit = %d", c.RecursionLimit)
				}
			},
		},
		{
			name:    "empty file gives defaults",
			file:    "c.toml",
			content: "\n",
			check: func(t *testing.T, c *Config) {
				if c.NameFormat == "" {
					t.Error("NameFormat empty, want default")
				}
			},
		},
		{
			name:    "unknown key",
			file:    "d.toml",
			content: "colour = \"red\"\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "bad margin",
			file:    "e.toml",
			content: "margin = \"1cm x 2in\"\n",
			wantErr: stitch.ErrParse,
		},
		{
			name:    "negative recursion",
			file:    "f.yml",
			content: "recursion_limit: -1\n",
			wantErr: stitch.ErrInvalidRecursionLimit,
		},
		{
			name:    "bad name format",
			file:    "g.toml",
			content: "name_format = \"[open\"\n",
			wantErr: dateutil.ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, dir, tt.file, tt.content)
			cfg, err := LoadConfig(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadConfig() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig() unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
	}
	missing := filepath.Join(t.TempDir(), "none.toml")
	if _, err := LoadConfig(missing); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig(missing) error = %v, want ErrConfigNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig_NameResolution - Local directory then user config dir
// ---------------------------------------------------------------------------

func TestLoadConfig_NameResolution(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("AppData", filepath.Join(home, "AppData"))

	work := t.TempDir()
	prevDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevDir) })

	userDir, err := os.UserConfigDir()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(userDir, AppName), 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, filepath.Join(userDir, AppName), "team.yaml", "margin: 2mm\n")

	cfg, err := LoadConfig("team")
	if err != nil {
		t.Fatalf("LoadConfig(team) unexpected error: %v", err)
	}
	if cfg.Margin != "2mm" {
		t.Errorf("Margin = %q, want value from user config dir", cfg.Margin)
	}

	writeConfig(t, work, "team.toml", "margin = \"3mm\"\n")
	cfg, err = LoadConfig("team")
	if err != nil {
		t.Fatalf("LoadConfig(team) unexpected error: %v", err)
	}
	if cfg.Margin != "3mm" {
		t.Errorf("Margin = %q, want local file to win", cfg.Margin)
	}

	_, err = LoadConfig("absent")
	var nf *NotFoundError
	if !errors.As(err, &nf) || !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig(absent) error = %v, want NotFoundError", err)
	}
	if len(nf.Tried) != 6 {
		t.Errorf("Tried = %v, want 6 locations", nf.Tried)
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Save - Commented default file round trip
// ---------------------------------------------------------------------------

func TestConfig_Save(t *testing.T) {
	t.Parallel()

	for _, f := range []codec.Format{codec.TOML, codec.YAML} {
		f := f
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "sub", AppName+f.Ext())
			in := DefaultConfig()
			in.Margin = "5mm"
			if err := in.Save(path, f); err != nil {
				t.Fatalf("Save() unexpected error: %v", err)
			}

			if f == codec.TOML {
				data, _ := os.ReadFile(path)
				if !strings.Contains(string(data), "# Margin around images") {
					t.Errorf("saved TOML has no comments:\n%s", data)
				}
			}

			out, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() of saved file: %v", err)
			}
			if out.Margin != "5mm" || out.RecursionLimit != in.RecursionLimit {
				t.Errorf("round trip = %+v", out)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_MergeConfig - File settings to library settings
// ---------------------------------------------------------------------------

func TestConfig_MergeConfig(t *testing.T) {
	t.Setenv("STITCH_TEST_OFFICE", "/opt/lo")

	cfg := &Config{
		Margin:                     "1cm",
		ForceImagePageFallbackSize: true,
		AlphabeticFileSorting:      true,
		RecursionLimit:             3,
		LibreOfficePath:            []string{"$STITCH_TEST_OFFICE/soffice", ""},
	}
	mc := cfg.MergeConfig()

	if mc.Margin.String() != "1cm" {
		t.Errorf("Margin = %q, want 1cm", mc.Margin.String())
	}
	if mc.FallbackPageSize.String() != stitch.DefaultFallbackPageSize {
		t.Errorf("FallbackPageSize = %q, want default", mc.FallbackPageSize.String())
	}
	if !mc.ForceFallback || !mc.AlphabeticSort || mc.RecursionLimit != 3 {
		t.Errorf("MergeConfig() = %+v", mc)
	}
	if !slices.Equal(mc.OfficeExecutables, []string{"/opt/lo/soffice"}) {
		t.Errorf("OfficeExecutables = %v", mc.OfficeExecutables)
	}
}

// ---------------------------------------------------------------------------
// TestOfficePaths
// ---------------------------------------------------------------------------

func TestOfficePathsFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos string
		want string
	}{
		{goos: "windows", want: `%PROGRAMFILES%\LibreOffice\program\soffice.exe`},
		{goos: "darwin", want: "/Applications/LibreOffice.app/Contents/MacOS/soffice"},
		{goos: "linux", want: "/usr/bin/soffice"},
	}
	for _, tt := range tests {
		if got := officePathsFor(tt.goos); !slices.Contains(got, tt.want) {
			t.Errorf("officePathsFor(%q) = %v, missing %q", tt.goos, got, tt.want)
		}
	}
}

func TestLookPathCandidates(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()
	lookPath = func(name string) (string, error) {
		if name == "soffice" {
			return "/found/soffice", nil
		}
		return "", os.ErrNotExist
	}

	got := LookPathCandidates([]string{"/a"})
	if !slices.Equal(got, []string{"/a", "/found/soffice"}) {
		t.Errorf("LookPathCandidates() = %v", got)
	}
}
