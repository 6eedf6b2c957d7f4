// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"runtime"
	"strings"

	"github.com/alnah/go-stitch/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// GOOS is the platform used to pick install instructions. Overridden in tests.
var GOOS = runtime.GOOS

// ForToolMissing returns hints for a missing office suite.
// Suggests the install command for the platform and the --libreoffice-path flag.
func ForToolMissing() string {
	var hints []string

	switch {
	case IsInContainer():
		hints = append(hints, "install libreoffice-core in the image (apt-get install -y libreoffice-core)")
	case GOOS == "darwin":
		hints = append(hints, "install LibreOffice (brew install --cask libreoffice)")
	case GOOS == "windows":
		hints = append(hints, "install LibreOffice (winget install TheDocumentFoundation.LibreOffice)")
	default:
		hints = append(hints, "install LibreOffice with your package manager")
	}

	hints = append(hints, "or point --libreoffice-path at soffice")
	return formatHints(hints)
}

// ForEmptyCatalog returns hints when no input file qualified.
func ForEmptyCatalog(recursionLimit int) string {
	hint := "check the paths exist and contain PDF, image or office files"
	if recursionLimit <= 1 {
		hint += "; raise --recursion-limit to include subdirectories"
	}
	return format(hint)
}

// ForNoPages returns hints when every input was skipped.
func ForNoPages() string {
	return format("run with --verbose to see why each file was skipped")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/stitch.toml or run 'stitch config' to create one"

	for _, p := range searchedPaths {
		if strings.Contains(slashPath(p), "/stitch/") {
			hint += " at " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForMargin returns hints when the margin leaves no room for images.
func ForMargin() string {
	return format("the margin applies to each side; use a smaller --margin or a larger --image-page-fallback-size")
}

// ForDimension lists accepted dimension syntaxes.
func ForDimension() string {
	return format(`use a paper name (A4, letter, a4-l) or "<n><unit> x <n><unit>" with pt, mm, cm or inch`)
}

// slashPath normalizes separators so Windows paths match.
func slashPath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
