package config

import (
	"os/exec"
	"runtime"
)

// DefaultOfficePaths returns the usual LibreOffice install locations for the
// running platform, unexpanded.
func DefaultOfficePaths() []string {
	return officePathsFor(runtime.GOOS)
}

func officePathsFor(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			`%PROGRAMFILES%\LibreOffice\program\soffice.exe`,
			`%PROGRAMFILES(X86)%\LibreOffice\program\soffice.exe`,
		}
	case "darwin":
		return []string{
			"/Applications/LibreOffice.app/Contents/MacOS/soffice",
			"~/Applications/LibreOffice.app/Contents/MacOS/soffice",
		}
	}
	return []string{
		"/usr/bin/soffice",
		"/usr/bin/libreoffice",
		"/usr/local/bin/soffice",
		"/opt/libreoffice/program/soffice",
		"/snap/bin/libreoffice",
	}
}

// LookPathCandidates appends soffice and libreoffice found on PATH to paths.
// Used by diagnostics to report installs outside the default locations.
func LookPathCandidates(paths []string) []string {
	out := append([]string(nil), paths...)
	for _, name := range []string{"soffice", "libreoffice"} {
		if p, err := lookPath(name); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// lookPath searches PATH. Overridden in tests.
var lookPath = exec.LookPath
