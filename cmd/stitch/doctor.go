package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	stitch "github.com/alnah/go-stitch"
	"github.com/alnah/go-stitch/internal/config"
	"github.com/alnah/go-stitch/internal/fileutil"
)

// versionTimeout bounds the office suite version probe.
const versionTimeout = 20 * time.Second

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Office   officeInfo `json:"office"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// officeInfo holds LibreOffice detection results.
type officeInfo struct {
	Found      bool     `json:"found"`
	Path       string   `json:"path,omitempty"`
	Version    string   `json:"version,omitempty"`
	Candidates []string `json:"candidates"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool   `json:"temp_writable"`
	ConfigFile   string `json:"config_file,omitempty"`
}

// doctorFlags holds doctor command flags.
type doctorFlags struct {
	config string
	json   bool
}

// buildDoctorFlagSet registers every doctor flag into a new FlagSet.
func buildDoctorFlagSet(f *doctorFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("doctor", printDoctorUsage, w)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "print the result as JSON")
	return fs
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	f := &doctorFlags{}
	fs := buildDoctorFlagSet(f, env.Stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", usageError(err))
		return ExitUsage
	}

	result := runDoctor(ctx, f, env)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, f *doctorFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	cfg, err := loadConfig(f.config, env)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		cfg = config.DefaultConfig()
	} else if name := f.config; name != "" {
		result.System.ConfigFile = name
	}

	checkOffice(ctx, result, cfg, env)
	checkEnvironment(result, env)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkOffice locates LibreOffice among the configured paths and PATH.
// A missing suite is a warning: PDFs and images merge without it.
func checkOffice(ctx context.Context, result *doctorResult, cfg *config.Config, env *Environment) {
	candidates := config.LookPathCandidates(fileutil.ExpandPaths(cfg.LibreOfficePath))
	result.Office.Candidates = candidates

	path, err := stitch.ResolveExecutable(candidates)
	if err != nil {
		result.Warnings = append(result.Warnings,
			"LibreOffice not found; office documents will be skipped. Set libreoffice_path or use --libreoffice-path")
		return
	}
	result.Office.Found = true
	result.Office.Path = path

	if env.Runner == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	stdout, _, err := env.Runner.Run(ctx, path, "--version")
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get LibreOffice version: %v", err))
		return
	}
	result.Office.Version = strings.TrimSpace(stdout)
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container, result.Env.ContainerHint = isContainer(env)

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if env.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Env.Container && !result.Office.Found {
		result.Warnings = append(result.Warnings,
			"Container detected: install libreoffice-core in the image to convert office documents")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(env *Environment) (bool, string) {
	if env.getenv("STITCH_CONTAINER") == "1" {
		return true, "STITCH_CONTAINER=1"
	}
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := env.getenv("container"); v != "" {
		return true, "container=" + v
	}
	if env.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temporary directory used for conversions.
func checkSystem(result *doctorResult) {
	_, cleanup, err := fileutil.WriteTempFile("", "test", "tmp")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s (%v)", os.TempDir(), err))
		return
	}
	cleanup()
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "stitch doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "LibreOffice")
	if r.Office.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Office.Path)
		if r.Office.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Office.Version)
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
		for _, c := range r.Office.Candidates {
			fmt.Fprintf(w, "         tried %s\n", c)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	if r.System.ConfigFile != "" {
		fmt.Fprintf(w, "  [OK] Config: %s\n", r.System.ConfigFile)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: READY")
	case statusWarnings:
		fmt.Fprintln(w, "Status: READY (with warnings)")
	default:
		fmt.Fprintln(w, "Status: NOT READY")
	}
}
