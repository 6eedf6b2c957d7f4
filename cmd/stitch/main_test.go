package main

// Notes:
// - runMain: we test dispatch, exit codes and the messages users see. The
//   merge paths are covered in merge_test.go.
// - main() itself is not tested: it only wires os.Args, signals and os.Exit.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			args:         nil,
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: stitch"},
		},
		{
			name:         "version command exits 0",
			args:         []string{"version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"stitch dev"},
		},
		{
			name:         "help command exits 0",
			args:         []string{"help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: stitch", "Commands:"},
		},
		{
			name:         "help merge shows merge help",
			args:         []string{"help", "merge"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: stitch merge", "--output-file"},
		},
		{
			name:         "help for unknown command exits with ExitUsage",
			args:         []string{"help", "bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: bogus"},
		},
		{
			name:         "merge without paths exits with ExitUsage",
			args:         []string{"merge"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"no input path given", "Usage: stitch merge"},
		},
		{
			name:         "merge --help exits 0",
			args:         []string{"merge", "--help"},
			wantCode:     ExitSuccess,
			wantInStderr: []string{"Usage: stitch merge"},
		},
		{
			name:         "unknown flag exits with ExitUsage",
			args:         []string{"merge", "--bogus", "x"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid usage", "bogus"},
		},
		{
			name:         "bare missing path implies merge and finds nothing",
			args:         []string{"does-not-exist.pdf"},
			wantCode:     ExitNothing,
			wantInStderr: []string{"warning: skipped does-not-exist.pdf", "nothing to process", "hint:"},
		},
		{
			name:         "unsupported shell exits with ExitUsage",
			args:         []string{"completion", "tcsh"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unsupported shell"},
		},
		{
			name:         "completion without shell prints usage",
			args:         []string{"completion"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: stitch completion"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t)
			code := te.run(tt.args...)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, te.stderr)
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(te.stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, te.stdout)
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(te.stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, te.stderr)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command names versus paths
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"merge", true},
		{"tree", true},
		{"doctor", true},
		{"--help", true},
		{"scans", false},
		{"report.pdf", false},
		{"-o", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()
			if got := isCommand(tt.arg); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWantsVerbose - Early verbose detection for maxprocs logging
// ---------------------------------------------------------------------------

func TestWantsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"short flag", []string{"merge", "-v", "dir"}, true},
		{"long flag", []string{"dir", "--verbose"}, true},
		{"absent", []string{"merge", "dir"}, false},
		{"after terminator", []string{"merge", "--", "-v"}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := wantsVerbose(tt.args); got != tt.want {
				t.Errorf("wantsVerbose(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}
