package stitch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alnah/go-stitch/internal/fileutil"
	"github.com/alnah/go-stitch/internal/markup"
	"github.com/alnah/go-stitch/internal/process"
)

// OfficeConverter converts an office document to PDF.
type OfficeConverter interface {
	// ConvertToPDF converts documentPath and returns the path of the produced
	// PDF inside outDir. Errors wrap ErrToolUnavailable or ErrConversion.
	ConvertToPDF(ctx context.Context, documentPath, outDir string) (string, error)
}

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. Canceling ctx kills
// the command and every process it spawned.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	process.Prepare(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// ResolveExecutable returns the first candidate that is an existing regular
// file. Returns ErrToolUnavailable when none qualifies.
func ResolveExecutable(candidates []string) (string, error) {
	for _, c := range candidates {
		if c != "" && fileutil.FileExists(c) {
			return c, nil
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no candidate path configured", ErrToolUnavailable)
	}
	return "", fmt.Errorf("%w: tried %s", ErrToolUnavailable, strings.Join(candidates, ", "))
}

// Soffice converts documents with the LibreOffice command line.
type Soffice struct {
	Candidates []string      // executable paths tried in order
	Runner     CommandRunner // nil means ExecRunner
	Markdown   *markup.Renderer
}

// NewSoffice creates a Soffice trying candidates in order with a real command runner.
func NewSoffice(candidates []string) *Soffice {
	return &Soffice{
		Candidates: candidates,
		Runner:     ExecRunner{},
		Markdown:   markup.NewRenderer(),
	}
}

// ConvertToPDF implements OfficeConverter.
//
// The suite writes <outDir>/<stem>.pdf. A file of that name left by a
// previous conversion is removed first so a silent failure cannot be
// mistaken for success. Markdown sources are rendered to HTML in outDir
// before conversion.
func (s *Soffice) ConvertToPDF(ctx context.Context, documentPath, outDir string) (string, error) {
	exe, err := ResolveExecutable(s.Candidates)
	if err != nil {
		return "", err
	}

	source := documentPath
	if isMarkdown(documentPath) {
		htmlPath, err := s.renderMarkdown(ctx, documentPath, outDir)
		if err != nil {
			return "", err
		}
		defer os.Remove(htmlPath)
		source = htmlPath
	}

	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	output := filepath.Join(outDir, stem+".pdf")
	if err := os.Remove(output); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: removing stale %s: %v", ErrConversion, output, err)
	}

	profile := "file://" + filepath.ToSlash(filepath.Join(outDir, "profile"))
	if !strings.HasPrefix(profile, "file:///") {
		profile = "file:///" + strings.TrimPrefix(profile, "file://")
	}

	runner := s.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	_, stderr, runErr := runner.Run(ctx, exe,
		"-env:UserInstallation="+profile,
		"--headless",
		"--convert-to", "pdf",
		"--outdir", outDir,
		source,
	)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if runErr != nil {
		return "", fmt.Errorf("%w: %s: %v%s", ErrConversion, filepath.Base(documentPath), runErr, formatStderr(stderr))
	}
	if !fileutil.FileExists(output) {
		return "", fmt.Errorf("%w: %s: no output produced%s", ErrConversion, filepath.Base(documentPath), formatStderr(stderr))
	}
	return output, nil
}

// renderMarkdown writes documentPath as standalone HTML into outDir.
// The file keeps the document stem so the converted PDF is named after it.
func (s *Soffice) renderMarkdown(ctx context.Context, documentPath, outDir string) (string, error) {
	src, err := os.ReadFile(documentPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrReadSource, documentPath, err)
	}

	renderer := s.Markdown
	if renderer == nil {
		renderer = markup.NewRenderer()
	}
	stem := strings.TrimSuffix(filepath.Base(documentPath), filepath.Ext(documentPath))
	html, err := renderer.Render(ctx, src, stem, filepath.Dir(documentPath))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}

	path := filepath.Join(outDir, stem+".html")
	if err := os.WriteFile(path, html, fileutil.FilePerm); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", ErrConversion, path, err)
	}
	return path, nil
}

// formatStderr trims tool output for inclusion in an error message.
func formatStderr(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return ""
	}
	const limit = 500
	if len(stderr) > limit {
		stderr = stderr[:limit] + "..."
	}
	return ": " + stderr
}
