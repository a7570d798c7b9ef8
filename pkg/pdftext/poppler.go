package pdftext

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner runs an external command and returns its standard output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}

		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return out, nil
}

// Poppler reads pages with the pdftotext binary of poppler-utils.
type Poppler struct {
	// Binary is the pdftotext executable, "pdftotext" when empty.
	Binary string
	Runner CommandRunner
}

// NewPoppler returns a Poppler using binary and os/exec.
func NewPoppler(binary string) *Poppler {
	return &Poppler{Binary: binary, Runner: ExecRunner{}}
}

// Pages implements PageReader. pdftotext ends every page with a form feed.
func (p *Poppler) Pages(ctx context.Context, path string) ([]string, error) {
	bin := p.Binary
	if bin == "" {
		bin = "pdftotext"
	}

	out, err := p.Runner.Run(ctx, bin, "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, fmt.Errorf("could not run pdftotext: %w", err)
	}

	pages := strings.Split(string(out), "\f")
	if n := len(pages); n > 0 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}

	return pages, nil
}

var _ PageReader = (*Poppler)(nil)
