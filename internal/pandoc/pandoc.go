// Package pandoc invokes the external document converter.
package pandoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrConversionFailed indicates the converter exited unsuccessfully for one document.
var ErrConversionFailed = errors.New("conversion failed")

// maxDiagnostic bounds how much converter stderr is carried in an error.
const maxDiagnostic = 200

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Options selects the converter binary and its flags.
type Options struct {
	Binary        string
	ShiftHeadings int
	ExtraArgs     []string
}

// Converter turns a LaTeX source file into Markdown.
type Converter struct {
	Runner CommandRunner
	opts   Options
}

// NewConverter creates a Converter with a real command runner.
func NewConverter(opts Options) *Converter {
	if opts.Binary == "" {
		opts.Binary = "pandoc"
	}
	return &Converter{Runner: ExecRunner{}, opts: opts}
}

// Args returns the converter arguments for one source file.
func (c *Converter) Args(sourcePath string) []string {
	args := []string{
		sourcePath,
		"-f", "latex",
		"-t", "markdown",
		"--wrap=none",
		"--markdown-headings=atx",
	}
	if c.opts.ShiftHeadings != 0 {
		args = append(args, "--shift-heading-level-by="+strconv.Itoa(c.opts.ShiftHeadings))
	}
	return append(args, c.opts.ExtraArgs...)
}

// Convert runs the converter on sourcePath. The call blocks until the
// converter exits; a non-zero exit wraps ErrConversionFailed with the start
// of its diagnostic output.
func (c *Converter) Convert(ctx context.Context, sourcePath string) (string, error) {
	stdout, stderr, err := c.Runner.Run(ctx, c.opts.Binary, c.Args(sourcePath)...)
	if err != nil {
		diag := strings.TrimSpace(truncate(stderr, maxDiagnostic))
		if diag == "" {
			return "", fmt.Errorf("%w: %s: %w", ErrConversionFailed, sourcePath, err)
		}
		return "", fmt.Errorf("%w: %s: %s: %w", ErrConversionFailed, sourcePath, diag, err)
	}
	return stdout, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[:n], "")
}
