// Package frontend invokes the external C front-end that preprocesses and
// parses a header into its JSON syntax tree.
package frontend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"safelvgl/internal/ast"
)

// Runner invokes one front-end command. The command receives the
// preprocessor arguments followed by the header path and must print the
// translation unit as JSON on stdout.
type Runner struct {
	Command  string   // Front-end executable
	Args     []string // Extra preprocessor arguments, appended last
	FakeLibC string   // Directory of stub libc headers, optional

	Log *slog.Logger
}

// Parse runs the front-end over the header and decodes the resulting
// syntax tree. Any failure here is fatal to the run: without a parsed
// translation unit there is nothing to generate from.
func (r *Runner) Parse(ctx context.Context, headerPath string, includeDirs []string) (*ast.Unit, error) {
	if r.Command == "" {
		return nil, errors.New("front-end command not configured")
	}
	log := r.Log
	if log == nil {
		log = slog.Default()
	}

	args := append(r.cppArgs(includeDirs), headerPath)
	log.Info("parsing header", "header", headerPath, "frontend", r.Command)
	log.Debug("front-end invocation", "args", args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("running front-end %s: %w: %s", r.Command, err, msg)
		}
		return nil, fmt.Errorf("running front-end %s: %w", r.Command, err)
	}

	unit, err := ast.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("decoding front-end output: %w", err)
	}
	return unit, nil
}

// cppArgs assembles the preprocessor argument list: standard includes are
// blocked and replaced by the stub libc, then every tree include directory
// is added, then the configured extras.
func (r *Runner) cppArgs(includeDirs []string) []string {
	args := []string{
		"-nostdinc",
		"-E",
		"-DLV_CONF_INCLUDE_SIMPLE",
		"-DPYCPARSER",
	}
	if r.FakeLibC != "" {
		args = append(args, "-I"+r.FakeLibC)
	}
	for _, dir := range includeDirs {
		args = append(args, "-I"+dir)
	}
	return append(args, r.Args...)
}
