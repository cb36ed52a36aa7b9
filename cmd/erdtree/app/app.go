/*
Package app wires the erdtree components together for one run: it probes
the terminal, resolves the parameter set from the argument vector and the
configuration file, traverses the filesystem, and renders the result.
*/
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/Knodis-c/erdtree-3-1/internal/config"
	rctx "github.com/Knodis-c/erdtree-3-1/internal/context"
	"github.com/Knodis-c/erdtree-3-1/pkg/logger"
	"github.com/Knodis-c/erdtree-3-1/pkg/output"
	"github.com/Knodis-c/erdtree-3-1/pkg/walker"
)

// App is the application container for one erdtree invocation.
type App struct {
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
}

// New creates an application bound to the real filesystem and standard
// streams.
func New() *App {
	return &App{
		fs:     afero.NewOsFs(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Run resolves the parameter set from args, walks the tree, and renders it.
func (a *App) Run(ctx context.Context, args []string) error {
	// Resolution happens before the verbosity level is known, so it runs
	// under a bootstrap logger; the real one follows immediately after.
	bootLog := logger.NewLogger(logger.Config{Verbosity: 0, Output: a.stderr})

	caps := rctx.Capabilities{
		StdinIsTTY:  term.IsTerminal(int(os.Stdin.Fd())),
		StdoutIsTTY: term.IsTerminal(int(os.Stdout.Fd())),
	}

	reader := config.NewReader(a.fs, bootLog)

	rc, err := rctx.Resolve(args, caps, reader, bootLog)
	if err != nil {
		return humanize(err)
	}

	log := logger.NewLogger(logger.Config{
		Verbosity: rc.Verbosity,
		Output:    a.stderr,
	})

	ctx, stop := withSignalHandling(ctx, log)
	defer stop()

	w, err := walker.New(rc, a.fs, log)
	if err != nil {
		return err
	}

	result, err := w.Walk(ctx)
	if err != nil {
		return err
	}

	for path, walkErr := range result.Errors {
		log.WithFields(logger.Fields{
			"path":  path,
			"error": walkErr,
		}).Warn("Entry skipped due to error")
	}

	out := bufio.NewWriter(a.stdout)
	defer out.Flush()

	if rc.Report {
		return output.NewReport(rc).Render(out, result.Root)
	}

	return output.NewTree(rc).Render(out, result.Root)
}

// humanize rewords resolution errors for the terminal, keeping the
// underlying cause visible.
func humanize(err error) error {
	var argErr *rctx.ArgParseError
	if errors.As(err, &argErr) {
		return fmt.Errorf("invalid arguments: %w", argErr.Err)
	}

	var cfgErr *rctx.ConfigError
	if errors.As(err, &cfgErr) {
		return fmt.Errorf("configuration file: %w", cfgErr.Err)
	}

	return err
}
