// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/matt-FFFFFF/arcli/internal/ctxlog"
	"github.com/matt-FFFFFF/arcli/internal/signalbroker"
	"github.com/matt-FFFFFF/arcli/internal/teereader"
)

var (
	// ErrProcessExit is wrapped by every *ExitError.
	ErrProcessExit = errors.New("process exited with non-zero status")
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrSignalReceived is joined to the result when a signal was passed on to the child.
	ErrSignalReceived = errors.New("signal received")
	// ErrDuplicateSignalReceived is joined to the result when a second signal killed the child.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, process forcefully terminated")
	// ErrContextDone is joined to the result when the context killed the child.
	ErrContextDone = errors.New("context done, process killed")
)

// ExitError reports a child that exited with a non-zero status.
type ExitError struct {
	Name     string
	Code     int
	LastLine string // Last line written to stderr, or to stdout if stderr was empty.
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
	if e.LastLine != "" {
		msg += ": " + e.LastLine
	}

	return msg
}

// Is makes errors.Is(err, ErrProcessExit) true.
func (e *ExitError) Is(target error) bool {
	return target == ErrProcessExit
}

// OutputFunc receives one line of child output.
type OutputFunc func(line string, stderr bool)

// Command describes a child process.
type Command struct {
	Path     string            // Full path of the executable.
	Args     []string          // Arguments, not including the executable name.
	Dir      string            // Working directory, empty for the current directory.
	Env      map[string]string // Extra environment on top of os.Environ().
	Stdin    *os.File          // Defaults to os.Stdin.
	Stdout   io.Writer         // Receives raw stdout, may be nil.
	Stderr   io.Writer         // Receives raw stderr, may be nil.
	OnOutput OutputFunc        // Receives each output line, may be nil.

	sigCh chan os.Signal // Replaced in tests.
}

// Run starts the child and waits for it. It returns the exit code and an error
// for anything other than a clean zero exit.
func (c *Command) Run(ctx context.Context) (int, error) {
	logger := ctxlog.Logger(ctx).With("path", c.Path)
	logger.Debug("command info", "cwd", c.Dir, "args", c.Args)

	sigCh := c.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx)
		defer signalbroker.Stop(sigCh)
	}

	stdin := c.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	env := os.Environ()
	for _, k := range slices.Sorted(maps.Keys(c.Env)) {
		env = append(env, k+"="+c.Env[k])
	}

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return -1, errors.Join(ErrFailedToCreatePipe, err)
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		_ = rOut.Close()
		_ = wOut.Close()

		return -1, errors.Join(ErrFailedToCreatePipe, err)
	}

	name := filepath.Base(c.Path)

	ps, err := os.StartProcess(c.Path, slices.Concat([]string{name}, c.Args), &os.ProcAttr{
		Dir:   c.Dir,
		Env:   env,
		Files: []*os.File{stdin, wOut, wErr},
	})

	// The child holds its own copies of the write ends.
	_ = wOut.Close()
	_ = wErr.Close()

	if err != nil {
		_ = rOut.Close()
		_ = rErr.Close()

		return -1, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	var readers sync.WaitGroup

	outTee := c.drain(&readers, rOut, c.Stdout, false)
	errTee := c.drain(&readers, rErr, c.Stderr, true)

	done := make(chan struct{})
	killed := make(chan error, 1)

	go watch(ctx, ps, sigCh, done, killed)

	state, waitErr := ps.Wait()
	close(done)
	readers.Wait()

	code := -1
	if state != nil {
		code = state.ExitCode()
	}

	logger.Debug("process finished", "exitCode", code)

	var watchErr error

	select {
	case watchErr = <-killed:
	default:
	}

	if waitErr == nil && watchErr == nil && code == 0 {
		return 0, nil
	}

	last := errTee.LastLine(200)
	if last == "" {
		last = outTee.LastLine(200)
	}

	return code, errors.Join(&ExitError{Name: name, Code: code, LastLine: last}, waitErr, watchErr)
}

func (c *Command) drain(wg *sync.WaitGroup, r *os.File, dst io.Writer, stderr bool) *teereader.LineTeeReader {
	var onLine teereader.LineFunc
	if c.OnOutput != nil {
		onLine = func(line string) { c.OnOutput(line, stderr) }
	}

	if dst == nil {
		dst = io.Discard
	}

	tr := teereader.NewWithLimit(r, onLine, 0)

	wg.Add(1)

	go func() {
		defer wg.Done()
		defer r.Close()

		_, _ = io.Copy(dst, tr)
		tr.Flush()
	}()

	return tr
}

// watch passes the first signal of each kind on to the child and kills it on the second
// signal or when ctx is done. The reason for a kill is sent on killed.
func watch(ctx context.Context, ps *os.Process, sigCh <-chan os.Signal, done <-chan struct{}, killed chan<- error) {
	seen := make(map[os.Signal]struct{})
	logger := ctxlog.Logger(ctx).With("pid", ps.Pid)

	for {
		select {
		case <-done:
			return

		case s, ok := <-sigCh:
			if !ok {
				sigCh = nil
				continue
			}

			if _, dup := seen[s]; dup {
				logger.Info("received duplicate signal, killing process", "signal", s.String())
				kill(ctx, ps)

				killed <- ErrDuplicateSignalReceived

				return
			}

			seen[s] = struct{}{}

			logger.Info("received signal, passing on", "signal", s.String())

			if err := ps.Signal(s); err != nil {
				logger.Info("failed to send signal", "signal", s.String(), "error", err)
			}

		case <-ctx.Done():
			logger.Info("context done, killing process")
			kill(ctx, ps)

			killed <- ErrContextDone

			return
		}
	}
}

func kill(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)
	}
}
