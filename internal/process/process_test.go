// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"bytes"
	"context"
	"os"
	"runtime"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == goosWindows {
		t.Skip("requires a POSIX shell")
	}
}

type lines struct {
	mu     sync.Mutex
	out    []string
	errOut []string
}

func (l *lines) add(line string, stderr bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if stderr {
		l.errOut = append(l.errOut, line)
		return
	}

	l.out = append(l.out, line)
}

func TestRun_Success(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	var stdout bytes.Buffer

	got := &lines{}
	cmd := Shell(context.Background(), "echo one; echo two; echo oops >&2")
	cmd.Stdout = &stdout
	cmd.OnOutput = got.add

	code, err := cmd.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "one\ntwo\n", stdout.String())
	assert.Equal(t, []string{"one", "two"}, got.out)
	assert.Equal(t, []string{"oops"}, got.errOut)
}

func TestRun_NonZeroExit(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	cmd := Shell(context.Background(), "echo failing >&2; exit 3")

	code, err := cmd.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, code)
	require.ErrorIs(t, err, ErrProcessExit)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "failing", exitErr.LastLine)
	assert.Contains(t, err.Error(), "exited with code 3")
}

func TestRun_Env(t *testing.T) {
	skipOnWindows(t)

	var stdout bytes.Buffer

	cmd := Shell(context.Background(), `echo "$ARCLI_TEST_VALUE"`)
	cmd.Env = map[string]string{"ARCLI_TEST_VALUE": "from-env"}
	cmd.Stdout = &stdout

	_, err := cmd.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-env\n", stdout.String())
}

func TestRun_CouldNotStart(t *testing.T) {
	cmd := &Command{Path: "/definitely/not/here"}

	code, err := cmd.Run(context.Background())
	require.ErrorIs(t, err, ErrCouldNotStartProcess)
	assert.Equal(t, -1, code)
}

func TestRun_ContextCancelKills(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	cmd := Shell(ctx, "sleep 10")

	start := time.Now()
	_, err := cmd.Run(ctx)

	require.ErrorIs(t, err, ErrContextDone)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRun_DuplicateSignalKills(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	sigCh := make(chan os.Signal, 2)

	// The shell ignores SIGINT, so only the second signal ends it.
	cmd := Shell(context.Background(), "trap '' INT; sleep 10")
	cmd.sigCh = sigCh

	go func() {
		time.Sleep(100 * time.Millisecond)
		sigCh <- syscall.SIGINT
		time.Sleep(100 * time.Millisecond)
		sigCh <- syscall.SIGINT
	}()

	_, err := cmd.Run(context.Background())
	require.ErrorIs(t, err, ErrDuplicateSignalReceived)
}

func TestLookPath(t *testing.T) {
	_, err := lookPath("")
	require.ErrorIs(t, err, ErrCommandNotFound)

	_, err = lookPath("arcli-no-such-binary-xyz")
	require.ErrorIs(t, err, ErrCommandNotFound)

	if runtime.GOOS != goosWindows {
		p, err := lookPath("sh")
		require.NoError(t, err)
		assert.NotEmpty(t, p)
	}
}

func TestExec_UsesLookPath(t *testing.T) {
	stubs := gostub.Stub(&LookPath, func(name string) (string, error) {
		return "/opt/bin/" + name, nil
	})
	defer stubs.Reset()

	cmd, err := Exec("npm", "install", "--silent")
	require.NoError(t, err)
	assert.Equal(t, "/opt/bin/npm", cmd.Path)
	assert.Equal(t, []string{"install", "--silent"}, cmd.Args)
}
