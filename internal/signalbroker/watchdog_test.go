// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func startWatch(ctx context.Context, ch chan os.Signal, cancel context.CancelFunc) *sync.WaitGroup {
	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, ch, cancel)
	}()

	return &wg
}

func TestWatch_FirstSignalNoCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan os.Signal, 1)
	wg := startWatch(ctx, ch, cancel)

	ch <- os.Interrupt

	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, ctx.Err(), "context should survive the first signal")

	close(ch)
	wg.Wait()
}

func TestWatch_SecondSignalCancels(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan os.Signal, 2)
	wg := startWatch(ctx, ch, cancel)

	ch <- os.Interrupt
	ch <- os.Interrupt

	wg.Wait()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestWatch_DifferentSignalsNoCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan os.Signal, 2)
	wg := startWatch(ctx, ch, cancel)

	ch <- os.Interrupt
	ch <- os.Kill

	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, ctx.Err())

	close(ch)
	wg.Wait()
}

func TestWatch_ContextDoneReturns(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal)
	wg := startWatch(ctx, ch, cancel)

	cancel()
	wg.Wait()
}
