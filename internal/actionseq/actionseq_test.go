// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package actionseq

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type trace struct {
	mu    sync.Mutex
	order []string
}

func (tr *trace) step(name string, delay time.Duration, v any) Step {
	return Step{Name: name, Func: func(ctx context.Context, _ *Options) (any, error) {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		tr.mu.Lock()
		tr.order = append(tr.order, name)
		tr.mu.Unlock()

		return v, nil
	}}
}

func TestRun_SequentialOrder(t *testing.T) {
	tr := &trace{}
	steps := Steps{
		tr.step("a", 0, 1),
		tr.step("b", 20*time.Millisecond, 2),
		tr.step("c", 0, 3),
	}

	res, err := Run(context.Background(), steps, &Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, tr.order, "a delayed step still finishes before the next starts")
	assert.Equal(t, []string{"a", "b", "c"}, res.Names())
	assert.Equal(t, map[string]any{"a": 1, "b": 2, "c": 3}, res.All())
	assert.Equal(t, 3, res.Len())
}

func TestRun_SharedOptions(t *testing.T) {
	steps := Steps{
		{Name: "set", Func: func(_ context.Context, o *Options) (any, error) {
			o.SetParam("dir", "/tmp/x")
			return nil, nil
		}},
		{Name: "read", Func: func(_ context.Context, o *Options) (any, error) {
			return o.Param("dir"), nil
		}},
	}

	opts := &Options{}
	res, err := Run(context.Background(), steps, opts)
	require.NoError(t, err)

	v, ok := res.Get("read")
	require.True(t, ok)
	assert.Equal(t, "/tmp/x", v)
	assert.Equal(t, "/tmp/x", opts.Params["dir"], "mutations are visible to the caller")
}

func TestRun_FailFast(t *testing.T) {
	tr := &trace{}
	steps := Steps{
		tr.step("a", 0, "ok"),
		{Name: "b", Func: func(context.Context, *Options) (any, error) {
			return nil, errors.New("boom")
		}},
		tr.step("c", 0, "never"),
	}

	res, err := Run(context.Background(), steps, nil)
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error(), "the step error is returned unchanged")
	assert.Nil(t, res, "partial results are discarded")
	assert.Equal(t, []string{"a"}, tr.order)
}

func TestRun_GuardSkipIsSuccess(t *testing.T) {
	steps := Steps{
		{Name: "skipped", Func: func(_ context.Context, o *Options) (any, error) {
			if o.Param("enabled") != true {
				return nil, nil
			}

			return "ran", nil
		}},
		{Name: "after", Func: func(context.Context, *Options) (any, error) { return "done", nil }},
	}

	res, err := Run(context.Background(), steps, &Options{Params: map[string]any{"enabled": false}})
	require.NoError(t, err)

	v, ok := res.Get("skipped")
	assert.True(t, ok, "a skipped step still has a result entry")
	assert.Nil(t, v)

	v, _ = res.Get("after")
	assert.Equal(t, "done", v)
}

func TestRun_NilFuncIsNoop(t *testing.T) {
	res, err := Run(context.Background(), Steps{{Name: "empty"}}, nil)
	require.NoError(t, err)

	_, ok := res.Get("empty")
	assert.True(t, ok)
}

func TestRun_Panic(t *testing.T) {
	sentinel := errors.New("inner")
	tests := []struct {
		name  string
		value any
		is    error
		msg   string
	}{
		{name: "string", value: "kaboom", msg: `step "p" panicked: kaboom`},
		{name: "error", value: sentinel, is: sentinel, msg: `step "p" panicked: inner`},
		{name: "other", value: 42, msg: `step "p" panicked: 42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := Steps{{Name: "p", Func: func(context.Context, *Options) (any, error) { panic(tt.value) }}}

			res, err := Run(context.Background(), steps, nil)
			assert.Nil(t, res)

			var pe *StepPanicError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "p", pe.Step)
			assert.Equal(t, tt.msg, err.Error())

			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestRun_ContextCancelledBetweenSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := &trace{}
	steps := Steps{
		{Name: "cancel", Func: func(context.Context, *Options) (any, error) {
			cancel()
			return nil, nil
		}},
		tr.step("next", 0, nil),
	}

	res, err := Run(ctx, steps, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
	assert.Empty(t, tr.order)
}

func TestRun_Independent(t *testing.T) {
	steps := Steps{{Name: "inc", Func: func(_ context.Context, o *Options) (any, error) {
		n, _ := o.Param("n").(int)
		o.SetParam("n", n+1)

		return n + 1, nil
	}}}

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			res, err := Run(context.Background(), steps, &Options{})
			assert.NoError(t, err)

			v, _ := res.Get("inc")
			assert.Equal(t, 1, v)
		}()
	}

	wg.Wait()
}

func TestOptions_Clone(t *testing.T) {
	o := &Options{Params: map[string]any{"a": 1}}
	c := o.Clone()
	c.SetParam("a", 2)

	assert.Equal(t, 1, o.Param("a"))
	assert.Equal(t, 2, c.Param("a"))

	var nilOpts *Options
	assert.Nil(t, nilOpts.Param("a"))
	assert.NotNil(t, nilOpts.Clone())
}

func TestResults_Nil(t *testing.T) {
	var r *Results

	_, ok := r.Get("x")
	assert.False(t, ok)
	assert.Zero(t, r.Len())
	assert.Nil(t, r.Names())
	assert.Empty(t, r.All())
}
