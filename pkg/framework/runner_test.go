package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Aggregate())
	first, second := errors.New("first"), errors.New("second")
	errs.Add(nil, first)
	require.Equal(t, "first", errs.Aggregate().Error())
	errs.Add(second)
	err := errs.Aggregate()
	require.Equal(t, "multiple errors:\nfirst\nsecond", err.Error())
	require.True(t, errors.Is(err, second))
	require.False(t, errors.Is(err, context.Canceled))
}

func TestRunnerWait(t *testing.T) {
	failure := errors.New("failure")
	r := NewRunner()
	err := r.Run(
		RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}),
		NamedRun("failing", RunFunc(func(ctx context.Context) error {
			return failure
		})),
	)
	require.Equal(t, failure.Error(), err.Error())
	require.True(t, errors.Is(err, failure))
}

func TestRunnerStop(t *testing.T) {
	r := NewRunner()
	r.Go(RunFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	r.Stop()
	require.NoError(t, r.Wait())
}

func TestRunWithContextCloser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	closeCh := make(chan struct{})
	closes := 0
	closer := closerFunc(func() error {
		closes++
		close(closeCh)
		return nil
	})
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := RunWithContextCloser(ctx, closer, func() error {
		<-closeCh
		return errors.New("closed")
	})
	require.Equal(t, context.Canceled, err)
	require.Equal(t, 1, closes)

	closes = 0
	failure := errors.New("done")
	err = RunWithContextCloser(context.Background(), closerFunc(func() error {
		closes++
		return nil
	}), func() error {
		return failure
	})
	require.Equal(t, failure, err)
	require.Equal(t, 1, closes)
}
