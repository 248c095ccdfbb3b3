package brawlstars

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineExecutor(t *testing.T) {
	v, err := await(context.Background(), inlineExecutor{}, func(context.Context) (int, error) {
		return 7, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestGoroutineExecutor_CancelledContextSkipsTask(t *testing.T) {
	ex := newGoroutineExecutor(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	f := submit(ctx, ex, func(context.Context) (int, error) {
		ran.Store(true)
		return 1, nil
	})

	_, err := f.Wait(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran.Load())
}

func TestGoroutineExecutor_CancelWhileWaitingForSlot(t *testing.T) {
	ex := newGoroutineExecutor(1)

	started := make(chan struct{})
	release := make(chan struct{})
	blocker := submit(context.Background(), ex, func(context.Context) (int, error) {
		close(started)
		<-release
		return 1, nil
	})
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	var ran atomic.Int32
	futures := make([]*Future[int], 5)
	for i := range futures {
		futures[i] = submit(ctx, ex, func(context.Context) (int, error) {
			ran.Add(1)
			return 2, nil
		})
	}
	cancel()

	for _, f := range futures {
		select {
		case <-f.Done():
		case <-time.After(time.Second):
			t.Fatal("future not resolved after cancel")
		}
		_, err := f.Wait(context.Background())
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, int32(0), ran.Load(), "no task runs outside the in-flight bound")

	close(release)
	v, err := blocker.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}
