package loop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopRunsCallbacksInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := New(16)
	go l.Run(ctx)

	var order []int
	for i := 0; i < 10; i++ {
		value := i
		require.True(t, l.Do(func() { order = append(order, value) }))
	}
	require.NoError(t, l.Call(ctx, func() {}))

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestLoopNeverInterleavesCallbacks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := New(4)
	go l.Run(ctx)

	var (
		active  int
		overlap bool
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Do(func() {
				active++
				if active > 1 {
					overlap = true
				}
				time.Sleep(time.Millisecond)
				active--
			})
		}()
	}
	wg.Wait()
	require.NoError(t, l.Call(ctx, func() {}))

	assert.False(t, overlap)
}

func TestLoopRejectsWorkAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := New(1)
	go l.Run(ctx)
	cancel()
	<-l.Done()

	assert.False(t, l.Do(func() {}))
	assert.ErrorIs(t, l.Call(context.Background(), func() {}), ErrStopped)
}
