package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olbridge/outlook-mcp/internal/store"
)

func TestPoolInitializesEachWorkerOnce(t *testing.T) {
	var inits, teardowns atomic.Int32
	ap := &store.Apartment{
		Init:     func() error { inits.Add(1); return nil },
		Teardown: func() { teardowns.Add(1) },
	}

	pool := store.NewPool(3, ap)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.Do(context.Background(), func() error { return nil })
		}()
	}
	wg.Wait()

	pool.Close()

	assert.Equal(t, int32(3), inits.Load())
	assert.Equal(t, int32(3), teardowns.Load())
}

func TestPoolRunsJobsAndReturnsErrors(t *testing.T) {
	pool := store.NewPool(1, &store.Apartment{})
	defer pool.Close()

	ran := false
	require.NoError(t, pool.Do(context.Background(), func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)

	wantErr := errors.New("store fault")
	assert.ErrorIs(t, pool.Do(context.Background(), func() error { return wantErr }), wantErr)
}

func TestPoolInitFailureSurfacesOnDo(t *testing.T) {
	ap := &store.Apartment{
		Init: func() error { return errors.New("no apartment for you") },
	}
	pool := store.NewPool(1, ap)
	defer pool.Close()

	err := pool.Do(context.Background(), func() error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worker unavailable")
}

func TestPoolClosedDoFails(t *testing.T) {
	pool := store.NewPool(2, &store.Apartment{})
	pool.Close()
	// Close is idempotent.
	pool.Close()

	err := pool.Do(context.Background(), func() error { return nil })
	assert.ErrorIs(t, err, store.ErrPoolClosed)
}

func TestPoolDoHonorsContextWhileWaiting(t *testing.T) {
	pool := store.NewPool(1, &store.Apartment{})
	defer pool.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = pool.Do(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := pool.Do(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}

func TestGuardTeardownRunsOnce(t *testing.T) {
	var teardowns atomic.Int32
	ap := &store.Apartment{
		Teardown: func() { teardowns.Add(1) },
	}

	g := store.NewGuard(ap)
	require.NoError(t, g.Acquire())
	require.NoError(t, g.Acquire())

	g.Release()
	assert.Equal(t, int32(0), teardowns.Load())

	g.Release()
	assert.Equal(t, int32(1), teardowns.Load())

	// Further releases and acquires after final release are rejected.
	g.Release()
	assert.Equal(t, int32(1), teardowns.Load())
	assert.Error(t, g.Acquire())
}
