package store

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// ErrPoolClosed is returned by Do after Close.
var ErrPoolClosed = errors.New("store: apartment pool closed")

// Apartment describes a store's per-thread initialization requirement:
// Init must run once on a thread before its first store call, Teardown
// exactly once when the thread retires. Either hook may be nil.
type Apartment struct {
	Init     func() error
	Teardown func()
}

// Guard tracks one thread's apartment membership with a reference count.
// Acquire is idempotent per reference; the teardown runs on the release of
// the last reference and never twice.
type Guard struct {
	ap *Apartment

	mu       sync.Mutex
	refs     int
	initDone bool
	done     bool
}

// NewGuard creates a guard for one OS thread. The caller must pin the
// goroutine with runtime.LockOSThread before the first Acquire.
func NewGuard(ap *Apartment) *Guard {
	return &Guard{ap: ap}
}

// Acquire enters the apartment, running Init on the first acquisition.
func (g *Guard) Acquire() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.done {
		return errors.New("store: guard already released")
	}
	if !g.initDone {
		if g.ap.Init != nil {
			if err := g.ap.Init(); err != nil {
				return fmt.Errorf("apartment init failed: %w", err)
			}
		}
		g.initDone = true
	}
	g.refs++
	return nil
}

// Release exits the apartment. The final release triggers Teardown; extra
// releases are no-ops.
func (g *Guard) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.done || g.refs == 0 {
		return
	}
	g.refs--
	if g.refs == 0 {
		g.done = true
		if g.ap.Teardown != nil {
			g.ap.Teardown()
		}
	}
}

type poolJob struct {
	fn   func() error
	done chan error
}

// Pool runs store calls on a fixed set of OS-thread-pinned workers, each
// inside its own apartment guard. Workers initialize on start and tear
// down when the pool closes.
type Pool struct {
	jobs chan poolJob
	quit chan struct{}
	wg   sync.WaitGroup

	closeOnce sync.Once
}

// NewPool starts size pinned workers for the apartment.
func NewPool(size int, ap *Apartment) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{
		jobs: make(chan poolJob),
		quit: make(chan struct{}),
	}
	p.wg.Add(size)
	for range size {
		go p.worker(ap)
	}
	return p
}

func (p *Pool) worker(ap *Apartment) {
	defer p.wg.Done()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	guard := NewGuard(ap)
	initErr := guard.Acquire()
	defer guard.Release()

	for {
		select {
		case job := <-p.jobs:
			if initErr != nil {
				job.done <- fmt.Errorf("worker unavailable: %w", initErr)
				continue
			}
			job.done <- job.fn()
		case <-p.quit:
			return
		}
	}
}

// Do runs fn on one of the pool's pinned threads and waits for it. There is
// no cancellation of fn once it has started; ctx only bounds the wait for a
// free worker.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	job := poolJob{fn: fn, done: make(chan error, 1)}

	select {
	case p.jobs <- job:
	case <-p.quit:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	return <-job.done
}

// Close retires all workers, running each thread's teardown exactly once.
// Do calls after Close fail with ErrPoolClosed.
func (p *Pool) Close() {
	p.closeOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}
