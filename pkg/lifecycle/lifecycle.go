// Package lifecycle sequences subsystem startup and shutdown around a single
// cancellable context.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ErrShutdownTimeout is returned by Shutdown when hooks outlive the deadline.
var ErrShutdownTimeout = errors.New("shutdown timed out")

// Coordinator runs startup hooks concurrently, flips readiness once they all
// return, and on Shutdown cancels its context and waits for shutdown hooks.
//
// Shutdown hooks start immediately and are expected to block on
// <-Context().Done() before cleaning up.
type Coordinator struct {
	ctx      context.Context
	cancel   context.CancelFunc
	startup  sync.WaitGroup
	shutdown sync.WaitGroup
	ready    atomic.Bool
	once     sync.Once
	result   error
}

func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{ctx: ctx, cancel: cancel}
}

// Context is cancelled when Shutdown begins.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

func (c *Coordinator) OnStartup(fn func()) {
	c.startup.Go(fn)
}

func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdown.Go(fn)
}

// Ready reports whether WaitForStartup has returned and Shutdown has not begun.
func (c *Coordinator) Ready() bool {
	return c.ready.Load() && c.ctx.Err() == nil
}

func (c *Coordinator) WaitForStartup() {
	c.startup.Wait()
	c.ready.Store(true)
}

// Shutdown is safe to call more than once; later calls return the first result
// without waiting again.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.once.Do(func() {
		c.ready.Store(false)
		c.cancel()

		done := make(chan struct{})
		go func() {
			c.shutdown.Wait()
			close(done)
		}()

		timer := time.NewTimer(timeout)
		defer timer.Stop()

		select {
		case <-done:
		case <-timer.C:
			c.result = fmt.Errorf("%w after %v", ErrShutdownTimeout, timeout)
		}
	})
	return c.result
}
