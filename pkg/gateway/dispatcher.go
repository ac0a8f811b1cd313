package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/nodenet-io/nodenet/pkg/util"
)

// Dispatcher runs persistence calls fire-and-forget: the caller never
// blocks on the result, failures are logged and not retried. The editor
// uses it for flushes triggered by reconciliation, where there is no user
// action to report an error to.
type Dispatcher struct {
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher with a per-call timeout.
func NewDispatcher(timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{timeout: timeout}
}

// Go invokes fn on its own goroutine with a fresh context. The op name is
// only used for logging.
func (d *Dispatcher) Go(op string, fn func(context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			util.WithField("op", op).Errorf("persistence call failed: %v", err)
		}
	}()
}

// Wait blocks until every dispatched call has finished. Intended for
// shutdown and tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
