// internal/pkg/poller/poller.go
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Poller runs a fetch function on a fixed interval with failure backoff.
//
// On consecutive failures the wait doubles, capped at backoffCap times the
// base interval, and snaps back to the base interval on the first success.
// Stop cancels the poller's context, so an in-flight fetch observes
// cancellation and must not apply its result.
type Poller struct {
	name       string
	base       time.Duration
	backoffCap int
	fn         func(ctx context.Context) error
	log        *logrus.Entry

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// New creates a poller. fn is invoked once per tick; a non-nil error counts
// as a failure for backoff purposes.
func New(name string, base time.Duration, backoffCap int, log *logrus.Entry, fn func(ctx context.Context) error) *Poller {
	if backoffCap < 1 {
		backoffCap = 1
	}
	return &Poller{
		name:       name,
		base:       base,
		backoffCap: backoffCap,
		fn:         fn,
		log:        log.WithField("poller", name),
	}
}

// Start begins polling. It is a no-op if the poller is already running.
// The first fetch fires immediately, then on the interval.
func (p *Poller) Start(parent context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}

	ctx, cancel := context.WithCancel(parent)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	go p.loop(ctx)
	p.log.WithField("interval", p.base).Debug("Poller started")
}

// Stop cancels polling and waits for the loop to exit. Safe to call when not
// running.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.running = false
	p.mu.Unlock()

	cancel()
	<-done
	p.log.Debug("Poller stopped")
}

// Running reports whether the poller loop is active
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	failures := 0
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := p.fn(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			failures++
			p.log.WithError(err).WithField("consecutive_failures", failures).Warn("Poll failed")
		} else {
			failures = 0
		}

		timer.Reset(p.NextInterval(failures))
	}
}

// NextInterval returns the wait after the given number of consecutive
// failures: base doubled per failure, capped at backoffCap * base.
func (p *Poller) NextInterval(failures int) time.Duration {
	interval := p.base
	max := p.base * time.Duration(p.backoffCap)
	for i := 0; i < failures; i++ {
		interval *= 2
		if interval >= max {
			return max
		}
	}
	return interval
}
