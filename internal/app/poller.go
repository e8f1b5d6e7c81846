package app

import (
	"context"
	"log"
	"sync"
	"time"
)

// Poller refreshes a snapshot on a fixed interval for as long as its
// context lives. Requests are not cancelled once started, so responses can
// arrive out of order; whichever response is received last wins, and every
// arrival replaces the snapshot wholesale.
type Poller[T any] struct {
	interval time.Duration
	fetch    func(ctx context.Context) (T, error)
	apply    func(T)

	mu      sync.Mutex
	stopped bool
}

// NewPoller builds a poller that pushes each fetched snapshot into apply.
func NewPoller[T any](interval time.Duration, fetch func(ctx context.Context) (T, error), apply func(T)) *Poller[T] {
	return &Poller[T]{interval: interval, fetch: fetch, apply: apply}
}

// Run polls until ctx is cancelled. An immediate fetch happens before the
// first tick so screens are not blank for a full interval.
func (p *Poller[T]) Run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.mu.Lock()
			p.stopped = true
			p.mu.Unlock()
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// poll launches the fetch without waiting for it, so a slow response never
// blocks the tick loop. Responses landing after teardown are discarded.
func (p *Poller[T]) poll(ctx context.Context) {
	go func() {
		snapshot, err := p.fetch(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("poll failed: %v", err)
			}
			return
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.stopped || ctx.Err() != nil {
			return
		}
		p.apply(snapshot)
	}()
}
