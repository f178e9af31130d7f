package transport

import (
	"context"
	"sync"
)

// renewal is the single-use outcome slot shared by every caller that hits an
// authentication failure while a renewal is already pending.
type renewal struct {
	done  chan struct{}
	token string
	err   error
}

// gate serializes credential renewal: the first caller becomes the driver and
// performs the provider exchange, every later caller waits on the driver's
// outcome instead of issuing a redundant renewal. The pending slot is cleared
// before waiters are released, so a caller arriving after completion starts a
// brand-new cycle.
type gate struct {
	mu      sync.Mutex
	pending *renewal
}

// renew returns the renewed access token. drive performs the provider
// exchange and must update the credential store before returning, so waiters
// never observe a released gate with a stale store.
func (g *gate) renew(ctx context.Context, drive func() (string, error)) (string, error) {
	g.mu.Lock()
	if p := g.pending; p != nil {
		g.mu.Unlock()
		select {
		case <-p.done:
			return p.token, p.err
		case <-ctx.Done():
			// detach this waiter only; the driver and other waiters run on
			return "", ctx.Err()
		}
	}
	p := &renewal{done: make(chan struct{})}
	g.pending = p
	g.mu.Unlock()

	p.token, p.err = drive()

	g.mu.Lock()
	g.pending = nil
	g.mu.Unlock()
	close(p.done)
	return p.token, p.err
}
