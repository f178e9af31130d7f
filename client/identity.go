package client

import (
	"context"

	"github.com/sumerqa/chatkit/schema"
)

// Identity fetches the user record behind the current session through the
// authenticated transport and, when a session store is wired, caches it into
// the session. The identity is only trusted once this call succeeds.
func (c *Client) Identity(ctx context.Context) (*schema.Identity, error) {
	identity := &schema.Identity{}
	if err := c.get(ctx, "/auth/me", identity); err != nil {
		return nil, err
	}
	if c.sessions != nil {
		if session, ok := c.sessions.Lookup(); ok {
			session.Identity = identity
			_ = c.sessions.Set(session)
		}
	}
	return identity, nil
}
