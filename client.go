package pgxkit

import (
	"context"
	"fmt"
)

// Client presents a reusable, long-lived database handle. It owns exactly one
// Conn for its whole lifetime. Unlike Conn.With, Client.With keeps the
// physical connection open on exit so the client can be reused across many
// scoped blocks; the caller owns the final Disconnect.
type Client struct {
	conn *Conn
}

// NewClient creates a client and connects immediately.
func NewClient(ctx context.Context, params any) (*Client, error) {
	return NewClientWithOptions(ctx, params, Options{})
}

// NewClientWithOptions creates a client with observability hooks assembled
// from opts. LazyConnect skips the initial connect.
func NewClientWithOptions(ctx context.Context, params any, opts Options) (*Client, error) {
	conn, err := NewConnWithOptions(params, opts)
	if err != nil {
		return nil, err
	}

	c := &Client{conn: conn}

	if !opts.LazyConnect {
		if _, err := c.conn.Connect(ctx); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Conn returns the owned connection handle.
func (c *Client) Conn() *Conn {
	return c.conn
}

// Connect connects if not already connected and returns the same client for
// chaining. Connecting a connected client is a no-op.
func (c *Client) Connect(ctx context.Context) (*Client, error) {
	if !c.conn.IsConnected() {
		if _, err := c.conn.Connect(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Disconnect closes the underlying connection.
func (c *Client) Disconnect(ctx context.Context) {
	c.conn.Disconnect(ctx)
}

// IsConnected reports whether the underlying connection is live.
func (c *Client) IsConnected() bool {
	return c.conn.IsConnected()
}

// Driver returns the live driver connection via the owned handle.
func (c *Client) Driver() (DriverConn, error) {
	return c.conn.Driver()
}

// With connects if needed and runs fn. The connection deliberately stays open
// when fn returns, normally or not.
func (c *Client) With(ctx context.Context, fn func(client *Client) error) error {
	if _, err := c.Connect(ctx); err != nil {
		return err
	}

	return fn(c)
}

// Health reports the health of the underlying connection.
func (c *Client) Health(ctx context.Context) HealthStatus {
	return c.conn.Health(ctx)
}

// IsHealthy returns true if the underlying connection is reachable.
func (c *Client) IsHealthy(ctx context.Context) bool {
	return c.conn.IsHealthy(ctx)
}

func (c *Client) String() string {
	status := "disconnected"
	if c.IsConnected() {
		status = "connected"
	}
	return fmt.Sprintf("pgxkit.Client(%s)", status)
}
