package pgxkit

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fernandezvara/pgxkit/hooks"
)

// DriverConn is the surface of *pgx.Conn that pgxkit exposes to the query
// layer. It is an interface so lifecycle behavior is testable without a
// live server.
type DriverConn interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	IsClosed() bool
	Close(ctx context.Context) error
}

// Ensure pgx.Conn implements DriverConn
var _ DriverConn = (*pgx.Conn)(nil)

// dialFunc opens a physical connection from a DSN.
type dialFunc func(ctx context.Context, dsn string) (DriverConn, error)

func pgxDial(ctx context.Context, dsn string) (DriverConn, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Conn owns at most one physical PostgreSQL connection. It is not safe for
// concurrent use; callers needing concurrent access use one Conn per unit of
// work. Timeouts and cancellation belong to the driver and are configured
// through the connection parameters (connect_timeout, ...) and the contexts
// passed to each call.
type Conn struct {
	params Params
	target string
	hooks  []hooks.Hook
	dial   dialFunc
	conn   DriverConn
}

// NewConn creates a disconnected handle. Params may be a Params value, a
// plain string map, or any ParamsProvider; anything else yields an empty
// parameter set and the connect attempt fails instead.
func NewConn(params any) *Conn {
	c, _ := NewConnWithOptions(params, Options{})
	return c
}

// NewConnWithOptions creates a disconnected handle with observability hooks
// assembled from opts.
func NewConnWithOptions(params any, opts Options) (*Conn, error) {
	normalized := normalizeParams(params)
	c := &Conn{
		params: normalized,
		target: normalized.describe(),
		dial:   pgxDial,
	}

	if opts.Logger != nil && (opts.LogLifecycle || opts.SlowConnect > 0) {
		c.hooks = append(c.hooks, hooks.NewLoggerHook(opts.Logger, opts.LogLifecycle, opts.SlowConnect))
	}
	if opts.MetricsRegistry != nil {
		hook, err := hooks.NewMetricsHook(opts.MetricsRegistry)
		if err != nil {
			return nil, fmt.Errorf("pgxkit: failed to create metrics hook: %w", err)
		}
		c.hooks = append(c.hooks, hook)
	}
	if opts.Tracer != nil {
		c.hooks = append(c.hooks, hooks.NewTracingHook(opts.Tracer))
	}

	return c, nil
}

// Params returns a copy of the normalized connection parameters.
func (c *Conn) Params() Params {
	return c.params.clone()
}

// Connect opens the physical connection using the owned parameters and
// returns the same handle for chaining. On driver failure the handle stays
// disconnected and the error is a CONNECTION-kind *Error carrying the
// original failure text; the raw driver error never escapes unwrapped.
func (c *Conn) Connect(ctx context.Context) (*Conn, error) {
	event := &hooks.ConnEvent{Op: hooks.OpConnect, Target: c.target, StartTime: time.Now()}
	ctx = c.beforeConn(ctx, event)

	conn, err := c.dial(ctx, c.params.DSN())
	if err != nil {
		c.conn = nil
		kitErr := &Error{
			Code:    CodeConnection,
			Message: fmt.Sprintf("failed to connect to database: %v", err),
			Op:      "Connect",
			Cause:   err,
		}
		event.Err = kitErr
		c.afterConn(ctx, event)
		return nil, kitErr
	}

	c.conn = conn
	c.afterConn(ctx, event)
	return c, nil
}

// Disconnect closes the held connection if any. Close failures are discarded
// and the resource reference is always cleared, so it is safe to call from
// deferred cleanup paths, including during panic unwinds.
func (c *Conn) Disconnect(ctx context.Context) {
	if c.conn == nil {
		return
	}

	event := &hooks.ConnEvent{Op: hooks.OpDisconnect, Target: c.target, StartTime: time.Now()}
	ctx = c.beforeConn(ctx, event)

	event.Err = c.conn.Close(ctx)
	c.conn = nil

	c.afterConn(ctx, event)
}

// IsConnected reports whether a live connection is held. Liveness is
// re-checked on every call; the backend can close a connection out-of-band.
func (c *Conn) IsConnected() bool {
	return c.conn != nil && !c.conn.IsClosed()
}

// Driver returns the live driver connection. The query layer must obtain the
// connection through this accessor on every use rather than caching it past
// a Disconnect; a stale or closed resource is never returned silently.
func (c *Conn) Driver() (DriverConn, error) {
	if !c.IsConnected() {
		return nil, &Error{
			Code:    CodeConnection,
			Message: "not connected to database",
			Op:      "Driver",
			Cause:   ErrNotConnected,
		}
	}
	return c.conn, nil
}

// With connects, runs fn, and always disconnects when fn returns, whether it
// succeeds, fails or panics.
func (c *Conn) With(ctx context.Context, fn func(conn *Conn) error) error {
	if _, err := c.Connect(ctx); err != nil {
		return err
	}
	defer c.Disconnect(ctx)

	return fn(c)
}

func (c *Conn) String() string {
	status := "disconnected"
	if c.IsConnected() {
		status = "connected"
	}
	return fmt.Sprintf("pgxkit.Conn(%s)", status)
}

func (c *Conn) beforeConn(ctx context.Context, event *hooks.ConnEvent) context.Context {
	for _, h := range c.hooks {
		ctx = h.BeforeConn(ctx, event)
	}
	return ctx
}

func (c *Conn) afterConn(ctx context.Context, event *hooks.ConnEvent) {
	for _, h := range c.hooks {
		h.AfterConn(ctx, event)
	}
}
