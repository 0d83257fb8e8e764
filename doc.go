/*
Package pgxkit provides a single-connection PostgreSQL foundation layer.

pgxkit sits between application code and pgx:
  - Connection lifecycle management for one physical connection (Conn)
  - A persistent client that survives scoped use (Client)
  - A domain error taxonomy wrapping pgx/PostgreSQL failures
  - The clause and operator vocabulary consumed by query-building layers
  - Configurable observability (logging, metrics, tracing)
  - Health check utilities

# Basic Usage

	conn := pgxkit.NewConn(pgxkit.Params{
	    "host":   "localhost",
	    "user":   "app",
	    "dbname": "app",
	})

	if _, err := conn.Connect(ctx); err != nil {
	    log.Fatal(err)
	}
	defer conn.Disconnect(ctx)

	driver, err := conn.Driver()
	// driver is the live *pgx.Conn surface; never cache it past Disconnect

# Scoped Acquisition

Conn.With always releases the connection when the function returns, on
success, error and panic alike:

	err := conn.With(ctx, func(c *pgxkit.Conn) error {
	    driver, _ := c.Driver()
	    _, err := driver.Exec(ctx, "SELECT 1")
	    return err
	})
	// conn.IsConnected() == false here

Client.With deliberately keeps the connection open so one client serves many
scoped blocks; disconnect explicitly when done:

	client, err := pgxkit.NewClient(ctx, params)
	defer client.Disconnect(ctx)

	_ = client.With(ctx, func(c *pgxkit.Client) error { ... })
	_ = client.With(ctx, func(c *pgxkit.Client) error { ... })
	// client.IsConnected() == true between and after the blocks

# Error Handling

Every failure crossing the package boundary is a *pgxkit.Error with one of
the taxonomy codes; no raw driver error escapes Connect:

	if _, err := conn.Connect(ctx); err != nil {
	    if pgxkit.IsConnection(err) {
	        // connect-time failure, handle or retry
	    }
	}

	driver, err := conn.Driver()
	if pgxkit.IsNotConnected(err) {
	    // accessor called on a disconnected handle
	}

# Clause Vocabulary

The enumerated operator and strategy values are the literal tokens a
SQL-emitting layer uses verbatim:

	where := pgxkit.NewWhereClause("email", pgxkit.OpEQ, email)
	join := pgxkit.NewJoinClause("orders", "orders.user_id = users.id").
	    WithType(pgxkit.JoinLeft)
	order := pgxkit.NewOrderByClause("created_at").Desc()

# Observability

	opts := pgxkit.Options{}.
	    WithLogger(slog.Default()).
	    WithMetrics(prometheus.DefaultRegisterer)

	client, err := pgxkit.NewClientWithOptions(ctx, params, opts)
*/
package pgxkit
