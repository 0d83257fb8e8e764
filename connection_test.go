package pgxkit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDriver is a DriverConn for lifecycle tests
type fakeDriver struct {
	closed     bool
	closeErr   error
	pingErr    error
	closeCalls int
}

func (f *fakeDriver) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeDriver) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f *fakeDriver) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (f *fakeDriver) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (f *fakeDriver) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, nil
}

func (f *fakeDriver) IsClosed() bool { return f.closed }

func (f *fakeDriver) Close(ctx context.Context) error {
	f.closeCalls++
	if f.closeErr != nil {
		return f.closeErr
	}
	f.closed = true
	return nil
}

// newFakeConn returns a handle whose dial yields the given driver (or error)
// and a counter of dial attempts.
func newFakeConn(driver *fakeDriver, dialErr error) (*Conn, *int) {
	dials := 0
	c := NewConn(Params{"host": "localhost", "dbname": "test"})
	c.dial = func(ctx context.Context, dsn string) (DriverConn, error) {
		dials++
		if dialErr != nil {
			return nil, dialErr
		}
		return driver, nil
	}
	return c, &dials
}

func TestConn_Connect(t *testing.T) {
	driver := &fakeDriver{}
	conn, _ := newFakeConn(driver, nil)
	ctx := context.Background()

	if conn.IsConnected() {
		t.Error("new handle should be disconnected")
	}

	same, err := conn.Connect(ctx)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if same != conn {
		t.Error("Connect should return the same handle for chaining")
	}
	if !conn.IsConnected() {
		t.Error("expected IsConnected after Connect")
	}
}

func TestConn_Connect_DialFailure(t *testing.T) {
	dialErr := errors.New("dial tcp 127.0.0.1:5432: connection refused")
	conn, _ := newFakeConn(nil, dialErr)
	ctx := context.Background()

	_, err := conn.Connect(ctx)
	if err == nil {
		t.Fatal("expected error")
	}

	if !IsConnection(err) {
		t.Errorf("expected CONNECTION kind, got %v", err)
	}
	if !strings.Contains(err.Error(), dialErr.Error()) {
		t.Errorf("expected original failure text in message, got %q", err.Error())
	}
	if !errors.Is(err, dialErr) {
		t.Error("expected the driver error as cause")
	}

	var kitErr *Error
	if !errors.As(err, &kitErr) {
		t.Fatal("expected *Error, the raw driver error must not escape")
	}
	if kitErr.Code != CodeConnection {
		t.Errorf("expected CodeConnection, got %s", kitErr.Code)
	}

	// Failed connect leaves the handle deterministically disconnected
	if conn.IsConnected() {
		t.Error("handle must stay disconnected after a failed connect")
	}
	if _, err := conn.Driver(); err == nil {
		t.Error("Driver must fail after a failed connect")
	}
}

func TestConn_Disconnect(t *testing.T) {
	driver := &fakeDriver{}
	conn, _ := newFakeConn(driver, nil)
	ctx := context.Background()

	if _, err := conn.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	conn.Disconnect(ctx)
	if conn.IsConnected() {
		t.Error("expected disconnected after Disconnect")
	}
	if driver.closeCalls != 1 {
		t.Errorf("expected 1 close call, got %d", driver.closeCalls)
	}
}

func TestConn_Disconnect_NeverConnected(t *testing.T) {
	conn, _ := newFakeConn(&fakeDriver{}, nil)

	// Must be a no-op, not a panic or error
	conn.Disconnect(context.Background())

	if conn.IsConnected() {
		t.Error("expected disconnected")
	}
}

func TestConn_Disconnect_CloseFailure(t *testing.T) {
	driver := &fakeDriver{closeErr: errors.New("close failed")}
	conn, _ := newFakeConn(driver, nil)
	ctx := context.Background()

	if _, err := conn.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	// Close failure is swallowed and the reference cleared regardless
	conn.Disconnect(ctx)

	if conn.IsConnected() {
		t.Error("resource reference must be cleared even when close fails")
	}
	if _, err := conn.Driver(); err == nil {
		t.Error("Driver must fail after Disconnect")
	}
}

func TestConn_IsConnected_OutOfBandClose(t *testing.T) {
	driver := &fakeDriver{}
	conn, _ := newFakeConn(driver, nil)
	ctx := context.Background()

	if _, err := conn.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	// Backend closes the connection out-of-band
	driver.closed = true

	if conn.IsConnected() {
		t.Error("IsConnected must re-check liveness each call")
	}
	if _, err := conn.Driver(); !IsNotConnected(err) {
		t.Errorf("Driver must not return a closed resource silently, got %v", err)
	}
}

func TestConn_Driver(t *testing.T) {
	driver := &fakeDriver{}
	conn, _ := newFakeConn(driver, nil)
	ctx := context.Background()

	_, err := conn.Driver()
	if err == nil {
		t.Fatal("expected error when disconnected")
	}
	if !IsNotConnected(err) {
		t.Errorf("expected not-connected error, got %v", err)
	}
	if !IsConnection(err) {
		t.Error("not-connected error must still be CONNECTION kind")
	}

	if _, err := conn.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	got, err := conn.Driver()
	if err != nil {
		t.Fatalf("Driver failed: %v", err)
	}
	if got != DriverConn(driver) {
		t.Error("Driver should return the held resource")
	}
}

func TestConn_With_ReleasesOnSuccess(t *testing.T) {
	driver := &fakeDriver{}
	conn, _ := newFakeConn(driver, nil)

	called := false
	err := conn.With(context.Background(), func(c *Conn) error {
		called = true
		if !c.IsConnected() {
			t.Error("expected connected inside scope")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("With failed: %v", err)
	}
	if !called {
		t.Fatal("fn was not called")
	}
	if conn.IsConnected() {
		t.Error("expected disconnected after scope")
	}
}

func TestConn_With_ReleasesOnError(t *testing.T) {
	driver := &fakeDriver{}
	conn, _ := newFakeConn(driver, nil)

	scopeErr := errors.New("scope failed")
	err := conn.With(context.Background(), func(c *Conn) error {
		return scopeErr
	})

	if !errors.Is(err, scopeErr) {
		t.Errorf("expected scope error back, got %v", err)
	}
	if conn.IsConnected() {
		t.Error("expected disconnected after failing scope")
	}
}

func TestConn_With_ReleasesOnPanic(t *testing.T) {
	driver := &fakeDriver{}
	conn, _ := newFakeConn(driver, nil)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		_ = conn.With(context.Background(), func(c *Conn) error {
			panic("boom")
		})
	}()

	if conn.IsConnected() {
		t.Error("expected disconnected after panicking scope")
	}
}

func TestConn_With_ConnectFailure(t *testing.T) {
	conn, _ := newFakeConn(nil, errors.New("refused"))

	called := false
	err := conn.With(context.Background(), func(c *Conn) error {
		called = true
		return nil
	})

	if !IsConnection(err) {
		t.Errorf("expected CONNECTION error, got %v", err)
	}
	if called {
		t.Error("fn must not run when connect fails")
	}
	if conn.IsConnected() {
		t.Error("expected disconnected")
	}
}

func TestConn_String(t *testing.T) {
	driver := &fakeDriver{}
	conn, _ := newFakeConn(driver, nil)
	ctx := context.Background()

	if conn.String() != "pgxkit.Conn(disconnected)" {
		t.Errorf("unexpected representation: %s", conn.String())
	}

	if _, err := conn.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if conn.String() != "pgxkit.Conn(connected)" {
		t.Errorf("unexpected representation: %s", conn.String())
	}
}

func TestConn_Params_Copy(t *testing.T) {
	params := Params{"host": "localhost"}
	conn := NewConn(params)

	got := conn.Params()
	got["host"] = "mutated"

	if conn.Params()["host"] != "localhost" {
		t.Error("Params must return a copy")
	}
}
