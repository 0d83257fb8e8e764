// Package hooks provides observability hooks for pgxkit connection
// lifecycle events.
package hooks

import (
	"context"
	"time"
)

// Lifecycle operation names used in events, logs and metric labels.
const (
	OpConnect    = "connect"
	OpDisconnect = "disconnect"
)

// ConnEvent describes a single lifecycle operation on a connection.
type ConnEvent struct {
	Op        string // OpConnect or OpDisconnect
	Target    string // credential-free connection summary
	StartTime time.Time
	Err       error
}

// Hook observes connection lifecycle operations.
type Hook interface {
	BeforeConn(ctx context.Context, event *ConnEvent) context.Context
	AfterConn(ctx context.Context, event *ConnEvent)
}
