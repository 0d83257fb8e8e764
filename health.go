package pgxkit

import (
	"context"
	"time"
)

// HealthStatus reports the result of a connection health check
type HealthStatus struct {
	Healthy bool          `json:"healthy"`
	Latency time.Duration `json:"latency"`
	Error   string        `json:"error,omitempty"`
}

// Health pings the held connection and reports liveness and latency. A
// disconnected handle is unhealthy without touching the network.
func (c *Conn) Health(ctx context.Context) HealthStatus {
	driver, err := c.Driver()
	if err != nil {
		return HealthStatus{Error: err.Error()}
	}

	start := time.Now()
	err = driver.Ping(ctx)
	latency := time.Since(start)

	status := HealthStatus{
		Healthy: err == nil,
		Latency: latency,
	}

	if err != nil {
		status.Error = wrapError(err, "Health").Error()
	}

	return status
}

// IsHealthy returns true if the connection is live and the database responds
func (c *Conn) IsHealthy(ctx context.Context) bool {
	return c.Health(ctx).Healthy
}
