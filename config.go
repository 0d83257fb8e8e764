package pgxkit

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Params holds connection parameters as driver keyword/value pairs.
// Recognized keys are driver-defined (host, port, user, password, dbname,
// connect_timeout, ...); pgxkit passes them through unexamined.
type Params map[string]any

// ParamsProvider is implemented by configuration types that can render
// themselves as connection parameters.
type ParamsProvider interface {
	ConnectionParams() Params
}

// normalizeParams converts the accepted parameter forms into Params.
// Anything else normalizes to an empty set; the failure then surfaces at
// connect time rather than at construction.
func normalizeParams(v any) Params {
	switch p := v.(type) {
	case Params:
		return p.clone()
	case map[string]any:
		return Params(p).clone()
	case map[string]string:
		out := make(Params, len(p))
		for k, val := range p {
			out[k] = val
		}
		return out
	case ParamsProvider:
		return p.ConnectionParams().clone()
	default:
		return Params{}
	}
}

func (p Params) clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// DSN renders the parameters as a keyword/value connection string with
// deterministic key order. A lone "dsn" or "url" key passes through
// unchanged, so URL-style connection strings keep working.
func (p Params) DSN() string {
	if len(p) == 1 {
		for _, key := range []string{"dsn", "url"} {
			if v, ok := p[key]; ok {
				return fmt.Sprintf("%v", v)
			}
		}
	}

	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+quoteDSNValue(fmt.Sprintf("%v", p[k])))
	}
	return strings.Join(parts, " ")
}

// describe returns a credential-free summary of the parameters for logs
// and trace attributes.
func (p Params) describe() string {
	parts := make([]string, 0, 4)
	for _, k := range []string{"host", "port", "dbname", "user"} {
		if v, ok := p[k]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	return strings.Join(parts, " ")
}

// quoteDSNValue quotes a value per libpq keyword/value rules.
func quoteDSNValue(v string) string {
	if v == "" {
		return "''"
	}
	if !strings.ContainsAny(v, " '\\") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// Options holds optional behavior for Conn and Client.
type Options struct {
	// Observability (all optional)
	Logger          *slog.Logger          // Structured logger
	LogLifecycle    bool                  // Log every connect/disconnect
	SlowConnect     time.Duration         // Log connects slower than this (0 = disabled)
	MetricsRegistry prometheus.Registerer // Prometheus registry for lifecycle metrics
	Tracer          trace.Tracer          // OpenTelemetry tracer

	// LazyConnect skips the automatic connect in NewClient; the client then
	// connects on the first Connect or With call.
	LazyConnect bool
}

// WithLogger enables lifecycle logging
func (o Options) WithLogger(logger *slog.Logger) Options {
	o.Logger = logger
	o.LogLifecycle = true
	return o
}

// WithSlowConnectLog logs connects slower than the threshold
func (o Options) WithSlowConnectLog(threshold time.Duration) Options {
	o.SlowConnect = threshold
	return o
}

// WithMetrics enables Prometheus lifecycle metrics
func (o Options) WithMetrics(registry prometheus.Registerer) Options {
	o.MetricsRegistry = registry
	return o
}

// WithTracing enables OpenTelemetry tracing
func (o Options) WithTracing(tracer trace.Tracer) Options {
	o.Tracer = tracer
	return o
}

// WithLazyConnect defers the client's initial connect
func (o Options) WithLazyConnect() Options {
	o.LazyConnect = true
	return o
}
