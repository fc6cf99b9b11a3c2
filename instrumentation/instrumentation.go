// Package instrumentation provides OpenTelemetry metrics and tracing for
// the authentication pipeline: counters for redirects, callbacks, code
// exchanges, token verifications and profile fetches, a duration
// histogram for outbound provider calls, and named tracers for span
// creation around each pipeline step.
//
// Never record credential values (access tokens, refresh tokens,
// authorization codes, client secrets) as attributes. Only metadata such
// as error kinds, endpoints, and outcomes is safe: telemetry is
// persisted, replicated, and read by wider audiences than the service
// itself.
package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const (
	// DefaultServiceName is used when the config names no service.
	DefaultServiceName = "google-oauth2"

	// DefaultServiceVersion is used when none is provided.
	DefaultServiceVersion = "unknown"
)

// Config holds instrumentation configuration.
type Config struct {
	// ServiceName is the name of the host service.
	ServiceName string

	// ServiceVersion is the version of the host service.
	ServiceVersion string

	// Enabled controls whether instrumentation is active. When false,
	// no-op providers are used and recording has zero overhead.
	Enabled bool

	// Resource allows custom resource attributes. If nil, a default
	// resource is created from the service name and version.
	Resource *resource.Resource

	// MeterProvider and TracerProvider override the providers used when
	// Enabled is true. Hosts typically pass their SDK providers here;
	// nil falls back to no-op providers.
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

// Instrumentation provides the OpenTelemetry components the strategy
// records into.
type Instrumentation struct {
	config   Config
	resource *resource.Resource

	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider

	metrics *Metrics
}

// New creates a new instrumentation instance.
func New(config Config) (*Instrumentation, error) {
	if config.ServiceName == "" {
		config.ServiceName = DefaultServiceName
	}
	if config.ServiceVersion == "" {
		config.ServiceVersion = DefaultServiceVersion
	}

	res := config.Resource
	if res == nil {
		var err error
		res, err = resource.New(
			context.Background(),
			resource.WithAttributes(
				semconv.ServiceName(config.ServiceName),
				semconv.ServiceVersion(config.ServiceVersion),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create resource: %w", err)
		}
	}

	inst := &Instrumentation{
		config:   config,
		resource: res,
	}

	if config.Enabled {
		inst.meterProvider = config.MeterProvider
		inst.tracerProvider = config.TracerProvider
	}
	if inst.meterProvider == nil {
		inst.meterProvider = noop.NewMeterProvider()
	}
	if inst.tracerProvider == nil {
		inst.tracerProvider = tracenoop.NewTracerProvider()
	}

	metrics, err := newMetrics(inst)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}
	inst.metrics = metrics

	return inst, nil
}

// Noop returns a disabled instance. Recording into it is free; it is the
// default when a strategy is built without instrumentation.
func Noop() *Instrumentation {
	inst, err := New(Config{Enabled: false})
	if err != nil {
		// Disabled construction cannot fail: no resource or instrument
		// creation can error on no-op providers.
		panic(err)
	}
	return inst
}

// Meter returns a named meter for the given scope. Scopes are layer
// names like "strategy" or "provider"; the full name becomes
// "github.com/omniauth-go/google-oauth2/{scope}".
func (i *Instrumentation) Meter(scope string) metric.Meter {
	return i.meterProvider.Meter("github.com/omniauth-go/google-oauth2/" + scope)
}

// Tracer returns a named tracer for the given scope.
func (i *Instrumentation) Tracer(scope string) trace.Tracer {
	return i.tracerProvider.Tracer("github.com/omniauth-go/google-oauth2/" + scope)
}

// Metrics returns the metrics holder for recording metric values.
func (i *Instrumentation) Metrics() *Metrics {
	return i.metrics
}

// MeterProvider returns the underlying meter provider.
func (i *Instrumentation) MeterProvider() metric.MeterProvider {
	return i.meterProvider
}

// TracerProvider returns the underlying tracer provider.
func (i *Instrumentation) TracerProvider() trace.TracerProvider {
	return i.tracerProvider
}
