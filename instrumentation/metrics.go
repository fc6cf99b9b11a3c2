package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys for pipeline metrics. Metadata only; never attach
// credential values.
const (
	AttrOutcome           = "auth.outcome"       // "success" or "failure"
	AttrFailureKind       = "auth.failure_kind"  // error kind (missing_code, token, ...)
	AttrProviderOperation = "provider.operation" // token, tokeninfo, userinfo
)

// Metrics holds the metric instruments for the authentication pipeline.
type Metrics struct {
	// Flow counters
	AuthRedirects      metric.Int64Counter
	Callbacks          metric.Int64Counter
	CodeExchanges      metric.Int64Counter
	TokenVerifications metric.Int64Counter
	ProfileFetches     metric.Int64Counter
	Failures           metric.Int64Counter

	// Provider call latency
	ProviderCallDuration metric.Float64Histogram
}

// newMetrics creates and registers all metric instruments.
func newMetrics(inst *Instrumentation) (*Metrics, error) {
	meter := inst.Meter("strategy")
	m := &Metrics{}

	var err error
	m.AuthRedirects, err = meter.Int64Counter(
		"auth.redirects",
		metric.WithDescription("Number of authorization URLs produced"),
		metric.WithUnit("{redirect}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth.redirects counter: %w", err)
	}

	m.Callbacks, err = meter.Int64Counter(
		"auth.callbacks.processed",
		metric.WithDescription("Number of provider callbacks processed"),
		metric.WithUnit("{callback}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth.callbacks.processed counter: %w", err)
	}

	m.CodeExchanges, err = meter.Int64Counter(
		"auth.code.exchanged",
		metric.WithDescription("Number of authorization codes exchanged for tokens"),
		metric.WithUnit("{exchange}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth.code.exchanged counter: %w", err)
	}

	m.TokenVerifications, err = meter.Int64Counter(
		"auth.token.verified",
		metric.WithDescription("Number of externally supplied tokens checked against the introspection endpoint"),
		metric.WithUnit("{verification}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth.token.verified counter: %w", err)
	}

	m.ProfileFetches, err = meter.Int64Counter(
		"auth.profile.fetched",
		metric.WithDescription("Number of user-info fetches"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth.profile.fetched counter: %w", err)
	}

	m.Failures, err = meter.Int64Counter(
		"auth.failures",
		metric.WithDescription("Number of failed authentication attempts by error kind"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth.failures counter: %w", err)
	}

	m.ProviderCallDuration, err = meter.Float64Histogram(
		"auth.provider.call.duration",
		metric.WithDescription("Outbound provider call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth.provider.call.duration histogram: %w", err)
	}

	return m, nil
}

// RecordRedirect counts one authorization URL produced.
func (m *Metrics) RecordRedirect(ctx context.Context) {
	m.AuthRedirects.Add(ctx, 1)
}

// RecordCallback counts one callback-phase invocation.
func (m *Metrics) RecordCallback(ctx context.Context) {
	m.Callbacks.Add(ctx, 1)
}

// RecordExchange counts one code exchange with its outcome.
func (m *Metrics) RecordExchange(ctx context.Context, ok bool) {
	m.CodeExchanges.Add(ctx, 1, metric.WithAttributes(outcome(ok)))
}

// RecordVerification counts one token verification with its outcome.
func (m *Metrics) RecordVerification(ctx context.Context, ok bool) {
	m.TokenVerifications.Add(ctx, 1, metric.WithAttributes(outcome(ok)))
}

// RecordProfileFetch counts one user-info fetch with its outcome.
func (m *Metrics) RecordProfileFetch(ctx context.Context, ok bool) {
	m.ProfileFetches.Add(ctx, 1, metric.WithAttributes(outcome(ok)))
}

// RecordFailure counts one failed attempt by error kind.
func (m *Metrics) RecordFailure(ctx context.Context, kind string) {
	m.Failures.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrFailureKind, kind)))
}

// RecordProviderCall records the duration of one outbound provider call.
func (m *Metrics) RecordProviderCall(ctx context.Context, operation string, d time.Duration) {
	m.ProviderCallDuration.Record(ctx, float64(d.Milliseconds()),
		metric.WithAttributes(attribute.String(AttrProviderOperation, operation)))
}

func outcome(ok bool) attribute.KeyValue {
	if ok {
		return attribute.String(AttrOutcome, "success")
	}
	return attribute.String(AttrOutcome, "failure")
}
