package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrStatus  = "status"
	attrResult  = "result"
	attrStage   = "stage"
	attrAccount = "account"
)

// Metrics provides methods for recording report pipeline metrics.
type Metrics struct {
	accountsTotal     metric.Int64Counter
	appointmentsTotal metric.Int64Counter
	eventsTotal       metric.Int64Counter
	stageDuration     metric.Float64Histogram
	runDuration       metric.Float64Histogram

	// detailedLabels controls whether account names are added as labels
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	m.accountsTotal, err = meter.Int64Counter(
		"weeklycal_accounts_total",
		metric.WithDescription("Account folders processed, by outcome"),
		metric.WithUnit("{account}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create weeklycal_accounts_total counter: %w", err)
	}

	m.appointmentsTotal, err = meter.Int64Counter(
		"weeklycal_appointments_total",
		metric.WithDescription("Appointment elements read from calendar exports, by parse result"),
		metric.WithUnit("{appointment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create weeklycal_appointments_total counter: %w", err)
	}

	m.eventsTotal, err = meter.Int64Counter(
		"weeklycal_events_total",
		metric.WithDescription("Events leaving each pipeline stage"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create weeklycal_events_total counter: %w", err)
	}

	m.stageDuration, err = meter.Float64Histogram(
		"weeklycal_stage_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create weeklycal_stage_duration_seconds histogram: %w", err)
	}

	m.runDuration, err = meter.Float64Histogram(
		"weeklycal_run_duration_seconds",
		metric.WithDescription("Report run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0, 300.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create weeklycal_run_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordAccount records one processed account folder.
// The account name is only attached when detailed labels are enabled.
func (m *Metrics) RecordAccount(ctx context.Context, status, account string) {
	if m == nil || m.accountsTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels && account != "" {
		attrs = append(attrs, attribute.String(attrAccount, account))
	}

	m.accountsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordAppointments adds n appointments with the given parse result.
func (m *Metrics) RecordAppointments(ctx context.Context, result string, n int) {
	if m == nil || m.appointmentsTotal == nil || n <= 0 {
		return
	}

	m.appointmentsTotal.Add(ctx, int64(n), metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordEvents adds n events leaving stage.
func (m *Metrics) RecordEvents(ctx context.Context, stage string, n int) {
	if m == nil || m.eventsTotal == nil {
		return
	}

	m.eventsTotal.Add(ctx, int64(n), metric.WithAttributes(attribute.String(attrStage, stage)))
}

// RecordStage records how long a pipeline stage took.
func (m *Metrics) RecordStage(ctx context.Context, stage string, duration time.Duration) {
	if m == nil || m.stageDuration == nil {
		return
	}

	m.stageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String(attrStage, stage)))
}

// RecordRun records the outcome and duration of a whole report run.
// Status should be one of: "success", "error"
func (m *Metrics) RecordRun(ctx context.Context, status string, duration time.Duration) {
	if m == nil || m.runDuration == nil {
		return
	}

	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String(attrStatus, status)))
}
