// Package instrumentation provides OpenTelemetry instrumentation for weekly
// report runs.
//
// # Metrics
//
//   - weeklycal_accounts_total: account folders processed, by status
//     (success, skipped, excluded, error)
//   - weeklycal_appointments_total: appointment elements read, by parse result
//     (kept, missing_fields, reserved_title, ignored_phrase)
//   - weeklycal_events_total: events leaving each stage
//     (raw, in_window, combined, output)
//   - weeklycal_stage_duration_seconds: histogram of stage durations
//   - weeklycal_run_duration_seconds: histogram of run durations by status
//
// With the prometheus exporter the metrics live in a registry private to the
// Provider. Set PUSHGATEWAY_URL to push them to a Prometheus Pushgateway when
// the run ends.
//
// # Tracing
//
// Each run has a root span and one child span per stage, named
// report.contacts, report.collect, report.window, report.dedup and
// report.write.
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: prometheus, otlp, stdout or none
//     (default: prometheus with PUSHGATEWAY_URL, otherwise none)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 1.0)
//   - PUSHGATEWAY_URL, PUSHGATEWAY_JOB: Pushgateway target and job label
//   - AUDIT_LOGGING_ENABLED, AUDIT_LOGGING_INCLUDE_PII: audit line settings
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	ctx, span := instrumentation.StartStageSpan(ctx, instrumentation.StageDedup)
//	events, stats := dedup.Deduplicate(pool, opts)
//	provider.Metrics().RecordEvents(ctx, instrumentation.EventsOutput, stats.Output)
//	span.End()
//
//	_ = provider.Push(ctx)
package instrumentation
