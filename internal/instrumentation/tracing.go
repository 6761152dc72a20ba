package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for the weeklycal module.
const TracerName = "github.com/teemow/weeklycal"

// Span attribute keys.
const (
	// SpanAttrRunID identifies one report run.
	SpanAttrRunID = "weeklycal.run_id"

	// SpanAttrStage is the pipeline stage name.
	SpanAttrStage = "weeklycal.stage"

	// SpanAttrAccount is the account folder name.
	SpanAttrAccount = "weeklycal.account"

	// SpanAttrWindow is the reporting window as "start..end".
	SpanAttrWindow = "weeklycal.window"

	// SpanAttrSheet is the target sheet name.
	SpanAttrSheet = "weeklycal.sheet"

	// SpanAttrCount is the number of items a stage produced.
	SpanAttrCount = "weeklycal.count"

	// SpanAttrDryRun indicates the workbook is not written.
	SpanAttrDryRun = "weeklycal.dry_run"
)

// SpanAttributeBuilder helps construct OpenTelemetry span attributes
// with consistent naming.
type SpanAttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewSpanAttributeBuilder creates a new SpanAttributeBuilder.
func NewSpanAttributeBuilder() *SpanAttributeBuilder {
	return &SpanAttributeBuilder{
		attrs: make([]attribute.KeyValue, 0, 8),
	}
}

// WithRunID adds the run identifier.
func (b *SpanAttributeBuilder) WithRunID(runID string) *SpanAttributeBuilder {
	if runID != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrRunID, runID))
	}
	return b
}

// WithAccount adds the account folder attribute.
func (b *SpanAttributeBuilder) WithAccount(account string) *SpanAttributeBuilder {
	if account != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrAccount, account))
	}
	return b
}

// WithWindow adds the reporting window.
func (b *SpanAttributeBuilder) WithWindow(window string) *SpanAttributeBuilder {
	if window != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrWindow, window))
	}
	return b
}

// WithSheet adds the target sheet.
func (b *SpanAttributeBuilder) WithSheet(sheet string) *SpanAttributeBuilder {
	if sheet != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrSheet, sheet))
	}
	return b
}

// WithDryRun adds the dry-run indicator.
func (b *SpanAttributeBuilder) WithDryRun(dryRun bool) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.Bool(SpanAttrDryRun, dryRun))
	return b
}

// Build returns the constructed attributes.
func (b *SpanAttributeBuilder) Build() []attribute.KeyValue {
	return b.attrs
}

// StartSpan starts a new span with the given name and attributes.
// The caller is responsible for ending the span with defer span.End().
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartStageSpan starts a span named "report.<stage>" for one pipeline stage.
func StartStageSpan(ctx context.Context, stage string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+1)
	allAttrs = append(allAttrs, attribute.String(SpanAttrStage, stage))
	allAttrs = append(allAttrs, attrs...)

	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, "report."+stage,
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// SetSpanCount records how many items a stage produced.
func SetSpanCount(span trace.Span, n int) {
	span.SetAttributes(attribute.Int(SpanAttrCount, n))
}

// SetSpanError records an error on the span and sets the status to error.
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// AddSpanEvent adds an event to the span with optional attributes.
func AddSpanEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// GetTraceID returns the trace ID from the current span in context.
// Returns empty string if no valid span is present.
func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}

// GetSpanID returns the span ID from the current span in context.
// Returns empty string if no valid span is present.
func GetSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().SpanID().String()
	}
	return ""
}
