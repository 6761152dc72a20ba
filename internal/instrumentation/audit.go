package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/teemow/weeklycal/internal/logging"
)

// RunRecord captures the outcome of one report run for audit logging.
//
// # Privacy Considerations
//
// UserEmail is the operator's address. Unless PII logging is enabled only its
// domain and a hash are written.
type RunRecord struct {
	RunID     string
	UserEmail string

	// Target
	Window     string
	Sheet      string
	OutputFile string
	DryRun     bool

	// Counts
	Accounts      int
	AccountErrors int
	RawEvents     int
	Events        int

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	// Tracing context
	TraceID string
	SpanID  string
}

// NewRunRecord creates a RunRecord with timing started.
// Call Complete() when the run finishes.
func NewRunRecord(runID string) *RunRecord {
	return &RunRecord{
		RunID:     runID,
		StartTime: time.Now(),
	}
}

// UserDomain returns the domain portion of the operator's email.
func (r *RunRecord) UserDomain() string {
	return ExtractUserDomain(r.UserEmail)
}

// Status returns "success" or "error" based on the Success field.
func (r *RunRecord) Status() string {
	if r.Success {
		return StatusSuccess
	}
	return StatusError
}

// WithUser sets the operator identity.
func (r *RunRecord) WithUser(email string) *RunRecord {
	r.UserEmail = email
	return r
}

// WithTarget sets the window, sheet and workbook the run reports on.
func (r *RunRecord) WithTarget(window, sheet, outputFile string, dryRun bool) *RunRecord {
	r.Window = window
	r.Sheet = sheet
	r.OutputFile = outputFile
	r.DryRun = dryRun
	return r
}

// WithCounts sets the account and event totals.
func (r *RunRecord) WithCounts(accounts, accountErrors, rawEvents, events int) *RunRecord {
	r.Accounts = accounts
	r.AccountErrors = accountErrors
	r.RawEvents = rawEvents
	r.Events = events
	return r
}

// WithSpanContext extracts trace context from the current span.
func (r *RunRecord) WithSpanContext(ctx context.Context) *RunRecord {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		r.TraceID = span.SpanContext().TraceID().String()
		r.SpanID = span.SpanContext().SpanID().String()
	}
	return r
}

// Complete marks the run as finished and calculates its duration.
func (r *RunRecord) Complete(err error) *RunRecord {
	r.Duration = time.Since(r.StartTime)
	r.Success = err == nil
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// LogAttrs returns slog attributes without PII.
func (r *RunRecord) LogAttrs() []slog.Attr {
	attrs := r.commonAttrs()
	if r.UserEmail != "" {
		attrs = append(attrs,
			slog.String("user_domain", r.UserDomain()),
			logging.UserHash(r.UserEmail),
		)
	}
	return r.tailAttrs(attrs)
}

// LogAuditAttrs returns slog attributes including the operator's email.
func (r *RunRecord) LogAuditAttrs() []slog.Attr {
	attrs := r.commonAttrs()
	if r.UserEmail != "" {
		attrs = append(attrs, slog.String("user", r.UserEmail))
	}
	attrs = r.tailAttrs(attrs)
	if r.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", r.SpanID))
	}
	return attrs
}

func (r *RunRecord) commonAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String(logging.KeyRunID, r.RunID),
		slog.String("window", r.Window),
		slog.Int("accounts", r.Accounts),
		slog.Int("account_errors", r.AccountErrors),
		slog.Int("raw_events", r.RawEvents),
		slog.Int("events", r.Events),
		slog.Duration(logging.KeyDuration, r.Duration),
		slog.Bool("success", r.Success),
	}
}

func (r *RunRecord) tailAttrs(attrs []slog.Attr) []slog.Attr {
	if r.Sheet != "" {
		attrs = append(attrs, logging.Sheet(r.Sheet))
	}
	if r.OutputFile != "" {
		attrs = append(attrs, logging.File(r.OutputFile))
	}
	if r.DryRun {
		attrs = append(attrs, slog.Bool("dry_run", true))
	}
	if r.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", r.TraceID))
	}
	if r.Error != "" {
		attrs = append(attrs, slog.String(logging.KeyError, r.Error))
	}
	return attrs
}

// AuditLogger writes one structured line per report run.
type AuditLogger struct {
	logger     *slog.Logger
	includePII bool
	enabled    bool
}

// NewAuditLogger creates a new AuditLogger with the given slog.Logger.
// By default, PII is not included in logs.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: false,
		enabled:    true,
	}
}

// NewAuditLoggerWithConfig creates a new AuditLogger with the given configuration.
func NewAuditLoggerWithConfig(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: config.IncludePII,
		enabled:    config.Enabled,
	}
}

// LogRun logs a finished run. Successful runs log at info, failed runs at warn.
func (al *AuditLogger) LogRun(r *RunRecord) {
	if al == nil || !al.enabled || r == nil {
		return
	}

	var attrs []slog.Attr
	if al.includePII {
		attrs = r.LogAuditAttrs()
	} else {
		attrs = r.LogAttrs()
	}

	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	if r.Success {
		al.logger.Info("report_run", args...)
	} else {
		al.logger.Warn("report_failed", args...)
	}
}
