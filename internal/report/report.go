package report

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/teemow/weeklycal/internal/appointment"
	"github.com/teemow/weeklycal/internal/archive"
	"github.com/teemow/weeklycal/internal/config"
	"github.com/teemow/weeklycal/internal/contacts"
	"github.com/teemow/weeklycal/internal/dedup"
	"github.com/teemow/weeklycal/internal/instrumentation"
	"github.com/teemow/weeklycal/internal/logging"
	"github.com/teemow/weeklycal/internal/spreadsheet"
)

// ErrAccountsFailed is returned in strict mode when any account could not be read.
var ErrAccountsFailed = errors.New("one or more accounts could not be read")

// Options configures a run. Config must already be normalized and validated.
type Options struct {
	Config config.Config

	// DryRun computes the events without writing the workbook.
	DryRun bool

	// RunID identifies the run in logs, spans and the audit line. A random
	// UUID is used when empty.
	RunID string

	Logger  *slog.Logger
	Metrics *instrumentation.Metrics
	Audit   *instrumentation.AuditLogger
}

// Report is the outcome of a run.
type Report struct {
	RunID  string
	Window appointment.Window
	Sheet  string
	File   string

	Events   []appointment.Canonical
	Accounts []archive.AccountResult

	Contacts int
	Raw      int
	InWindow int
	Dedup    dedup.Stats

	// Written is false for dry runs.
	Written bool
}

// Summary aggregates the per-account results.
func (r *Report) Summary() archive.Summary {
	return archive.Summarize(r.Accounts)
}

type runner struct {
	opts    Options
	cfg     config.Config
	logger  *slog.Logger
	metrics *instrumentation.Metrics
}

// Run executes the pipeline once.
func Run(ctx context.Context, opts Options) (rep *Report, err error) {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithOperation(logging.WithRunID(logger, runID), "report")

	r := &runner{
		opts:    opts,
		cfg:     opts.Config,
		logger:  logger,
		metrics: opts.Metrics,
	}

	rep = &Report{RunID: runID, File: r.cfg.OutputFile}
	record := instrumentation.NewRunRecord(runID).WithUser(r.cfg.SelfEmail)

	rep.Window, err = r.cfg.Window()
	if err != nil {
		return nil, err
	}
	rep.Sheet, err = r.cfg.SheetName()
	if err != nil {
		return nil, err
	}

	ctx, span := instrumentation.StartSpan(ctx, "report.run",
		instrumentation.NewSpanAttributeBuilder().
			WithRunID(runID).
			WithWindow(rep.Window.String()).
			WithSheet(rep.Sheet).
			WithDryRun(opts.DryRun).
			Build()...)

	defer func() {
		summary := rep.Summary()
		record.WithTarget(rep.Window.String(), rep.Sheet, rep.File, opts.DryRun).
			WithCounts(summary.Total, summary.Failed, rep.Raw, len(rep.Events)).
			WithSpanContext(ctx).
			Complete(err)

		status := instrumentation.StatusSuccess
		if err != nil {
			status = instrumentation.StatusError
			instrumentation.SetSpanError(span, err)
		} else {
			instrumentation.SetSpanSuccess(span)
		}
		r.metrics.RecordRun(ctx, status, record.Duration)
		opts.Audit.LogRun(record)
		span.End()
	}()

	logger.Info("starting report",
		"window", rep.Window.String(),
		logging.Sheet(rep.Sheet),
		logging.UserHash(r.cfg.SelfEmail),
		logging.Domain(r.cfg.SelfEmail),
		"dry_run", opts.DryRun,
	)

	var dir *contacts.Directory
	if err = r.stage(ctx, instrumentation.StageContacts, func(ctx context.Context, span trace.Span) error {
		d, err := r.loadContacts()
		if err != nil {
			return err
		}
		dir = d
		rep.Contacts = dir.Len()
		instrumentation.SetSpanCount(span, rep.Contacts)
		return nil
	}); err != nil {
		return rep, err
	}

	var pool []appointment.Raw
	if err = r.stage(ctx, instrumentation.StageCollect, func(ctx context.Context, span trace.Span) error {
		coll, err := r.collect(ctx, span)
		if coll != nil {
			rep.Accounts = coll.Accounts
			pool = coll.Appointments
		}
		if err != nil {
			return err
		}
		rep.Raw = len(pool)
		r.metrics.RecordEvents(ctx, instrumentation.EventsRaw, rep.Raw)
		instrumentation.SetSpanCount(span, rep.Raw)
		return nil
	}); err != nil {
		return rep, err
	}

	if err = r.stage(ctx, instrumentation.StageWindow, func(ctx context.Context, span trace.Span) error {
		pool = rep.Window.Restrict(pool)
		rep.InWindow = len(pool)
		r.metrics.RecordEvents(ctx, instrumentation.EventsInWindow, rep.InWindow)
		instrumentation.SetSpanCount(span, rep.InWindow)
		return nil
	}); err != nil {
		return rep, err
	}

	if err = r.stage(ctx, instrumentation.StageDedup, func(ctx context.Context, span trace.Span) error {
		rep.Events, rep.Dedup = dedup.Deduplicate(pool, r.dedupOptions(dir))
		r.metrics.RecordEvents(ctx, instrumentation.EventsCombined, rep.Dedup.Combined)
		r.metrics.RecordEvents(ctx, instrumentation.EventsOutput, rep.Dedup.Output)
		instrumentation.SetSpanCount(span, rep.Dedup.Output)
		return nil
	}); err != nil {
		return rep, err
	}

	if opts.DryRun {
		logger.Info("dry run, workbook not written", logging.File(rep.File), "events", len(rep.Events))
		return rep, nil
	}

	if err = r.stage(ctx, instrumentation.StageWrite, func(ctx context.Context, span trace.Span) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := spreadsheet.WriteSheet(rep.File, rep.Sheet, rep.Events); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		instrumentation.SetSpanCount(span, len(rep.Events))
		return nil
	}); err != nil {
		return rep, err
	}
	rep.Written = true

	logger.Info("report written",
		logging.File(rep.File),
		logging.Sheet(rep.Sheet),
		"events", len(rep.Events),
		"raw", rep.Raw,
		"in_window", rep.InWindow,
	)

	return rep, nil
}

// stage runs fn inside a "report.<name>" span and records its duration.
func (r *runner) stage(ctx context.Context, name string, fn func(context.Context, trace.Span) error) error {
	start := time.Now()
	ctx, span := instrumentation.StartStageSpan(ctx, name)
	defer span.End()

	err := fn(ctx, span)
	duration := time.Since(start)
	r.metrics.RecordStage(ctx, name, duration)

	if err != nil {
		instrumentation.SetSpanError(span, err)
		r.logger.Error("stage failed", logging.Stage(name), logging.Err(err))
		return err
	}

	instrumentation.SetSpanSuccess(span)
	r.logger.Debug("stage finished", logging.Stage(name), slog.Duration(logging.KeyDuration, duration))
	return nil
}

func (r *runner) loadContacts() (*contacts.Directory, error) {
	if r.cfg.ContactsFile == "" {
		return contacts.NewDirectory(), nil
	}

	dir, err := contacts.Load(r.cfg.ContactsFile)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("contacts file not found, participants are shown as addresses", logging.File(r.cfg.ContactsFile))
		return contacts.NewDirectory(), nil
	}
	if err != nil {
		return nil, err
	}

	r.logger.Info("loaded contacts", logging.File(r.cfg.ContactsFile), "contacts", dir.Len())
	return dir, nil
}

func (r *runner) collect(ctx context.Context, span trace.Span) (*archive.Collection, error) {
	fsys, closer, err := archive.Open(r.cfg.ArchivePath)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	collector := archive.NewCollector(fsys, archive.CollectorConfig{
		Root:             r.cfg.AccountsDir,
		ExcludedAccounts: r.cfg.ExcludedAccounts,
		Options: archive.ParseOptions{
			IgnorePhrases: r.cfg.IgnorePhrases,
			SelfAccount:   r.cfg.SelfEmail,
		},
		Logger: logging.NewSlogAdapter(r.logger),
	})

	coll, err := collector.Collect(ctx)
	if err != nil {
		return nil, err
	}

	for _, res := range coll.Accounts {
		r.metrics.RecordAccount(ctx, res.Status, res.Account)
		r.metrics.RecordAppointments(ctx, instrumentation.AppointmentKept, res.Stats.Kept)
		r.metrics.RecordAppointments(ctx, instrumentation.AppointmentMissingFields, res.Stats.MissingFields)
		r.metrics.RecordAppointments(ctx, instrumentation.AppointmentReserved, res.Stats.Reserved)
		r.metrics.RecordAppointments(ctx, instrumentation.AppointmentIgnored, res.Stats.Ignored)
		instrumentation.AddSpanEvent(span, "account",
			instrumentation.NewSpanAttributeBuilder().WithAccount(res.Account).Build()...)
	}

	if r.cfg.Strict {
		if err := archive.FirstError(coll.Accounts); err != nil {
			return coll, fmt.Errorf("%w: %w", ErrAccountsFailed, err)
		}
	}

	return coll, nil
}

func (r *runner) dedupOptions(dir *contacts.Directory) dedup.Options {
	label := r.cfg.SelfLabel()
	return dedup.Options{
		SelfEmail: r.cfg.SelfEmail,
		SelfLabel: label,
		Formatter: appointment.ParticipantFormatter{
			Directory:      dir,
			SelfEmail:      r.cfg.SelfEmail,
			SelfLabel:      label,
			ExcludedDomain: r.cfg.ExcludedDomain,
		},
	}
}
