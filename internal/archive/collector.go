package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/teemow/weeklycal/internal/appointment"
	"github.com/teemow/weeklycal/internal/logging"
)

// DefaultCalendarFile is the per-account export file name.
const DefaultCalendarFile = "Calendar.xml"

// CollectorConfig configures a Collector.
type CollectorConfig struct {
	// Root is the directory holding one folder per account ("." for the
	// file system root).
	Root string

	// CalendarFile is the export file name inside each account folder.
	CalendarFile string

	// ExcludedAccounts are folder names that are never read.
	ExcludedAccounts []string

	Options ParseOptions
	Logger  logging.Logger
}

// Collector gathers appointments from every account folder of an archive.
type Collector struct {
	fsys     fs.FS
	root     string
	file     string
	opts     ParseOptions
	excluded map[string]struct{}
	logger   logging.Logger
}

// Collection is the flattened pool of one run plus per-account outcomes.
type Collection struct {
	Appointments []appointment.Raw
	Accounts     []AccountResult
}

// NewCollector creates a Collector over fsys.
func NewCollector(fsys fs.FS, cfg CollectorConfig) *Collector {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	file := cfg.CalendarFile
	if file == "" {
		file = DefaultCalendarFile
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	excluded := make(map[string]struct{}, len(cfg.ExcludedAccounts))
	for _, a := range cfg.ExcludedAccounts {
		excluded[a] = struct{}{}
	}

	return &Collector{
		fsys:     fsys,
		root:     root,
		file:     file,
		opts:     cfg.Options,
		excluded: excluded,
		logger:   logger,
	}
}

// Accounts lists the account folders below the root in lexical order.
func (c *Collector) Accounts() ([]string, error) {
	entries, err := fs.ReadDir(c.fsys, c.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts in %s: %w", c.root, err)
	}

	var accounts []string
	for _, e := range entries {
		if e.IsDir() {
			accounts = append(accounts, e.Name())
		}
	}
	return accounts, nil
}

// Excluded reports whether an account folder is excluded by configuration.
func (c *Collector) Excluded(account string) bool {
	_, ok := c.excluded[account]
	return ok
}

// CalendarPath returns the export file path of an account folder.
func (c *Collector) CalendarPath(account string) string {
	return CalendarPath(c.root, account, c.file)
}

// Collect reads every non-excluded account. A failing account is recorded in
// the collection and does not stop the others; only an unreadable root or a
// cancelled context returns an error.
func (c *Collector) Collect(ctx context.Context) (*Collection, error) {
	accounts, err := c.Accounts()
	if err != nil {
		return nil, err
	}

	out := &Collection{}
	for _, account := range accounts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if c.Excluded(account) {
			c.logger.Debug("skipping excluded account", logging.Account(account), logging.Status(StatusExcluded))
			out.Accounts = append(out.Accounts, NewExcludedResult(account))
			continue
		}

		file := c.CalendarPath(account)
		raws, stats, err := ParseFile(c.fsys, file, account, c.opts)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			c.logger.Info("no calendar data for this account", logging.Account(account), logging.File(file), logging.Status(StatusSkipped))
			out.Accounts = append(out.Accounts, NewSkippedResult(account, file))
		case err != nil:
			c.logger.Error("failed to parse calendar export", logging.Account(account), logging.File(file), logging.Status(StatusError), logging.Err(err))
			out.Accounts = append(out.Accounts, NewErrorResult(account, file, err))
		default:
			c.logger.Info("parsed calendar export",
				logging.Account(account),
				logging.Status(StatusSuccess),
				"kept", stats.Kept,
				"missing_fields", stats.MissingFields,
				"reserved", stats.Reserved,
				"ignored", stats.Ignored,
			)
			out.Accounts = append(out.Accounts, NewSuccessResult(account, file, stats))
			out.Appointments = append(out.Appointments, raws...)
		}
	}

	return out, nil
}
