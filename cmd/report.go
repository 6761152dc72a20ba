package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/teemow/weeklycal/internal/appointment"
	"github.com/teemow/weeklycal/internal/archive"
	"github.com/teemow/weeklycal/internal/instrumentation"
	"github.com/teemow/weeklycal/internal/logging"
	"github.com/teemow/weeklycal/internal/report"
	"github.com/teemow/weeklycal/internal/spreadsheet"
)

type reportFlags struct {
	configFlags

	selfName       string
	ignore         []string
	excludedDomain string
	start          string
	end            string
	days           int
	contacts       string
	output         string
	sheetPrefix    string
	strict         bool
	dryRun         bool
	jsonOutput     bool
}

func newReportCmd() *cobra.Command {
	f := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the weekly meeting report sheet",
		Long: `Read every account's Calendar.xml from the archive, keep the meetings whose
start date lies inside the reporting window, merge duplicates and write them
to the sheet raw_<end date> of the output workbook. Other sheets in the
workbook are left untouched; a sheet with the same name is replaced.

The window defaults to the last 7 days ending today. Use --start and --end
(YYYY-MM-DD) to pick another range; if only one is given the window extends
--days in the open direction.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, f)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&f.selfName, "name", "", "Name shown instead of your email address. Can also use YOUR_NAME env var.")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "Title phrases whose meetings are dropped (comma-separated). Can also use IGNORE_PHRASES env var.")
	cmd.Flags().StringVar(&f.excludedDomain, "exclude-domain", "", "Participants from this email domain are left out. Can also use EXCLUDED_DOMAIN env var.")
	cmd.Flags().StringVar(&f.start, "start", "", "First day of the window (YYYY-MM-DD). Can also use START_DATE env var.")
	cmd.Flags().StringVar(&f.end, "end", "", "Last day of the window (YYYY-MM-DD). Can also use END_DATE env var.")
	cmd.Flags().IntVar(&f.days, "days", 0, "Window length in days when a bound is missing (default 7). Can also use REPORT_DAYS env var.")
	cmd.Flags().StringVar(&f.contacts, "contacts", "", "Contacts workbook (default: Contacts.xlsx). Can also use CONTACTS_FILE env var.")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output workbook (default: Calendar.xlsx). Can also use OUTPUT_FILE env var.")
	cmd.Flags().StringVar(&f.sheetPrefix, "sheet-prefix", "", "Prefix of the report sheet name (default: raw_). Can also use SHEET_PREFIX env var.")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail without writing when any account cannot be read. Can also use STRICT env var.")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print the report instead of writing the workbook")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Print the per-account summary as JSON")

	return cmd
}

func runReport(cmd *cobra.Command, f *reportFlags) error {
	cfg, err := f.load(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.SelfName = f.selfName
	}
	if flags.Changed("ignore") {
		cfg.IgnorePhrases = f.ignore
	}
	if flags.Changed("exclude-domain") {
		cfg.ExcludedDomain = f.excludedDomain
	}
	if flags.Changed("start") {
		cfg.StartDate = f.start
	}
	if flags.Changed("end") {
		cfg.EndDate = f.end
	}
	if flags.Changed("days") {
		cfg.ReportDays = f.days
	}
	if flags.Changed("contacts") {
		cfg.ContactsFile = f.contacts
	}
	if flags.Changed("output") {
		cfg.OutputFile = f.output
	}
	if flags.Changed("sheet-prefix") {
		cfg.SheetPrefix = f.sheetPrefix
	}
	if flags.Changed("strict") {
		cfg.Strict = f.strict
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	if err := instrConfig.Validate(); err != nil {
		return fmt.Errorf("invalid instrumentation configuration: %w", err)
	}

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	rep, runErr := report.Run(ctx, report.Options{
		Config:  cfg,
		DryRun:  f.dryRun,
		Logger:  logger,
		Metrics: provider.Metrics(),
		Audit:   instrumentation.NewAuditLoggerWithConfig(logger.With("component", "audit"), instrConfig.AuditLogging),
	})

	if err := provider.Push(context.Background()); err != nil {
		logger.Warn("failed to push metrics", logging.Err(err))
	}

	out := cmd.OutOrStdout()
	if f.jsonOutput && rep != nil {
		fmt.Fprintln(out, archive.FormatResults(rep.Accounts))
	}
	if runErr != nil {
		return runErr
	}

	if rep.Written {
		fmt.Fprintf(out, "Data successfully written to sheet '%s' in '%s'.\n", rep.Sheet, rep.File)
		return nil
	}

	if !f.jsonOutput {
		return printEvents(out, rep.Sheet, rep.Events)
	}
	return nil
}

// printEvents renders events as an aligned table.
func printEvents(w io.Writer, sheet string, events []appointment.Canonical) error {
	fmt.Fprintf(w, "Sheet %s (%d events, not written)\n\n", sheet, len(events))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(spreadsheet.Columns, "\t"))
	for _, e := range events {
		row := spreadsheet.Strings(e)
		for i, cell := range row {
			row[i] = singleLine(cell)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// singleLine collapses whitespace so a cell fits on one table line.
func singleLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	const maxWidth = 60
	if r := []rune(s); len(r) > maxWidth {
		return string(r[:maxWidth-3]) + "..."
	}
	return s
}
