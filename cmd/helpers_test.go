package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/teemow/weeklycal/internal/config"
)

const self = "me@example.com"

var envKeys = []string{
	config.EnvConfigFile, config.EnvSelfEmail, config.EnvSelfName,
	config.EnvIgnorePhrases, config.EnvExcludedAccounts, config.EnvExcludedDomain,
	config.EnvStartDate, config.EnvEndDate, config.EnvReportDays,
	config.EnvArchivePath, config.EnvAccountsDir, config.EnvContactsFile,
	config.EnvOutputFile, config.EnvSheetPrefix, config.EnvStrict,
	config.EnvLogLevel, config.EnvLogFormat,
	"PUSHGATEWAY_URL", "METRICS_EXPORTER", "TRACING_EXPORTER",
	"INSTRUMENTATION_ENABLED", "AUDIT_LOGGING_ENABLED",
}

// isolate blanks every variable the commands read and returns the path of
// an empty env file, so neither the host environment nor a stray .env leaks
// into a test.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	p := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(p, nil, 0o600))
	return p
}

func appt(title, start, modified string) string {
	return "<appointment>" +
		"<OPFCalendarEventCopySummary>" + title + "</OPFCalendarEventCopySummary>" +
		"<OPFCalendarEventCopyStartTime>" + start + "</OPFCalendarEventCopyStartTime>" +
		"<OPFCalendarEventCopyModDate>" + modified + "</OPFCalendarEventCopyModDate>" +
		"</appointment>"
}

func writeExport(t *testing.T, root, account string, appointments ...string) {
	t.Helper()
	dir := filepath.Join(root, "Accounts", self, account)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	doc := "<appointments>" + strings.Join(appointments, "") + "</appointments>"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Calendar.xml"), []byte(doc), 0o600))
}

// testArchive builds an extracted archive with two accounts sharing a
// meeting and a folder without calendar data.
func testArchive(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "archive")
	writeExport(t, root, "Alice",
		appt("Team Sync", "2024-01-08T10:00:00", "2024-01-02T09:00:00"),
		appt("Budget review", "2024-01-11T14:00:00", "2024-01-02T09:00:00"),
	)
	writeExport(t, root, "Calendar",
		appt("Team Sync", "2024-01-08T10:00:00", "2024-01-03T09:00:00"),
	)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Accounts", self, "Empty"), 0o755))
	return root
}

func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
