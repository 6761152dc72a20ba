package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the weeklycal application
var rootCmd = &cobra.Command{
	Use:   "weeklycal",
	Short: "Builds a weekly meeting report from an Outlook for Mac archive",
	Long: `weeklycal reads the calendar exports of every account in an Outlook for Mac
archive, merges meetings seen by several accounts into one row, drops
superseded cancellations and writes the week's meetings into a sheet of an
.xlsx workbook.

Without a subcommand, the report command runs.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "weeklycal version %s\n" .Version}}`)
	rootCmd.SetArgs(withDefaultCommand(os.Args[1:]))

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// withDefaultCommand runs the report command when no subcommand is given,
// including when only report flags are passed.
func withDefaultCommand(args []string) []string {
	if len(args) == 0 {
		return []string{"report"}
	}
	first := args[0]
	switch first {
	case "-h", "--help", "-v", "--version":
		return args
	}
	if strings.HasPrefix(first, "-") {
		return append([]string{"report"}, args...)
	}
	return args
}

func init() {
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newAccountsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
