package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/teemow/weeklycal/internal/archive"
	"github.com/teemow/weeklycal/internal/config"
)

// statusReady marks an account folder whose calendar export will be read.
const statusReady = "ready"

// accountInfo describes how a report run would treat one account folder.
type accountInfo struct {
	Folder string
	Source string
	Status string
}

func newAccountsCmd() *cobra.Command {
	f := &configFlags{}

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the account folders in the archive",
		Long: `List every account folder below the archive's accounts directory together
with the member name its meetings are reported under and whether it will be
read, skipped for lack of calendar data, or excluded by configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.SelfEmail) == "" && strings.TrimSpace(cfg.AccountsDir) == "" {
				return config.ErrMissingSelfEmail
			}
			cfg.Normalize()

			fsys, closer, err := archive.Open(cfg.ArchivePath)
			if err != nil {
				return err
			}
			defer closer.Close()

			infos, err := inspectAccounts(fsys, cfg)
			if err != nil {
				return err
			}
			return printAccounts(cmd.OutOrStdout(), infos)
		},
	}

	f.register(cmd)
	return cmd
}

func inspectAccounts(fsys fs.FS, cfg config.Config) ([]accountInfo, error) {
	opts := archive.ParseOptions{SelfAccount: cfg.SelfEmail}
	collector := archive.NewCollector(fsys, archive.CollectorConfig{
		Root:             cfg.AccountsDir,
		ExcludedAccounts: cfg.ExcludedAccounts,
		Options:          opts,
	})

	folders, err := collector.Accounts()
	if err != nil {
		return nil, err
	}

	infos := make([]accountInfo, 0, len(folders))
	for _, folder := range folders {
		info := accountInfo{Folder: folder, Source: opts.SourceAccount(folder)}
		switch _, statErr := fs.Stat(fsys, collector.CalendarPath(folder)); {
		case collector.Excluded(folder):
			info.Status = archive.StatusExcluded
		case errors.Is(statErr, fs.ErrNotExist):
			info.Status = archive.StatusSkipped
		case statErr != nil:
			info.Status = archive.StatusError
		default:
			info.Status = statusReady
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func printAccounts(w io.Writer, infos []accountInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FOLDER\tMEMBER\tSTATUS")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Folder, info.Source, info.Status)
	}
	return tw.Flush()
}
