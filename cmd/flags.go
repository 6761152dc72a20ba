package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teemow/weeklycal/internal/config"
)

// configFlags are the flags every command uses to locate and override its
// configuration.
type configFlags struct {
	configFile  string
	envFiles    []string
	selfEmail   string
	archivePath string
	accountsDir string
	excluded    []string
	logLevel    string
	logFormat   string
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configFile, "config", "", "YAML configuration file. Can also use "+config.EnvConfigFile+" env var.")
	cmd.Flags().StringSliceVar(&f.envFiles, "env-file", nil, "Environment files to load (default: ./.env if present). Never overrides variables already set.")
	cmd.Flags().StringVar(&f.selfEmail, "email", "", "Your email address; selects the archive's account tree. Can also use "+config.EnvSelfEmail+" env var.")
	cmd.Flags().StringVar(&f.archivePath, "archive", "", "Extracted archive directory or .olm file. Can also use "+config.EnvArchivePath+" env var.")
	cmd.Flags().StringVar(&f.accountsDir, "accounts-dir", "", "Account folder root inside the archive (default: Accounts/<email>). Can also use "+config.EnvAccountsDir+" env var.")
	cmd.Flags().StringSliceVar(&f.excluded, "exclude-account", nil, "Account folders to skip (comma-separated). Can also use "+config.EnvExcludedAccounts+" env var.")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error. Can also use "+config.EnvLogLevel+" env var.")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format: text or json. Can also use "+config.EnvLogFormat+" env var.")
}

// load reads the configuration and applies every flag the user set.
func (f *configFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: f.configFile,
		EnvFiles:   f.envFiles,
	})
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("email") {
		cfg.SelfEmail = f.selfEmail
	}
	if flags.Changed("archive") {
		cfg.ArchivePath = f.archivePath
	}
	if flags.Changed("accounts-dir") {
		cfg.AccountsDir = f.accountsDir
	}
	if flags.Changed("exclude-account") {
		cfg.ExcludedAccounts = f.excluded
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}

	return cfg, nil
}
