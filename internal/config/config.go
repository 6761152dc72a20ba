package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/teemow/weeklycal/internal/appointment"
	"github.com/teemow/weeklycal/internal/spreadsheet"
)

// Defaults.
const (
	DefaultArchivePath  = "data/Outlook for Mac Archive"
	DefaultContactsFile = "Contacts.xlsx"
	DefaultOutputFile   = "Calendar.xlsx"
	DefaultReportDays   = 7
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"

	// DateLayout is the format of START_DATE and END_DATE.
	DateLayout = time.DateOnly
)

// Environment variables.
const (
	EnvConfigFile       = "WEEKLYCAL_CONFIG"
	EnvSelfEmail        = "YOUR_EMAIL"
	EnvSelfName         = "YOUR_NAME"
	EnvIgnorePhrases    = "IGNORE_PHRASES"
	EnvExcludedAccounts = "EXCLUDED_ACCOUNTS"
	EnvExcludedDomain   = "EXCLUDED_DOMAIN"
	EnvStartDate        = "START_DATE"
	EnvEndDate          = "END_DATE"
	EnvReportDays       = "REPORT_DAYS"
	EnvArchivePath      = "ARCHIVE_PATH"
	EnvAccountsDir      = "ACCOUNTS_DIR"
	EnvContactsFile     = "CONTACTS_FILE"
	EnvOutputFile       = "OUTPUT_FILE"
	EnvSheetPrefix      = "SHEET_PREFIX"
	EnvStrict           = "STRICT"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
)

var (
	// ErrMissingSelfEmail is returned when no operator email is configured.
	ErrMissingSelfEmail = errors.New("operator email is required (set " + EnvSelfEmail + ")")

	// ErrMissingIgnorePhrases is returned when the excluded phrase list is empty.
	ErrMissingIgnorePhrases = errors.New("excluded title phrases are required (set " + EnvIgnorePhrases + ")")
)

// Config is the complete configuration of one report run.
type Config struct {
	// SelfEmail identifies the operator. Its account folder is read from
	// AccountsDir and the generic "Calendar" folder is attributed to it.
	SelfEmail string `yaml:"self_email"`

	// SelfName replaces SelfEmail in member and participant lists when set.
	SelfName string `yaml:"self_name"`

	IgnorePhrases    []string `yaml:"ignore_phrases"`
	ExcludedAccounts []string `yaml:"excluded_accounts"`
	ExcludedDomain   string   `yaml:"excluded_domain"`

	// StartDate and EndDate are YYYY-MM-DD. See Window for how blanks are filled.
	StartDate  string `yaml:"start_date"`
	EndDate    string `yaml:"end_date"`
	ReportDays int    `yaml:"report_days"`

	// ArchivePath is an extracted archive directory or an .olm file.
	ArchivePath string `yaml:"archive_path"`

	// AccountsDir is the slash-separated path inside the archive that holds
	// one folder per account (default: Accounts/<self_email>).
	AccountsDir string `yaml:"accounts_dir"`

	ContactsFile string `yaml:"contacts_file"`
	OutputFile   string `yaml:"output_file"`
	SheetPrefix  string `yaml:"sheet_prefix"`

	// Strict fails the run when any account could not be read.
	Strict bool `yaml:"strict"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Today anchors the default window. Zero means the current date.
	Today time.Time `yaml:"-"`
}

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// ConfigFile is a YAML file. Empty falls back to WEEKLYCAL_CONFIG; if both
	// are empty no file is read.
	ConfigFile string

	// EnvFiles are loaded with godotenv. When empty, ./.env is loaded if it exists.
	EnvFiles []string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ReportDays:   DefaultReportDays,
		ArchivePath:  DefaultArchivePath,
		ContactsFile: DefaultContactsFile,
		OutputFile:   DefaultOutputFile,
		SheetPrefix:  spreadsheet.DefaultSheetPrefix,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
	}
}

// Load builds a configuration from defaults, the YAML file, .env files and
// the environment. The result is neither normalized nor validated.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	file := opts.ConfigFile
	if file == "" {
		file = os.Getenv(EnvConfigFile)
	}
	if file != "" {
		if err := cfg.readFile(file); err != nil {
			return Config{}, err
		}
	}

	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return Config{}, err
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) readFile(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", name, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", name, err)
	}

	return nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}

	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env files %s: %w", strings.Join(files, ", "), err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.SelfEmail = getEnvOrDefault(EnvSelfEmail, c.SelfEmail)
	c.SelfName = getEnvOrDefault(EnvSelfName, c.SelfName)
	c.IgnorePhrases = getEnvListOrDefault(EnvIgnorePhrases, c.IgnorePhrases)
	c.ExcludedAccounts = getEnvListOrDefault(EnvExcludedAccounts, c.ExcludedAccounts)
	c.ExcludedDomain = getEnvOrDefault(EnvExcludedDomain, c.ExcludedDomain)
	c.StartDate = getEnvOrDefault(EnvStartDate, c.StartDate)
	c.EndDate = getEnvOrDefault(EnvEndDate, c.EndDate)
	c.ArchivePath = getEnvOrDefault(EnvArchivePath, c.ArchivePath)
	c.AccountsDir = getEnvOrDefault(EnvAccountsDir, c.AccountsDir)
	c.ContactsFile = getEnvOrDefault(EnvContactsFile, c.ContactsFile)
	c.OutputFile = getEnvOrDefault(EnvOutputFile, c.OutputFile)
	c.SheetPrefix = getEnvOrDefault(EnvSheetPrefix, c.SheetPrefix)
	c.LogLevel = getEnvOrDefault(EnvLogLevel, c.LogLevel)
	c.LogFormat = getEnvOrDefault(EnvLogFormat, c.LogFormat)

	days, err := getEnvIntOrDefault(EnvReportDays, c.ReportDays)
	if err != nil {
		return err
	}
	c.ReportDays = days

	strict, err := getEnvBoolOrDefault(EnvStrict, c.Strict)
	if err != nil {
		return err
	}
	c.Strict = strict

	return nil
}

// Normalize trims values, lower-cases identifiers and fills derived defaults.
func (c *Config) Normalize() {
	rawEmail := strings.TrimSpace(c.SelfEmail)
	c.SelfEmail = strings.ToLower(rawEmail)
	c.SelfName = strings.TrimSpace(c.SelfName)
	c.ExcludedDomain = strings.ToLower(strings.TrimSpace(c.ExcludedDomain))
	c.StartDate = strings.TrimSpace(c.StartDate)
	c.EndDate = strings.TrimSpace(c.EndDate)

	phrases := make([]string, 0, len(c.IgnorePhrases))
	for _, p := range c.IgnorePhrases {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			phrases = append(phrases, p)
		}
	}
	c.IgnorePhrases = phrases

	accounts := make([]string, 0, len(c.ExcludedAccounts))
	for _, a := range c.ExcludedAccounts {
		if a = strings.TrimSpace(a); a != "" {
			accounts = append(accounts, a)
		}
	}
	c.ExcludedAccounts = accounts

	if c.ReportDays <= 0 {
		c.ReportDays = DefaultReportDays
	}
	// Account folders keep the mailbox's spelling of the address.
	if strings.TrimSpace(c.AccountsDir) == "" && rawEmail != "" {
		c.AccountsDir = path.Join("Accounts", rawEmail)
	}
	c.AccountsDir = strings.Trim(path.Clean("/"+strings.TrimSpace(c.AccountsDir)), "/")
	if c.AccountsDir == "" {
		c.AccountsDir = "."
	}
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.SelfEmail == "" {
		return ErrMissingSelfEmail
	}
	if len(c.IgnorePhrases) == 0 {
		return ErrMissingIgnorePhrases
	}
	if c.ArchivePath == "" {
		return fmt.Errorf("archive path is required (set %s)", EnvArchivePath)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file is required (set %s)", EnvOutputFile)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q, must be one of: text, json", c.LogFormat)
	}

	if _, err := c.Window(); err != nil {
		return err
	}

	sheet, err := c.SheetName()
	if err != nil {
		return err
	}
	if len([]rune(sheet)) > spreadsheet.MaxSheetNameLength {
		return fmt.Errorf("sheet name %q exceeds %d characters", sheet, spreadsheet.MaxSheetNameLength)
	}

	return nil
}

// Window resolves the reporting window. With neither date set it ends today;
// a single date is extended by ReportDays in the open direction.
func (c *Config) Window() (appointment.Window, error) {
	days := c.ReportDays
	if days <= 0 {
		days = DefaultReportDays
	}

	start, err := parseDate(EnvStartDate, c.StartDate)
	if err != nil {
		return appointment.Window{}, err
	}
	end, err := parseDate(EnvEndDate, c.EndDate)
	if err != nil {
		return appointment.Window{}, err
	}

	switch {
	case start.IsZero() && end.IsZero():
		end = c.today()
		start = end.AddDate(0, 0, -days)
	case end.IsZero():
		end = start.AddDate(0, 0, days)
	case start.IsZero():
		start = end.AddDate(0, 0, -days)
	}

	return appointment.NewWindow(start, end)
}

// SheetName is the report sheet for the resolved window.
func (c *Config) SheetName() (string, error) {
	w, err := c.Window()
	if err != nil {
		return "", err
	}
	return spreadsheet.SheetName(c.SheetPrefix, w.End), nil
}

// SelfLabel is the display name used in place of SelfEmail.
func (c *Config) SelfLabel() string {
	if c.SelfName != "" {
		return c.SelfName
	}
	return c.SelfEmail
}

func (c *Config) today() time.Time {
	now := c.Today
	if now.IsZero() {
		now = time.Now()
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q, expected YYYY-MM-DD: %w", field, value, err)
	}
	return t, nil
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvListOrDefault splits a comma-separated variable, trimming entries.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return splitList(value)
}

// getEnvIntOrDefault returns the integer value of an environment variable or a default value.
func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

// getEnvBoolOrDefault returns the boolean value of an environment variable or a default value.
func getEnvBoolOrDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

// splitList splits a comma-separated string, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
