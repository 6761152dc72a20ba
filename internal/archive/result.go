package archive

import (
	"encoding/json"
	"fmt"
)

// Account statuses reported by a Collector.
const (
	StatusSuccess  = "success"
	StatusSkipped  = "skipped"
	StatusExcluded = "excluded"
	StatusError    = "error"
)

// AccountResult is the outcome of reading one account folder.
type AccountResult struct {
	Account string     `json:"account"`
	Status  string     `json:"status"`
	File    string     `json:"file,omitempty"`
	Stats   ParseStats `json:"stats"`
	Message string     `json:"message,omitempty"`
	Error   string     `json:"error,omitempty"`

	err error
}

// Err returns the error that failed the account, if any.
func (r AccountResult) Err() error {
	return r.err
}

// Summary aggregates the per-account results of a collection.
type Summary struct {
	Total    int             `json:"total"`
	Success  int             `json:"success"`
	Skipped  int             `json:"skipped"`
	Excluded int             `json:"excluded"`
	Failed   int             `json:"failed"`
	Events   ParseStats      `json:"events"`
	Accounts []AccountResult `json:"accounts"`
}

// Summarize counts results by status.
func Summarize(results []AccountResult) Summary {
	s := Summary{
		Total:    len(results),
		Accounts: results,
	}
	for _, r := range results {
		switch r.Status {
		case StatusSuccess:
			s.Success++
		case StatusSkipped:
			s.Skipped++
		case StatusExcluded:
			s.Excluded++
		default:
			s.Failed++
		}
		s.Events.Add(r.Stats)
	}
	return s
}

// FormatResults renders the per-account results as indented JSON.
func FormatResults(results []AccountResult) string {
	jsonBytes, _ := json.MarshalIndent(Summarize(results), "", "  ")
	return string(jsonBytes)
}

// NewSuccessResult creates a result for an account that parsed cleanly.
func NewSuccessResult(account, file string, stats ParseStats) AccountResult {
	return AccountResult{
		Account: account,
		Status:  StatusSuccess,
		File:    file,
		Stats:   stats,
	}
}

// NewSkippedResult creates a result for an account without calendar data.
func NewSkippedResult(account, file string) AccountResult {
	return AccountResult{
		Account: account,
		Status:  StatusSkipped,
		File:    file,
		Message: "no calendar data for this account",
	}
}

// NewExcludedResult creates a result for an account excluded by configuration.
func NewExcludedResult(account string) AccountResult {
	return AccountResult{
		Account: account,
		Status:  StatusExcluded,
		Message: "account excluded by configuration",
	}
}

// NewErrorResult creates a result for an account whose export failed to parse.
func NewErrorResult(account, file string, err error) AccountResult {
	return AccountResult{
		Account: account,
		Status:  StatusError,
		File:    file,
		Error:   err.Error(),
		err:     err,
	}
}

// FirstError returns the first account failure in results.
func FirstError(results []AccountResult) error {
	for _, r := range results {
		if r.Status == StatusError {
			if r.err != nil {
				return fmt.Errorf("account %s: %w", r.Account, r.err)
			}
			return fmt.Errorf("account %s: %s", r.Account, r.Error)
		}
	}
	return nil
}
