package spreadsheet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/teemow/weeklycal/internal/appointment"
)

const (
	// MaxSheetNameLength is the longest sheet name a workbook accepts.
	MaxSheetNameLength = 31

	// DefaultSheetPrefix is prepended to the report end date.
	DefaultSheetPrefix = "raw_"

	// shortDateFormat is the built-in short date number format.
	shortDateFormat = 14

	defaultSheet = "Sheet1"
	scratchSheet = "weeklycal~tmp"
)

// Columns are the report headers, in order.
var Columns = []string{"Date", "Title", "Member", "Location", "Participants", "Topic", "Details"}

// SheetName returns prefix followed by end as YYYYMMDD.
func SheetName(prefix string, end time.Time) string {
	return prefix + end.Format("20060102")
}

// Record returns the cell values of one report row. Blank text fields are
// nil so they produce empty cells.
func Record(e appointment.Canonical) []interface{} {
	return []interface{}{
		e.Date,
		optional(e.Title),
		optional(e.MemberList()),
		optional(e.Location),
		optional(e.Participants),
		optional(e.Topic),
		optional(e.Details),
	}
}

// Strings returns the row as text, with the date in ISO form.
func Strings(e appointment.Canonical) []string {
	return []string{
		e.Date.Format("2006-01-02"),
		e.Title,
		e.MemberList(),
		e.Location,
		e.Participants,
		e.Topic,
		e.Details,
	}
}

func optional(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// WriteSheet writes events to sheet in the workbook at path.
func WriteSheet(path, sheet string, events []appointment.Canonical) error {
	if sheet == "" || len([]rune(sheet)) > MaxSheetNameLength {
		return fmt.Errorf("invalid sheet name %q", sheet)
	}

	f, created, err := openWorkbook(path)
	if err != nil {
		return err
	}
	defer f.Close()

	target := sheet
	if created {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("failed to name sheet %q: %w", sheet, err)
		}
	} else {
		idx, err := f.GetSheetIndex(sheet)
		if err != nil {
			return fmt.Errorf("failed to look up sheet %q: %w", sheet, err)
		}
		if idx >= 0 {
			target = scratchSheet
		}
		if _, err := f.NewSheet(target); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", target, err)
		}
	}

	if err := fill(f, target, events); err != nil {
		return err
	}

	if target != sheet {
		if err := f.DeleteSheet(sheet); err != nil {
			return fmt.Errorf("failed to remove old sheet %q: %w", sheet, err)
		}
		if err := f.SetSheetName(target, sheet); err != nil {
			return fmt.Errorf("failed to rename sheet %q: %w", target, err)
		}
	}

	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("failed to look up sheet %q: %w", sheet, err)
	}
	f.SetActiveSheet(idx)

	return save(f, path)
}

func openWorkbook(path string) (*excelize.File, bool, error) {
	f, err := excelize.OpenFile(path)
	if err == nil {
		return f, false, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return excelize.NewFile(), true, nil
	}
	return nil, false, fmt.Errorf("failed to open workbook %s: %w", path, err)
}

func fill(f *excelize.File, sheet string, events []appointment.Canonical) error {
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if len(events) == 0 {
		return nil
	}

	for i, e := range events {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := Record(e)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: shortDateFormat})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(1, len(events)+1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A2", last, style); err != nil {
		return fmt.Errorf("failed to style date column: %w", err)
	}

	return nil
}

func save(f *excelize.File, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".weeklycal-*.xlsx")
	if err != nil {
		return fmt.Errorf("failed to create temp workbook: %w", err)
	}
	tmpName := tmp.Name()
	_ = tmp.Chmod(0o644)

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace workbook %s: %w", path, err)
	}

	return nil
}
