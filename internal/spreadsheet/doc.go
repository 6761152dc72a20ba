// Package spreadsheet writes the weekly report table into an xlsx workbook.
//
// WriteSheet adds one sheet to an existing workbook, replacing a sheet of the
// same name if present and leaving every other sheet untouched. A missing
// workbook is created containing only that sheet. The workbook is written to a
// temporary file in the same directory and renamed into place, so a failed
// write leaves the previous file intact.
package spreadsheet
