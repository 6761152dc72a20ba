// Package report runs the weekly calendar report pipeline.
//
// Run threads one configuration through every stage:
//
//	contacts  load the contact directory used to label participants
//	collect   read every account's calendar export from the archive
//	window    keep records whose own start date lies inside the window
//	dedup     merge records into canonical events
//	write     add or replace the report sheet in the workbook
//
// Each stage gets its own span and duration metric. The workbook is the last
// thing touched, so a run that fails earlier leaves it unchanged.
package report
