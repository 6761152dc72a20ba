// Package cmd implements the command-line interface for weeklycal.
//
// This package provides the following commands:
//   - report: Build the weekly report sheet from an Outlook for Mac archive
//   - accounts: List the account folders of an archive and how they are treated
//   - version: Display version information
//
// The report command is the default command when no subcommand is specified.
package cmd
