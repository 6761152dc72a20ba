// Package config assembles the run configuration for a weekly report.
//
// Values are layered, later sources winning:
//
//  1. built-in defaults
//  2. an optional YAML file (--config or WEEKLYCAL_CONFIG)
//  3. .env files, which never override variables already in the environment
//  4. environment variables such as YOUR_EMAIL and IGNORE_PHRASES
//  5. command-line flags, applied by the caller
//
// Load performs steps 1 to 4. Callers apply flag overrides, then call
// Normalize and Validate before using the configuration.
package config
