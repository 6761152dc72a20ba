package cmd

import (
	"reflect"
	"testing"
)

func TestWithDefaultCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "no arguments",
			input:    nil,
			expected: []string{"report"},
		},
		{
			name:     "report flags only",
			input:    []string{"--dry-run", "--start", "2024-01-06"},
			expected: []string{"report", "--dry-run", "--start", "2024-01-06"},
		},
		{
			name:     "explicit subcommand",
			input:    []string{"accounts", "--email", "me@example.com"},
			expected: []string{"accounts", "--email", "me@example.com"},
		},
		{
			name:     "help flag",
			input:    []string{"--help"},
			expected: []string{"--help"},
		},
		{
			name:     "short version flag",
			input:    []string{"-v"},
			expected: []string{"-v"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := withDefaultCommand(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("withDefaultCommand(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	for _, name := range []string{"report", "accounts", "version"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}
