package cmd

import (
	"bytes"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	old := version
	version = "1.2.3"
	t.Cleanup(func() { version = old })

	var out bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), "weeklycal version 1.2.3\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
