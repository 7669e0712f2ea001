package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akyairhashvil/mvno/cmd/app/commands"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))

	tests := []struct {
		name         string
		args         []string
		expectedExit int
		wantOut      string
	}{
		{name: "version", args: []string{"version"}, expectedExit: 0, wantOut: "mvno version"},
		{name: "stats on empty db", args: []string{"--db", filepath.Join(dir, "t.db"), "stats"}, expectedExit: 0, wantOut: "No tasks"},
		{name: "unknown command", args: []string{"bogus"}, expectedExit: 1},
		{name: "import needs a file", args: []string{"import"}, expectedExit: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			exitCode := run(tt.args, func(c *commands.CLI) {
				c.SetOutput(&out, &bytes.Buffer{})
			})
			if exitCode != tt.expectedExit {
				t.Fatalf("exit code = %d, want %d", exitCode, tt.expectedExit)
			}
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Fatalf("output %q missing %q", out.String(), tt.wantOut)
			}
		})
	}
}
