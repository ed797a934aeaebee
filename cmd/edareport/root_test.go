package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCmdSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	want := map[string]bool{"generate": false, "serve": false, "version": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)
	if !strings.Contains(buf.String(), "edareport version") {
		t.Errorf("unexpected version output: %q", buf.String())
	}
}

func TestGenerateCmdEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.csv")
	var csv strings.Builder
	csv.WriteString("x,y\n")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&csv, "%d,%d\n", i, i*3+2)
	}
	if err := os.WriteFile(input, []byte(csv.String()), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "report")
	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"generate", input, "--output", out, "--title", "CLI Test"})

	if err := root.Execute(); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "report.md")); err != nil {
		t.Errorf("report.md not written: %v", err)
	}
	if !strings.Contains(buf.String(), "Report written to") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestGenerateCmdRequiresInput(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"generate"})
	if err := root.Execute(); err == nil {
		t.Error("expected error without input file")
	}
}
