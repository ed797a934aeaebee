package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"edareport/adapters/tabular"
	"edareport/internal/analysis"
	"edareport/internal/logging"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestGeneratorWritesReportDirectory(t *testing.T) {
	records := [][]string{{"a", "b", "label"}}
	for i := 0; i < 60; i++ {
		records = append(records, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", i*2+1),
			fmt.Sprintf("group%d", i%3),
		})
	}
	tbl, err := tabular.FromRecords(records, true)
	if err != nil {
		t.Fatal(err)
	}

	log := logging.NewDefaultLogger()
	a, err := analysis.NewEngine(log, 2).Analyze(context.Background(), tbl, analysis.Options{GroupBy: "label"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	dir := t.TempDir()
	gen := NewGenerator(log, "Integration Report", "cyan")
	res, err := gen.Generate(tbl, a, dir)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, path := range []string{res.MarkdownPath, res.HTMLPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing output %s: %v", path, err)
		}
	}

	graphDir := filepath.Join(dir, "graphs")
	entries, err := os.ReadDir(graphDir)
	if err != nil {
		t.Fatalf("reading graph dir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no graphs written")
	}
	if len(entries) != res.GraphCount {
		t.Errorf("graph count: got %d files, result says %d", len(entries), res.GraphCount)
	}
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(graphDir, e.Name()))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, pngMagic) {
			t.Errorf("%s is not a PNG", e.Name())
		}
	}

	md, err := os.ReadFile(res.MarkdownPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(md, []byte("# Integration Report")) {
		t.Error("markdown report missing title")
	}
	if !bytes.Contains(md, []byte("graphs/")) {
		t.Error("markdown report missing graph links")
	}
}
