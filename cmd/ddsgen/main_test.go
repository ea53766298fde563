package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/woozymasta/dds/internal/fixture"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(context.Background(), append([]string{"ddsgen"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestGenerateThenInspect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.json")

	_, logs, err := runApp(t,
		"--log-format", "json",
		"generate",
		"--out", dir,
		"--format", "dxt1",
		"--format", "bc7",
		"--edds",
		"--manifest", manifest,
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(logs, `"msg":"done"`) {
		t.Fatalf("missing JSON done record in logs:\n%s", logs)
	}

	for _, name := range []string{"dxt1.dds", "dxt1.edds", "bc7.dds", "bc7.edds"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}

	data, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var results []fixture.Result
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("manifest lists %d files, want 4", len(results))
	}

	out, _, err := runApp(t, "inspect", "--json",
		filepath.Join(dir, "dxt1.dds"),
		filepath.Join(dir, "bc7.edds"),
	)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	var reports []inspectReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("parse inspect output: %v\n%s", err, out)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}

	dxt1, bc7 := reports[0], reports[1]
	if dxt1.Format != "dxt1" || dxt1.EDDS || dxt1.PayloadSize != 8 || dxt1.Width != 4 || dxt1.Height != 4 {
		t.Fatalf("unexpected dxt1 report: %+v", dxt1)
	}
	if bc7.Format != "bc7" || !bc7.EDDS || bc7.Block != "COPY" || bc7.DXGIFormat != 98 || bc7.PayloadSize != 16 {
		t.Fatalf("unexpected bc7 report: %+v", bc7)
	}
}

func TestInspectTextOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, _, err := runApp(t, "generate", "--out", dir, "--format", "rgba32"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	out, _, err := runApp(t, "inspect", filepath.Join(dir, "rgba32.dds"))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"format:  rgba32", "size:    4x4", "flags:   0x0000100f", "payload: 64 bytes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInspectErrors(t *testing.T) {
	t.Parallel()

	if _, _, err := runApp(t, "inspect"); err == nil {
		t.Fatalf("inspect without files: expected error")
	}
	if _, _, err := runApp(t, "inspect", filepath.Join(t.TempDir(), "missing.dds")); err == nil {
		t.Fatalf("inspect of missing file: expected error")
	}
}

func TestFormatsListing(t *testing.T) {
	t.Parallel()

	out, _, err := runApp(t, "formats")
	if err != nil {
		t.Fatalf("formats: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 23 {
		t.Fatalf("got %d lines, want header plus 22 formats:\n%s", len(lines), out)
	}
	for _, want := range []string{"NAME", "kopernicus_palette4.dds", "rgba32_dx10.dds"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
