package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"incus-snapshot/src/incusapi"
)

func TestExportCmd_WritesFiles(t *testing.T) {
	fake := incusapi.NewFake()
	fake.ExportContent = []byte("tarball bytes")
	out, _, run := newTestRoot(t, fake)
	dest := t.TempDir()

	if err := run("export", "vm1", "--project", "default", "--dest", dest); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out.String(), "Exported default/vm1 to ") {
		t.Fatalf("missing confirmation:\n%s", out.String())
	}

	matches, err := filepath.Glob(filepath.Join(dest, "default", "vm1", "*", "export.tar.xz"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one export tarball, got %v (%v)", matches, err)
	}
	b, err := os.ReadFile(matches[0])
	if err != nil || string(b) != "tarball bytes" {
		t.Fatalf("unexpected tarball content %q (%v)", b, err)
	}
}

func TestExportCmd_RequiresDest(t *testing.T) {
	fake := incusapi.NewFake()
	_, _, run := newTestRoot(t, fake)

	err := run("export", "vm1", "--project", "default")
	if err == nil || !strings.Contains(err.Error(), "--dest is required") {
		t.Fatalf("expected missing-dest error, got %v", err)
	}
}
