package cli_test

import (
	"strings"
	"testing"
	"time"

	"incus-snapshot/src/incusapi"
)

func seedSnapshot(fake *incusapi.FakeClient, name string) {
	fake.Snapshots["default/vm1"] = []incusapi.Snapshot{{
		Name:      name,
		CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Size:      2 << 20,
	}}
}

func TestRestoreCmd_Success(t *testing.T) {
	fake := incusapi.NewFake()
	seedSnapshot(fake, "nightly")
	out, _, run := newTestRoot(t, fake)

	if err := run("restore", "vm1", "nightly", "--project", "default", "--yes"); err != nil {
		t.Fatalf("restore: %v", err)
	}
	s := out.String()
	for _, want := range []string{
		"Stopping instance... done",
		"Restoring snapshot... done",
		"Restarting instance... done",
		"Restored snapshot nightly onto default/vm1",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("output missing %q:\n%s", want, s)
		}
	}
	if !fake.Running["default/vm1"] {
		t.Fatal("instance must be running again after restore")
	}
}

func TestRestoreCmd_SingleSnapshotNeedsNoName(t *testing.T) {
	fake := incusapi.NewFake()
	seedSnapshot(fake, "only-one")
	out, _, run := newTestRoot(t, fake)

	if err := run("restore", "vm1", "--project", "default", "--yes"); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !strings.Contains(out.String(), "Restored snapshot only-one") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRestoreCmd_UnknownSnapshot(t *testing.T) {
	fake := incusapi.NewFake()
	seedSnapshot(fake, "nightly")
	_, _, run := newTestRoot(t, fake)

	err := run("restore", "vm1", "weekly", "--project", "default", "--yes")
	if err == nil || !strings.Contains(err.Error(), "no snapshot named") {
		t.Fatalf("expected unknown-snapshot error, got %v", err)
	}
}

func TestRestoreCmd_DryRunIsCancelled(t *testing.T) {
	fake := incusapi.NewFake()
	seedSnapshot(fake, "nightly")
	out, _, run := newTestRoot(t, fake)

	if err := run("restore", "vm1", "nightly", "--project", "default", "--dry-run"); err != nil {
		t.Fatalf("restore --dry-run: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled") {
		t.Fatalf("expected a cancelled restore:\n%s", out.String())
	}
	// The listing ran, but nothing was stopped or restored.
	for _, call := range fake.Calls {
		if strings.HasPrefix(call, "stop") || strings.HasPrefix(call, "restore") {
			t.Fatalf("unexpected destructive call %q", call)
		}
	}
}

func TestRestoreCmd_NoSnapshots(t *testing.T) {
	fake := incusapi.NewFake()
	_, _, run := newTestRoot(t, fake)

	err := run("restore", "vm1", "--project", "default", "--yes")
	if err == nil || !strings.Contains(err.Error(), "has no snapshots") {
		t.Fatalf("expected no-snapshots error, got %v", err)
	}
}
