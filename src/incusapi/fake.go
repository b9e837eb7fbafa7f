package incusapi

import (
	"fmt"
	"io"
	"time"
)

// FakeClient is an in-memory implementation for unit tests.
//
// Every operation appends to Calls ("stop project/name", "list project/name", ...)
// so tests can assert which remote calls happened and in what order. A non-nil
// entry in Fail makes the matching operation fail with that error.
type FakeClient struct {
	ServerVersionStr string
	Authenticated    *Caller

	// Instance state and snapshots, keyed by "project/name".
	Running   map[string]bool
	Snapshots map[string][]Snapshot

	ExportContent []byte

	Fail  map[string]error // op name -> scripted error
	Calls []string
}

func NewFake() *FakeClient {
	return &FakeClient{
		Authenticated: &Caller{Name: "test", Protocol: "unix"},
		Running:       map[string]bool{},
		Snapshots:     map[string][]Snapshot{},
		Fail:          map[string]error{},
	}
}

func (f *FakeClient) record(op, project, name string) error {
	f.Calls = append(f.Calls, op+" "+project+"/"+name)
	return f.Fail[op]
}

func (f *FakeClient) Server() (ServerInfo, error) {
	return ServerInfo{ServerVersion: f.ServerVersionStr}, nil
}

func (f *FakeClient) WhoAmI() (*Caller, error) {
	return f.Authenticated, nil
}

func (f *FakeClient) StopInstance(project, name string) error {
	if err := f.record("stop", project, name); err != nil {
		return err
	}
	f.Running[project+"/"+name] = false
	return nil
}

func (f *FakeClient) StartInstance(project, name string) error {
	if err := f.record("start", project, name); err != nil {
		return err
	}
	f.Running[project+"/"+name] = true
	return nil
}

func (f *FakeClient) CreateInstanceSnapshot(project, name, snapshot string) (Snapshot, error) {
	if err := f.record("create", project, name); err != nil {
		return Snapshot{}, err
	}
	key := project + "/" + name
	for _, s := range f.Snapshots[key] {
		if s.Name == snapshot {
			return Snapshot{}, &ConflictError{Resource: "snapshot", Name: snapshot}
		}
	}
	snap := Snapshot{Name: snapshot, CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Size: 1 << 20}
	f.Snapshots[key] = append(f.Snapshots[key], snap)
	return snap, nil
}

func (f *FakeClient) RestoreInstanceSnapshot(project, name, snapshot string) error {
	if err := f.record("restore", project, name); err != nil {
		return err
	}
	for _, s := range f.Snapshots[project+"/"+name] {
		if s.Name == snapshot {
			return nil
		}
	}
	return &NotFoundError{Resource: "snapshot", Name: snapshot}
}

func (f *FakeClient) ListInstanceSnapshots(project, name string) ([]Snapshot, error) {
	if err := f.record("list", project, name); err != nil {
		return nil, err
	}
	return append([]Snapshot(nil), f.Snapshots[project+"/"+name]...), nil
}

func (f *FakeClient) ExportInstance(project, name string, target io.WriteSeeker) (int64, error) {
	if err := f.record("export", project, name); err != nil {
		return 0, err
	}
	n, err := target.Write(f.ExportContent)
	if err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}
	return int64(n), nil
}

type ConflictError struct{ Resource, Name string }

func (e *ConflictError) Error() string { return e.Resource + " conflict: " + e.Name }

type NotFoundError struct{ Resource, Name string }

func (e *NotFoundError) Error() string { return e.Resource + " not found: " + e.Name }
