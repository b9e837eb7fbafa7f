package snapshot

import (
	"errors"
	"testing"
)

func TestRunStep_Success(t *testing.T) {
	var events []Event
	err := runStep(StepStoppingInstance, func(e Event) { events = append(events, e) }, func() error {
		return nil
	})
	if err != nil {
		t.Fatalf("runStep: %v", err)
	}
	want := []Event{
		{StepStoppingInstance, StateInProgress},
		{StepStoppingInstance, StateSuccess},
	}
	assertEvents(t, events, want)
}

func TestRunStep_Error(t *testing.T) {
	boom := errors.New("boom")
	var events []Event
	err := runStep(StepRestartingInstance, func(e Event) { events = append(events, e) }, func() error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the step's own error back, got %v", err)
	}
	want := []Event{
		{StepRestartingInstance, StateInProgress},
		{StepRestartingInstance, StateError},
	}
	assertEvents(t, events, want)
}

func TestRunStep_NilObserverTolerated(t *testing.T) {
	if err := runStep(StepCreateOrRestoreSnapshot, nil, func() error { return nil }); err != nil {
		t.Fatalf("runStep with nil observer: %v", err)
	}
}

func assertEvents(t *testing.T, got, want []Event) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d events %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
