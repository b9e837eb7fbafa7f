package snapshot

import (
	"errors"
	"testing"

	"incus-snapshot/src/incusapi"
)

var testRef = InstanceRef{Project: "default", Name: "vm1"}

func recordObserver(events *[]Event) Observer {
	return func(e Event) { *events = append(*events, e) }
}

func TestOrchestrate_SuccessEventOrder(t *testing.T) {
	fake := incusapi.NewFake()
	var events []Event

	err := orchestrate(fake, testRef, func() error { return nil }, recordObserver(&events))
	if err != nil {
		t.Fatalf("orchestrate: %v", err)
	}

	assertEvents(t, events, []Event{
		{StepStoppingInstance, StateInProgress},
		{StepStoppingInstance, StateSuccess},
		{StepCreateOrRestoreSnapshot, StateInProgress},
		{StepCreateOrRestoreSnapshot, StateSuccess},
		{StepRestartingInstance, StateInProgress},
		{StepRestartingInstance, StateSuccess},
	})
	assertCalls(t, fake, "stop default/vm1", "start default/vm1")
}

func TestOrchestrate_StopFailureIsTerminal(t *testing.T) {
	fake := incusapi.NewFake()
	stopErr := errors.New("stop refused")
	fake.Fail["stop"] = stopErr
	var events []Event

	err := orchestrate(fake, testRef, func() error {
		t.Fatal("action must not run when stop failed")
		return nil
	}, recordObserver(&events))

	if !errors.Is(err, stopErr) {
		t.Fatalf("expected stop error, got %v", err)
	}
	// No restart attempt: the instance was never stopped.
	assertEvents(t, events, []Event{
		{StepStoppingInstance, StateInProgress},
		{StepStoppingInstance, StateError},
	})
	assertCalls(t, fake, "stop default/vm1")
}

func TestOrchestrate_ActionFailureStillRestarts(t *testing.T) {
	fake := incusapi.NewFake()
	actionErr := errors.New("snapshot blew up")
	var events []Event

	err := orchestrate(fake, testRef, func() error { return actionErr }, recordObserver(&events))

	if !errors.Is(err, actionErr) {
		t.Fatalf("expected action error, got %v", err)
	}
	assertEvents(t, events, []Event{
		{StepStoppingInstance, StateInProgress},
		{StepStoppingInstance, StateSuccess},
		{StepCreateOrRestoreSnapshot, StateInProgress},
		{StepCreateOrRestoreSnapshot, StateError},
		{StepRestartingInstance, StateInProgress},
		{StepRestartingInstance, StateSuccess},
	})
	assertCalls(t, fake, "stop default/vm1", "start default/vm1")
}

func TestOrchestrate_RestartFailureWinsOverActionFailure(t *testing.T) {
	fake := incusapi.NewFake()
	actionErr := errors.New("snapshot blew up")
	startErr := errors.New("start refused")
	fake.Fail["start"] = startErr
	var events []Event

	err := orchestrate(fake, testRef, func() error { return actionErr }, recordObserver(&events))

	// Last thrown failure reaches the caller; the action failure is only
	// visible through its error event.
	if !errors.Is(err, startErr) {
		t.Fatalf("expected start error, got %v", err)
	}
	assertEvents(t, events, []Event{
		{StepStoppingInstance, StateInProgress},
		{StepStoppingInstance, StateSuccess},
		{StepCreateOrRestoreSnapshot, StateInProgress},
		{StepCreateOrRestoreSnapshot, StateError},
		{StepRestartingInstance, StateInProgress},
		{StepRestartingInstance, StateError},
	})
}

func TestOrchestrate_RestartFailureAfterActionSuccess(t *testing.T) {
	fake := incusapi.NewFake()
	startErr := errors.New("start refused")
	fake.Fail["start"] = startErr
	var events []Event

	err := orchestrate(fake, testRef, func() error { return nil }, recordObserver(&events))

	if !errors.Is(err, startErr) {
		t.Fatalf("expected start error, got %v", err)
	}
	assertEvents(t, events, []Event{
		{StepStoppingInstance, StateInProgress},
		{StepStoppingInstance, StateSuccess},
		{StepCreateOrRestoreSnapshot, StateInProgress},
		{StepCreateOrRestoreSnapshot, StateSuccess},
		{StepRestartingInstance, StateInProgress},
		{StepRestartingInstance, StateError},
	})
}

func assertCalls(t *testing.T, fake *incusapi.FakeClient, want ...string) {
	t.Helper()
	if len(fake.Calls) != len(want) {
		t.Fatalf("got calls %v, want %v", fake.Calls, want)
	}
	for i := range want {
		if fake.Calls[i] != want[i] {
			t.Fatalf("call %d: got %q, want %q", i, fake.Calls[i], want[i])
		}
	}
}
