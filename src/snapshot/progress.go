package snapshot

// Step labels one phase of an orchestration run.
type Step string

const (
	StepStoppingInstance        Step = "stopping_instance"
	StepCreateOrRestoreSnapshot Step = "create_or_restore_snapshot"
	StepRestartingInstance      Step = "restarting_instance"
)

// StepState is the transition state of a step.
type StepState string

const (
	StateInProgress StepState = "in_progress"
	StateSuccess    StepState = "success"
	StateError      StepState = "error"
)

// Event is one progress notification. Events for a single run are delivered
// in strict chronological order: each step emits in_progress followed by
// exactly one of success or error, and a step never starts before the
// previous one reached a terminal state.
type Event struct {
	Step  Step
	State StepState
}

// Observer receives progress events. A nil Observer is allowed; events are
// then dropped.
type Observer func(Event)

func (o Observer) emit(step Step, state StepState) {
	if o != nil {
		o(Event{Step: step, State: state})
	}
}

// runStep brackets fn with progress events: in_progress before, then success
// or error depending on fn's outcome. fn's error is returned unchanged.
func runStep(step Step, observe Observer, fn func() error) error {
	observe.emit(step, StateInProgress)
	if err := fn(); err != nil {
		observe.emit(step, StateError)
		return err
	}
	observe.emit(step, StateSuccess)
	return nil
}
