package snapshot

import (
	"incus-snapshot/src/incusapi"
)

// InstanceRef names one instance. Its string form is the cache key.
type InstanceRef struct {
	Project string
	Name    string
}

func (r InstanceRef) String() string {
	return r.Project + "/" + r.Name
}

// orchestrate runs the guaranteed-resume protocol for one instance:
//
//	stop -> action -> start
//
// The restart runs whenever the stop succeeded, no matter how the action
// ended. A stop failure is terminal: the instance was never stopped, so
// there is nothing to resume and no restart event is emitted. No step is
// ever retried.
//
// When both the action and the restart fail, the restart error is the one
// returned; the action error is already visible through its error event.
func orchestrate(client incusapi.Client, ref InstanceRef, action func() error, observe Observer) (err error) {
	if err := runStep(StepStoppingInstance, observe, func() error {
		return client.StopInstance(ref.Project, ref.Name)
	}); err != nil {
		return err
	}

	defer func() {
		startErr := runStep(StepRestartingInstance, observe, func() error {
			return client.StartInstance(ref.Project, ref.Name)
		})
		if startErr != nil {
			err = startErr
		}
	}()

	return runStep(StepCreateOrRestoreSnapshot, observe, action)
}
