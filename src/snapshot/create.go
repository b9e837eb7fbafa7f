package snapshot

import (
	"github.com/google/uuid"

	"incus-snapshot/src/incusapi"
)

// CreateRequest asks for a new point-in-time snapshot of one instance.
type CreateRequest struct {
	Instance InstanceRef
	Caller   *incusapi.Caller
	// SnapshotName reuses a caller-supplied name; a name is generated when empty.
	SnapshotName string
	OnProgress   Observer
}

// CreateSnapshot stops the instance, asks the server to take a new snapshot,
// and restarts the instance. On success the cache entry for the instance is
// replaced with the single snapshot the server returned.
func (s *Service) CreateSnapshot(req CreateRequest) Result {
	if req.Caller == nil {
		return s.fail(ErrUnauthenticated)
	}

	name := req.SnapshotName
	if name == "" {
		name = "snap-" + uuid.NewString()[:8]
	}

	var created incusapi.Snapshot
	action := func() error {
		snap, err := s.client.CreateInstanceSnapshot(req.Instance.Project, req.Instance.Name, name)
		if err != nil {
			return err
		}
		created = snap
		return nil
	}

	if err := orchestrate(s.client, req.Instance, action, req.OnProgress); err != nil {
		return s.fail(err)
	}

	// The create call returned the authoritative handle.
	s.cache.replace(req.Instance, []incusapi.Snapshot{created})
	return ok()
}
