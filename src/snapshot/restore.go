package snapshot

import (
	"incus-snapshot/src/incusapi"
)

// RestoreRequest asks to roll one instance back to a known snapshot.
type RestoreRequest struct {
	Instance   InstanceRef
	Caller     *incusapi.Caller
	Snapshot   incusapi.Snapshot
	OnProgress Observer
}

// RestoreSnapshot stops the instance, asks the server to restore the given
// snapshot onto it, and restarts the instance. The restore call returns no
// data, so on success the cache entry is replaced with the caller-supplied
// snapshot rather than anything derived from the response.
func (s *Service) RestoreSnapshot(req RestoreRequest) Result {
	if req.Caller == nil {
		return s.fail(ErrUnauthenticated)
	}

	action := func() error {
		return s.client.RestoreInstanceSnapshot(req.Instance.Project, req.Instance.Name, req.Snapshot.Name)
	}

	if err := orchestrate(s.client, req.Instance, action, req.OnProgress); err != nil {
		return s.fail(err)
	}

	s.cache.replace(req.Instance, []incusapi.Snapshot{req.Snapshot})
	return ok()
}
