package snapshot

import (
	"incus-snapshot/src/incusapi"
)

// LoadRequest asks for the snapshot list of one instance.
type LoadRequest struct {
	Instance InstanceRef
	Caller   *incusapi.Caller
	// Reload forces a remote list even when a cache entry exists.
	Reload bool
}

// LoadSnapshots fills the cache entry for the instance. With Reload false and
// an existing entry, no remote call is made. On failure the entry is cleared:
// a failed load means "unknown state", not "previous state still valid".
func (s *Service) LoadSnapshots(req LoadRequest) Result {
	if req.Caller == nil {
		return s.fail(ErrUnauthenticated)
	}

	if !req.Reload {
		if _, hit := s.cache.Get(req.Instance); hit {
			return ok()
		}
	}

	snaps, err := s.client.ListInstanceSnapshots(req.Instance.Project, req.Instance.Name)
	if err != nil {
		s.cache.clear(req.Instance)
		return s.fail(err)
	}

	s.cache.replace(req.Instance, snaps)
	return ok()
}
