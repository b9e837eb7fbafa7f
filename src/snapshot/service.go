package snapshot

import (
	"errors"

	"incus-snapshot/src/incusapi"
)

// ErrUnauthenticated is returned when an operation is attempted without an
// authenticated caller. No remote call and no progress event happens first.
var ErrUnauthenticated = errors.New("not authenticated against the Incus server")

// Status discriminates operation outcomes.
type Status string

const (
	StatusOK        Status = "ok"
	StatusCancelled Status = "cancelled"
	StatusError     Status = "error"
)

// Result is the uniform outcome of a service operation. Err is set only for
// StatusError. StatusCancelled is never produced by the service itself; it
// exists for callers that abort before starting an operation (the CLI uses it
// when a confirmation prompt is declined).
type Result struct {
	Status Status
	Err    error
}

func ok() Result            { return Result{Status: StatusOK} }
func fail(err error) Result { return Result{Status: StatusError, Err: err} }

// Cancelled is the result callers return for an operation they aborted
// before handing it to the service.
func Cancelled() Result { return Result{Status: StatusCancelled} }

// Notifier is the side channel for user-facing error reporting. Each failed
// operation pushes its error exactly once. Nil disables notification.
type Notifier func(error)

func (n Notifier) notify(err error) {
	if n != nil {
		n(err)
	}
}

// Service exposes snapshot operations for instances. Failures never escape as
// panics or unhandled errors; every operation returns a Result and reports
// failures through the Notifier.
type Service struct {
	client incusapi.Client
	cache  *Cache
	notify Notifier
}

func NewService(client incusapi.Client, cache *Cache, notify Notifier) *Service {
	if cache == nil {
		cache = NewCache()
	}
	return &Service{client: client, cache: cache, notify: notify}
}

// Cache exposes read access to the snapshot cache.
func (s *Service) Cache() *Cache {
	return s.cache
}

func (s *Service) fail(err error) Result {
	s.notify.notify(err)
	return fail(err)
}
