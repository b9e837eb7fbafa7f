package incusapi

import (
	"io"
	"time"
)

// Caller identifies the authenticated identity behind the API connection.
// A nil *Caller means "not authenticated" to the layers above.
type Caller struct {
	// Name is the server-reported identity (certificate CN, OIDC subject, ...).
	Name string
	// Protocol is the auth method the server reported (e.g. "tls", "oidc", "unix").
	Protocol string
}

// Snapshot is an opaque handle to one point-in-time backup of an instance.
// This tool never looks inside a snapshot; it only transports references.
type Snapshot struct {
	Name      string
	CreatedAt time.Time
	// Size is the server-reported disk usage in bytes, 0 when unknown.
	Size int64
	// Stateful records whether runtime state was included.
	Stateful bool
}

// ServerInfo exposes key server metadata we care about.
type ServerInfo struct {
	ServerVersion string
}

// Client is a narrow interface over the Incus API used by our app.
// Keep it small and focused on what we actually need so it stays mockable.
type Client interface {
	// Server
	Server() (ServerInfo, error)

	// WhoAmI returns the authenticated caller, or nil when the
	// connection is not trusted by the server.
	WhoAmI() (*Caller, error)

	// Instance lifecycle
	StopInstance(project, name string) error
	StartInstance(project, name string) error

	// Snapshots
	CreateInstanceSnapshot(project, name, snapshot string) (Snapshot, error)
	RestoreInstanceSnapshot(project, name, snapshot string) error
	ListInstanceSnapshots(project, name string) ([]Snapshot, error)

	// ExportInstance streams a full instance export into target and
	// returns the number of bytes written.
	ExportInstance(project, name string, target io.WriteSeeker) (int64, error)
}
