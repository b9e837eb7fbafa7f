package cli

import (
	"io"

	"github.com/sirupsen/logrus"

	"incus-snapshot/src/incusapi"
	"incus-snapshot/src/snapshot"
)

// connectClient dials the Incus server. Tests swap it for a fake.
var connectClient = func() (incusapi.Client, error) {
	return incusapi.ConnectLocal()
}

// SetConnectClientForTest overrides the client constructor and returns a
// reset function.
func SetConnectClientForTest(fn func() (incusapi.Client, error)) func() {
	old := connectClient
	connectClient = fn
	return func() { connectClient = old }
}

// newService connects to the server, resolves the caller identity, and wires
// a snapshot service whose error side channel logs to stderr.
func newService(stderr io.Writer) (*snapshot.Service, *incusapi.Caller, error) {
	client, err := connectClient()
	if err != nil {
		return nil, nil, err
	}
	caller, err := client.WhoAmI()
	if err != nil {
		return nil, nil, err
	}
	notify := snapshot.Notifier(func(err error) {
		logrus.WithError(err).Error("snapshot operation failed")
	})
	return snapshot.NewService(client, sharedCache, notify), caller, nil
}

// sharedCache is the process-wide snapshot cache; every command sees the same
// last known snapshot sets.
var sharedCache = snapshot.NewCache()

// ResetCacheForTest empties the process-wide snapshot cache.
func ResetCacheForTest() {
	sharedCache = snapshot.NewCache()
}
