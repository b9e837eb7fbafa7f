package incusapi

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	incuscli "github.com/lxc/incus/client"
	"github.com/lxc/incus/shared/api"
	"github.com/sirupsen/logrus"
)

// RealClient wraps the official Incus Go client.
type RealClient struct {
	c incuscli.InstanceServer
}

// ConnectLocal connects to the local Incus via the UNIX socket.
func ConnectLocal() (*RealClient, error) {
	c, err := incuscli.ConnectIncusUnix("", nil)
	if err != nil {
		return nil, err
	}
	return &RealClient{c: c}, nil
}

func (r *RealClient) Server() (ServerInfo, error) {
	s, _, err := r.c.GetServer()
	if err != nil {
		return ServerInfo{}, err
	}
	return ServerInfo{ServerVersion: s.Environment.ServerVersion}, nil
}

func (r *RealClient) WhoAmI() (*Caller, error) {
	s, _, err := r.c.GetServer()
	if err != nil {
		return nil, err
	}
	if s.Auth != "trusted" {
		return nil, nil
	}
	name := s.AuthUserName
	if name == "" {
		name = "root"
	}
	return &Caller{Name: name, Protocol: s.AuthUserMethod}, nil
}

func (r *RealClient) StopInstance(project, name string) error {
	return r.changeInstanceState(project, name, "stop")
}

func (r *RealClient) StartInstance(project, name string) error {
	return r.changeInstanceState(project, name, "start")
}

func (r *RealClient) changeInstanceState(project, name, action string) error {
	c := r.c.UseProject(project)
	logrus.WithFields(logrus.Fields{"project": project, "instance": name, "action": action}).Debug("changing instance state")
	op, err := c.UpdateInstanceState(name, api.InstanceStatePut{Action: action, Timeout: -1}, "")
	if err != nil {
		return fmt.Errorf("%s instance %s/%s: %w", action, project, name, err)
	}
	if err := op.Wait(); err != nil {
		return fmt.Errorf("%s instance %s/%s: %w", action, project, name, err)
	}
	return nil
}

func (r *RealClient) CreateInstanceSnapshot(project, name, snapshot string) (Snapshot, error) {
	c := r.c.UseProject(project)
	op, err := c.CreateInstanceSnapshot(name, api.InstanceSnapshotsPost{Name: snapshot})
	if err != nil {
		return Snapshot{}, fmt.Errorf("create snapshot %s of %s/%s: %w", snapshot, project, name, err)
	}
	if err := op.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("create snapshot %s of %s/%s: %w", snapshot, project, name, err)
	}
	// Re-fetch for the authoritative record (size is filled in server-side).
	snap, _, err := c.GetInstanceSnapshot(name, snapshot)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch snapshot %s of %s/%s: %w", snapshot, project, name, err)
	}
	return fromAPISnapshot(*snap), nil
}

func (r *RealClient) RestoreInstanceSnapshot(project, name, snapshot string) error {
	c := r.c.UseProject(project)
	op, err := c.UpdateInstance(name, api.InstancePut{Restore: snapshot}, "")
	if err != nil {
		return fmt.Errorf("restore snapshot %s onto %s/%s: %w", snapshot, project, name, err)
	}
	if err := op.Wait(); err != nil {
		return fmt.Errorf("restore snapshot %s onto %s/%s: %w", snapshot, project, name, err)
	}
	return nil
}

func (r *RealClient) ListInstanceSnapshots(project, name string) ([]Snapshot, error) {
	c := r.c.UseProject(project)
	snaps, err := c.GetInstanceSnapshots(name)
	if err != nil {
		return nil, fmt.Errorf("list snapshots of %s/%s: %w", project, name, err)
	}
	out := make([]Snapshot, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, fromAPISnapshot(s))
	}
	return out, nil
}

// ExportInstance creates a temporary server-side backup, downloads its tarball
// into target, and deletes the backup again.
func (r *RealClient) ExportInstance(project, name string, target io.WriteSeeker) (int64, error) {
	c := r.c.UseProject(project)
	backupName := "export-" + uuid.NewString()[:8]
	req := api.InstanceBackupsPost{
		Name:      backupName,
		ExpiresAt: time.Now().Add(2 * time.Hour),
	}
	op, err := c.CreateInstanceBackup(name, req)
	if err != nil {
		return 0, fmt.Errorf("create backup of %s/%s: %w", project, name, err)
	}
	if err := op.Wait(); err != nil {
		return 0, fmt.Errorf("create backup of %s/%s: %w", project, name, err)
	}
	defer func() {
		if op, err := c.DeleteInstanceBackup(name, backupName); err == nil {
			_ = op.Wait()
		} else {
			logrus.WithError(err).Warn("leaving temporary export backup behind")
		}
	}()

	resp, err := c.GetInstanceBackupFile(name, backupName, &incuscli.BackupFileRequest{BackupFile: target})
	if err != nil {
		return 0, fmt.Errorf("download backup of %s/%s: %w", project, name, err)
	}
	return resp.Size, nil
}

func fromAPISnapshot(s api.InstanceSnapshot) Snapshot {
	return Snapshot{
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
		Size:      s.Size,
		Stateful:  s.Stateful,
	}
}
