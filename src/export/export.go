package export

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"incus-snapshot/src/incusapi"
	"incus-snapshot/src/snapshot"
	"incus-snapshot/src/util/progress"
)

// Manifest describes one downloaded instance export.
type Manifest struct {
	Project   string    `json:"project"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

// Instance downloads a full export of the instance into
// dest/<project>/<name>/<timestamp>/ and returns that directory. The export
// tarball is opaque; alongside it we write a manifest and sha256 checksums so
// a download can be verified later.
func Instance(client incusapi.Client, dest string, ref snapshot.InstanceRef, now time.Time, progressOut io.Writer) (string, error) {
	ts := now.UTC().Format("20060102T150405Z")
	dir := filepath.Join(dest, ref.Project, ref.Name, ts)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	tarPath := filepath.Join(dir, "export.tar.xz")
	f, err := os.Create(tarPath)
	if err != nil {
		return "", err
	}
	pw := progress.NewWriter(f, 0, ref.String(), progressOut)
	size, err := client.ExportInstance(ref.Project, ref.Name, pw)
	if err != nil {
		f.Close()
		return "", err
	}
	pw.Done()
	if err := f.Close(); err != nil {
		return "", err
	}

	mf := Manifest{
		Project:   ref.Project,
		Name:      ref.Name,
		CreatedAt: now.UTC(),
		SizeBytes: size,
	}
	if err := writeJSON(filepath.Join(dir, "manifest.json"), mf); err != nil {
		return "", err
	}
	if err := writeChecksums(dir, "export.tar.xz", "manifest.json"); err != nil {
		return "", err
	}
	return dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeChecksums(dir string, files ...string) error {
	out, err := os.Create(filepath.Join(dir, "checksums.txt"))
	if err != nil {
		return err
	}
	defer out.Close()
	for _, name := range files {
		sum, err := sha256File(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "%s  %s\n", sum, name); err != nil {
			return err
		}
	}
	return nil
}

func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
