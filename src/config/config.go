package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds tool defaults. Everything here can be overridden per command
// with flags; the file only spares typing the same values every time.
type Config struct {
	// Project is the default Incus project.
	Project string `yaml:"project"`
	// SnapshotPrefix is prepended to generated snapshot names.
	SnapshotPrefix string `yaml:"snapshot_prefix"`
	// ExportDir is the default destination for instance exports.
	ExportDir string `yaml:"export_dir"`
}

func defaults() Config {
	return Config{Project: "default"}
}

// Load reads the config file at path (or the default location when path is
// empty) and applies INCUS_SNAPSHOT_* environment overrides. A missing file
// is not an error; defaults apply.
func Load(path string) (Config, error) {
	// A .env next to the working directory is honored, same as the rest of
	// our tooling. Missing is fine.
	_ = godotenv.Load()

	cfg := defaults()
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".config", "incus-snapshot", "config.yaml")
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, err
			}
		case os.IsNotExist(err):
			// keep defaults
		default:
			return Config{}, err
		}
	}

	if v := os.Getenv("INCUS_SNAPSHOT_PROJECT"); v != "" {
		cfg.Project = v
	}
	if v := os.Getenv("INCUS_SNAPSHOT_PREFIX"); v != "" {
		cfg.SnapshotPrefix = v
	}
	if v := os.Getenv("INCUS_SNAPSHOT_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if cfg.Project == "" {
		cfg.Project = "default"
	}
	return cfg, nil
}
