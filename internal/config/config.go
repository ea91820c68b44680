package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	// EnvToken holds the dashboard session token. Required for posting.
	EnvToken = "POVIO_API_TOKEN"
	// EnvDefaultProject holds the fallback project id used when a post
	// specifies neither project id nor project name.
	EnvDefaultProject = "DEFAULT_PROJECT_ID"
	// EnvDashboardURL overrides the dashboard API base URL.
	EnvDashboardURL = "POVIO_API_URL"
)

// Settings holds the resolved configuration for a worklog invocation.
// Environment variables take precedence over the config file.
type Settings struct {
	// Token is the dashboard session token. May be empty; the dashboard
	// client rejects construction without one.
	Token string `yaml:"-"`

	// DashboardURL is the dashboard API base URL.
	DashboardURL string `yaml:"dashboard_url,omitempty"`

	// DefaultProjectID is the fallback project for posting. Zero means unset.
	DefaultProjectID int `yaml:"default_project_id,omitempty"`

	// Repository is the default git repository path. Empty means the
	// current working directory.
	Repository string `yaml:"repository,omitempty"`
}

// fileName is the config file name inside Dir().
const fileName = "config.yaml"

// Load reads config.yaml from the config directory (if present) and applies
// environment variable overrides. A missing file is not an error.
func Load() (Settings, error) {
	var settings Settings

	if dir := Dir(); dir != "" {
		if err := readFile(filepath.Join(dir, fileName), &settings); err != nil {
			return Settings{}, err
		}
	}

	settings.Token = os.Getenv(EnvToken)

	if url := os.Getenv(EnvDashboardURL); url != "" {
		settings.DashboardURL = url
	}

	if raw := os.Getenv(EnvDefaultProject); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid %s value %q: %w", EnvDefaultProject, raw, err)
		}
		settings.DefaultProjectID = id
	}

	return settings, nil
}

// readFile decodes a yaml config file into settings.
// A missing file leaves settings untouched.
func readFile(path string, settings *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}
