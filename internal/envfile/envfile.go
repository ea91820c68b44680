// Package envfile applies the worklog env files (.env.local, .env, and the
// config-dir env file) to the process environment. Their main job is carrying
// POVIO_API_TOKEN, which users tend to keep out of shell profiles.
// Variables already present in the environment always win.
package envfile

import (
	"fmt"
	"os"
	"strings"
)

// Load applies KEY=VALUE lines from path to the environment, skipping any
// variable that is already set. A missing file is not an error.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseLine(line)
		if !ok {
			continue
		}
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}

// parseLine extracts KEY=VALUE from one line. Blank lines, comments, and
// anything that is not a plain assignment (no '=', whitespace in the key,
// shell syntax like "export") are skipped.
func parseLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}

	// Values may be quoted for readability; strip one matching pair.
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}

	return key, value, true
}
