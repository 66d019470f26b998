// Package archive persists raw timesheet responses as human-readable
// JSON, one file per pay period.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agmlego/novatime/internal/timesheet"
)

// BaseDir returns the archive directory (~/.novatime/pay).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".novatime", "pay"), nil
}

// filePath keys the archive by the pay period's canonical string form;
// external tooling depends on that exact name.
func filePath(base string, period timesheet.DatePeriod) string {
	return filepath.Join(base, period.String()+".json")
}

// Save atomically writes a raw timesheet response for a pay period.
func Save(base string, period timesheet.DatePeriod, payload any) error {
	path := filePath(base, period)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("archive error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("archive error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("archive error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("archive error renaming temp file: %w", err)
	}
	return nil
}

// Load reads a previously archived response. A missing archive returns
// os.ErrNotExist; a corrupt one is backed up and reported.
func Load(base string, period timesheet.DatePeriod) (map[string]any, error) {
	path := filePath(base, period)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return nil, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return payload, nil
}

// List returns the archived pay-period keys, oldest first.
func List(base string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("archive error listing %s: %w", base, err)
	}
	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}
