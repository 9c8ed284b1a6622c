package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlexZinkM/aptos-gifts/internal/model"
)

// ErrNoRecord is returned by Read when no deployment has been recorded yet
var ErrNoRecord = errors.New("no deployment record")

// Write persists the record at path, replacing any previous record.
// The file is written next to the target and renamed into place.
func Write(path string, rec *model.DeploymentRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployment record: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp record: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write deployment record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write deployment record: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to chmod deployment record: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace deployment record: %w", err)
	}
	return nil
}

// Read loads the record at path
func Read(path string) (*model.DeploymentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoRecord
		}
		return nil, fmt.Errorf("failed to read deployment record: %w", err)
	}

	var rec model.DeploymentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deployment record: %w", err)
	}
	return &rec, nil
}
