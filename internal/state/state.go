package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"TreeScope/internal/model"
)

// File records which tree the saved plot state came from, so a later
// process can re-render it.
type File struct {
	Source string           `json:"source"`
	Tree   string           `json:"tree"`
	Plot   *model.PlotState `json:"plot"`
}

// Load reads the state from a JSON file. Returns an empty state if the file doesn't exist.
func Load(filePath string) (*File, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, err
	}
	var st File
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", filePath, err)
	}
	return &st, nil
}

// Save writes the state to a JSON file, creating its directory if needed.
func Save(filePath string, st *File) error {
	if st.Plot != nil && st.Plot.UpdatedAt.IsZero() {
		st.Plot.UpdatedAt = time.Now()
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
