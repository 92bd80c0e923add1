package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"plgrader/internal/domain"
)

// JSONStorage stores a report in a JSON file
type JSONStorage struct {
	path string
}

// NewJSONStorage returns a Storage that reads/writes the report at path
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Save writes the report as indented JSON
func (s *JSONStorage) Save(report *domain.GradeReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Load reads a report saved by Save or printed by the grade command
func (s *JSONStorage) Load() (*domain.GradeReport, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	var report domain.GradeReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &report, nil
}
