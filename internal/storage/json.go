package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jtr/internal/domain"
)

// Save records result as the previous run
func (s *JSONStorage) Save(result domain.RunResult, counts domain.TestCounts) error {
	record := domain.RunRecord{
		Command:   result.Command,
		ExitCode:  result.ExitCode,
		Detached:  result.Detached,
		Counts:    counts,
		Duration:  result.Duration.String(),
		Timestamp: time.Now().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}

	path := s.cfg.GetStatePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write run record: %w", err)
	}
	return nil
}

// Load reads the previous run. Returns ErrNoPreviousRun when there is none.
func (s *JSONStorage) Load() (*domain.RunRecord, error) {
	path := s.cfg.GetStatePath()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoPreviousRun
	}
	if err != nil {
		return nil, fmt.Errorf("read run record: %w", err)
	}

	var record domain.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse run record %s: %w", path, err)
	}
	if record.Command.Line == "" {
		return nil, fmt.Errorf("run record %s has no command", path)
	}
	return &record, nil
}
