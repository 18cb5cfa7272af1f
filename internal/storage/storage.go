package storage

import (
	"errors"

	"jtr/internal/config"
	"jtr/internal/domain"
)

// ErrNoPreviousRun is returned by Load when nothing has been run yet
var ErrNoPreviousRun = errors.New("no previous run recorded")

// Storage persists the previous run so it can be replayed
type Storage interface {
	Save(result domain.RunResult, counts domain.TestCounts) error
	Load() (*domain.RunRecord, error)
}

// JSONStorage stores the previous run in a JSON file under the project
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's state path
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
