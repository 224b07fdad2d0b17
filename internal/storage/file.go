package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"github.com/supplysift/supplysift/internal/types"
)

// FileStore appends confirmed records to a JSON-lines file. It backs the
// confirm endpoint when MongoDB is not configured.
type FileStore struct {
	mu     sync.Mutex
	file   *os.File
	enc    *json.Encoder
	logger *slog.Logger
}

// NewFileStore opens (or creates) the JSON-lines file at path.
func NewFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, &types.StorageError{Backend: "file", Err: err}
	}
	return &FileStore{
		file:   f,
		enc:    json.NewEncoder(f),
		logger: logger.With("component", "file_store"),
	}, nil
}

func (s *FileStore) Name() string { return "file" }

// Save appends the record as one JSON line. File mode cannot upsert; history
// is append-only and the latest line for a SKU wins downstream.
func (s *FileStore) Save(_ context.Context, record *types.ProductRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(record); err != nil {
		return &types.StorageError{Backend: "file", Err: err}
	}
	s.logger.Debug("product saved", "sku", record.SKU)
	return nil
}

func (s *FileStore) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
