package repository

import (
	"encoding/json"
	"sync"
	"time"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// storageTimeout bounds every call a backend makes to its remote store.
const storageTimeout = 5 * time.Second

// ProgressStorage persists the full progress collection as one unit.
// Load never fails: missing or unreadable data yields an empty collection.
type ProgressStorage interface {
	Load() []model.ModuleProgress
	Save(progress []model.ModuleProgress) error
	Clear() error
}

// MemoryProgressStorage keeps the collection in process memory.
type MemoryProgressStorage struct {
	mu       sync.Mutex
	progress []model.ModuleProgress
}

func NewMemoryProgressStorage() *MemoryProgressStorage {
	return &MemoryProgressStorage{}
}

func (s *MemoryProgressStorage) Load() []model.ModuleProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.progress)
}

func (s *MemoryProgressStorage) Save(progress []model.ModuleProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = cloneAll(progress)
	return nil
}

func (s *MemoryProgressStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = nil
	return nil
}

func cloneAll(progress []model.ModuleProgress) []model.ModuleProgress {
	out := make([]model.ModuleProgress, 0, len(progress))
	for _, p := range progress {
		out = append(out, p.Clone())
	}
	return out
}

// encodeProgress and decodeProgress define the JSON blob shared by the
// redis and minio backends.
func encodeProgress(progress []model.ModuleProgress) ([]byte, error) {
	if progress == nil {
		progress = []model.ModuleProgress{}
	}
	return json.Marshal(progress)
}

func decodeProgress(backend string, raw []byte) []model.ModuleProgress {
	if len(raw) == 0 {
		return []model.ModuleProgress{}
	}
	var progress []model.ModuleProgress
	if err := json.Unmarshal(raw, &progress); err != nil {
		logger.Log.Warn("Discarding unreadable progress data",
			zap.String("backend", backend),
			zap.Error(err),
		)
		return []model.ModuleProgress{}
	}
	return progress
}
