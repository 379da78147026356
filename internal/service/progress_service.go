package service

import (
	"sync"
	"triz_edu_backend/internal/grading"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/internal/repository"
	"triz_edu_backend/internal/util"
	"triz_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// ProgressService is the single owner of learner progress. The collection is
// loaded once from storage; afterwards the in-memory copy is authoritative and
// every change is written back as a whole. Storage failures are logged and
// never reach the caller.
type ProgressService struct {
	catalog *repository.CatalogRepository
	storage repository.ProgressStorage

	mu       sync.RWMutex
	progress []model.ModuleProgress
}

func NewProgressService(catalog *repository.CatalogRepository, storage repository.ProgressStorage) *ProgressService {
	return &ProgressService{
		catalog:  catalog,
		storage:  storage,
		progress: storage.Load(),
	}
}

// find returns the index of moduleID's record or -1. Callers hold mu.
func (s *ProgressService) find(moduleID string) int {
	for i := range s.progress {
		if s.progress[i].ModuleID == moduleID {
			return i
		}
	}
	return -1
}

// put replaces moduleID's record, moving it to the end like a fresh write,
// then persists the collection. Callers hold mu for writing.
func (s *ProgressService) put(updated model.ModuleProgress) {
	next := make([]model.ModuleProgress, 0, len(s.progress)+1)
	for _, p := range s.progress {
		if p.ModuleID != updated.ModuleID {
			next = append(next, p)
		}
	}
	next = append(next, updated)
	s.progress = next

	if err := s.storage.Save(s.progress); err != nil {
		logger.Log.Warn("Failed to persist progress",
			zap.String("module", updated.ModuleID),
			zap.Error(err),
		)
	}
}

// SubmitTestAttempt records a graded test attempt and reports whether it
// passed. Best score only grows and completion is never revoked; the
// last-attempt maps are replaced wholesale.
func (s *ProgressService) SubmitTestAttempt(moduleID string, answers map[string]string, results map[string]bool, score, totalQuestions int) (bool, error) {
	mod, ok := s.catalog.FindByID(moduleID)
	if !ok {
		return false, util.ErrModuleNotFound
	}
	passed := grading.DecidePass(score, mod.PassCriteria)

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := model.ModuleProgress{
		ModuleID:           moduleID,
		Completed:          passed,
		BestScore:          score,
		TotalQuestions:     totalQuestions,
		LastAttemptAnswers: copyAnswers(answers),
		LastAttemptResults: copyResults(results),
	}
	if i := s.find(moduleID); i >= 0 {
		existing := s.progress[i]
		updated.Completed = existing.Completed || passed
		updated.BestScore = max(existing.BestScore, score)
		updated.PracticeCompleted = existing.PracticeCompleted
		updated.PracticeAnswers = existing.PracticeAnswers
		updated.PracticeResults = existing.PracticeResults
	}
	if updated.LastAttemptAnswers == nil {
		updated.LastAttemptAnswers = map[string]string{}
	}
	if updated.LastAttemptResults == nil {
		updated.LastAttemptResults = map[string]bool{}
	}

	s.put(updated)
	return passed, nil
}

// SubmitPracticeAttempt marks practice as done and merges answers and results
// key by key into what earlier practice submissions left.
func (s *ProgressService) SubmitPracticeAttempt(moduleID string, answers map[string]string, results map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := model.ModuleProgress{
		ModuleID:           moduleID,
		LastAttemptAnswers: map[string]string{},
	}
	if i := s.find(moduleID); i >= 0 {
		updated = s.progress[i].Clone()
	}

	updated.PracticeCompleted = true
	if updated.PracticeAnswers == nil {
		updated.PracticeAnswers = map[string]string{}
	}
	if updated.PracticeResults == nil {
		updated.PracticeResults = map[string]bool{}
	}
	for k, v := range answers {
		updated.PracticeAnswers[k] = v
	}
	for k, v := range results {
		updated.PracticeResults[k] = v
	}

	s.put(updated)
}

// ResetAttempt forgets the last test attempt so the test can be retaken.
// Completion and best score are kept. Unknown modules are ignored.
func (s *ProgressService) ResetAttempt(moduleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(moduleID)
	if i < 0 {
		return
	}
	updated := s.progress[i].Clone()
	updated.LastAttemptAnswers = map[string]string{}
	updated.LastAttemptResults = nil
	s.put(updated)
}

func (s *ProgressService) GetModuleProgress(moduleID string) (model.ModuleProgress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.find(moduleID)
	if i < 0 {
		return model.ModuleProgress{}, false
	}
	return s.progress[i].Clone(), true
}

// All returns a copy of every record in storage order.
func (s *ProgressService) All() []model.ModuleProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ModuleProgress, 0, len(s.progress))
	for _, p := range s.progress {
		out = append(out, p.Clone())
	}
	return out
}

func (s *ProgressService) IsCompleted(moduleID string) bool {
	p, ok := s.GetModuleProgress(moduleID)
	return ok && p.Completed
}

func (s *ProgressService) IsPracticeCompleted(moduleID string) bool {
	p, ok := s.GetModuleProgress(moduleID)
	return ok && p.PracticeCompleted
}

// IsAvailable applies the gating rule: the first module is always open; any
// other opens once the nearest preceding authored module is completed.
// Placeholder modules never block.
func (s *ProgressService) IsAvailable(moduleID string) bool {
	idx := s.catalog.IndexOf(moduleID)
	if idx < 0 {
		return false
	}
	if idx == 0 {
		return true
	}

	modules := s.catalog.Modules()
	for i := idx - 1; i >= 0; i-- {
		if modules[i].ComingSoon {
			continue
		}
		return s.IsCompleted(modules[i].ID)
	}
	return true
}

// Clear wipes all progress, in memory and in storage.
func (s *ProgressService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress = nil
	if err := s.storage.Clear(); err != nil {
		logger.Log.Warn("Failed to clear progress storage", zap.Error(err))
	}
}

func copyAnswers(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyResults(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
