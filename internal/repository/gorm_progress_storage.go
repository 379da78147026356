package repository

import (
	"encoding/json"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressRecord is the table row for one module's progress. Answer and
// result maps are stored as JSON text so the schema works on every driver.
type ProgressRecord struct {
	ModuleID           string `gorm:"primaryKey;size:128"`
	Position           int    `gorm:"not null;default:0"`
	Completed          bool   `gorm:"default:false"`
	BestScore          int    `gorm:"default:0"`
	TotalQuestions     int    `gorm:"default:0"`
	LastAttemptAnswers string `gorm:"type:text"`
	LastAttemptResults string `gorm:"type:text"`
	PracticeCompleted  bool   `gorm:"default:false"`
	PracticeAnswers    string `gorm:"type:text"`
	PracticeResults    string `gorm:"type:text"`
}

func (ProgressRecord) TableName() string {
	return "module_progress"
}

type GormProgressStorage struct {
	DB *gorm.DB
}

func NewGormProgressStorage(db *gorm.DB) *GormProgressStorage {
	return &GormProgressStorage{DB: db}
}

func (r *GormProgressStorage) Load() []model.ModuleProgress {
	var records []ProgressRecord
	if err := r.DB.Order("position asc").Find(&records).Error; err != nil {
		logger.Log.Warn("Failed to load progress from database", zap.Error(err))
		return []model.ModuleProgress{}
	}

	progress := make([]model.ModuleProgress, 0, len(records))
	for _, rec := range records {
		progress = append(progress, rec.toModel())
	}
	return progress
}

// Save replaces the whole table inside one transaction.
func (r *GormProgressStorage) Save(progress []model.ModuleProgress) error {
	records := make([]ProgressRecord, 0, len(progress))
	for i, p := range progress {
		records = append(records, toRecord(i, p))
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&ProgressRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

func (r *GormProgressStorage) Clear() error {
	return r.DB.Where("1 = 1").Delete(&ProgressRecord{}).Error
}

func toRecord(position int, p model.ModuleProgress) ProgressRecord {
	return ProgressRecord{
		ModuleID:           p.ModuleID,
		Position:           position,
		Completed:          p.Completed,
		BestScore:          p.BestScore,
		TotalQuestions:     p.TotalQuestions,
		LastAttemptAnswers: marshalMap(p.LastAttemptAnswers),
		LastAttemptResults: marshalMap(p.LastAttemptResults),
		PracticeCompleted:  p.PracticeCompleted,
		PracticeAnswers:    marshalMap(p.PracticeAnswers),
		PracticeResults:    marshalMap(p.PracticeResults),
	}
}

func (rec ProgressRecord) toModel() model.ModuleProgress {
	p := model.ModuleProgress{
		ModuleID:          rec.ModuleID,
		Completed:         rec.Completed,
		BestScore:         rec.BestScore,
		TotalQuestions:    rec.TotalQuestions,
		PracticeCompleted: rec.PracticeCompleted,
	}
	unmarshalMap(rec.LastAttemptAnswers, &p.LastAttemptAnswers)
	unmarshalMap(rec.LastAttemptResults, &p.LastAttemptResults)
	unmarshalMap(rec.PracticeAnswers, &p.PracticeAnswers)
	unmarshalMap(rec.PracticeResults, &p.PracticeResults)
	if p.LastAttemptAnswers == nil {
		p.LastAttemptAnswers = map[string]string{}
	}
	return p
}

// marshalMap encodes nil as "" so an absent map survives a round trip.
func marshalMap[V any](m map[string]V) string {
	if m == nil {
		return ""
	}
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}

func unmarshalMap[V any](raw string, dst *map[string]V) {
	if raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Log.Warn("Discarding unreadable progress column", zap.Error(err))
		*dst = nil
	}
}
