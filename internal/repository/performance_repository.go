package repository

import (
	"gesture_presentation_backend/internal/model"

	"gorm.io/gorm"
)

type PerformanceRepository struct {
	DB *gorm.DB
}

func NewPerformanceRepository(db *gorm.DB) *PerformanceRepository {
	return &PerformanceRepository{DB: db}
}

func (r *PerformanceRepository) Create(sample *model.SystemPerformance) error {
	return r.DB.Create(sample).Error
}

// ListForSession returns the samples owned by a session row (by primary
// key), newest first.
func (r *PerformanceRepository) ListForSession(sessionRowID string) ([]model.SystemPerformance, error) {
	var samples []model.SystemPerformance
	err := r.DB.Where("session_id = ?", sessionRowID).Order("recorded_at desc").Find(&samples).Error
	return samples, err
}
