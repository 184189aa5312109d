package repository

import (
	"gesture_presentation_backend/internal/model"

	"gorm.io/gorm"
)

type GestureLogRepository struct {
	DB *gorm.DB
}

func NewGestureLogRepository(db *gorm.DB) *GestureLogRepository {
	return &GestureLogRepository{DB: db}
}

func (r *GestureLogRepository) Create(log *model.GestureLog) error {
	return r.DB.Create(log).Error
}

func (r *GestureLogRepository) FindByID(id string) (*model.GestureLog, error) {
	var log model.GestureLog
	err := r.DB.First(&log, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// ListNewestFirst returns every log, newest first. The resource has no
// pagination.
func (r *GestureLogRepository) ListNewestFirst() ([]model.GestureLog, error) {
	var logs []model.GestureLog
	err := r.DB.Order("created_at desc").Find(&logs).Error
	return logs, err
}

// FindBySession returns all logs for one session_id; the stats reduction
// runs over these rows in memory.
func (r *GestureLogRepository) FindBySession(sessionID string) ([]model.GestureLog, error) {
	var logs []model.GestureLog
	err := r.DB.Where("session_id = ?", sessionID).Order("created_at desc").Find(&logs).Error
	return logs, err
}

func (r *GestureLogRepository) Save(log *model.GestureLog) error {
	return r.DB.Save(log).Error
}

func (r *GestureLogRepository) Delete(id string) error {
	return r.DB.Delete(&model.GestureLog{}, "id = ?", id).Error
}
