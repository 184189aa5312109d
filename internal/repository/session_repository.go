package repository

import (
	"time"

	"gesture_presentation_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.PresentationSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByID(id string) (*model.PresentationSession, error) {
	var session model.PresentationSession
	err := r.DB.First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) FindBySessionID(sessionID string) (*model.PresentationSession, error) {
	var session model.PresentationSession
	err := r.DB.First(&session, "session_id = ?", sessionID).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) ListNewestFirst() ([]model.PresentationSession, error) {
	var sessions []model.PresentationSession
	err := r.DB.Order("started_at desc").Find(&sessions).Error
	return sessions, err
}

// RecordGesture bumps gesture_count and last_activity for the session with
// the given session_id in one statement. Returns the number of rows touched;
// zero means no such session, which callers treat as non-fatal.
func (r *SessionRepository) RecordGesture(sessionID string) (int64, error) {
	res := r.DB.Model(&model.PresentationSession{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"gesture_count": gorm.Expr("gesture_count + ?", 1),
			"last_activity": time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *SessionRepository) Save(session *model.PresentationSession) error {
	return r.DB.Save(session).Error
}
