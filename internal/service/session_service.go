package service

import (
	"errors"

	"gesture_presentation_backend/internal/model"
	"gesture_presentation_backend/internal/repository"
	"gesture_presentation_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type SessionService struct {
	SessionRepo *repository.SessionRepository
}

func NewSessionService(sessionRepo *repository.SessionRepository) *SessionService {
	return &SessionService{SessionRepo: sessionRepo}
}

// GetOrCreate fetches the session with this session_id, creating it when
// absent. The user is only attached on creation; an existing session keeps
// whatever owner it has. Returns whether a row was created.
func (s *SessionService) GetOrCreate(sessionID string, userID *uint) (*model.PresentationSession, bool, error) {
	session, err := s.SessionRepo.FindBySessionID(sessionID)
	if err == nil {
		return session, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	session = &model.PresentationSession{
		SessionID: sessionID,
		UserID:    userID,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, false, err
	}
	monitoring.SessionCounter.Inc()
	return session, true, nil
}

func (s *SessionService) List() ([]model.PresentationSession, error) {
	return s.SessionRepo.ListNewestFirst()
}

func (s *SessionService) Get(id string) (*model.PresentationSession, error) {
	return s.SessionRepo.FindByID(id)
}
