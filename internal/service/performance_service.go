package service

import (
	"errors"

	"gesture_presentation_backend/internal/model"
	"gesture_presentation_backend/internal/repository"
	"gesture_presentation_backend/internal/util"

	"gorm.io/gorm"
)

type PerformanceService struct {
	PerformanceRepo *repository.PerformanceRepository
	SessionRepo     *repository.SessionRepository
}

func NewPerformanceService(performanceRepo *repository.PerformanceRepository, sessionRepo *repository.SessionRepository) *PerformanceService {
	return &PerformanceService{
		PerformanceRepo: performanceRepo,
		SessionRepo:     sessionRepo,
	}
}

// RecordInput is one performance sample keyed by the public session_id.
type RecordInput struct {
	SessionID      string
	FPS            float64
	LatencyMs      float64
	CPUUsage       *float64
	MemoryUsageMB  *float64
	FalsePositives int
	FalseNegatives int
	TruePositives  int
}

// Record stores a sample against an existing session; a sample for an
// unknown session_id is rejected, unlike gesture logs.
func (s *PerformanceService) Record(in *RecordInput) (*model.SystemPerformance, error) {
	session, err := s.SessionRepo.FindBySessionID(in.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	sample := &model.SystemPerformance{
		SessionID:      session.ID,
		FPS:            in.FPS,
		LatencyMs:      in.LatencyMs,
		CPUUsage:       in.CPUUsage,
		MemoryUsageMB:  in.MemoryUsageMB,
		FalsePositives: in.FalsePositives,
		FalseNegatives: in.FalseNegatives,
		TruePositives:  in.TruePositives,
	}
	if err := s.PerformanceRepo.Create(sample); err != nil {
		return nil, err
	}
	return sample, nil
}

func (s *PerformanceService) ListForSession(sessionID string) ([]model.SystemPerformance, error) {
	session, err := s.SessionRepo.FindBySessionID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	return s.PerformanceRepo.ListForSession(session.ID)
}
