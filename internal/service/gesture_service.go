package service

import (
	"gesture_presentation_backend/internal/model"
	"gesture_presentation_backend/internal/repository"
	"gesture_presentation_backend/pkg/logger"

	"go.uber.org/zap"
)

type GestureService struct {
	GestureRepo *repository.GestureLogRepository
	SessionRepo *repository.SessionRepository
}

func NewGestureService(gestureRepo *repository.GestureLogRepository, sessionRepo *repository.SessionRepository) *GestureService {
	return &GestureService{
		GestureRepo: gestureRepo,
		SessionRepo: sessionRepo,
	}
}

// LogGestureInput carries the optional fields of one detection event as the
// client sent them. Nil means the field was absent and takes its default.
type LogGestureInput struct {
	SessionID             *string
	GestureType           *string
	Confidence            *float64
	FrameCount            *int
	HandX                 *float64
	HandY                 *float64
	HandZ                 *float64
	DetectionTimeMs       *float64
	FrameProcessingTimeMs *float64
	Browser               *string
	ScreenResolution      *string

	UserAgent string
	UserID    *uint
}

// LogGesture inserts one gesture log, filling documented defaults for every
// omitted field, then best-effort bumps the matching session's counters. A
// session_id with no session is not an error; the bump only happens when the
// client actually sent a session_id, matching how a missing field never
// matches any session.
func (s *GestureService) LogGesture(in *LogGestureInput) (*model.GestureLog, error) {
	log := &model.GestureLog{
		UserID:                in.UserID,
		SessionID:             stringOr(in.SessionID, "anonymous"),
		GestureType:           model.GestureType(stringOr(in.GestureType, string(model.GestureUnknown))),
		Confidence:            floatOr(in.Confidence, 0.0),
		FrameCount:            intOr(in.FrameCount, 1),
		HandX:                 in.HandX,
		HandY:                 in.HandY,
		HandZ:                 in.HandZ,
		DetectionTimeMs:       floatOr(in.DetectionTimeMs, 0.0),
		FrameProcessingTimeMs: floatOr(in.FrameProcessingTimeMs, 0.0),
		Browser:               stringOr(in.Browser, ""),
		UserAgent:             in.UserAgent,
		ScreenResolution:      stringOr(in.ScreenResolution, ""),
	}

	if err := s.GestureRepo.Create(log); err != nil {
		return nil, err
	}

	if in.SessionID != nil {
		if _, err := s.SessionRepo.RecordGesture(*in.SessionID); err != nil {
			logger.Log.Warn("session update after gesture log failed",
				zap.String("session_id", *in.SessionID),
				zap.Error(err),
			)
		}
	}

	return log, nil
}

// SessionStats is the aggregate the stats endpoint returns. Zero values and
// an empty type map when the session has no logs.
type SessionStats struct {
	TotalGestures int            `json:"total_gestures"`
	GestureTypes  map[string]int `json:"gesture_types"`
	AvgConfidence float64        `json:"avg_confidence"`
	AvgLatency    float64        `json:"avg_latency"`
}

// SessionStats scans every log of the session and reduces in memory: total
// count, per-type occurrence counts, and the arithmetic means of confidence
// and detection time. Deliberately a full scan per request.
func (s *GestureService) SessionStats(sessionID string) (*SessionStats, error) {
	logs, err := s.GestureRepo.FindBySession(sessionID)
	if err != nil {
		return nil, err
	}

	stats := &SessionStats{
		GestureTypes: map[string]int{},
	}

	total := len(logs)
	stats.TotalGestures = total
	if total == 0 {
		return stats, nil
	}

	var confidenceSum, latencySum float64
	for _, log := range logs {
		stats.GestureTypes[string(log.GestureType)]++
		confidenceSum += log.Confidence
		latencySum += log.DetectionTimeMs
	}
	stats.AvgConfidence = confidenceSum / float64(total)
	stats.AvgLatency = latencySum / float64(total)

	return stats, nil
}

func (s *GestureService) List() ([]model.GestureLog, error) {
	return s.GestureRepo.ListNewestFirst()
}

func (s *GestureService) Get(id string) (*model.GestureLog, error) {
	return s.GestureRepo.FindByID(id)
}

func (s *GestureService) Update(log *model.GestureLog) error {
	return s.GestureRepo.Save(log)
}

func (s *GestureService) Delete(id string) error {
	return s.GestureRepo.Delete(id)
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
