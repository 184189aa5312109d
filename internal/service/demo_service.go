package service

import (
	"errors"
	"math/rand"
	"time"

	"gesture_presentation_backend/internal/model"
	"gesture_presentation_backend/internal/repository"
	"gesture_presentation_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const DemoSessionID = "demo-session-001"

// DemoService seeds a demo user, a demo session and a batch of random
// gesture logs, for showing the dashboard against non-empty tables.
type DemoService struct {
	UserRepo    *repository.UserRepository
	SessionRepo *repository.SessionRepository
	GestureRepo *repository.GestureLogRepository
}

func NewDemoService(userRepo *repository.UserRepository, sessionRepo *repository.SessionRepository, gestureRepo *repository.GestureLogRepository) *DemoService {
	return &DemoService{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		GestureRepo: gestureRepo,
	}
}

func (s *DemoService) Setup() error {
	user, err := s.ensureDemoUser()
	if err != nil {
		return err
	}

	session, err := s.ensureDemoSession(user)
	if err != nil {
		return err
	}

	gestures := []model.GestureType{
		model.GestureThumbsUp,
		model.GestureFist,
		model.GestureOpenPalm,
		model.GestureVictory,
		model.GestureOK,
	}
	browsers := []string{"Chrome", "Firefox", "Safari"}
	resolutions := []string{"1920x1080", "1440x900", "1366x768"}

	for i := 0; i < 50; i++ {
		log := &model.GestureLog{
			UserID:                &user.ID,
			SessionID:             session.SessionID,
			GestureType:           gestures[rand.Intn(len(gestures))],
			Confidence:            0.7 + rand.Float64()*0.28,
			FrameCount:            5 + rand.Intn(6),
			DetectionTimeMs:       50 + rand.Float64()*70,
			FrameProcessingTimeMs: 10 + rand.Float64()*20,
			Browser:               browsers[rand.Intn(len(browsers))],
			ScreenResolution:      resolutions[rand.Intn(len(resolutions))],
			CreatedAt:             time.Now().Add(-time.Duration(rand.Intn(61)) * time.Minute),
		}
		if err := s.GestureRepo.Create(log); err != nil {
			return err
		}
	}

	session.GestureCount = 50
	if err := s.SessionRepo.Save(session); err != nil {
		return err
	}

	logger.Log.Info("demo data ready")
	return nil
}

func (s *DemoService) ensureDemoUser() (*model.User, error) {
	user, err := s.UserRepo.FindByEmail("demo@example.com")
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = &model.User{
		Name:     "demo",
		Email:    "demo@example.com",
		Password: string(hashed),
		IsStaff:  true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *DemoService) ensureDemoSession(user *model.User) (*model.PresentationSession, error) {
	session, err := s.SessionRepo.FindBySessionID(DemoSessionID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session = &model.PresentationSession{
		SessionID:    DemoSessionID,
		UserID:       &user.ID,
		TotalSlides:  5,
		IsPresenting: true,
		AvgLatencyMs: 85.5,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}
