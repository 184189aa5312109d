package service

import (
	"testing"

	"gesture_presentation_backend/internal/model"
	"gesture_presentation_backend/internal/repository"
	"gesture_presentation_backend/internal/testutil"
)

func newDemoService(t *testing.T) (*DemoService, *repository.UserRepository, *repository.SessionRepository, *repository.GestureLogRepository) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	gestureRepo := repository.NewGestureLogRepository(db)
	return NewDemoService(userRepo, sessionRepo, gestureRepo), userRepo, sessionRepo, gestureRepo
}

func TestDemoSetup(t *testing.T) {
	svc, userRepo, sessionRepo, _ := newDemoService(t)

	if err := svc.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	user, err := userRepo.FindByEmail("demo@example.com")
	if err != nil {
		t.Fatalf("demo user missing: %v", err)
	}
	if !user.IsStaff {
		t.Error("demo user should be staff")
	}

	session, err := sessionRepo.FindBySessionID(DemoSessionID)
	if err != nil {
		t.Fatalf("demo session missing: %v", err)
	}
	if session.TotalSlides != 5 {
		t.Errorf("TotalSlides = %d, want 5", session.TotalSlides)
	}
	if !session.IsPresenting {
		t.Error("demo session should be presenting")
	}
	if session.GestureCount != 50 {
		t.Errorf("GestureCount = %d, want 50", session.GestureCount)
	}

	db := sessionRepo.DB
	var logCount int64
	if err := db.Model(&model.GestureLog{}).Where("session_id = ?", DemoSessionID).Count(&logCount).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if logCount != 50 {
		t.Errorf("log count = %d, want 50", logCount)
	}

	var outOfRange int64
	if err := db.Model(&model.GestureLog{}).
		Where("session_id = ? AND (confidence < 0.7 OR confidence > 0.98)", DemoSessionID).
		Count(&outOfRange).Error; err != nil {
		t.Fatalf("count out-of-range confidences: %v", err)
	}
	if outOfRange != 0 {
		t.Errorf("%d seeded logs have confidence outside 0.7..0.98", outOfRange)
	}
}

func TestDemoSetupReuseExistingRows(t *testing.T) {
	svc, _, sessionRepo, _ := newDemoService(t)

	if err := svc.Setup(); err != nil {
		t.Fatalf("first Setup: %v", err)
	}
	if err := svc.Setup(); err != nil {
		t.Fatalf("second Setup: %v", err)
	}

	db := sessionRepo.DB
	var users int64
	if err := db.Model(&model.User{}).Where("email = ?", "demo@example.com").Count(&users).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 1 {
		t.Errorf("demo user count = %d, want 1", users)
	}

	var sessions int64
	if err := db.Model(&model.PresentationSession{}).Where("session_id = ?", DemoSessionID).Count(&sessions).Error; err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if sessions != 1 {
		t.Errorf("demo session count = %d, want 1", sessions)
	}
}
