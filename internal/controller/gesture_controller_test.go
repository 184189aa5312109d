package controller

import (
	"math"
	"net/http"
	"testing"
	"time"

	"gesture_presentation_backend/internal/config"
	"gesture_presentation_backend/internal/middleware"
	"gesture_presentation_backend/internal/model"
	"gesture_presentation_backend/internal/repository"
	"gesture_presentation_backend/internal/service"
	"gesture_presentation_backend/internal/testutil"
	"gesture_presentation_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func newGestureTestServer(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()

	gestureRepo := repository.NewGestureLogRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	ctrl := NewGestureController(service.NewGestureService(gestureRepo, sessionRepo))

	router := gin.New()
	router.POST("/api/log-gesture/", middleware.TryAuthMiddleware(cfg), ctrl.LogGesture)

	authorized := router.Group("/api", middleware.AuthMiddleware(cfg))
	authorized.GET("/gesture-logs/", ctrl.List)
	authorized.GET("/gesture-logs/session_stats/", ctrl.SessionStats)

	return router, db, cfg
}

func authToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := util.GenerateJWT(&model.User{ID: 1, Email: "tester@example.com"}, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

func TestLogGestureStoresEventAndBumpsSession(t *testing.T) {
	router, db, _ := newGestureTestServer(t)

	session := &model.PresentationSession{SessionID: "sess-1"}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	origActivity := session.LastActivity

	w := testutil.DoJSON(t, router, http.MethodPost, "/api/log-gesture/", map[string]interface{}{
		"session_id":               "sess-1",
		"gesture_type":             "thumbs_up",
		"confidence":               0.93,
		"frame_count":              7,
		"hand_x":                   0.41,
		"hand_y":                   0.58,
		"detection_time_ms":        64.5,
		"frame_processing_time_ms": 12.25,
		"browser":                  "Chrome",
		"screen_resolution":        "1920x1080",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Status string `json:"status"`
		LogID  string `json:"log_id"`
	}
	testutil.DecodeJSON(t, w, &resp)
	if resp.Status != "success" {
		t.Errorf("status field = %q, want %q", resp.Status, "success")
	}
	if resp.LogID == "" {
		t.Error("log_id is empty")
	}

	var log model.GestureLog
	if err := db.First(&log, "id = ?", resp.LogID).Error; err != nil {
		t.Fatalf("stored log not found: %v", err)
	}
	if log.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want %q", log.SessionID, "sess-1")
	}
	if log.GestureType != model.GestureThumbsUp {
		t.Errorf("GestureType = %q, want %q", log.GestureType, model.GestureThumbsUp)
	}
	if log.Confidence != 0.93 {
		t.Errorf("Confidence = %v, want 0.93", log.Confidence)
	}
	if log.FrameCount != 7 {
		t.Errorf("FrameCount = %d, want 7", log.FrameCount)
	}
	if log.HandX == nil || *log.HandX != 0.41 {
		t.Errorf("HandX = %v, want 0.41", log.HandX)
	}
	if log.HandZ != nil {
		t.Errorf("HandZ = %v, want nil for omitted coordinate", *log.HandZ)
	}

	var updated model.PresentationSession
	if err := db.First(&updated, "session_id = ?", "sess-1").Error; err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if updated.GestureCount != 1 {
		t.Errorf("GestureCount = %d, want 1", updated.GestureCount)
	}
	if updated.LastActivity.Before(origActivity) {
		t.Errorf("LastActivity moved backwards: %v -> %v", origActivity, updated.LastActivity)
	}
}

func TestLogGestureDefaults(t *testing.T) {
	router, db, _ := newGestureTestServer(t)

	w := testutil.DoJSON(t, router, http.MethodPost, "/api/log-gesture/", map[string]interface{}{})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		LogID string `json:"log_id"`
	}
	testutil.DecodeJSON(t, w, &resp)

	var log model.GestureLog
	if err := db.First(&log, "id = ?", resp.LogID).Error; err != nil {
		t.Fatalf("stored log not found: %v", err)
	}
	if log.SessionID != "anonymous" {
		t.Errorf("SessionID = %q, want %q", log.SessionID, "anonymous")
	}
	if log.GestureType != model.GestureUnknown {
		t.Errorf("GestureType = %q, want %q", log.GestureType, model.GestureUnknown)
	}
	if log.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", log.Confidence)
	}
	if log.FrameCount != 1 {
		t.Errorf("FrameCount = %d, want 1", log.FrameCount)
	}
	if log.UserID != nil {
		t.Errorf("UserID = %v, want nil for anonymous request", *log.UserID)
	}
}

func TestLogGestureUnknownSessionIsNotFatal(t *testing.T) {
	router, db, _ := newGestureTestServer(t)

	session := &model.PresentationSession{SessionID: "other"}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}

	w := testutil.DoJSON(t, router, http.MethodPost, "/api/log-gesture/", map[string]interface{}{
		"session_id": "nobody-home",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}

	var count int64
	if err := db.Model(&model.GestureLog{}).Count(&count).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 1 {
		t.Errorf("log count = %d, want 1", count)
	}

	var untouched model.PresentationSession
	if err := db.First(&untouched, "session_id = ?", "other").Error; err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if untouched.GestureCount != 0 {
		t.Errorf("GestureCount = %d, want 0 for an unrelated session", untouched.GestureCount)
	}
}

func TestLogGestureInvalidJSON(t *testing.T) {
	router, db, _ := newGestureTestServer(t)

	w := testutil.DoJSON(t, router, http.MethodPost, "/api/log-gesture/", `{"gesture_type": `)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp map[string]string
	testutil.DecodeJSON(t, w, &resp)
	if resp["status"] != "error" || resp["message"] != "Invalid JSON" {
		t.Errorf("body = %v, want status=error message=Invalid JSON", resp)
	}

	var count int64
	if err := db.Model(&model.GestureLog{}).Count(&count).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 0 {
		t.Errorf("log count = %d, want 0 after rejected body", count)
	}
}

func TestSessionStats(t *testing.T) {
	router, db, cfg := newGestureTestServer(t)
	token := authToken(t, cfg)

	seed := []struct {
		gesture    model.GestureType
		confidence float64
		detection  float64
	}{
		{model.GestureThumbsUp, 0.9, 60},
		{model.GestureThumbsUp, 0.8, 80},
		{model.GestureFist, 0.7, 100},
	}
	for _, s := range seed {
		log := &model.GestureLog{
			SessionID:       "stats-sess",
			GestureType:     s.gesture,
			Confidence:      s.confidence,
			DetectionTimeMs: s.detection,
			FrameCount:      1,
		}
		if err := db.Create(log).Error; err != nil {
			t.Fatalf("seed log: %v", err)
		}
	}

	t.Run("missing session_id", func(t *testing.T) {
		w := testutil.DoJSON(t, router, http.MethodGet, "/api/gesture-logs/session_stats/", nil, "Authorization", token)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		var resp map[string]string
		testutil.DecodeJSON(t, w, &resp)
		if resp["error"] != "session_id required" {
			t.Errorf("error = %q, want %q", resp["error"], "session_id required")
		}
	})

	t.Run("empty session", func(t *testing.T) {
		w := testutil.DoJSON(t, router, http.MethodGet, "/api/gesture-logs/session_stats/?session_id=empty", nil, "Authorization", token)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		var stats service.SessionStats
		testutil.DecodeJSON(t, w, &stats)
		if stats.TotalGestures != 0 || stats.AvgConfidence != 0 || stats.AvgLatency != 0 {
			t.Errorf("stats = %+v, want all zeroes", stats)
		}
		if stats.GestureTypes == nil || len(stats.GestureTypes) != 0 {
			t.Errorf("GestureTypes = %v, want empty map", stats.GestureTypes)
		}
	})

	t.Run("aggregates", func(t *testing.T) {
		w := testutil.DoJSON(t, router, http.MethodGet, "/api/gesture-logs/session_stats/?session_id=stats-sess", nil, "Authorization", token)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		var stats service.SessionStats
		testutil.DecodeJSON(t, w, &stats)

		if stats.TotalGestures != 3 {
			t.Errorf("TotalGestures = %d, want 3", stats.TotalGestures)
		}
		if stats.GestureTypes["thumbs_up"] != 2 || stats.GestureTypes["fist"] != 1 {
			t.Errorf("GestureTypes = %v, want thumbs_up:2 fist:1", stats.GestureTypes)
		}
		if math.Abs(stats.AvgConfidence-0.8) > 1e-9 {
			t.Errorf("AvgConfidence = %v, want 0.8", stats.AvgConfidence)
		}
		if math.Abs(stats.AvgLatency-80) > 1e-9 {
			t.Errorf("AvgLatency = %v, want 80", stats.AvgLatency)
		}
	})
}

func TestGestureLogsRequireAuth(t *testing.T) {
	router, db, cfg := newGestureTestServer(t)

	if err := db.Create(&model.GestureLog{SessionID: "s", GestureType: model.GestureFist, FrameCount: 1}).Error; err != nil {
		t.Fatalf("seed log: %v", err)
	}

	w := testutil.DoJSON(t, router, http.MethodGet, "/api/gesture-logs/", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	w = testutil.DoJSON(t, router, http.MethodGet, "/api/gesture-logs/", nil, "Authorization", authToken(t, cfg))
	if w.Code != http.StatusOK {
		t.Errorf("authenticated status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestLogGestureListNewestFirst(t *testing.T) {
	router, db, cfg := newGestureTestServer(t)
	token := authToken(t, cfg)

	old := &model.GestureLog{SessionID: "s", GestureType: model.GestureFist, FrameCount: 1, CreatedAt: time.Now().Add(-time.Hour)}
	recent := &model.GestureLog{SessionID: "s", GestureType: model.GestureVictory, FrameCount: 1, CreatedAt: time.Now()}
	for _, log := range []*model.GestureLog{old, recent} {
		if err := db.Create(log).Error; err != nil {
			t.Fatalf("seed log: %v", err)
		}
	}

	w := testutil.DoJSON(t, router, http.MethodGet, "/api/gesture-logs/", nil, "Authorization", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Data []model.GestureLog `json:"data"`
	}
	testutil.DecodeJSON(t, w, &resp)
	if len(resp.Data) != 2 {
		t.Fatalf("len(data) = %d, want 2", len(resp.Data))
	}
	if resp.Data[0].ID != recent.ID {
		t.Errorf("first entry = %s, want the most recent log %s", resp.Data[0].ID, recent.ID)
	}
}
