package controller

import (
	"net/http"
	"testing"

	"gesture_presentation_backend/internal/model"
	"gesture_presentation_backend/internal/repository"
	"gesture_presentation_backend/internal/service"
	"gesture_presentation_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func newPerformanceTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	ctrl := NewPerformanceController(service.NewPerformanceService(
		repository.NewPerformanceRepository(db),
		repository.NewSessionRepository(db),
	))

	router := gin.New()
	router.POST("/api/performance/", ctrl.Record)
	router.GET("/api/performance/", ctrl.List)
	return router, db
}

func TestRecordPerformance(t *testing.T) {
	router, db := newPerformanceTestServer(t)

	if err := db.Create(&model.PresentationSession{SessionID: "perf-sess"}).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}

	w := testutil.DoJSON(t, router, http.MethodPost, "/api/performance/", map[string]interface{}{
		"session_id":      "perf-sess",
		"fps":             29.5,
		"latency_ms":      72,
		"true_positives":  8,
		"false_positives": 1,
		"false_negatives": 1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp struct {
		Data PerformanceResponse `json:"data"`
	}
	testutil.DecodeJSON(t, w, &resp)
	if resp.Data.FPS != 29.5 {
		t.Errorf("fps = %v, want 29.5", resp.Data.FPS)
	}
	if resp.Data.Accuracy != 0.8 {
		t.Errorf("accuracy = %v, want 0.8", resp.Data.Accuracy)
	}

	var count int64
	if err := db.Model(&model.SystemPerformance{}).Count(&count).Error; err != nil {
		t.Fatalf("count samples: %v", err)
	}
	if count != 1 {
		t.Errorf("sample count = %d, want 1", count)
	}
}

func TestRecordPerformanceUnknownSession(t *testing.T) {
	router, _ := newPerformanceTestServer(t)

	w := testutil.DoJSON(t, router, http.MethodPost, "/api/performance/", map[string]interface{}{
		"session_id": "ghost",
		"fps":        30,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestListPerformance(t *testing.T) {
	router, db := newPerformanceTestServer(t)

	session := &model.PresentationSession{SessionID: "perf-sess"}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	for _, fps := range []float64{24, 30} {
		if err := db.Create(&model.SystemPerformance{SessionID: session.ID, FPS: fps}).Error; err != nil {
			t.Fatalf("seed sample: %v", err)
		}
	}

	t.Run("missing session_id", func(t *testing.T) {
		w := testutil.DoJSON(t, router, http.MethodGet, "/api/performance/", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		w := testutil.DoJSON(t, router, http.MethodGet, "/api/performance/?session_id=ghost", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("samples", func(t *testing.T) {
		w := testutil.DoJSON(t, router, http.MethodGet, "/api/performance/?session_id=perf-sess", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}
		var resp struct {
			Code int                   `json:"code"`
			Data []PerformanceResponse `json:"data"`
		}
		testutil.DecodeJSON(t, w, &resp)
		if resp.Code != 200 {
			t.Errorf("envelope code = %d, want 200", resp.Code)
		}
		if len(resp.Data) != 2 {
			t.Errorf("len(data) = %d, want 2", len(resp.Data))
		}
	})
}
