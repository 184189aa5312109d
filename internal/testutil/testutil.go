// Package testutil holds the shared pieces of the test suites: an isolated
// in-memory database per test and small HTTP helpers.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gesture_presentation_backend/internal/config"
	"gesture_presentation_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var dbSeq int64

// SetupTestDB opens a fresh in-memory database with the full schema. Each
// call gets its own database; shared cache keeps it alive across the pool's
// connections for the duration of the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.PresentationSession{},
		&model.GestureLog{},
		&model.SystemPerformance{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

// TestConfig returns a config good enough for handler tests: debug on, a
// throwaway signing key, no file targets.
func TestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:  "8000",
			Debug: true,
		},
		JWT: config.JWTConfig{
			Secret:     "test-signing-key",
			ExpireTime: time.Hour,
		},
	}
}

// DoJSON runs one request through the router. A nil body sends no payload;
// anything else is marshalled to JSON. Header pairs are optional
// key-then-value strings.
func DoJSON(t *testing.T, router http.Handler, method, target string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else if raw, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(raw))
	} else {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if len(headers)%2 != 0 {
		t.Fatalf("headers must come in key/value pairs, got %d entries", len(headers))
	}
	for i := 0; i < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// DecodeJSON unmarshals a recorded response body into out.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}
