package model

import (
	"time"
)

type GestureType string

const (
	GestureThumbsUp GestureType = "thumbs_up"
	GestureFist     GestureType = "fist"
	GestureOpenPalm GestureType = "open_palm"
	GestureVictory  GestureType = "victory"
	GestureOK       GestureType = "ok"
	GestureUnknown  GestureType = "unknown"
)

// KnownGestureTypes are the gesture classes the client-side detector reports.
// Anything else is stored as-is; confidence is conceptually in [0,1] but the
// detector owns that contract, not this service.
var KnownGestureTypes = []GestureType{
	GestureThumbsUp,
	GestureFist,
	GestureOpenPalm,
	GestureVictory,
	GestureOK,
	GestureUnknown,
}

// GestureLog is one client-reported gesture detection event. Rows are written
// once by the ingestion endpoint (or the demo seeder) and are immutable as far
// as the application itself is concerned.
type GestureLog struct {
	UUIDBase
	UserID    *uint  `gorm:"index" json:"user_id"`
	SessionID string `gorm:"size:100;index;index:idx_gesture_logs_session_created,priority:1" json:"session_id"`

	GestureType GestureType `gorm:"size:50;index:idx_gesture_logs_type_created,priority:1" json:"gesture_type"`

	Confidence float64 `gorm:"default:0" json:"confidence"`
	FrameCount int     `gorm:"default:0" json:"frame_count"`

	// Normalized hand position, 0-1. Absent when the detector did not report it.
	HandX *float64 `json:"hand_x"`
	HandY *float64 `json:"hand_y"`
	HandZ *float64 `json:"hand_z"`

	DetectionTimeMs       float64 `gorm:"default:0" json:"detection_time_ms"`
	FrameProcessingTimeMs float64 `gorm:"default:0" json:"frame_processing_time_ms"`

	Browser          string `gorm:"size:100" json:"browser"`
	UserAgent        string `gorm:"type:text" json:"user_agent"`
	ScreenResolution string `gorm:"size:50" json:"screen_resolution"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_gesture_logs_session_created,priority:2;index:idx_gesture_logs_type_created,priority:2" json:"created_at"`
}

func (GestureLog) TableName() string {
	return "gesture_logs"
}
