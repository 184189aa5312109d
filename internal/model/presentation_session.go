package model

import (
	"time"
)

// PresentationSession is one logical presentation run, identified by a
// client-supplied or server-generated session_id. Created lazily on first
// page view or first gesture log; EndedAt stays null until a client sets it.
type PresentationSession struct {
	UUIDBase
	UserID    *uint  `gorm:"index" json:"user_id"`
	SessionID string `gorm:"size:100;uniqueIndex" json:"session_id"`

	CurrentSlide int  `gorm:"default:0" json:"current_slide"`
	TotalSlides  int  `gorm:"default:0" json:"total_slides"`
	IsFullscreen bool `gorm:"default:false" json:"is_fullscreen"`
	IsPresenting bool `gorm:"default:false" json:"is_presenting"`

	AvgLatencyMs float64 `gorm:"default:0" json:"avg_latency_ms"`
	GestureCount int     `gorm:"default:0" json:"gesture_count"`

	StartedAt    time.Time  `gorm:"autoCreateTime" json:"started_at"`
	LastActivity time.Time  `gorm:"autoUpdateTime" json:"last_activity"`
	EndedAt      *time.Time `json:"ended_at"`
}

func (PresentationSession) TableName() string {
	return "presentation_sessions"
}

// Duration returns the session length in seconds: until EndedAt when the
// session was closed, otherwise until the last recorded activity.
func (s *PresentationSession) Duration() float64 {
	if s.EndedAt != nil {
		return s.EndedAt.Sub(s.StartedAt).Seconds()
	}
	return s.LastActivity.Sub(s.StartedAt).Seconds()
}
