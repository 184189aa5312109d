package model

import (
	"time"
)

// SystemPerformance is one performance sample reported for a session.
// Rows are removed together with their owning session.
type SystemPerformance struct {
	UUIDBase
	SessionID string               `gorm:"type:varchar(36);index" json:"session_id"`
	Session   *PresentationSession `gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	FPS       float64 `gorm:"column:fps;default:0" json:"fps"`
	LatencyMs float64 `gorm:"default:0" json:"latency_ms"`

	CPUUsage      *float64 `json:"cpu_usage"`
	MemoryUsageMB *float64 `gorm:"column:memory_usage_mb" json:"memory_usage_mb"`

	FalsePositives int `gorm:"default:0" json:"false_positives"`
	FalseNegatives int `gorm:"default:0" json:"false_negatives"`
	TruePositives  int `gorm:"default:0" json:"true_positives"`

	RecordedAt time.Time `gorm:"autoCreateTime" json:"recorded_at"`
}

func (SystemPerformance) TableName() string {
	return "system_performances"
}

// Accuracy is TP / (TP + FP + FN); 0 when no detections were counted.
func (p *SystemPerformance) Accuracy() float64 {
	total := p.TruePositives + p.FalsePositives + p.FalseNegatives
	if total == 0 {
		return 0
	}
	return float64(p.TruePositives) / float64(total)
}
