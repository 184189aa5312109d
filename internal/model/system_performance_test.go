package model

import (
	"math"
	"testing"
	"time"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name       string
		tp, fp, fn int
		want       float64
	}{
		{"no detections", 0, 0, 0, 0},
		{"perfect", 10, 0, 0, 1},
		{"mixed", 8, 1, 1, 0.8},
		{"only misses", 0, 3, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &SystemPerformance{
				TruePositives:  tt.tp,
				FalsePositives: tt.fp,
				FalseNegatives: tt.fn,
			}
			if got := p.Accuracy(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionDuration(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ended := start.Add(90 * time.Second)

	open := &PresentationSession{StartedAt: start, LastActivity: start.Add(30 * time.Second)}
	if got := open.Duration(); got != 30 {
		t.Errorf("open session Duration() = %v, want 30", got)
	}

	closed := &PresentationSession{StartedAt: start, LastActivity: start.Add(2 * time.Hour), EndedAt: &ended}
	if got := closed.Duration(); got != 90 {
		t.Errorf("closed session Duration() = %v, want 90", got)
	}
}
