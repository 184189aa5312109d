package controller

import (
	"errors"
	"time"

	"gesture_presentation_backend/internal/model"
	"gesture_presentation_backend/internal/service"
	"gesture_presentation_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PerformanceController struct {
	PerformanceService *service.PerformanceService
}

func NewPerformanceController(performanceService *service.PerformanceService) *PerformanceController {
	return &PerformanceController{PerformanceService: performanceService}
}

// RecordPerformanceRequest is one performance sample for a known session.
// swagger:model RecordPerformanceRequest
type RecordPerformanceRequest struct {
	SessionID      string   `json:"session_id" binding:"required"`
	FPS            float64  `json:"fps"`
	LatencyMs      float64  `json:"latency_ms"`
	CPUUsage       *float64 `json:"cpu_usage"`
	MemoryUsageMB  *float64 `json:"memory_usage_mb"`
	FalsePositives int      `json:"false_positives"`
	FalseNegatives int      `json:"false_negatives"`
	TruePositives  int      `json:"true_positives"`
}

// PerformanceResponse is a sample plus its computed detection accuracy.
// swagger:model PerformanceResponse
type PerformanceResponse struct {
	ID             string    `json:"id"`
	SessionID      string    `json:"session_id"`
	FPS            float64   `json:"fps"`
	LatencyMs      float64   `json:"latency_ms"`
	CPUUsage       *float64  `json:"cpu_usage"`
	MemoryUsageMB  *float64  `json:"memory_usage_mb"`
	FalsePositives int       `json:"false_positives"`
	FalseNegatives int       `json:"false_negatives"`
	TruePositives  int       `json:"true_positives"`
	Accuracy       float64   `json:"accuracy"`
	RecordedAt     time.Time `json:"recorded_at"`
}

func toPerformanceResponse(p *model.SystemPerformance) PerformanceResponse {
	return PerformanceResponse{
		ID:             p.ID,
		SessionID:      p.SessionID,
		FPS:            p.FPS,
		LatencyMs:      p.LatencyMs,
		CPUUsage:       p.CPUUsage,
		MemoryUsageMB:  p.MemoryUsageMB,
		FalsePositives: p.FalsePositives,
		FalseNegatives: p.FalseNegatives,
		TruePositives:  p.TruePositives,
		Accuracy:       p.Accuracy(),
		RecordedAt:     p.RecordedAt,
	}
}

// Record godoc
// @Summary Record a system performance sample
// @Description Stores one fps/latency/detection-quality sample against an existing session.
// @Tags performance
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RecordPerformanceRequest true "Performance sample"
// @Success 201 {object} util.Response{data=PerformanceResponse}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "unknown session"
// @Router /api/performance/ [post]
func (c *PerformanceController) Record(ctx *gin.Context) {
	var req RecordPerformanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sample, err := c.PerformanceService.Record(&service.RecordInput{
		SessionID:      req.SessionID,
		FPS:            req.FPS,
		LatencyMs:      req.LatencyMs,
		CPUUsage:       req.CPUUsage,
		MemoryUsageMB:  req.MemoryUsageMB,
		FalsePositives: req.FalsePositives,
		FalseNegatives: req.FalseNegatives,
		TruePositives:  req.TruePositives,
	})
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, toPerformanceResponse(sample))
}

// List godoc
// @Summary List performance samples for a session
// @Tags performance
// @Produce json
// @Security ApiKeyAuth
// @Param session_id query string true "Session identifier"
// @Success 200 {object} util.Response{data=[]PerformanceResponse}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "unknown session"
// @Router /api/performance/ [get]
func (c *PerformanceController) List(ctx *gin.Context) {
	sessionID := ctx.Query("session_id")
	if sessionID == "" {
		util.BadRequest(ctx, "session_id required")
		return
	}

	samples, err := c.PerformanceService.ListForSession(sessionID)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	out := make([]PerformanceResponse, 0, len(samples))
	for i := range samples {
		out = append(out, toPerformanceResponse(&samples[i]))
	}
	util.Success(ctx, out)
}
