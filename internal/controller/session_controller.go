package controller

import (
	"errors"
	"time"

	"gesture_presentation_backend/internal/model"
	"gesture_presentation_backend/internal/service"
	"gesture_presentation_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

// SessionResponse is a session row plus its derived duration in seconds.
// swagger:model SessionResponse
type SessionResponse struct {
	ID           string     `json:"id"`
	UserID       *uint      `json:"user_id"`
	SessionID    string     `json:"session_id"`
	CurrentSlide int        `json:"current_slide"`
	TotalSlides  int        `json:"total_slides"`
	IsFullscreen bool       `json:"is_fullscreen"`
	IsPresenting bool       `json:"is_presenting"`
	AvgLatencyMs float64    `json:"avg_latency_ms"`
	GestureCount int        `json:"gesture_count"`
	StartedAt    time.Time  `json:"started_at"`
	LastActivity time.Time  `json:"last_activity"`
	EndedAt      *time.Time `json:"ended_at"`
	Duration     float64    `json:"duration"`
}

func toSessionResponse(s *model.PresentationSession) SessionResponse {
	return SessionResponse{
		ID:           s.ID,
		UserID:       s.UserID,
		SessionID:    s.SessionID,
		CurrentSlide: s.CurrentSlide,
		TotalSlides:  s.TotalSlides,
		IsFullscreen: s.IsFullscreen,
		IsPresenting: s.IsPresenting,
		AvgLatencyMs: s.AvgLatencyMs,
		GestureCount: s.GestureCount,
		StartedAt:    s.StartedAt,
		LastActivity: s.LastActivity,
		EndedAt:      s.EndedAt,
		Duration:     s.Duration(),
	}
}

// List godoc
// @Summary List presentation sessions
// @Description All sessions, newest first, with derived duration.
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]SessionResponse}
// @Router /api/sessions/ [get]
func (c *SessionController) List(ctx *gin.Context) {
	sessions, err := c.SessionService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	out := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionResponse(&sessions[i]))
	}
	util.Success(ctx, out)
}

// Get godoc
// @Summary Fetch one presentation session
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session row ID"
// @Success 200 {object} util.Response{data=SessionResponse}
// @Failure 404 {object} util.Response
// @Router /api/sessions/{id} [get]
func (c *SessionController) Get(ctx *gin.Context) {
	session, err := c.SessionService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, toSessionResponse(session))
}
