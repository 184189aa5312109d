package controller

import (
	"errors"
	"net/http"

	"gesture_presentation_backend/internal/model"
	"gesture_presentation_backend/internal/service"
	"gesture_presentation_backend/internal/util"
	"gesture_presentation_backend/pkg/logger"
	"gesture_presentation_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GestureController struct {
	GestureService *service.GestureService
}

func NewGestureController(gestureService *service.GestureService) *GestureController {
	return &GestureController{GestureService: gestureService}
}

// LogGestureRequest is the ingestion body. Every field is optional; omitted
// fields take documented defaults.
// swagger:model LogGestureRequest
type LogGestureRequest struct {
	SessionID             *string  `json:"session_id"`
	GestureType           *string  `json:"gesture_type"`
	Confidence            *float64 `json:"confidence"`
	FrameCount            *int     `json:"frame_count"`
	HandX                 *float64 `json:"hand_x"`
	HandY                 *float64 `json:"hand_y"`
	HandZ                 *float64 `json:"hand_z"`
	DetectionTimeMs       *float64 `json:"detection_time_ms"`
	FrameProcessingTimeMs *float64 `json:"frame_processing_time_ms"`
	Browser               *string  `json:"browser"`
	ScreenResolution      *string  `json:"screen_resolution"`
}

// LogGesture godoc
// @Summary Log a gesture detection event
// @Description Records one client-side gesture detection. All body fields are optional; no authentication required.
// @Tags gestures
// @Accept json
// @Produce json
// @Param body body LogGestureRequest true "Gesture event"
// @Success 200 {object} map[string]interface{} "status + log_id"
// @Failure 400 {object} map[string]interface{} "invalid JSON"
// @Failure 500 {object} map[string]interface{}
// @Router /api/log-gesture/ [post]
func (c *GestureController) LogGesture(ctx *gin.Context) {
	var req LogGestureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid JSON",
		})
		return
	}

	log, err := c.GestureService.LogGesture(&service.LogGestureInput{
		SessionID:             req.SessionID,
		GestureType:           req.GestureType,
		Confidence:            req.Confidence,
		FrameCount:            req.FrameCount,
		HandX:                 req.HandX,
		HandY:                 req.HandY,
		HandZ:                 req.HandZ,
		DetectionTimeMs:       req.DetectionTimeMs,
		FrameProcessingTimeMs: req.FrameProcessingTimeMs,
		Browser:               req.Browser,
		ScreenResolution:      req.ScreenResolution,
		UserAgent:             ctx.Request.UserAgent(),
		UserID:                util.UserIDFromContext(ctx),
	})
	if err != nil {
		// The exception text stays in the log, not in the response.
		logger.Log.Error("gesture log insert failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "internal error",
		})
		return
	}

	monitoring.GestureCounter.WithLabelValues(string(log.GestureType)).Inc()

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"log_id": log.ID,
	})
}

// SessionStats godoc
// @Summary Aggregate gesture statistics for one session
// @Description Full-scan reduction over the session's logs: total count, per-type counts, mean confidence and mean detection time. Zeroed aggregates when the session has no logs.
// @Tags gestures
// @Produce json
// @Security ApiKeyAuth
// @Param session_id query string true "Session identifier"
// @Success 200 {object} service.SessionStats
// @Failure 400 {object} map[string]string "session_id required"
// @Router /api/gesture-logs/session_stats/ [get]
func (c *GestureController) SessionStats(ctx *gin.Context) {
	sessionID := ctx.Query("session_id")
	if sessionID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "session_id required"})
		return
	}

	stats, err := c.GestureService.SessionStats(sessionID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// List godoc
// @Summary List gesture logs
// @Description All gesture logs, newest first.
// @Tags gestures
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.GestureLog}
// @Router /api/gesture-logs/ [get]
func (c *GestureController) List(ctx *gin.Context) {
	logs, err := c.GestureService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, logs)
}

// Get godoc
// @Summary Fetch one gesture log
// @Tags gestures
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Log ID"
// @Success 200 {object} util.Response{data=model.GestureLog}
// @Failure 404 {object} util.Response
// @Router /api/gesture-logs/{id} [get]
func (c *GestureController) Get(ctx *gin.Context) {
	log, err := c.GestureService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, log)
}

// Create godoc
// @Summary Create a gesture log directly
// @Description Authenticated counterpart of the ingestion endpoint, same defaults.
// @Tags gestures
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body LogGestureRequest true "Gesture event"
// @Success 201 {object} util.Response{data=model.GestureLog}
// @Failure 400 {object} util.Response
// @Router /api/gesture-logs/ [post]
func (c *GestureController) Create(ctx *gin.Context) {
	var req LogGestureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	log, err := c.GestureService.LogGesture(&service.LogGestureInput{
		SessionID:             req.SessionID,
		GestureType:           req.GestureType,
		Confidence:            req.Confidence,
		FrameCount:            req.FrameCount,
		HandX:                 req.HandX,
		HandY:                 req.HandY,
		HandZ:                 req.HandZ,
		DetectionTimeMs:       req.DetectionTimeMs,
		FrameProcessingTimeMs: req.FrameProcessingTimeMs,
		Browser:               req.Browser,
		ScreenResolution:      req.ScreenResolution,
		UserAgent:             ctx.Request.UserAgent(),
		UserID:                util.UserIDFromContext(ctx),
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, log)
}

// Update godoc
// @Summary Update a gesture log
// @Tags gestures
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Log ID"
// @Param body body LogGestureRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.GestureLog}
// @Failure 404 {object} util.Response
// @Router /api/gesture-logs/{id} [put]
func (c *GestureController) Update(ctx *gin.Context) {
	log, err := c.GestureService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req LogGestureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	applyGestureUpdate(log, &req)

	if err := c.GestureService.Update(log); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, log)
}

// Delete godoc
// @Summary Delete a gesture log
// @Tags gestures
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Log ID"
// @Success 200 {object} util.Response
// @Router /api/gesture-logs/{id} [delete]
func (c *GestureController) Delete(ctx *gin.Context) {
	if err := c.GestureService.Delete(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func applyGestureUpdate(log *model.GestureLog, req *LogGestureRequest) {
	if req.SessionID != nil {
		log.SessionID = *req.SessionID
	}
	if req.GestureType != nil {
		log.GestureType = model.GestureType(*req.GestureType)
	}
	if req.Confidence != nil {
		log.Confidence = *req.Confidence
	}
	if req.FrameCount != nil {
		log.FrameCount = *req.FrameCount
	}
	if req.HandX != nil {
		log.HandX = req.HandX
	}
	if req.HandY != nil {
		log.HandY = req.HandY
	}
	if req.HandZ != nil {
		log.HandZ = req.HandZ
	}
	if req.DetectionTimeMs != nil {
		log.DetectionTimeMs = *req.DetectionTimeMs
	}
	if req.FrameProcessingTimeMs != nil {
		log.FrameProcessingTimeMs = *req.FrameProcessingTimeMs
	}
	if req.Browser != nil {
		log.Browser = *req.Browser
	}
	if req.ScreenResolution != nil {
		log.ScreenResolution = *req.ScreenResolution
	}
}
