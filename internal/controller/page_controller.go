package controller

import (
	"net/http"

	"gesture_presentation_backend/internal/model"
	"gesture_presentation_backend/internal/service"
	"gesture_presentation_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// PageController serves the server-rendered pages: the home/demo page, the
// presentation view and the hand-tracking test page.
type PageController struct {
	SessionService *service.SessionService
}

func NewPageController(sessionService *service.SessionService) *PageController {
	return &PageController{SessionService: sessionService}
}

// Home godoc
// @Summary Home page
// @Tags pages
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func (c *PageController) Home(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "home.html", gin.H{
		"demo_available": true,
	})
}

// Presentation godoc
// @Summary Presentation page
// @Description Fetches or creates the session for the given session_id; a fresh UUID is generated when the parameter is absent.
// @Tags pages
// @Produce html
// @Param session_id query string false "Session identifier"
// @Success 200 {string} string
// @Router /presentation/ [get]
func (c *PageController) Presentation(ctx *gin.Context) {
	sessionID := ctx.Query("session_id")
	if sessionID == "" {
		sessionID = model.GenerateUUID()
	}

	userID := util.UserIDFromContext(ctx)
	if _, _, err := c.SessionService.GetOrCreate(sessionID, userID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "presentation.html", gin.H{
		"session_id":       sessionID,
		"is_authenticated": userID != nil,
	})
}

// Test godoc
// @Summary Hand-tracking test page
// @Tags pages
// @Produce html
// @Success 200 {string} string
// @Router /test/ [get]
func (c *PageController) Test(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "test_tracking.html", nil)
}
