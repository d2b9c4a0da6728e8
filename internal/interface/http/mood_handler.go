package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/moodwatch/internal/application"
	"github.com/oksasatya/moodwatch/pkg/response"
)

type MoodHandler struct {
	Svc *application.MoodService
}

func NewMoodHandler(svc *application.MoodService) *MoodHandler {
	return &MoodHandler{Svc: svc}
}

type createMoodRequest struct {
	Score int     `json:"score" binding:"required,moodscore"`
	Note  *string `json:"note"`
}

// Create POST /api/moods
func (h *MoodHandler) Create(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req createMoodRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.Svc.Create(c.Request.Context(), uid, req.Score, req.Note)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// List GET /api/moods
func (h *MoodHandler) List(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	moods, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, moods)
}

// Analysis GET /api/moods/analysis
func (h *MoodHandler) Analysis(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	text, err := h.Svc.Analyze(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": text})
}
