package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/moodwatch/internal/application"
	"github.com/oksasatya/moodwatch/internal/domain/entity"
	"github.com/oksasatya/moodwatch/pkg/response"
)

type SocialHandler struct {
	Svc *application.SocialService
}

func NewSocialHandler(svc *application.SocialService) *SocialHandler {
	return &SocialHandler{Svc: svc}
}

// Risk fields are computed by the scorer; any the caller sends are ignored.
type createPostRequest struct {
	Content  string               `json:"content" binding:"required"`
	Platform string               `json:"platform" binding:"required"`
	Metadata *entity.PostMetadata `json:"metadata"`
}

// Create POST /api/social-media-posts
func (h *SocialHandler) Create(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req createPostRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.Svc.Create(c.Request.Context(), uid, application.CreatePostInput{
		Content:  req.Content,
		Platform: req.Platform,
		Metadata: req.Metadata,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// List GET /api/social-media-posts
func (h *SocialHandler) List(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	posts, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Urgent GET /api/social-media-posts/urgent
func (h *SocialHandler) Urgent(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	posts, err := h.Svc.ListUrgent(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Search GET /api/social-media-posts/search?q=&size=
func (h *SocialHandler) Search(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	posts, err := h.Svc.Search(c.Request.Context(), uid, c.Query("q"), size)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
