package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/moodwatch/internal/interface/middleware"
	"github.com/oksasatya/moodwatch/pkg/response"
	"github.com/oksasatya/moodwatch/pkg/validation"
)

// currentUser returns the authenticated user id or aborts with 401.
func currentUser(c *gin.Context) (int64, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		details := validation.ToDetails(err)
		response.Error(c, http.StatusBadRequest, validation.Summary(details), details)
		return false
	}
	return true
}
