package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/moodwatch/internal/application"
	"github.com/oksasatya/moodwatch/pkg/helpers"
	"github.com/oksasatya/moodwatch/pkg/response"
)

type UserHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required,handle"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/register
func (h *UserHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	u, pair, err := h.Svc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	c.JSON(http.StatusCreated, u)
}

// Login POST /api/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	c.JSON(http.StatusOK, u)
}

// Refresh POST /api/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	c.JSON(http.StatusOK, gin.H{"accessExpiresAt": pair.AccessTokenExpiry, "refreshExpiresAt": pair.RefreshTokenExpiry})
}

// Logout POST /api/logout
func (h *UserHandler) Logout(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), uid); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Warn("logout: session not cleared")
	}
	h.Cookies.Clear(c)
	c.Status(http.StatusNoContent)
}

// Me GET /api/user
func (h *UserHandler) Me(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
