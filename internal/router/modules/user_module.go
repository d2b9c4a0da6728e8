package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/moodwatch/internal/interface/http"
	"github.com/oksasatya/moodwatch/internal/interface/middleware"
	"github.com/oksasatya/moodwatch/pkg/helpers"
)

// UserModule wires account routes.
// Public: POST /api/register, POST /api/login, POST /api/refresh
// Protected: POST /api/logout, GET /api/user
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.RDB, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIP(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(m.RDB, 60, time.Minute, middleware.KeyByIP(), nil) // 60 req/min per IP

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := protected(rg, m.JWT, m.RDB)
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/user", m.Handler.Me)
	}
}

// protected returns a group behind Auth with the per-user limiter shared by all modules.
func protected(rg *gin.RouterGroup, jwt *helpers.JWTManager, rdb *redis.Client) *gin.RouterGroup {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, jwt))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	return auth
}
