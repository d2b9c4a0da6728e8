package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/moodwatch/internal/interface/http"
	"github.com/oksasatya/moodwatch/internal/interface/middleware"
	"github.com/oksasatya/moodwatch/pkg/helpers"
)

type MoodModule struct {
	Handler *handlers.MoodHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewMoodModule(h *handlers.MoodHandler, jwt *helpers.JWTManager, rdb *redis.Client) *MoodModule {
	return &MoodModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *MoodModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.JWT, m.RDB)
	{
		auth.POST("/moods", m.Handler.Create)
		auth.GET("/moods", m.Handler.List)
		// one completion call per request
		auth.GET("/moods/analysis", middleware.RateLimit(m.RDB, 10, time.Hour, middleware.KeyByUserIDAndPath(), nil), m.Handler.Analysis)
	}
}
