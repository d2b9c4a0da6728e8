package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/moodwatch/internal/interface/http"
	"github.com/oksasatya/moodwatch/pkg/helpers"
)

type MessageModule struct {
	Handler *handlers.MessageHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewMessageModule(h *handlers.MessageHandler, jwt *helpers.JWTManager, rdb *redis.Client) *MessageModule {
	return &MessageModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *MessageModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.JWT, m.RDB)
	{
		auth.POST("/messages", m.Handler.Create)
		auth.GET("/messages", m.Handler.List)
	}
}
