package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/moodwatch/internal/interface/http"
	"github.com/oksasatya/moodwatch/pkg/helpers"
)

type SocialModule struct {
	Handler *handlers.SocialHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewSocialModule(h *handlers.SocialHandler, jwt *helpers.JWTManager, rdb *redis.Client) *SocialModule {
	return &SocialModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *SocialModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.JWT, m.RDB)
	{
		auth.POST("/social-media-posts", m.Handler.Create)
		auth.GET("/social-media-posts", m.Handler.List)
		auth.GET("/social-media-posts/urgent", m.Handler.Urgent)
		auth.GET("/social-media-posts/search", m.Handler.Search)
	}
}
