package modules

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/moodwatch/internal/interface/middleware"
)

// Pinger reports whether a backing store is reachable; *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type DebugModule struct {
	RDB *redis.Client
	DB  Pinger
}

func NewDebugModule(rdb *redis.Client, db Pinger) *DebugModule {
	return &DebugModule{RDB: rdb, DB: db}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.health)

	// expvar metrics, open to private networks and rate-limited per IP otherwise
	rl := middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}

func (m *DebugModule) health(c *gin.Context) {
	if m.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := m.DB.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
