package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/moodwatch/pkg/helpers"
)

// CtxUserIDKey holds the authenticated user id (int64) in the Gin context.
const CtxUserIDKey = "userID"

// Auth validates the access token (cookie or Bearer header) and, when Redis is
// configured, requires the session it was issued for to still exist.
// Failures abort with 401 and an empty body.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		uid, err := claims.UID()
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if rdb != nil {
			key := helpers.SessionKey(claims.UserID)
			data, err := rdb.HGetAll(c.Request.Context(), key).Result()
			if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.Set("userRole", data["role"])
		}

		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}

// UserID returns the id set by Auth.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func accessToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func userKey(c *gin.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatInt(id, 10)
	}
	return ""
}
