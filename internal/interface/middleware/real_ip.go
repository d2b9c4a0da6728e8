package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP stores the client address under "real_ip" for rate limiting and logs.
// CF-Connecting-IP wins, then the left-most X-Forwarded-For entry, then gin's ClientIP.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := firstValidIP(
			c.GetHeader("CF-Connecting-IP"),
			leftmost(c.GetHeader("X-Forwarded-For")),
		)
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set("real_ip", ip)
		c.Next()
	}
}

func leftmost(xff string) string {
	first, _, _ := strings.Cut(xff, ",")
	return first
}

func firstValidIP(candidates ...string) string {
	for _, v := range candidates {
		if ip := net.ParseIP(strings.TrimSpace(v)); ip != nil {
			return ip.String()
		}
	}
	return ""
}
