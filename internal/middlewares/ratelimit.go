package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gopher0727/StatusBoard/utils/ratelimit"
)

// RateLimit 按客户端 IP 限流的中间件
// 用于 AI 支持接口这类公开但消耗上游配额的端点
func RateLimit(limiter ratelimit.Limiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "support:" + c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil || !allowed {
			c.JSON(
				http.StatusTooManyRequests,
				gin.H{"error": "请求过于频繁，请稍后再试"},
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
