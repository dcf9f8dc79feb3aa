package middlewares

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthRequired 共享密钥认证中间件
// Bot 发起的所有写接口都经过这里；凭证与进程配置的密钥精确比对。
// 校验失败时直接 401 中止，任何状态都不会被修改。
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var credential string

		// 从请求头解析 Bearer 凭证
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				credential = parts[1]
			}
		}

		if credential == "" {
			c.JSON(
				http.StatusUnauthorized,
				gin.H{"error": "未提供认证密钥"},
			)
			c.Abort()
			return
		}

		if secret == "" || subtle.ConstantTimeCompare([]byte(credential), []byte(secret)) != 1 {
			c.JSON(
				http.StatusUnauthorized,
				gin.H{"error": "认证密钥无效"},
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
