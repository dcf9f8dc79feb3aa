package routers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Gopher0727/StatusBoard/config"
	"github.com/Gopher0727/StatusBoard/internal/handlers"
	"github.com/Gopher0727/StatusBoard/internal/middlewares"
	"github.com/Gopher0727/StatusBoard/utils/ratelimit"

	logger "github.com/Gopher0727/StatusBoard/middleware/log"
)

// SetupRoutes 设置所有路由
// 读接口公开（仪表盘数据），Bot 来源的写接口全部经过密钥认证；
// limiter 传 nil 时 AI 支持接口不限流
func SetupRoutes(r *gin.Engine, cfg *config.Config, log *logger.Logger,
	statsHandler *handlers.StatsHandler,
	guildHandler *handlers.GuildHandler,
	settingsHandler *handlers.SettingsHandler,
	statusHandler *handlers.StatusHandler,
	supportHandler *handlers.SupportHandler,
	limiter ratelimit.Limiter,
) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 请求日志（含 request id）
	r.Use(logger.RequestLogger(log))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"Status": "OK",
		})
	})

	auth := middlewares.AuthRequired(cfg.Auth.Secret)

	api := r.Group("/api/v1")
	{
		// Bot 全局状态与服务器列表
		api.POST("/bot-stats", auth, statsHandler.PostBotStats)
		api.GET("/bot-stats", statsHandler.GetBotStats)
		api.GET("/bot-guilds", statsHandler.GetBotGuilds)
		api.POST("/bot-guilds", auth, statsHandler.PostBotGuilds)

		guild := api.Group("/guild/:id")
		{
			guild.GET("/overview", guildHandler.GetOverview)
			guild.GET("/user/:uid/rank", guildHandler.GetRank)
			guild.GET("/leaderboard/:metric", guildHandler.GetLeaderboard)
			guild.POST("/data", auth, guildHandler.PostSnapshot)

			guild.GET("/channels", guildHandler.GetChannels)
			guild.POST("/channels", auth, guildHandler.PostChannels)

			guild.GET("/settings", settingsHandler.GetSettings)
			guild.POST("/settings", auth, settingsHandler.PostSettings)

			guild.POST("/status/set", auth, statusHandler.PostSet)
			guild.POST("/status/track", auth, statusHandler.PostTrack)
			guild.POST("/status/update", auth, statusHandler.PostUpdate)
			guild.POST("/status/reset", auth, statusHandler.PostReset)
		}

		// AI 支持接口公开，但消耗上游配额，可选限流
		if limiter != nil && cfg.RateLimit.Enabled {
			window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			api.POST("/support/ai", middlewares.RateLimit(limiter, cfg.RateLimit.Limit, window), supportHandler.PostAI)
		} else {
			api.POST("/support/ai", supportHandler.PostAI)
		}
	}
}
