package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gopher0727/StatusBoard/internal/models"
	"github.com/Gopher0727/StatusBoard/internal/repositories"
)

type StatsHandler struct {
	Guilds *repositories.GuildRepository
}

func NewStatsHandler(guilds *repositories.GuildRepository) *StatsHandler {
	return &StatsHandler{Guilds: guilds}
}

// BotStatsRequest Bot 周期推送的全局状态
// 可附带 guilds_data（guildId -> 部分快照）和/或 guild_ids 列表
type BotStatsRequest struct {
	Status     string                           `json:"status"`
	GuildCount int                              `json:"guildCount"`
	UserCount  int                              `json:"userCount"`
	Uptime     int64                            `json:"uptime"`
	GuildsData map[string]*models.GuildSnapshot `json:"guilds_data"`
	GuildIDs   []string                         `json:"guild_ids"`
}

// PostBotStats 接收 Bot 全局状态推送（需要密钥）
func (h *StatsHandler) PostBotStats(c *gin.Context) {
	var req BotStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数格式错误"})
		return
	}

	stats := models.BotStats{
		Status:     req.Status,
		GuildCount: req.GuildCount,
		UserCount:  req.UserCount,
		Uptime:     req.Uptime,
		UpdatedAt:  time.Now(),
	}
	h.Guilds.IngestStats(c.Request.Context(), stats, req.GuildsData, req.GuildIDs)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetBotStats 读取 Bot 全局状态（公开）
func (h *StatsHandler) GetBotStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Guilds.BotStats())
}

// GetBotGuilds 读取已知的服务器列表（公开）
func (h *StatsHandler) GetBotGuilds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"guilds": h.Guilds.GuildIDs()})
}

type BotGuildsRequest struct {
	GuildIDs []string `json:"guild_ids" binding:"required"`
}

// PostBotGuilds 整体替换已知的服务器列表（需要密钥）
func (h *StatsHandler) PostBotGuilds(c *gin.Context) {
	var req BotGuildsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数格式错误"})
		return
	}

	h.Guilds.SetGuildIDs(req.GuildIDs)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
