package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gopher0727/StatusBoard/internal/models"
	"github.com/Gopher0727/StatusBoard/internal/repositories"
	"github.com/Gopher0727/StatusBoard/internal/services"
)

type GuildHandler struct {
	GuildService *services.GuildService
	Leaderboards *services.LeaderboardService
	Guilds       *repositories.GuildRepository
}

func NewGuildHandler(guildService *services.GuildService, leaderboards *services.LeaderboardService, guilds *repositories.GuildRepository) *GuildHandler {
	return &GuildHandler{
		GuildService: guildService,
		Leaderboards: leaderboards,
		Guilds:       guilds,
	}
}

// GetOverview 服务器概览：成员数、付费标记、被跟踪用户及计算后的状态
// 未知服务器返回零值默认，不报错
func (h *GuildHandler) GetOverview(c *gin.Context) {
	c.JSON(http.StatusOK, h.GuildService.Overview(c.Param("id")))
}

// GetRank 查询用户在 xp 排行榜中的名次
// 不在榜上时 rank 为 null，xp/level 为 0
func (h *GuildHandler) GetRank(c *gin.Context) {
	c.JSON(http.StatusOK, h.Leaderboards.Rank(c.Param("id"), c.Param("uid")))
}

// GetLeaderboard 分页排行榜视图
// metric 取 xp | economy | voice | messages；limit/offset 非法时回退默认值
func (h *GuildHandler) GetLeaderboard(c *gin.Context) {
	limit := parseQueryInt(c, "limit", services.DefaultLimit)
	offset := parseQueryInt(c, "offset", services.DefaultOffset)

	page, err := h.Leaderboards.View(c.Param("id"), c.Param("metric"), limit, offset)
	if err != nil {
		if errors.Is(err, services.ErrUnknownMetric) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "未知的排行榜指标"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// PostSnapshot 接收单个服务器的快照推送（需要密钥）
// 只替换请求中携带的顶层字段
func (h *GuildHandler) PostSnapshot(c *gin.Context) {
	var snap models.GuildSnapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数格式错误"})
		return
	}

	h.Guilds.ReplaceSnapshot(c.Request.Context(), c.Param("id"), &snap)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetChannels 按名称升序返回频道列表（公开）
func (h *GuildHandler) GetChannels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"channels": h.Guilds.Channels(c.Param("id"))})
}

type ChannelsRequest struct {
	Channels []models.ChannelRecord `json:"channels" binding:"required"`
}

// PostChannels 整体替换频道列表（需要密钥）
func (h *GuildHandler) PostChannels(c *gin.Context) {
	var req ChannelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数格式错误"})
		return
	}

	h.Guilds.SetChannels(c.Request.Context(), c.Param("id"), req.Channels)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// parseQueryInt 解析整数查询参数
// 缺失、非数字或负数一律回退默认值
func parseQueryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
