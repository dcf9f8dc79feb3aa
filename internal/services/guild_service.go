package services

import (
	"github.com/Gopher0727/StatusBoard/internal/models"
	"github.com/Gopher0727/StatusBoard/internal/repositories"
)

// GuildService 面向仪表盘的服务器概览
type GuildService struct {
	Guilds *repositories.GuildRepository
	Status *StatusService
}

func NewGuildService(guilds *repositories.GuildRepository, status *StatusService) *GuildService {
	return &GuildService{Guilds: guilds, Status: status}
}

// OverviewResponse 服务器概览
// trackedUser 可为 null；所有字段对未知服务器都有文档化默认值
type OverviewResponse struct {
	MemberCount       int     `json:"memberCount"`
	Premium           bool    `json:"premium"`
	TrackedUser       *string `json:"trackedUser"`
	TrackedUserStatus string  `json:"trackedUserStatus"`
	BotStatus         string  `json:"botStatus"`
}

// Overview 合并服务器自身记录与进程级 Bot 状态
// 被跟踪用户状态经过覆盖优先级计算后返回
func (s *GuildService) Overview(guildID string) OverviewResponse {
	rec := s.Guilds.Get(guildID)
	stats := s.Guilds.BotStats()

	var trackedUser *string
	if rec.TrackedUser != "" {
		trackedUser = &rec.TrackedUser
	}

	botStatus := stats.Status
	if botStatus == "" {
		botStatus = models.StatusOffline
	}

	return OverviewResponse{
		MemberCount:       rec.MemberCount,
		Premium:           rec.Premium,
		TrackedUser:       trackedUser,
		TrackedUserStatus: s.Status.DisplayStatus(guildID, rec.TrackedUserStatus),
		BotStatus:         botStatus,
	}
}
