package services

import (
	"context"
	"errors"

	"github.com/Gopher0727/StatusBoard/internal/models"
	"github.com/Gopher0727/StatusBoard/internal/repositories"
)

var ErrInvalidStatus = errors.New("状态值必须是 online、offline 或 maintenance 之一")

// StatusService 每个服务器的状态跟踪状态机
//
// 三个子对象（statusTracking / statusTrackConfig / statusOverride）各自
// 独立写入，每次写入整体替换对应子对象，彼此之间没有顺序约束。
// 展示状态的优先级只在 DisplayStatus 一处实现：手动覆盖优先于自动状态。
type StatusService struct {
	Settings *repositories.SettingsRepository
}

func NewStatusService(settings *repositories.SettingsRepository) *StatusService {
	return &StatusService{Settings: settings}
}

type SetTrackingRequest struct {
	UserID         string `json:"userId" binding:"required"`
	Delay          int    `json:"delay"`
	OfflineMessage string `json:"offlineMessage"`
}

// Set 记录被跟踪的用户、延迟与离线提示语
func (s *StatusService) Set(ctx context.Context, guildID string, req *SetTrackingRequest) (models.GuildSettings, error) {
	return s.Settings.Merge(ctx, guildID, map[string]any{
		models.KeyStatusTracking: models.StatusTracking{
			UserID:         req.UserID,
			Delay:          req.Delay,
			OfflineMessage: req.OfflineMessage,
		},
	})
}

type TrackConfigRequest struct {
	ChannelID string `json:"channelId" binding:"required"`
	Automatic bool   `json:"automatic"`
	Embed     bool   `json:"embed"`
}

// Track 记录状态播报的目标频道与播报方式
// 与是否已配置被跟踪用户无关，可先于 Set 调用
func (s *StatusService) Track(ctx context.Context, guildID string, req *TrackConfigRequest) (models.GuildSettings, error) {
	return s.Settings.Merge(ctx, guildID, map[string]any{
		models.KeyStatusTrackConfig: models.StatusTrackConfig{
			ChannelID: req.ChannelID,
			Automatic: req.Automatic,
			Embed:     req.Embed,
		},
	})
}

type OverrideRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// Update 强制写入手动状态覆盖
// 枚举外的状态值直接拒绝，已有覆盖保持不变
func (s *StatusService) Update(ctx context.Context, guildID string, req *OverrideRequest) (models.GuildSettings, error) {
	if !models.ValidOverrideStatus(req.Status) {
		return nil, ErrInvalidStatus
	}
	return s.Settings.Merge(ctx, guildID, map[string]any{
		models.KeyStatusOverride: models.StatusOverride{
			Status: req.Status,
			Reason: req.Reason,
			Manual: true,
		},
	})
}

// Reset 一步删除三个跟踪子对象，回到未跟踪/自动状态
// 其余设置键不受影响
func (s *StatusService) Reset(ctx context.Context, guildID string) {
	s.Settings.RemoveKeys(ctx, guildID,
		models.KeyStatusTracking,
		models.KeyStatusTrackConfig,
		models.KeyStatusOverride,
	)
}

// DisplayStatus 计算对外展示的被跟踪用户状态
// 存在手动覆盖时覆盖值胜出，否则使用自动计算的状态
func (s *StatusService) DisplayStatus(guildID, computed string) string {
	if o, ok := s.Settings.Get(guildID).Override(); ok && o.Manual {
		return o.Status
	}
	if computed == "" {
		return models.StatusUnknown
	}
	return computed
}
