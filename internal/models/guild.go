package models

import "encoding/json"

// GuildRecord 单个服务器的快照数据，由 Bot 周期性推送
// 除 Channels 可独立更新外，其余字段在每次同步时整体替换
type GuildRecord struct {
	MemberCount        int                 `json:"memberCount"`
	Premium            bool                `json:"premium"`
	TrackedUser        string              `json:"trackedUser,omitempty"`
	TrackedUserStatus  string              `json:"trackedUserStatus,omitempty"`
	XPLeaderboard      []UserActivityEntry `json:"xpLeaderboard,omitempty"`
	EconomyLeaderboard []UserActivityEntry `json:"economyLeaderboard,omitempty"`
	Channels           []ChannelRecord     `json:"channels,omitempty"`
}

// GuildSnapshot Bot 推送的部分快照
// 指针字段为 nil 表示本次推送未携带该字段，保持原值不变
type GuildSnapshot struct {
	MemberCount        *int                `json:"memberCount"`
	Premium            *bool               `json:"premium"`
	TrackedUser        *string             `json:"trackedUser"`
	TrackedUserStatus  *string             `json:"trackedUserStatus"`
	XPLeaderboard      []UserActivityEntry `json:"xpLeaderboard"`
	EconomyLeaderboard []UserActivityEntry `json:"economyLeaderboard"`
	Channels           []ChannelRecord     `json:"channels"`
}

// UserActivityEntry 排行榜中单个用户的活跃度快照行
// 每次同步整体替换，不做逐字段修补
type UserActivityEntry struct {
	UserID       string `json:"userId"`
	Value        int64  `json:"value"`
	Level        int    `json:"level"`
	VoiceMinutes int64  `json:"voiceMinutes"`
	MessageCount int64  `json:"messageCount"`
}

// UnmarshalJSON 归一化历史版本 Bot 使用过的字段名
// 消息数同时接受 messageCount 和 messages（前者优先）；
// 用户 ID 接受 userId / userID / id 三种写法。
// 负数值在边界处钳位为 0，排行榜行永远非负。
func (e *UserActivityEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		UserID       string `json:"userId"`
		UserIDAlt    string `json:"userID"`
		ID           string `json:"id"`
		Value        *int64 `json:"value"`
		Level        *int   `json:"level"`
		VoiceMinutes *int64 `json:"voiceMinutes"`
		MessageCount *int64 `json:"messageCount"`
		Messages     *int64 `json:"messages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.UserID = raw.UserID
	if e.UserID == "" {
		e.UserID = raw.UserIDAlt
	}
	if e.UserID == "" {
		e.UserID = raw.ID
	}

	e.Value = clampInt64(raw.Value)
	e.Level = clampInt(raw.Level)
	e.VoiceMinutes = clampInt64(raw.VoiceMinutes)

	// messageCount 与 messages 以先出现的非空值为准
	switch {
	case raw.MessageCount != nil:
		e.MessageCount = clampInt64(raw.MessageCount)
	case raw.Messages != nil:
		e.MessageCount = clampInt64(raw.Messages)
	default:
		e.MessageCount = 0
	}
	return nil
}

func clampInt64(v *int64) int64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

func clampInt(v *int) int {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

// ChannelRecord Discord 频道元数据的只读投影
type ChannelRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
