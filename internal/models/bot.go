package models

import "time"

// BotStats Bot 进程的全局状态记录，无派生逻辑
// 仅保存在内存中，随每次 /bot-stats 推送整体替换
type BotStats struct {
	Status     string    `json:"status"`
	GuildCount int       `json:"guildCount"`
	UserCount  int       `json:"userCount"`
	Uptime     int64     `json:"uptime"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
