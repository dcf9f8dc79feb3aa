package storage

import (
	"context"
	"errors"
)

// 两个持久化记录的键名
// 每个记录是 guildId 到对应结构的映射，整体读写
const (
	KeyGuildData     = "guild_data"
	KeyGuildSettings = "guild_settings"
)

var (
	// ErrNotFound 记录尚不存在（首次启动时的正常情况）
	ErrNotFound = errors.New("storage: record not found")
	// ErrCorrupt 记录存在但无法解析
	ErrCorrupt = errors.New("storage: record corrupt")
)

// Store 命名 JSON 记录的读写抽象
// Load 将记录反序列化到 dest；Save 整体覆盖写入。
// 调用方（仓储层）决定失败时的语义：加载失败回退为空映射，
// 保存失败记录日志后继续（内存状态已更新，持久化尽力而为）。
type Store interface {
	Load(ctx context.Context, key string, dest any) error
	Save(ctx context.Context, key string, value any) error
}
