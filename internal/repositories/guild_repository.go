package repositories

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	logger "github.com/Gopher0727/StatusBoard/middleware/log"

	"github.com/Gopher0727/StatusBoard/internal/models"
	"github.com/Gopher0727/StatusBoard/internal/storage"
)

// GuildRepository 进程内权威的 guildId -> GuildRecord 映射
// 启动时从 Store 加载一次，之后常驻内存；每次写操作同步回写持久化。
// 持久化失败只记日志不上抛，内存状态为准（尽力而为的持久化）。
type GuildRepository struct {
	mu    sync.RWMutex
	store storage.Store
	log   *logger.Logger

	guilds map[string]*models.GuildRecord

	// Bot 全局状态与已知服务器列表，仅内存保存，无派生逻辑
	stats    models.BotStats
	guildIDs []string
}

// NewGuildRepository 创建仓储并从持久化记录中恢复数据
// 记录缺失或损坏时回退为空映射，决不阻止进程启动
func NewGuildRepository(store storage.Store, log *logger.Logger) *GuildRepository {
	r := &GuildRepository{
		store:  store,
		log:    log,
		guilds: make(map[string]*models.GuildRecord),
		stats:  models.BotStats{Status: models.StatusOffline},
	}

	err := store.Load(context.Background(), storage.KeyGuildData, &r.guilds)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		// 首次启动的正常情况
	default:
		log.Warn("加载服务器数据失败，使用空数据启动", zap.Error(err))
	}
	if r.guilds == nil {
		r.guilds = make(map[string]*models.GuildRecord)
	}
	return r
}

// Get 返回指定服务器记录的副本
// 未知服务器返回零值记录而非错误
func (r *GuildRepository) Get(guildID string) models.GuildRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.guilds[guildID]
	if !ok {
		return models.GuildRecord{}
	}
	out := *rec
	out.XPLeaderboard = slices.Clone(rec.XPLeaderboard)
	out.EconomyLeaderboard = slices.Clone(rec.EconomyLeaderboard)
	out.Channels = slices.Clone(rec.Channels)
	return out
}

// ReplaceSnapshot 用 Bot 推送的部分快照整体替换对应的顶层字段
// 快照中未携带的字段保持不变；记录不存在时惰性创建
func (r *GuildRepository) ReplaceSnapshot(ctx context.Context, guildID string, snap *models.GuildSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.applySnapshot(guildID, snap)
	r.persist(ctx)
}

// applySnapshot 持锁调用
func (r *GuildRepository) applySnapshot(guildID string, snap *models.GuildSnapshot) {
	rec, ok := r.guilds[guildID]
	if !ok {
		rec = &models.GuildRecord{}
		r.guilds[guildID] = rec
	}

	if snap.MemberCount != nil {
		rec.MemberCount = max(*snap.MemberCount, 0)
	}
	if snap.Premium != nil {
		rec.Premium = *snap.Premium
	}
	if snap.TrackedUser != nil {
		rec.TrackedUser = *snap.TrackedUser
	}
	if snap.TrackedUserStatus != nil {
		rec.TrackedUserStatus = *snap.TrackedUserStatus
	}
	if snap.XPLeaderboard != nil {
		rec.XPLeaderboard = snap.XPLeaderboard
	}
	if snap.EconomyLeaderboard != nil {
		rec.EconomyLeaderboard = snap.EconomyLeaderboard
	}
	if snap.Channels != nil {
		rec.Channels = snap.Channels
	}
}

// SetChannels 整体替换服务器的频道列表
func (r *GuildRepository) SetChannels(ctx context.Context, guildID string, channels []models.ChannelRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.guilds[guildID]
	if !ok {
		rec = &models.GuildRecord{}
		r.guilds[guildID] = rec
	}
	rec.Channels = channels
	r.persist(ctx)
}

// Channels 返回按名称升序排序的频道列表，与同步顺序无关
func (r *GuildRepository) Channels(guildID string) []models.ChannelRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.guilds[guildID]
	if !ok {
		return []models.ChannelRecord{}
	}
	out := slices.Clone(rec.Channels)
	slices.SortStableFunc(out, func(a, b models.ChannelRecord) int {
		return strings.Compare(a.Name, b.Name)
	})
	if out == nil {
		out = []models.ChannelRecord{}
	}
	return out
}

// IngestStats 接收 Bot 推送的全局状态
// 可附带 guilds_data 映射和/或 guild_ids 列表；两者都有时
// 以数据映射的键作为服务器列表（数据映射优先）
func (r *GuildRepository) IngestStats(ctx context.Context, stats models.BotStats, guildsData map[string]*models.GuildSnapshot, guildIDs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats.Status == "" {
		stats.Status = models.StatusOffline
	}
	r.stats = stats

	for id, snap := range guildsData {
		if snap != nil {
			r.applySnapshot(id, snap)
		}
	}

	switch {
	case len(guildsData) > 0:
		ids := make([]string, 0, len(guildsData))
		for id := range guildsData {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		r.guildIDs = ids
	case guildIDs != nil:
		r.guildIDs = guildIDs
	}

	if len(guildsData) > 0 {
		r.persist(ctx)
	}
}

// BotStats 返回 Bot 全局状态
func (r *GuildRepository) BotStats() models.BotStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats
}

// GuildIDs 返回已知的服务器列表
func (r *GuildRepository) GuildIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.guildIDs == nil {
		return []string{}
	}
	return slices.Clone(r.guildIDs)
}

// SetGuildIDs 整体替换已知的服务器列表
func (r *GuildRepository) SetGuildIDs(guildIDs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guildIDs = guildIDs
}

// persist 持锁调用，整体回写 guild_data 记录
func (r *GuildRepository) persist(ctx context.Context) {
	if err := r.store.Save(ctx, storage.KeyGuildData, r.guilds); err != nil {
		r.log.ErrorContext(ctx, "持久化服务器数据失败", zap.Error(err))
	}
}
