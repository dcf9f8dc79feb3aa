package repositories

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/Gopher0727/StatusBoard/middleware/log"

	"github.com/Gopher0727/StatusBoard/internal/models"
	"github.com/Gopher0727/StatusBoard/internal/storage"
)

// ErrInvalidSettings settings 载荷必须是 JSON 对象
var ErrInvalidSettings = errors.New("settings 必须是对象")

// SettingsRepository 每个服务器的设置映射，浅合并更新
// 与 GuildRepository 同样常驻内存、同步回写
type SettingsRepository struct {
	mu    sync.RWMutex
	store storage.Store
	log   *logger.Logger

	settings map[string]models.GuildSettings
}

func NewSettingsRepository(store storage.Store, log *logger.Logger) *SettingsRepository {
	r := &SettingsRepository{
		store:    store,
		log:      log,
		settings: make(map[string]models.GuildSettings),
	}

	err := store.Load(context.Background(), storage.KeyGuildSettings, &r.settings)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
	default:
		log.Warn("加载服务器设置失败，使用空设置启动", zap.Error(err))
	}
	if r.settings == nil {
		r.settings = make(map[string]models.GuildSettings)
	}
	return r
}

// Get 返回指定服务器设置的副本，未设置时返回空映射
func (r *SettingsRepository) Get(guildID string) models.GuildSettings {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.settings[guildID]
	if !ok {
		return models.GuildSettings{}
	}
	return maps.Clone(s)
}

// Merge 把 patch 的顶层键浅合并进存储的设置
// 后写的键覆盖先写的；嵌套对象整体替换，不做深合并。
// 每次写入刷新 lastUpdated 时间戳（毫秒），返回合并后的完整设置。
func (r *SettingsRepository) Merge(ctx context.Context, guildID string, patch map[string]any) (models.GuildSettings, error) {
	if patch == nil {
		return nil, ErrInvalidSettings
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.settings[guildID]
	if !ok {
		s = models.GuildSettings{}
		r.settings[guildID] = s
	}
	maps.Copy(s, patch)
	s[models.KeyLastUpdated] = time.Now().UnixMilli()

	r.persist(ctx)
	return maps.Clone(s), nil
}

// RemoveKeys 删除指定的顶层键，其余键保持不变
func (r *SettingsRepository) RemoveKeys(ctx context.Context, guildID string, keys ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.settings[guildID]
	if !ok {
		return
	}
	for _, k := range keys {
		delete(s, k)
	}
	s[models.KeyLastUpdated] = time.Now().UnixMilli()
	r.persist(ctx)
}

// persist 持锁调用，整体回写 guild_settings 记录
func (r *SettingsRepository) persist(ctx context.Context) {
	if err := r.store.Save(ctx, storage.KeyGuildSettings, r.settings); err != nil {
		r.log.ErrorContext(ctx, "持久化服务器设置失败", zap.Error(err))
	}
}
