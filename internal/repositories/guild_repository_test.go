package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/Gopher0727/StatusBoard/middleware/log"

	"github.com/Gopher0727/StatusBoard/internal/models"
	"github.com/Gopher0727/StatusBoard/internal/storage"
)

func newTestStore(t *testing.T) storage.Store {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestGuildRepository_UnknownGuildDefaults(t *testing.T) {
	repo := NewGuildRepository(newTestStore(t), logger.NewNop())

	rec := repo.Get("nope")
	assert.Equal(t, 0, rec.MemberCount)
	assert.False(t, rec.Premium)
	assert.Empty(t, rec.TrackedUser)
	assert.Empty(t, rec.XPLeaderboard)

	assert.Equal(t, []models.ChannelRecord{}, repo.Channels("nope"))
}

func TestGuildRepository_ReplaceSnapshotPartial(t *testing.T) {
	repo := NewGuildRepository(newTestStore(t), logger.NewNop())
	ctx := context.Background()

	repo.ReplaceSnapshot(ctx, "g1", &models.GuildSnapshot{
		MemberCount: intPtr(100),
		Premium:     boolPtr(true),
		TrackedUser: strPtr("u1"),
		XPLeaderboard: []models.UserActivityEntry{
			{UserID: "u1", Value: 50, Level: 3},
		},
	})

	// 只带成员数的推送不应清掉其它字段
	repo.ReplaceSnapshot(ctx, "g1", &models.GuildSnapshot{MemberCount: intPtr(120)})

	rec := repo.Get("g1")
	assert.Equal(t, 120, rec.MemberCount)
	assert.True(t, rec.Premium)
	assert.Equal(t, "u1", rec.TrackedUser)
	require.Len(t, rec.XPLeaderboard, 1)
	assert.Equal(t, int64(50), rec.XPLeaderboard[0].Value)
}

func TestGuildRepository_HydratesFromStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := NewGuildRepository(store, logger.NewNop())
	first.ReplaceSnapshot(ctx, "g1", &models.GuildSnapshot{MemberCount: intPtr(7)})

	// 重新构建仓储模拟进程重启
	second := NewGuildRepository(store, logger.NewNop())
	assert.Equal(t, 7, second.Get("g1").MemberCount)
}

func TestGuildRepository_ChannelsSortedByName(t *testing.T) {
	repo := NewGuildRepository(newTestStore(t), logger.NewNop())

	repo.SetChannels(context.Background(), "g1", []models.ChannelRecord{
		{ID: "3", Name: "zulu", Type: "text"},
		{ID: "1", Name: "alpha", Type: "text"},
		{ID: "2", Name: "mike", Type: "voice"},
	})

	chans := repo.Channels("g1")
	require.Len(t, chans, 3)
	assert.Equal(t, "alpha", chans[0].Name)
	assert.Equal(t, "mike", chans[1].Name)
	assert.Equal(t, "zulu", chans[2].Name)

	// 返回顺序与同步顺序无关，原始记录不被重排
	rec := repo.Get("g1")
	assert.Equal(t, "zulu", rec.Channels[0].Name)
}

func TestGuildRepository_IngestStats(t *testing.T) {
	repo := NewGuildRepository(newTestStore(t), logger.NewNop())
	ctx := context.Background()

	// 只有 guild_ids 时直接采用
	repo.IngestStats(ctx, models.BotStats{Status: "online"}, nil, []string{"g1", "g2"})
	assert.Equal(t, []string{"g1", "g2"}, repo.GuildIDs())
	assert.Equal(t, "online", repo.BotStats().Status)

	// guilds_data 存在时以其键为准（优先于 guild_ids）
	repo.IngestStats(ctx, models.BotStats{Status: "online"}, map[string]*models.GuildSnapshot{
		"g3": {MemberCount: intPtr(5)},
		"g4": {MemberCount: intPtr(9)},
	}, []string{"ignored"})

	assert.ElementsMatch(t, []string{"g3", "g4"}, repo.GuildIDs())
	assert.Equal(t, 5, repo.Get("g3").MemberCount)
	assert.Equal(t, 9, repo.Get("g4").MemberCount)
}

func TestGuildRepository_EmptyStatusDefaultsOffline(t *testing.T) {
	repo := NewGuildRepository(newTestStore(t), logger.NewNop())

	assert.Equal(t, models.StatusOffline, repo.BotStats().Status)

	repo.IngestStats(context.Background(), models.BotStats{}, nil, nil)
	assert.Equal(t, models.StatusOffline, repo.BotStats().Status)
}

func TestGuildRepository_GetReturnsCopy(t *testing.T) {
	repo := NewGuildRepository(newTestStore(t), logger.NewNop())
	ctx := context.Background()

	repo.ReplaceSnapshot(ctx, "g1", &models.GuildSnapshot{
		XPLeaderboard: []models.UserActivityEntry{{UserID: "u1", Value: 1}},
	})

	rec := repo.Get("g1")
	rec.XPLeaderboard[0].Value = 999

	assert.Equal(t, int64(1), repo.Get("g1").XPLeaderboard[0].Value)
}
