package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/Gopher0727/StatusBoard/middleware/log"

	"github.com/Gopher0727/StatusBoard/internal/models"
	"github.com/Gopher0727/StatusBoard/internal/repositories"
	"github.com/Gopher0727/StatusBoard/internal/storage"
)

func newGuildRepo(t *testing.T) *repositories.GuildRepository {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return repositories.NewGuildRepository(store, logger.NewNop())
}

// 三行测试数据：xp 顺序为 5,50,10（Bot 推送顺序即名次顺序），
// 语音与消息值各不相同，用于验证派生视图的重排
func seedActivityRows(t *testing.T, repo *repositories.GuildRepository, guildID string) {
	repo.ReplaceSnapshot(context.Background(), guildID, &models.GuildSnapshot{
		XPLeaderboard: []models.UserActivityEntry{
			{UserID: "u1", Value: 5, Level: 1, VoiceMinutes: 30, MessageCount: 200},
			{UserID: "u2", Value: 50, Level: 5, VoiceMinutes: 10, MessageCount: 50},
			{UserID: "u3", Value: 10, Level: 2, VoiceMinutes: 99, MessageCount: 120},
		},
	})
}

func TestLeaderboard_XPKeepsProducerOrder(t *testing.T) {
	repo := newGuildRepo(t)
	seedActivityRows(t, repo, "g1")
	svc := NewLeaderboardService(repo)

	// xp 视图信任 Bot 的既有排序，limit=2,offset=0 返回前两行原样
	page, err := svc.View("g1", MetricXP, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Leaderboard, 2)
	assert.Equal(t, "u1", page.Leaderboard[0].UserID)
	assert.Equal(t, int64(5), page.Leaderboard[0].Value)
	assert.Equal(t, "u2", page.Leaderboard[1].UserID)
}

func TestLeaderboard_VoiceSortedDescending(t *testing.T) {
	repo := newGuildRepo(t)
	seedActivityRows(t, repo, "g1")
	svc := NewLeaderboardService(repo)

	page, err := svc.View("g1", MetricVoice, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Leaderboard, 3)
	assert.Equal(t, "u3", page.Leaderboard[0].UserID)
	assert.Equal(t, int64(99), page.Leaderboard[0].Value)
	assert.Equal(t, "u1", page.Leaderboard[1].UserID)
	assert.Equal(t, "u2", page.Leaderboard[2].UserID)
}

func TestLeaderboard_MessagesSortedDescending(t *testing.T) {
	repo := newGuildRepo(t)
	seedActivityRows(t, repo, "g1")
	svc := NewLeaderboardService(repo)

	page, err := svc.View("g1", MetricMessages, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Leaderboard, 3)
	assert.Equal(t, "u1", page.Leaderboard[0].UserID)
	assert.Equal(t, int64(200), page.Leaderboard[0].Value)
	assert.Equal(t, "u3", page.Leaderboard[1].UserID)
	assert.Equal(t, "u2", page.Leaderboard[2].UserID)
}

func TestLeaderboard_TiesKeepInputOrder(t *testing.T) {
	repo := newGuildRepo(t)
	repo.ReplaceSnapshot(context.Background(), "g1", &models.GuildSnapshot{
		XPLeaderboard: []models.UserActivityEntry{
			{UserID: "a", VoiceMinutes: 10},
			{UserID: "b", VoiceMinutes: 10},
			{UserID: "c", VoiceMinutes: 20},
			{UserID: "d", VoiceMinutes: 10},
		},
	})
	svc := NewLeaderboardService(repo)

	page, err := svc.View("g1", MetricVoice, 10, 0)
	require.NoError(t, err)
	// 相等值之间保持输入顺序（稳定排序）
	ids := []string{}
	for _, row := range page.Leaderboard {
		ids = append(ids, row.UserID)
	}
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids)
}

func TestLeaderboard_EconomyUsesOwnField(t *testing.T) {
	repo := newGuildRepo(t)
	repo.ReplaceSnapshot(context.Background(), "g1", &models.GuildSnapshot{
		XPLeaderboard: []models.UserActivityEntry{
			{UserID: "u1", Value: 5},
		},
		EconomyLeaderboard: []models.UserActivityEntry{
			{UserID: "rich", Value: 10000},
			{UserID: "poor", Value: 3},
		},
	})
	svc := NewLeaderboardService(repo)

	page, err := svc.View("g1", MetricEconomy, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	// 经济榜同样信任上游排序
	assert.Equal(t, "rich", page.Leaderboard[0].UserID)
}

func TestLeaderboard_PaginationBounds(t *testing.T) {
	repo := newGuildRepo(t)
	seedActivityRows(t, repo, "g1")
	svc := NewLeaderboardService(repo)

	// offset 超界返回空页，total 不变
	page, err := svc.View("g1", MetricXP, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Leaderboard)
	assert.Equal(t, 3, page.Total)

	// 负值回退默认（10/0）
	page, err = svc.View("g1", MetricXP, -1, -7)
	require.NoError(t, err)
	assert.Len(t, page.Leaderboard, 3)
	assert.Equal(t, 3, page.Total)
}

func TestLeaderboard_UnknownMetric(t *testing.T) {
	svc := NewLeaderboardService(newGuildRepo(t))

	_, err := svc.View("g1", "karma", 10, 0)
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestLeaderboard_UnknownGuildEmptyView(t *testing.T) {
	svc := NewLeaderboardService(newGuildRepo(t))

	page, err := svc.View("nope", MetricXP, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Leaderboard)
	assert.Equal(t, 0, page.Total)
}

func TestRank_PresentAndAbsentUsers(t *testing.T) {
	repo := newGuildRepo(t)
	seedActivityRows(t, repo, "g1")
	svc := NewLeaderboardService(repo)

	// 下标 1 的用户名次是 2
	res := svc.Rank("g1", "u2")
	require.NotNil(t, res.Rank)
	assert.Equal(t, 2, *res.Rank)
	assert.Equal(t, int64(50), res.XP)
	assert.Equal(t, 5, res.Level)

	// 不在榜上：rank 为 null，xp/level 为 0，不报错
	res = svc.Rank("g1", "ghost")
	assert.Nil(t, res.Rank)
	assert.Equal(t, int64(0), res.XP)
	assert.Equal(t, 0, res.Level)
}
