package services

import (
	"errors"
	"slices"

	"github.com/Gopher0727/StatusBoard/internal/models"
	"github.com/Gopher0727/StatusBoard/internal/repositories"
)

// 分页默认值，非法参数回退到这里
const (
	DefaultLimit  = 10
	DefaultOffset = 0
)

// 排行榜指标
const (
	MetricXP       = "xp"
	MetricEconomy  = "economy"
	MetricVoice    = "voice"
	MetricMessages = "messages"
)

var ErrUnknownMetric = errors.New("未知的排行榜指标")

// LeaderboardService 服务器原始活跃度数据的纯派生视图
// 不持有状态，每次都从仓储中的当前记录投影
type LeaderboardService struct {
	Guilds *repositories.GuildRepository
}

func NewLeaderboardService(guilds *repositories.GuildRepository) *LeaderboardService {
	return &LeaderboardService{Guilds: guilds}
}

// LeaderboardRow 排行榜视图中的一行
// Value 的含义随指标变化：xp/economy 为原始值，voice 为语音分钟数，messages 为消息数
type LeaderboardRow struct {
	UserID string `json:"userId"`
	Value  int64  `json:"value"`
	Level  int    `json:"level"`
}

// LeaderboardPage 分页后的排行榜视图
type LeaderboardPage struct {
	Leaderboard []LeaderboardRow `json:"leaderboard"`
	Total       int              `json:"total"`
}

// View 计算指定指标的分页排行榜
//
// xp 与 economy 视图信任 Bot 推送的既有排序，不重新排序；
// voice 与 messages 视图按派生值稳定降序排序（相等值保持输入顺序）。
// limit/offset 非法时回退默认值；未知服务器得到空视图。
func (s *LeaderboardService) View(guildID, metric string, limit, offset int) (LeaderboardPage, error) {
	rec := s.Guilds.Get(guildID)

	var rows []LeaderboardRow
	switch metric {
	case MetricXP:
		rows = projectRows(rec.XPLeaderboard, func(e models.UserActivityEntry) int64 { return e.Value })
	case MetricEconomy:
		rows = projectRows(rec.EconomyLeaderboard, func(e models.UserActivityEntry) int64 { return e.Value })
	case MetricVoice:
		rows = projectRows(rec.XPLeaderboard, func(e models.UserActivityEntry) int64 { return e.VoiceMinutes })
		sortRowsDesc(rows)
	case MetricMessages:
		rows = projectRows(rec.XPLeaderboard, func(e models.UserActivityEntry) int64 { return e.MessageCount })
		sortRowsDesc(rows)
	default:
		return LeaderboardPage{}, ErrUnknownMetric
	}

	return paginate(rows, limit, offset), nil
}

// RankResult 单用户排名查询结果
// 用户不在榜上时 Rank 为 null，xp/level 为 0，不报错
type RankResult struct {
	Rank  *int  `json:"rank"`
	XP    int64 `json:"xp"`
	Level int   `json:"level"`
}

// Rank 在 xp 排行榜中查找用户
// 榜单顺序即名次顺序，下标 i 的用户名次为 i+1
func (s *LeaderboardService) Rank(guildID, userID string) RankResult {
	rec := s.Guilds.Get(guildID)

	for i, e := range rec.XPLeaderboard {
		if e.UserID == userID {
			rank := i + 1
			return RankResult{Rank: &rank, XP: e.Value, Level: e.Level}
		}
	}
	return RankResult{}
}

func projectRows(entries []models.UserActivityEntry, value func(models.UserActivityEntry) int64) []LeaderboardRow {
	rows := make([]LeaderboardRow, len(entries))
	for i, e := range entries {
		rows[i] = LeaderboardRow{UserID: e.UserID, Value: value(e), Level: e.Level}
	}
	return rows
}

// sortRowsDesc 按 Value 稳定降序
func sortRowsDesc(rows []LeaderboardRow) {
	slices.SortStableFunc(rows, func(a, b LeaderboardRow) int {
		switch {
		case a.Value > b.Value:
			return -1
		case a.Value < b.Value:
			return 1
		}
		return 0
	})
}

// paginate 切片分页，返回行数为 min(limit, max(0, len-offset))
func paginate(rows []LeaderboardRow, limit, offset int) LeaderboardPage {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = DefaultOffset
	}

	total := len(rows)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)

	page := make([]LeaderboardRow, end-offset)
	copy(page, rows[offset:end])
	return LeaderboardPage{Leaderboard: page, Total: total}
}
