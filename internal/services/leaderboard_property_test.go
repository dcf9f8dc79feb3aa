package services

import (
	"context"
	"fmt"
	"testing"

	"pgregory.net/rapid"

	logger "github.com/Gopher0727/StatusBoard/middleware/log"

	"github.com/Gopher0727/StatusBoard/internal/models"
	"github.com/Gopher0727/StatusBoard/internal/repositories"
	"github.com/Gopher0727/StatusBoard/internal/storage"
)

func TestPropertyPaginationRowCount(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store, err := storage.NewFileStore(t.TempDir())
		if err != nil {
			rt.Fatalf("file store: %v", err)
		}
		repo := repositories.NewGuildRepository(store, logger.NewNop())

		n := rapid.IntRange(0, 200).Draw(rt, "rows")
		entries := make([]models.UserActivityEntry, n)
		for i := range entries {
			entries[i] = models.UserActivityEntry{
				UserID: fmt.Sprintf("u%d", i),
				Value:  rapid.Int64Range(0, 1_000_000).Draw(rt, "value"),
			}
		}
		repo.ReplaceSnapshot(context.Background(), "g1", &models.GuildSnapshot{XPLeaderboard: entries})
		svc := NewLeaderboardService(repo)

		limit := rapid.IntRange(-5, 50).Draw(rt, "limit")
		offset := rapid.IntRange(-5, 250).Draw(rt, "offset")

		page, err := svc.View("g1", MetricXP, limit, offset)
		if err != nil {
			rt.Fatalf("view: %v", err)
		}

		// 规格化：非法参数回退默认值后再套公式
		effLimit := limit
		if effLimit <= 0 {
			effLimit = DefaultLimit
		}
		effOffset := offset
		if effOffset < 0 {
			effOffset = DefaultOffset
		}
		want := n - effOffset
		if want < 0 {
			want = 0
		}
		if want > effLimit {
			want = effLimit
		}

		if len(page.Leaderboard) != want {
			rt.Fatalf("rows = %d, want %d (n=%d limit=%d offset=%d)", len(page.Leaderboard), want, n, limit, offset)
		}
		if page.Total != n {
			rt.Fatalf("total = %d, want %d", page.Total, n)
		}
	})
}

func TestPropertyVoiceViewSortedDescending(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store, err := storage.NewFileStore(t.TempDir())
		if err != nil {
			rt.Fatalf("file store: %v", err)
		}
		repo := repositories.NewGuildRepository(store, logger.NewNop())

		n := rapid.IntRange(0, 100).Draw(rt, "rows")
		entries := make([]models.UserActivityEntry, n)
		for i := range entries {
			entries[i] = models.UserActivityEntry{
				UserID:       fmt.Sprintf("u%d", i),
				VoiceMinutes: rapid.Int64Range(0, 100).Draw(rt, "voice"),
			}
		}
		repo.ReplaceSnapshot(context.Background(), "g1", &models.GuildSnapshot{XPLeaderboard: entries})
		svc := NewLeaderboardService(repo)

		page, err := svc.View("g1", MetricVoice, n+1, 0)
		if err != nil {
			rt.Fatalf("view: %v", err)
		}

		for i := 1; i < len(page.Leaderboard); i++ {
			if page.Leaderboard[i-1].Value < page.Leaderboard[i].Value {
				rt.Fatalf("not descending at %d: %d < %d", i, page.Leaderboard[i-1].Value, page.Leaderboard[i].Value)
			}
		}
	})
}
