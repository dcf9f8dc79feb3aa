package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserActivityEntry_LegacyMessageFields(t *testing.T) {
	// messageCount 优先于 messages
	var e UserActivityEntry
	err := json.Unmarshal([]byte(`{"userId":"u1","value":10,"messageCount":7,"messages":99}`), &e)
	require.NoError(t, err)
	assert.Equal(t, int64(7), e.MessageCount)

	// 只有 messages 时采用 messages
	var e2 UserActivityEntry
	err = json.Unmarshal([]byte(`{"userId":"u2","messages":42}`), &e2)
	require.NoError(t, err)
	assert.Equal(t, int64(42), e2.MessageCount)

	// 两者都缺省为 0
	var e3 UserActivityEntry
	err = json.Unmarshal([]byte(`{"userId":"u3"}`), &e3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), e3.MessageCount)
}

func TestUserActivityEntry_UserIDCasings(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"userId", `{"userId":"u1"}`},
		{"userID", `{"userID":"u1"}`},
		{"id", `{"id":"u1"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var e UserActivityEntry
			require.NoError(t, json.Unmarshal([]byte(tc.in), &e))
			assert.Equal(t, "u1", e.UserID)
		})
	}
}

func TestUserActivityEntry_NegativeValuesClamped(t *testing.T) {
	var e UserActivityEntry
	err := json.Unmarshal([]byte(`{"userId":"u1","value":-5,"level":-1,"voiceMinutes":-30,"messageCount":-2}`), &e)
	require.NoError(t, err)

	assert.Equal(t, int64(0), e.Value)
	assert.Equal(t, 0, e.Level)
	assert.Equal(t, int64(0), e.VoiceMinutes)
	assert.Equal(t, int64(0), e.MessageCount)
}

func TestGuildSettings_TypedViews(t *testing.T) {
	// 模拟经过 JSON 持久化往返后的形态
	raw := `{
		"statusTracking": {"userId":"u1","delay":30,"offlineMessage":"brb"},
		"statusTrackConfig": {"channelId":"c1","automatic":true,"embed":false},
		"statusOverride": {"status":"maintenance","reason":"deploy","manual":true},
		"prefix": "!"
	}`
	var s GuildSettings
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	tracking, ok := s.Tracking()
	require.True(t, ok)
	assert.Equal(t, "u1", tracking.UserID)
	assert.Equal(t, 30, tracking.Delay)

	cfg, ok := s.TrackConfig()
	require.True(t, ok)
	assert.Equal(t, "c1", cfg.ChannelID)
	assert.True(t, cfg.Automatic)

	o, ok := s.Override()
	require.True(t, ok)
	assert.Equal(t, StatusMaintenance, o.Status)
	assert.True(t, o.Manual)

	_, ok = GuildSettings{}.Override()
	assert.False(t, ok)
}

func TestValidOverrideStatus(t *testing.T) {
	assert.True(t, ValidOverrideStatus(StatusOnline))
	assert.True(t, ValidOverrideStatus(StatusOffline))
	assert.True(t, ValidOverrideStatus(StatusMaintenance))

	assert.False(t, ValidOverrideStatus("unknown"))
	assert.False(t, ValidOverrideStatus(""))
	assert.False(t, ValidOverrideStatus("ONLINE"))
}
