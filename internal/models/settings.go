package models

import "encoding/json"

// 设置中的保留键，状态跟踪状态机独占使用
const (
	KeyStatusTracking    = "statusTracking"
	KeyStatusTrackConfig = "statusTrackConfig"
	KeyStatusOverride    = "statusOverride"
	KeyLastUpdated       = "lastUpdated"
)

// GuildSettings 每个服务器的自由键值设置
// 顶层键浅合并，嵌套对象整体替换
type GuildSettings map[string]any

// StatusTracking 被跟踪用户的配置（"set" 操作写入）
type StatusTracking struct {
	UserID         string `json:"userId"`
	Delay          int    `json:"delay"`
	OfflineMessage string `json:"offlineMessage"`
}

// StatusTrackConfig 状态播报目标配置（"track" 操作写入）
type StatusTrackConfig struct {
	ChannelID string `json:"channelId"`
	Automatic bool   `json:"automatic"`
	Embed     bool   `json:"embed"`
}

// StatusOverride 运营人员强制的状态覆盖（"update" 操作写入）
// 展示状态时覆盖值优先于自动计算的状态
type StatusOverride struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
	Manual bool   `json:"manual"`
}

// Override 解析设置中的 statusOverride 子对象
// 不存在或无法解析时返回 false
func (s GuildSettings) Override() (StatusOverride, bool) {
	var o StatusOverride
	if !decodeKey(s, KeyStatusOverride, &o) {
		return StatusOverride{}, false
	}
	return o, true
}

// Tracking 解析设置中的 statusTracking 子对象
func (s GuildSettings) Tracking() (StatusTracking, bool) {
	var t StatusTracking
	if !decodeKey(s, KeyStatusTracking, &t) {
		return StatusTracking{}, false
	}
	return t, true
}

// TrackConfig 解析设置中的 statusTrackConfig 子对象
func (s GuildSettings) TrackConfig() (StatusTrackConfig, bool) {
	var c StatusTrackConfig
	if !decodeKey(s, KeyStatusTrackConfig, &c) {
		return StatusTrackConfig{}, false
	}
	return c, true
}

// decodeKey 将 map[string]any 形式的子对象还原为结构体
// 设置以 JSON 持久化，经 json 往返一次即可
func decodeKey(s GuildSettings, key string, dest any) bool {
	v, ok := s[key]
	if !ok || v == nil {
		return false
	}
	b, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}
