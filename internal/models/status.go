package models

// 状态枚举值
// StatusUnknown 仅作为展示默认值，不允许被手动覆盖写入
const (
	StatusUnknown     = "unknown"
	StatusOnline      = "online"
	StatusOffline     = "offline"
	StatusMaintenance = "maintenance"
)

// ValidOverrideStatus 校验手动覆盖允许的三个状态值
func ValidOverrideStatus(s string) bool {
	switch s {
	case StatusOnline, StatusOffline, StatusMaintenance:
		return true
	}
	return false
}
