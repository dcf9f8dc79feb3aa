package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gopher0727/StatusBoard/internal/repositories"
)

type SettingsHandler struct {
	Settings *repositories.SettingsRepository
}

func NewSettingsHandler(settings *repositories.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{Settings: settings}
}

// GetSettings 读取完整设置（公开）
// 未设置的服务器返回空对象
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.Settings.Get(c.Param("id")))
}

// PostSettings 浅合并设置更新（需要密钥）
// 载荷必须是 JSON 对象；顶层键覆盖写入，嵌套对象整体替换
func (h *SettingsHandler) PostSettings(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "settings 必须是对象"})
		return
	}

	merged, err := h.Settings.Merge(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, merged)
}
