package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gopher0727/StatusBoard/internal/services"
)

type StatusHandler struct {
	Status *services.StatusService
}

func NewStatusHandler(status *services.StatusService) *StatusHandler {
	return &StatusHandler{Status: status}
}

// PostSet 配置被跟踪的用户、延迟与离线提示语（需要密钥）
func (h *StatusHandler) PostSet(c *gin.Context) {
	var req services.SetTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数格式错误"})
		return
	}

	merged, err := h.Status.Set(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, merged)
}

// PostTrack 配置状态播报的目标频道与播报方式（需要密钥）
func (h *StatusHandler) PostTrack(c *gin.Context) {
	var req services.TrackConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数格式错误"})
		return
	}

	merged, err := h.Status.Track(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, merged)
}

// PostUpdate 强制写入手动状态覆盖（需要密钥）
// 枚举外的状态值返回 400，已有覆盖保持不变
func (h *StatusHandler) PostUpdate(c *gin.Context) {
	var req services.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数格式错误"})
		return
	}

	merged, err := h.Status.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, merged)
}

// PostReset 一步清除全部跟踪/覆盖子对象（需要密钥）
func (h *StatusHandler) PostReset(c *gin.Context) {
	h.Status.Reset(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
