package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gopher0727/StatusBoard/internal/services"
)

type SupportHandler struct {
	Support *services.SupportService
}

func NewSupportHandler(support *services.SupportService) *SupportHandler {
	return &SupportHandler{Support: support}
}

type SupportRequest struct {
	Message string `json:"message"`
}

// PostAI 把用户的自由文本转发给上游模型，返回支持回复
// 消息为空或超长返回 400；上游失败返回固定兜底回复，不暴露原始错误
func (h *SupportHandler) PostAI(c *gin.Context) {
	var req SupportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"reply": services.InvalidMessageReply})
		return
	}

	reply, err := h.Support.Reply(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"reply": services.InvalidMessageReply})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"reply": services.FallbackReply})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
