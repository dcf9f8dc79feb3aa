package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	logger "github.com/Gopher0727/StatusBoard/middleware/log"

	"github.com/Gopher0727/StatusBoard/internal/pkg/groq"
)

const (
	// MaxSupportMessageLen 支持消息的最大长度
	MaxSupportMessageLen = 500

	// InvalidMessageReply 消息为空或超长时的固定回复
	InvalidMessageReply = "Please enter a valid message under 500 characters."
	// FallbackReply 上游失败或超时时的固定回复
	FallbackReply = "Something went wrong. Please try again or join the support Discord."

	supportSystemPrompt = "You are an official AI support assistant for the Status Bot Discord bot. " +
		"Help users with commands, features, premium, errors, and direct them to the support Discord if needed."
)

// ErrInvalidMessage 消息校验失败
var ErrInvalidMessage = errors.New("支持消息为空或超过长度限制")

// SupportService 把自由文本转发给托管语言模型生成支持回复
// 无论调用结果如何都不触碰任何持久化状态
type SupportService struct {
	client  *groq.Client
	log     *logger.Logger
	timeout time.Duration
}

func NewSupportService(client *groq.Client, log *logger.Logger, timeout time.Duration) *SupportService {
	return &SupportService{client: client, log: log, timeout: timeout}
}

// Reply 校验消息后调用上游模型
// 上游失败、超时或响应异常时返回固定兜底回复，不向调用方暴露原始错误
func (s *SupportService) Reply(ctx context.Context, message string) (string, error) {
	if message == "" || len(message) > MaxSupportMessageLen {
		return "", ErrInvalidMessage
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.client.Complete(ctx, supportSystemPrompt, message)
	if err != nil {
		s.log.ErrorContext(ctx, "上游补全调用失败", zap.Error(err))
		return FallbackReply, nil
	}
	return reply, nil
}
