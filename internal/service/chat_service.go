package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/intentbot/intentbot-go/internal/model"
	"go.uber.org/zap"
)

// ChatService WebSocket 聊天消息处理：调用意图流水线并把回复推送给用户
type ChatService struct {
	assistant *AssistantService
	sessions  *SessionService
	logger    *zap.Logger
}

// NewChatService 创建聊天服务
func NewChatService(assistant *AssistantService, sessions *SessionService, logger *zap.Logger) *ChatService {
	return &ChatService{
		assistant: assistant,
		sessions:  sessions,
		logger:    logger,
	}
}

// HandleUserMessage 处理用户消息并推送 AI_RESPONSE
func (s *ChatService) HandleUserMessage(ctx context.Context, userID int64, msg model.ChatMessage) error {
	s.logger.Info("处理用户消息",
		zap.Int64("userId", userID),
		zap.String("messageId", msg.MessageID),
		zap.String("content", msg.Content))

	result := s.assistant.Process(ctx, msg.Content)

	reply := model.ChatMessage{
		MessageID:  uuid.New().String(),
		Type:       model.MessageTypeAIResponse,
		Content:    result.Reply,
		Sender:     0,
		SenderName: "Assistant",
		ReplyTo:    msg.MessageID,
		Category:   result.Category,
		Timestamp:  time.Now(),
	}
	return s.sessions.SendMessageToUser(userID, reply)
}
