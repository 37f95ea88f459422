package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/intentbot/intentbot-go/internal/model"
	"github.com/intentbot/intentbot-go/internal/service"
	"go.uber.org/zap"
)

// WebSocketHandler WebSocket 聊天入口
type WebSocketHandler struct {
	upgrader       websocket.Upgrader
	sessionService *service.SessionService
	chatService    *service.ChatService
	logger         *zap.Logger
}

// NewWebSocketHandler 创建处理器；allowedOrigins 为空时接受任意 Origin
func NewWebSocketHandler(
	sessionService *service.SessionService,
	chatService *service.ChatService,
	allowedOrigins []string,
	logger *zap.Logger,
) *WebSocketHandler {
	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
		sessionService: sessionService,
		chatService:    chatService,
		logger:         logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// HandleWebSocket WebSocket 连接入口，消息循环直到连接断开
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userIDStr := c.Query("uid")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uid"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket 升级失败", zap.Error(err))
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	h.sessionService.RegisterUser(userID, conn, sessionID, c.ClientIP())
	defer h.sessionService.RemoveUserBySessionID(sessionID)

	h.logger.Info("WebSocket 连接建立",
		zap.Int64("userId", userID),
		zap.String("sessionId", sessionID))

	for {
		var msg model.ChatMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket 读取错误", zap.Int64("userId", userID), zap.Error(err))
			}
			break
		}
		h.handleMessage(c, userID, msg)
	}

	h.logger.Info("WebSocket 连接断开", zap.Int64("userId", userID))
}

// handleMessage 处理单条客户端消息
func (h *WebSocketHandler) handleMessage(c *gin.Context, userID int64, msg model.ChatMessage) {
	switch msg.Type {
	case model.MessageTypeChat:
		if err := h.chatService.HandleUserMessage(c.Request.Context(), userID, msg); err != nil {
			h.logger.Error("处理聊天消息失败", zap.Int64("userId", userID), zap.Error(err))
		}

	case model.MessageTypeHeartbeat:
		h.sessionService.UpdateHeartbeat(userID)
		h.logger.Debug("收到心跳", zap.Int64("userId", userID))

	default:
		h.logger.Warn("未知消息类型",
			zap.Int64("userId", userID),
			zap.String("type", msg.Type))
		_ = h.sessionService.SendMessageToUser(userID, model.ChatMessage{
			MessageID: uuid.New().String(),
			Type:      model.MessageTypeError,
			Content:   "unsupported message type: " + msg.Type,
			ReplyTo:   msg.MessageID,
			Timestamp: time.Now(),
		})
	}
}
