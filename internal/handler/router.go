package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/intentbot/intentbot-go/internal/middleware"
	"github.com/intentbot/intentbot-go/internal/service"
	"go.uber.org/zap"
)

// RouterConfig 路由配置
type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
}

// NewRouter 组装 HTTP 与 WebSocket 路由
func NewRouter(
	cfg RouterConfig,
	assistant *service.AssistantService,
	sessions *service.SessionService,
	chat *service.ChatService,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS(cfg.AllowedOrigins))

	NewAssistantHandler(assistant, logger).Register(r)

	apiHandler := NewAPIHandler(cfg.ServiceName, assistant, sessions)
	r.GET("/api/health", apiHandler.Health)

	wsHandler := NewWebSocketHandler(sessions, chat, cfg.AllowedOrigins, logger)
	r.GET("/ws", wsHandler.HandleWebSocket)

	return r
}
