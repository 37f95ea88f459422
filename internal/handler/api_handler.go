package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/intentbot/intentbot-go/internal/service"
)

// APIHandler 服务状态接口
type APIHandler struct {
	serviceName    string
	assistant      *service.AssistantService
	sessionService *service.SessionService
}

// NewAPIHandler 创建处理器；sessionService 可为 nil（未开启 WebSocket 时）
func NewAPIHandler(serviceName string, assistant *service.AssistantService, sessionService *service.SessionService) *APIHandler {
	return &APIHandler{
		serviceName:    serviceName,
		assistant:      assistant,
		sessionService: sessionService,
	}
}

// Health 健康检查；模型未就绪时返回 503
func (h *APIHandler) Health(c *gin.Context) {
	body := gin.H{
		"status":  "UP",
		"service": h.serviceName,
		"model":   "ready",
	}
	if info, err := h.assistant.Corpus(); err == nil {
		body["examples"] = info.Examples
		body["defaultCorpus"] = info.IsDefault
	}
	if h.sessionService != nil {
		body["online_users"] = h.sessionService.GetOnlineCount()
	}

	if !h.assistant.Ready() {
		body["status"] = "DEGRADED"
		body["model"] = "untrained"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}
