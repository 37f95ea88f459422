package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/intentbot/intentbot-go/internal/model"
	"github.com/intentbot/intentbot-go/internal/service"
	"go.uber.org/zap"
)

// AssistantHandler 意图识别 HTTP 接口
type AssistantHandler struct {
	assistant *service.AssistantService
	logger    *zap.Logger
}

// NewAssistantHandler 创建处理器
func NewAssistantHandler(assistant *service.AssistantService, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistant,
		logger:    logger,
	}
}

// Register 注册路由
func (h *AssistantHandler) Register(r gin.IRouter) {
	r.POST("/api/respond", h.Respond)
	r.GET("/api/classify", h.Classify)
	r.POST("/api/retrain", h.Retrain)
	r.GET("/api/stats", h.Stats)
}

// Respond 对话接口：分类并返回回复
func (h *AssistantHandler) Respond(c *gin.Context) {
	var req model.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text 不能为空"})
		return
	}

	c.JSON(http.StatusOK, h.assistant.Process(c.Request.Context(), req.Text))
}

// Classify 仅分类，不生成回复
func (h *AssistantHandler) Classify(c *gin.Context) {
	question := c.Query("question")
	if strings.TrimSpace(question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question 参数不能为空"})
		return
	}

	p := h.assistant.Classify(question)
	h.logger.Info("收到分类请求",
		zap.String("question", question),
		zap.String("category", string(p.Category)))

	c.JSON(http.StatusOK, model.ClassifyResponse{
		Question:   question,
		Category:   p.Category,
		Confidence: p.Confidence,
		Known:      p.Known,
	})
}

// Retrain 重新加载语料并训练
func (h *AssistantHandler) Retrain(c *gin.Context) {
	info, err := h.assistant.Retrain()
	resp := model.RetrainResponse{
		Success:   err == nil,
		IsDefault: info.IsDefault,
		Examples:  info.Examples,
		PerClass:  info.PerClass,
	}
	if err != nil {
		h.logger.Error("重新训练失败", zap.Error(err))
		resp.Message = err.Error()
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stats 分类统计
func (h *AssistantHandler) Stats(c *gin.Context) {
	counts, err := h.assistant.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("读取分类统计失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取统计失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": counts})
}
