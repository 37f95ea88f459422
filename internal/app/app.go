package app

import (
	"github.com/intentbot/intentbot-go/internal/classifier"
	"github.com/intentbot/intentbot-go/internal/config"
	"github.com/intentbot/intentbot-go/internal/corpus"
	"github.com/intentbot/intentbot-go/internal/responder"
	"github.com/intentbot/intentbot-go/internal/service"
	"github.com/intentbot/intentbot-go/internal/stats"
	"github.com/intentbot/intentbot-go/pkg/redis"
	"go.uber.org/zap"
)

// NewAssistant 按配置组装并训练意图流水线。
// 返回的 cleanup 用于关闭 Redis 连接；训练失败不视为启动失败，只记录日志。
func NewAssistant(cfg *config.Config, logger *zap.Logger) (*service.AssistantService, func(), error) {
	cleanup := func() {}

	var recorder stats.Recorder = stats.NewMemoryRecorder()
	if cfg.Redis.Enabled {
		client, err := redis.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, cleanup, err
		}
		recorder = stats.NewRedisRecorder(client)
		cleanup = func() { _ = client.Close() }
		logger.Info("分类统计使用 Redis", zap.String("addr", cfg.Redis.Addr()))
	}

	assistant := service.NewAssistantService(
		classifier.NewClassifier(cfg.Classifier.ConfidenceFloor, logger),
		responder.NewDispatcher(logger),
		corpus.NewLoader(logger),
		recorder,
		cfg.Classifier.CorpusPath,
		logger,
	)
	if err := assistant.Init(); err != nil {
		logger.Error("初始化模型失败，所有消息将使用兜底回复", zap.Error(err))
	}
	return assistant, cleanup, nil
}
