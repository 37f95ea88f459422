package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/intentbot/intentbot-go/internal/app"
	"github.com/intentbot/intentbot-go/internal/config"
	"github.com/intentbot/intentbot-go/internal/telegram"
	"github.com/intentbot/intentbot-go/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "configs/assistant.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.Telegram.Token == "" {
		zapLogger.Fatal("未配置 Telegram token（telegram.token 或 INTENTBOT_TELEGRAM_TOKEN）")
	}

	zapLogger.Info("telegram-bot 启动中...")

	assistant, cleanup, err := app.NewAssistant(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("初始化意图流水线失败", zap.Error(err))
	}
	defer cleanup()

	client := telegram.NewClient(cfg.Telegram.APIBase, cfg.Telegram.Token, cfg.Telegram.PollTimeout)
	defer client.Close()
	bot := telegram.NewBot(client, assistant, cfg.Telegram.PollTimeout, zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zapLogger.Error("telegram-bot 异常退出", zap.Error(err))
	}
	zapLogger.Info("telegram-bot 已停止")
}
