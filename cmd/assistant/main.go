package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/intentbot/intentbot-go/internal/app"
	"github.com/intentbot/intentbot-go/internal/config"
	"github.com/intentbot/intentbot-go/internal/handler"
	"github.com/intentbot/intentbot-go/internal/service"
	"github.com/intentbot/intentbot-go/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "configs/assistant.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("assistant 服务启动中...")

	// 训练意图模型
	assistant, cleanup, err := app.NewAssistant(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("初始化意图流水线失败", zap.Error(err))
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionService := service.NewSessionService(zapLogger)
	go sessionService.RunHeartbeatChecker(ctx, service.DefaultHeartbeatInterval, service.DefaultHeartbeatTimeout)
	chatService := service.NewChatService(assistant, sessionService, zapLogger)

	if gin.Mode() == gin.DebugMode && cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := handler.NewRouter(handler.RouterConfig{
		ServiceName:    cfg.Server.Name,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, assistant, sessionService, chatService, zapLogger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("assistant 服务启动成功", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("assistant 服务关闭中...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("服务关闭失败", zap.Error(err))
	}
}
