package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"TandaXN/config"
	"TandaXN/internal/queue"
	"TandaXN/pkg/logger"
	"TandaXN/pkg/snowflake"
	"TandaXN/storage"
)

// worker 消费 invite.accepted 事件并维护推荐计数，和 API server 分开部署

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := queue.SetupTopology(); err != nil {
		logger.Logger.Fatal("Failed to declare queue topology", zap.Error(err))
	}

	logger.Logger.Info("Worker service starting",
		zap.String("service", config.Cfg.ServiceName+"-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	if err := queue.StartInviteAcceptedConsumer(ctx); err != nil {
		logger.Logger.Error("Consumer stopped with error", zap.Error(err))
	}

	logger.Logger.Info("Worker service shutting down gracefully")
}
