package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"go.uber.org/zap"

	"TandaXN/config"
	"TandaXN/internal/middleware"
	"TandaXN/internal/queue"
	"TandaXN/internal/router"
	"TandaXN/pkg/logger"
	"TandaXN/pkg/otel"
	"TandaXN/pkg/snowflake"
	"TandaXN/pkg/token"
	"TandaXN/storage"
)

func main() {
	// 日志部分
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

	// 初始化存储层，记得关闭外部连接
	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	// 邀请事件的 exchange/queue 幂等声明，worker 没起时消息也不丢
	if err := queue.SetupTopology(); err != nil {
		logger.Logger.Warn("Failed to declare queue topology", zap.Error(err))
	}

	if err := token.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize token package", zap.Error(err))
	} // token 在中间件前初始化，middleware 依赖 token

	// 初始化中间件
	if err := middleware.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize middlewares", zap.Error(err))
	}

	logger.Logger.Info("Server starting",
		zap.String("service", config.Cfg.ServiceName),
		zap.String("port", config.Cfg.ServerPort),
		zap.String("environment", config.Cfg.Environment),
	)

	addr := net.JoinHostPort(config.Cfg.ServerHost, config.Cfg.ServerPort)

	opts := []hertzconfig.Option{server.WithHostPorts(addr)}
	var tracingMiddleware app.HandlerFunc

	if config.Cfg.TracingEnabled {
		shutdownTracing, err := otel.InitTracing(ctx, otel.Config{
			ServiceName:  config.Cfg.ServiceName,
			Environment:  config.Cfg.Environment,
			OTLPEndpoint: config.Cfg.OTLPEndpoint,
			SampleRatio:  config.Cfg.SampleRatio,
		})
		if err != nil {
			logger.Logger.Warn("Failed to initialize tracing", zap.Error(err))
		} else {
			defer func() {
				if err := shutdownTracing(context.Background()); err != nil {
					logger.Logger.Error("Failed to shutdown tracing", zap.Error(err))
				}
			}()

			tracerOpt, mw := middleware.NewServerTracerConfig()
			opts = append(opts, tracerOpt)
			tracingMiddleware = mw

			logger.Logger.Info("Tracing enabled",
				zap.String("otlp_endpoint", config.Cfg.OTLPEndpoint),
			)
		}
	}

	h := server.Default(opts...)

	if tracingMiddleware != nil {
		h.Use(tracingMiddleware)
	}

	router.Register(h)

	// 优雅关闭：在单独的 goroutine 中监听关闭信号并调用 Shutdown
	go func() {
		<-ctx.Done()
		logger.Logger.Info("Initiating graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
	}()

	logger.Logger.Info("HTTP server listening", zap.String("addr", addr))

	h.Spin()

	logger.Logger.Info("Server shutting down gracefully")
}
