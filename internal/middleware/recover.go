package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"TandaXN/config"
	"TandaXN/pkg/errors"
	"TandaXN/pkg/response"

	"TandaXN/pkg/logger"
)

// RecoverMiddleware 捕获 handler panic，记录堆栈并返回 500
func RecoverMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				handlePanic(ctx, c, err)
			}
		}()

		c.Next(ctx)
	}
}

func handlePanic(ctx context.Context, c *app.RequestContext, err interface{}) {
	stack := debug.Stack()

	requestID, _ := c.Get("request_id")
	logger.Logger.Error("Panic recovered",
		zap.Any("error", err),
		zap.String("method", string(c.Method())),
		zap.String("path", string(c.Path())),
		zap.Any("request_id", requestID),
		zap.ByteString("stack", stack),
	)

	errDef := errors.Definition{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "Internal server error",
	}
	if !config.Cfg.IsProduction() {
		// 开发环境把 panic 内容带出来，方便排查
		errDef.Message = fmt.Sprintf("Internal error: %v", err)
	}

	c.AbortWithStatus(http.StatusInternalServerError)
	response.Error(ctx, c, errDef)
}
