package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TandaXN/internal/middleware"
	"TandaXN/internal/model/dto"
	"TandaXN/internal/service"
	"TandaXN/pkg/errors"
	"TandaXN/pkg/response"
)

// Signup 邮箱注册
// POST /v1/auth/signup
func Signup(ctx context.Context, c *app.RequestContext) {
	var req dto.SignupRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.Auth().Signup(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// Login 邮箱密码登录
// POST /v1/auth/login
func Login(ctx context.Context, c *app.RequestContext) {
	var req dto.LoginRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.Auth().Login(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// RefreshToken 刷新访问令牌
// POST /v1/auth/token/refresh
func RefreshToken(ctx context.Context, c *app.RequestContext) {
	var req dto.RefreshTokenRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.Auth().RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// Logout 登出，吊销 refresh token 并清掉内存里的引导状态
// POST /v1/auth/logout
func Logout(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	service.Auth().Logout(ctx, userID)

	response.NoContent(ctx, c)
}
