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

// GetUserProfile 获取当前用户资料
// GET /v1/users/me
func GetUserProfile(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	data, err := service.User().Profile(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// UpdateUserProfile 更新资料，成功的列会级联完成对应的引导字段
// PATCH /v1/users/me
func UpdateUserProfile(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.User().UpdateProfile(ctx, userID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}
