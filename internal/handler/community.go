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

// GetSuggestedCommunities 推荐社区列表，按匹配度降序
// GET /v1/communities/suggested
func GetSuggestedCommunities(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	profile, err := service.User().Profile(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	suggestions := service.Community().Suggestions(userID, *profile)
	response.Success(ctx, c, dto.SuggestedCommunitiesData{Suggestions: suggestions})
}

// DismissSuggestedCommunity 从推荐列表移除一条（只影响本次会话）
// DELETE /v1/communities/suggested/:community_id
func DismissSuggestedCommunity(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	profile, err := service.User().Profile(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	communityID := c.Param("community_id")
	if err := service.Community().Dismiss(userID, *profile, communityID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}
