package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"TandaXN/internal/middleware"
	"TandaXN/internal/model/dto"
	"TandaXN/internal/service"
	"TandaXN/pkg/errors"
	"TandaXN/pkg/logger"
	"TandaXN/pkg/response"
)

// 引导状态的修改都是"内存优先"：状态已经更新而落盘失败时，
// 接口仍然返回成功（meta 里带 persisted=false），只记一条告警日志。

// GetOnboardingState 获取完整引导状态
// GET /v1/onboarding/state
func GetOnboardingState(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	response.Success(ctx, c, service.Onboarding().State(ctx, userID))
}

// CompleteOnboardingStep 标记步骤完成
// POST /v1/onboarding/steps/:step_id/complete
func CompleteOnboardingStep(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	stepID := c.Param("step_id")

	changed, err := service.Onboarding().CompleteStep(ctx, userID, stepID)
	respondMutation(ctx, c, userID, changed, err)
}

// CompleteProfileField 标记资料字段完成
// POST /v1/onboarding/profile-fields/:field_id/complete
func CompleteProfileField(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	fieldID := c.Param("field_id")

	changed, err := service.Onboarding().CompleteProfileField(ctx, userID, fieldID)
	respondMutation(ctx, c, userID, changed, err)
}

// SkipOnboarding 跳过全部引导步骤
// POST /v1/onboarding/skip
func SkipOnboarding(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	err := service.Onboarding().SkipOnboarding(ctx, userID)
	respondMutation(ctx, c, userID, true, err)
}

// ResetOnboarding 重置到默认种子
// POST /v1/onboarding/reset
func ResetOnboarding(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	if err := service.Onboarding().ResetOnboarding(ctx, userID); err != nil {
		logger.Logger.Warn("Failed to reset onboarding records",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	response.Success(ctx, c, service.Onboarding().State(ctx, userID))
}

// GetActiveTooltip 获取当前应展示的提示气泡
// GET /v1/onboarding/tooltips/active?screen=Dashboard
func GetActiveTooltip(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var req dto.ActiveTooltipRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	tooltip := service.Onboarding().ActiveTooltip(ctx, userID, req.Screen)
	response.Success(ctx, c, dto.ActiveTooltipData{Tooltip: tooltip})
}

// DismissTooltip 标记气泡已展示
// POST /v1/onboarding/tooltips/:tooltip_id/dismiss
func DismissTooltip(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	tooltipID := c.Param("tooltip_id")

	changed, err := service.Onboarding().DismissTooltip(ctx, userID, tooltipID)
	respondMutation(ctx, c, userID, changed, err)
}

// SkipTooltips 批量跳过提示气泡
// POST /v1/onboarding/tooltips/skip
func SkipTooltips(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var req dto.SkipTooltipsRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	err := service.Onboarding().SkipAllTooltips(ctx, userID, req.Screen)
	respondMutation(ctx, c, userID, true, err)
}

// respondMutation 统一处理引导修改类接口的返回。
// 业务错误（步骤/字段/气泡不存在）原样返回；
// 持久化错误吞掉，返回当前状态并在 meta 里标注。
func respondMutation(ctx context.Context, c *app.RequestContext, userID int64, changed bool, err error) {
	if err != nil {
		var def errors.Definition
		if ok := asDefinition(err, &def); ok {
			response.Error(ctx, c, def)
			return
		}

		logger.Logger.Warn("Onboarding mutation persisted to memory only",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		response.SuccessWithMeta(ctx, c, service.Onboarding().State(ctx, userID), map[string]interface{}{
			"changed":   changed,
			"persisted": false,
		})
		return
	}

	response.SuccessWithMeta(ctx, c, service.Onboarding().State(ctx, userID), map[string]interface{}{
		"changed":   changed,
		"persisted": true,
	})
}

func asDefinition(err error, out *errors.Definition) bool {
	def, ok := err.(errors.Definition)
	if !ok {
		return false
	}
	*out = def
	return true
}
