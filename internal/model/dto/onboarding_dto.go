package dto

import "TandaXN/internal/model"

// OnboardingStateData 引导状态响应。activeTooltip / nextIncompleteField /
// completion 都是读取时从底层集合现算的派生值，没有单独存储的游标。
type OnboardingStateData struct {
	Steps               []model.OnboardingStep `json:"steps"`
	ProfileFields       []model.ProfileField   `json:"profile_fields"`
	Completion          int                    `json:"completion"` // 0~100
	IncompleteFields    []model.ProfileField   `json:"incomplete_fields"`
	NextIncompleteField *model.ProfileField    `json:"next_incomplete_field"`
	ActiveTooltip       *model.TooltipRecord   `json:"active_tooltip"`
}

// ActiveTooltipRequest 查询当前应展示的提示气泡
type ActiveTooltipRequest struct {
	Screen string `query:"screen" json:"screen"`
}

// SkipTooltipsRequest 批量跳过提示气泡，Screen 为空表示全部
type SkipTooltipsRequest struct {
	Screen string `query:"screen" json:"screen"`
}

// ActiveTooltipData 当前提示气泡（可能为空）
type ActiveTooltipData struct {
	Tooltip *model.TooltipRecord `json:"tooltip"`
}
