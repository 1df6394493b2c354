package dto

// UpdateProfileRequest 更新用户资料，nil 字段不变
type UpdateProfileRequest struct {
	DisplayName       *string `json:"display_name,omitempty"`
	AvatarEmoji       *string `json:"avatar_emoji,omitempty"`
	Country           *string `json:"country,omitempty"`
	PreferredLanguage *string `json:"preferred_language,omitempty"`
}
