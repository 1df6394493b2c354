package errors

import "errors"

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 认证相关错误。
var (
	Unauthorized           = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidUserID          = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
	EmailAlreadyRegistered = Definition{Code: "EMAIL_ALREADY_REGISTERED", Message: "Email already registered"}
	InvalidCredentials     = Definition{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"}
	TooManyRequests        = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests"}
	ErrUserNotFound        = Definition{Code: "USER_NOT_FOUND", Message: "User not found"}
)

// 邀请链接模块错误。
var (
	InviteInvalid    = Definition{Code: "INVITE_INVALID", Message: "Invite link is not valid"}
	InviteNotPending = Definition{Code: "INVITE_NOT_PENDING", Message: "No pending invite in this session"}
	CircleJoinFailed = Definition{Code: "CIRCLE_JOIN_FAILED", Message: "Could not join the circle"}
	CommunityJoinFailed = Definition{Code: "COMMUNITY_JOIN_FAILED", Message: "Could not join the community"}
)

// 引导流程模块错误。
var (
	OnboardingStepInvalid   = Definition{Code: "ONBOARDING_STEP_INVALID", Message: "Onboarding step invalid"}
	ProfileFieldInvalid     = Definition{Code: "PROFILE_FIELD_INVALID", Message: "Profile field invalid"}
	TooltipInvalid          = Definition{Code: "TOOLTIP_INVALID", Message: "Tooltip invalid"}
	OnboardingNotInitialized = Definition{Code: "ONBOARDING_NOT_INITIALIZED", Message: "Onboarding state not initialized for this session"}
)

// 社区推荐模块错误。
var (
	SuggestionNotFound = Definition{Code: "SUGGESTION_NOT_FOUND", Message: "Suggested community not found"}
)

// token 相关的内部错误。
var (
	ErrTokenGeneratorNotInitialized = errors.New("token generator not initialized")
	ErrUnexpectedSigningMethod      = errors.New("unexpected signing method")
	ErrInvalidToken                 = errors.New("invalid token")
	ErrInvalidTokenClaims           = errors.New("invalid token claims")
	ErrInvalidTokenType             = errors.New("invalid token type")
	ErrUserIDNotFound               = errors.New("user id not found in token claims")
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	Unauthorized.Code:             Unauthorized,
	InvalidUserID.Code:            InvalidUserID,
	EmailAlreadyRegistered.Code:   EmailAlreadyRegistered,
	InvalidCredentials.Code:       InvalidCredentials,
	TooManyRequests.Code:          TooManyRequests,
	ErrUserNotFound.Code:          ErrUserNotFound,
	InviteInvalid.Code:            InviteInvalid,
	InviteNotPending.Code:         InviteNotPending,
	CircleJoinFailed.Code:         CircleJoinFailed,
	CommunityJoinFailed.Code:      CommunityJoinFailed,
	OnboardingStepInvalid.Code:    OnboardingStepInvalid,
	ProfileFieldInvalid.Code:      ProfileFieldInvalid,
	TooltipInvalid.Code:           TooltipInvalid,
	OnboardingNotInitialized.Code: OnboardingNotInitialized,
	SuggestionNotFound.Code:       SuggestionNotFound,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
