package dto

// SignupRequest 注册请求
type SignupRequest struct {
	Email       string `json:"email" vd:"len($)>0"`
	Password    string `json:"password" vd:"len($)>7"`
	DisplayName string `json:"display_name"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" vd:"len($)>0"`
	Password string `json:"password" vd:"len($)>0"`
}

// RefreshTokenRequest token 刷新请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" vd:"len($)>0"`
}

// TokenPairData access/refresh token 对
type TokenPairData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// AuthUserData 认证成功返回的用户快照
type AuthUserData struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	DisplayName string        `json:"display_name"`
	Status      string        `json:"status"`
	IsNewUser   bool          `json:"is_new_user"`
	Tokens      TokenPairData `json:"tokens"`
}

// UserProfileData 用户资料
type UserProfileData struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	DisplayName       string `json:"display_name"`
	AvatarEmoji       string `json:"avatar_emoji"`
	Country           string `json:"country"`
	PreferredLanguage string `json:"preferred_language"`
	Status            string `json:"status"`
}
