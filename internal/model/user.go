package model

// UserStatus 用户状态枚举
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// User 用户模型
type User struct {
	BaseModel
	PublicID     int64      `gorm:"uniqueIndex;not null" json:"public_id"`
	Email        string     `gorm:"uniqueIndex;type:varchar(255);not null" json:"email"`
	PasswordHash string     `gorm:"type:char(64);not null" json:"-"` // 盐值哈希，不对外暴露
	DisplayName  string     `gorm:"type:varchar(64);not null;default:''" json:"display_name"`
	Status       UserStatus `gorm:"type:varchar(16);not null;default:'active';index:idx_users_status" json:"status"`

	// 资料字段，对应引导流程里的 profile fields
	AvatarEmoji       string `gorm:"type:varchar(16);not null;default:''" json:"avatar_emoji"`
	Country           string `gorm:"type:varchar(64);not null;default:''" json:"country"`
	PreferredLanguage string `gorm:"type:varchar(16);not null;default:'en'" json:"preferred_language"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// StatusToStringMap 状态到响应字符串的映射
var StatusToStringMap = map[UserStatus]string{
	UserStatusActive:   "active",
	UserStatusDisabled: "disabled",
}
