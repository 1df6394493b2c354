package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 各表公共字段。自增 ID 只在库内做主键，
// 对外暴露的用户标识走 snowflake public_id。
type BaseModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
