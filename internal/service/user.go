package service

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"TandaXN/internal/model"
	"TandaXN/internal/model/dto"
	"TandaXN/pkg/errors"
	"TandaXN/pkg/logger"
	"TandaXN/storage/database"
)

var (
	userService *UserService
	userOnce    sync.Once
)

func User() *UserService {
	userOnce.Do(func() {
		userService = &UserService{}
	})
	return userService
}

type UserService struct{}

// 资料列与引导字段的对应关系，更新某列时顺带完成对应字段
var profileFieldByColumn = map[string]string{
	"display_name":       "full_name",
	"avatar_emoji":       "avatar",
	"country":            "country",
	"preferred_language": "language",
}

// Profile 返回用户资料
func (s *UserService) Profile(ctx context.Context, userID int64) (*dto.UserProfileData, error) {
	var user model.User
	err := database.DB().WithContext(ctx).
		Where("public_id = ?", userID).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	return &dto.UserProfileData{
		ID:                strconv.FormatInt(user.PublicID, 10),
		Email:             user.Email,
		DisplayName:       user.DisplayName,
		AvatarEmoji:       user.AvatarEmoji,
		Country:           user.Country,
		PreferredLanguage: user.PreferredLanguage,
		Status:            model.StatusToStringMap[user.Status],
	}, nil
}

// UpdateProfile 更新资料并级联完成对应的引导字段。
// 引导推进失败不影响资料更新本身。
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*dto.UserProfileData, error) {
	updates := make(map[string]interface{})
	if req.DisplayName != nil && *req.DisplayName != "" {
		updates["display_name"] = *req.DisplayName
	}
	if req.AvatarEmoji != nil && *req.AvatarEmoji != "" {
		updates["avatar_emoji"] = *req.AvatarEmoji
	}
	if req.Country != nil && *req.Country != "" {
		updates["country"] = *req.Country
	}
	if req.PreferredLanguage != nil && *req.PreferredLanguage != "" {
		updates["preferred_language"] = *req.PreferredLanguage
	}

	if len(updates) > 0 {
		result := database.DB().WithContext(ctx).
			Model(&model.User{}).
			Where("public_id = ?", userID).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, errors.ErrUserNotFound
		}

		ob := Onboarding()
		for column := range updates {
			fieldID, ok := profileFieldByColumn[column]
			if !ok {
				continue
			}
			if _, err := ob.CompleteProfileField(ctx, userID, fieldID); err != nil {
				logger.Logger.Warn("Failed to mark profile field completed",
					zap.Int64("user_id", userID),
					zap.String("field_id", fieldID),
					zap.Error(err),
				)
			}
		}
	}

	return s.Profile(ctx, userID)
}
