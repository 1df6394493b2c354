package service

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"TandaXN/internal/cache"
	"TandaXN/internal/model"
	"TandaXN/internal/model/dto"
	"TandaXN/pkg/errors"
	"TandaXN/pkg/logger"
	"TandaXN/pkg/snowflake"
	"TandaXN/pkg/token"
	"TandaXN/storage/database"
	"TandaXN/utils"
)

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = &AuthService{}
	})
	return authService
}

type AuthService struct{}

// Signup 注册新用户并直接登录。注册成功后立即创建引导状态，
// 注册时已经给出的资料（邮箱、姓名）同步标记为已完成。
func (s *AuthService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthUserData, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, errors.InvalidCredentials
	}

	var existing model.User
	err := database.DB().WithContext(ctx).
		Where("email = ?", req.Email).
		First(&existing).Error
	if err == nil {
		return nil, errors.EmailAlreadyRegistered
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	publicID, err := snowflake.NextID(snowflake.GeneratorTypeUser)
	if err != nil {
		return nil, err
	}

	user := model.User{
		PublicID:     publicID,
		Email:        req.Email,
		PasswordHash: utils.HashPassword(req.Password),
		DisplayName:  req.DisplayName,
		Status:       model.UserStatusActive,
	}

	if err := database.DB().WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	logger.Logger.Info("New user created",
		zap.Int64("public_id", publicID),
		zap.String("email", req.Email),
	)

	tokens, err := s.issueTokens(ctx, publicID)
	if err != nil {
		return nil, err
	}

	ob := Onboarding()
	ob.Attach(ctx, publicID)
	s.markPrefilledFields(ctx, ob, publicID, req.DisplayName)

	return &dto.AuthUserData{
		ID:          strconv.FormatInt(publicID, 10),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Status:      model.StatusToStringMap[user.Status],
		IsNewUser:   true,
		Tokens:      *tokens,
	}, nil
}

// Login 邮箱密码登录
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthUserData, error) {
	var user model.User
	err := database.DB().WithContext(ctx).
		Where("email = ?", req.Email).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.InvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash != utils.HashPassword(req.Password) {
		return nil, errors.InvalidCredentials
	}

	if user.Status == model.UserStatusDisabled {
		return nil, errors.Unauthorized
	}

	tokens, err := s.issueTokens(ctx, user.PublicID)
	if err != nil {
		return nil, err
	}

	Onboarding().Attach(ctx, user.PublicID)

	return &dto.AuthUserData{
		ID:          strconv.FormatInt(user.PublicID, 10),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Status:      model.StatusToStringMap[user.Status],
		IsNewUser:   false,
		Tokens:      *tokens,
	}, nil
}

// RefreshToken 用 refresh token 换新的 token 对，旧 refresh token 随即失效
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairData, error) {
	userIDStr, err := token.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Unauthorized
	}

	if !cache.ValidateRefreshTokenExists(ctx, userIDStr, refreshToken) {
		return nil, errors.Unauthorized
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return nil, errors.InvalidUserID
	}

	return s.issueTokens(ctx, userID)
}

// Logout 吊销 refresh token 并丢弃该用户的内存状态，
// 共享设备上换账号登录不会看到上一个人的引导进度
func (s *AuthService) Logout(ctx context.Context, userID int64) {
	userIDStr := strconv.FormatInt(userID, 10)
	if err := cache.DeleteRefreshToken(ctx, userIDStr); err != nil {
		logger.Logger.Warn("Failed to delete refresh token",
			zap.String("user_id", userIDStr),
			zap.Error(err),
		)
	}

	Onboarding().Detach(userID)
	Community().Reset(userID)
}

func (s *AuthService) issueTokens(ctx context.Context, userID int64) (*dto.TokenPairData, error) {
	userIDStr := strconv.FormatInt(userID, 10)
	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(userIDStr)
	if err != nil {
		return nil, err
	}

	if err := cache.SetRefreshToken(ctx, userIDStr, refreshToken); err != nil {
		logger.Logger.Warn("Failed to store refresh token in Redis",
			zap.String("user_id", userIDStr),
			zap.Error(err),
		)
		// token 已经签发成功，缓存失败不影响本次登录
	}

	return &dto.TokenPairData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	}, nil
}

func (s *AuthService) markPrefilledFields(ctx context.Context, ob *OnboardingService, userID int64, displayName string) {
	if _, err := ob.CompleteProfileField(ctx, userID, "email"); err != nil {
		logger.Logger.Warn("Failed to mark email field completed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	if displayName != "" {
		if _, err := ob.CompleteProfileField(ctx, userID, "full_name"); err != nil {
			logger.Logger.Warn("Failed to mark full_name field completed",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
	}
}
