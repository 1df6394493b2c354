package cache

import (
	"context"
	"time"

	"TandaXN/config"
	"TandaXN/storage/redis"
)

const refreshTokenPrefix = "refresh_token"

// SetRefreshToken 存储 refresh token，旧值直接覆盖（单设备会话）
func SetRefreshToken(ctx context.Context, userID string, token string) error {
	ttl := time.Duration(config.Cfg.JWTRefreshDays) * 24 * time.Hour
	return redis.Client().Set(ctx, redis.Key(refreshTokenPrefix, userID), token, ttl).Err()
}

// ValidateRefreshTokenExists 校验 refresh token 与缓存中的一致
func ValidateRefreshTokenExists(ctx context.Context, userID string, token string) bool {
	stored, err := redis.Client().Get(ctx, redis.Key(refreshTokenPrefix, userID)).Result()
	if err != nil {
		return false
	}
	return stored == token
}

// DeleteRefreshToken 登出时吊销 refresh token
func DeleteRefreshToken(ctx context.Context, userID string) error {
	return redis.Client().Del(ctx, redis.Key(refreshTokenPrefix, userID)).Err()
}
