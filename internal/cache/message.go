package cache

import (
	"context"
	"time"

	"TandaXN/storage/redis"
)

const messagePrefix = "msg_processed"

// TryMarkMessageProcessing 用 SETNX 原子地检查并标记消息，
// 返回 true 表示本次抢到处理权，false 表示已有消费者处理过
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	return redis.Client().SetNX(ctx, redis.Key(messagePrefix, messageID), "processing", ttl).Result()
}

// MarkMessageProcessed 处理完成后延长标记的 TTL
func MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	return redis.Client().Set(ctx, redis.Key(messagePrefix, messageID), "done", ttl).Err()
}

// UnmarkMessageProcessing 处理失败时取消标记，让消息可以重试
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	return redis.Client().Del(ctx, redis.Key(messagePrefix, messageID)).Err()
}
