package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	ri "github.com/redis/go-redis/v9"

	"TandaXN/config"
	"TandaXN/internal/model"
	"TandaXN/storage/redis"
)

// 引导记录按用户 public_id 命名空间存储，防止共享设备上的跨账号串扰：
//   txn:onboarding:<userID> -> {steps, profile_fields}
//   txn:tooltips:<userID>   -> [TooltipRecord]

const (
	onboardingPrefix = "onboarding"
	tooltipsPrefix   = "tooltips"
)

func recordTTL() time.Duration {
	days := config.Cfg.OnboardingRecordTTLDays
	if days <= 0 {
		days = 365
	}
	return time.Duration(days) * 24 * time.Hour
}

func userKey(prefix string, userID int64) string {
	return redis.Key(prefix, strconv.FormatInt(userID, 10))
}

// SaveOnboarding 持久化 steps + profile fields（一次写入一条记录）
func SaveOnboarding(ctx context.Context, userID int64, rec *model.OnboardingRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal onboarding record: %w", err)
	}

	return redis.Client().Set(ctx, userKey(onboardingPrefix, userID), data, recordTTL()).Err()
}

// LoadOnboarding 读取引导记录，第二个返回值表示是否存在
func LoadOnboarding(ctx context.Context, userID int64) (*model.OnboardingRecord, bool, error) {
	data, err := redis.Client().Get(ctx, userKey(onboardingPrefix, userID)).Result()
	if err != nil {
		if err == ri.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load onboarding record: %w", err)
	}

	var rec model.OnboardingRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		// 记录损坏按"形状非法"处理，调用方整体回退默认种子
		return nil, false, fmt.Errorf("failed to unmarshal onboarding record: %w", err)
	}

	return &rec, true, nil
}

func DeleteOnboarding(ctx context.Context, userID int64) error {
	return redis.Client().Del(ctx, userKey(onboardingPrefix, userID)).Err()
}

// SaveTooltips 持久化提示气泡记录
func SaveTooltips(ctx context.Context, userID int64, tips []model.TooltipRecord) error {
	data, err := json.Marshal(tips)
	if err != nil {
		return fmt.Errorf("failed to marshal tooltips: %w", err)
	}

	return redis.Client().Set(ctx, userKey(tooltipsPrefix, userID), data, recordTTL()).Err()
}

func LoadTooltips(ctx context.Context, userID int64) ([]model.TooltipRecord, bool, error) {
	data, err := redis.Client().Get(ctx, userKey(tooltipsPrefix, userID)).Result()
	if err != nil {
		if err == ri.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load tooltips: %w", err)
	}

	var tips []model.TooltipRecord
	if err := json.Unmarshal([]byte(data), &tips); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal tooltips: %w", err)
	}

	return tips, true, nil
}

func DeleteTooltips(ctx context.Context, userID int64) error {
	return redis.Client().Del(ctx, userKey(tooltipsPrefix, userID)).Err()
}
