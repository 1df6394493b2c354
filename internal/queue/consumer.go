package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"TandaXN/internal/cache"
	"TandaXN/internal/model"
	"TandaXN/pkg/logger"
	"TandaXN/storage/database"
	"TandaXN/storage/mq"
)

// SetupTopology 声明邀请事件的 exchange/queue/binding，server 和 worker 启动时都调用
func SetupTopology() error {
	return mq.DeclareTopology(EventsExchange, ReferralQueueName, InviteAcceptedKey)
}

// StartInviteAcceptedConsumer 消费 invite.accepted 事件并累加邀请人的推荐计数。
// 阻塞直到消费通道关闭。
func StartInviteAcceptedConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.InviteAcceptedMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal invite accepted message: %w", err)
		}

		// 幂等性检查，SETNX 抢处理权，重复投递直接跳过
		acquired, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// 检查失败时继续处理，可能重复累加，计数可以接受
		} else if !acquired {
			logger.Logger.Info("Message already processed, skipping",
				zap.String("message_id", msg.MessageID),
			)
			return nil
		}

		if err := creditReferral(ctx, msg); err != nil {
			if unmarkErr := cache.UnmarkMessageProcessing(ctx, msg.MessageID); unmarkErr != nil {
				logger.Logger.Warn("Failed to unmark message after processing failure",
					zap.String("message_id", msg.MessageID),
					zap.Error(unmarkErr),
				)
			}
			return err
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		logger.Logger.Info("Credited referral",
			zap.String("message_id", msg.MessageID),
			zap.String("inviter_id", msg.InviterID),
			zap.String("kind", msg.Kind),
		)

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         ReferralQueueName,
		ConsumerTag:   ReferralConsumerID,
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// creditReferral upsert 推荐计数：冲突时累加 accepted_count 并刷新时间戳
func creditReferral(ctx context.Context, msg model.InviteAcceptedMessage) error {
	inviterID, err := strconv.ParseInt(msg.InviterID, 10, 64)
	if err != nil {
		// 邀请人 id 不可解析的消息没有重试价值，记录后吞掉
		logger.Logger.Warn("Dropping invite accepted message with bad inviter id",
			zap.String("message_id", msg.MessageID),
			zap.String("inviter_id", msg.InviterID),
		)
		return nil
	}

	acceptedAt, err := time.Parse(time.RFC3339, msg.AcceptedAt)
	if err != nil {
		acceptedAt = time.Now()
	}

	stat := model.ReferralStat{
		UserID:         inviterID,
		AcceptedCount:  1,
		LastAcceptedAt: &acceptedAt,
	}

	err = database.DB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"accepted_count":   gorm.Expr("referral_stats.accepted_count + 1"),
			"last_accepted_at": acceptedAt,
		}),
	}).Create(&stat).Error
	if err != nil {
		return fmt.Errorf("failed to upsert referral stat: %w", err)
	}

	return nil
}
