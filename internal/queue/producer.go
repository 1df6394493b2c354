package queue

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"TandaXN/internal/model"
	"TandaXN/pkg/logger"
	"TandaXN/pkg/snowflake"
	"TandaXN/storage/mq"
)

// PublishInviteAccepted 发布邀请接受事件。调用方不等待投递结果，
// 发布失败只影响推荐计数，不影响 join 本身。
func PublishInviteAccepted(msg model.InviteAcceptedMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID(snowflake.GeneratorTypeMessage)
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.String("inviter_id", msg.InviterID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("invite_accepted_%d", id)
	}

	if msg.AcceptedAt == "" {
		msg.AcceptedAt = time.Now().Format(time.RFC3339)
	}

	err := mq.PublishMessage(
		EventsExchange,
		InviteAcceptedKey,
		msg,
	)

	if err != nil {
		logger.Logger.Error("Failed to publish invite accepted event",
			zap.String("message_id", msg.MessageID),
			zap.String("kind", msg.Kind),
			zap.String("inviter_id", msg.InviterID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published invite accepted event",
		zap.String("message_id", msg.MessageID),
		zap.String("kind", msg.Kind),
		zap.String("target_id", msg.TargetID),
		zap.String("inviter_id", msg.InviterID),
	)

	return nil
}
