package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"TandaXN/config"
	"TandaXN/internal/model"
	"TandaXN/internal/model/dto"
	"TandaXN/internal/pending"
	"TandaXN/internal/queue"
	"TandaXN/pkg/errors"
	"TandaXN/pkg/invitelink"
	"TandaXN/pkg/logger"
	"TandaXN/storage/database"
)

var (
	inviteService *InviteService
	inviteOnce    sync.Once
)

func Invite() *InviteService {
	inviteOnce.Do(func() {
		cfg := config.Cfg
		inviteService = NewInviteService(
			invitelink.New(cfg.InviteAppScheme, cfg.InviteShareOrigin, cfg.InviteOrigins()),
			dbJoiner{},
			Onboarding(),
			queue.PublishInviteAccepted,
		)
	})
	return inviteService
}

// Joiner 执行实际的入圈/入社区写入，默认实现落数据库
type Joiner interface {
	JoinCircle(ctx context.Context, userID int64, inv dto.InviteData) error
	JoinCommunity(ctx context.Context, userID int64, inv dto.InviteData) error
}

// StepAdvancer join 成功后推进引导步骤用，由 OnboardingService 实现
type StepAdvancer interface {
	CompleteStep(ctx context.Context, userID int64, stepID string) (bool, error)
}

type dbJoiner struct{}

func (dbJoiner) JoinCircle(ctx context.Context, userID int64, inv dto.InviteData) error {
	membership := model.CircleMembership{
		UserID:     userID,
		CircleID:   inv.ID,
		CircleName: inv.Name,
		JoinedVia:  "invite",
		InvitedBy:  inv.InvitedByUserID,
	}

	// 重复 join 是无操作，唯一索引兜底
	err := database.DB().WithContext(ctx).
		Where("user_id = ? AND circle_id = ?", userID, inv.ID).
		FirstOrCreate(&membership).Error
	if err != nil {
		return fmt.Errorf("failed to create circle membership: %w", err)
	}
	return nil
}

func (dbJoiner) JoinCommunity(ctx context.Context, userID int64, inv dto.InviteData) error {
	membership := model.CommunityMembership{
		UserID:        userID,
		CommunityID:   inv.ID,
		CommunityName: inv.Name,
		JoinedVia:     "invite",
		InvitedBy:     inv.InvitedByUserID,
	}

	err := database.DB().WithContext(ctx).
		Where("user_id = ? AND community_id = ?", userID, inv.ID).
		FirstOrCreate(&membership).Error
	if err != nil {
		return fmt.Errorf("failed to create community membership: %w", err)
	}
	return nil
}

// InviteService 邀请链接的解析、生成和接受
type InviteService struct {
	codec   *invitelink.Codec
	joiner  Joiner
	steps   StepAdvancer
	publish func(model.InviteAcceptedMessage) error
}

func NewInviteService(codec *invitelink.Codec, joiner Joiner, steps StepAdvancer, publish func(model.InviteAcceptedMessage) error) *InviteService {
	return &InviteService{codec: codec, joiner: joiner, steps: steps, publish: publish}
}

// Resolve 解析任意 URL，不是本应用的邀请链接时返回 nil
func (s *InviteService) Resolve(raw string) *dto.InviteData {
	inv := s.codec.Decode(raw)
	if inv == nil {
		return nil
	}
	data := dto.InviteFromLink(*inv)
	return &data
}

// BuildShareLink 为当前用户生成 web + app 两种链接，
// 邀请人信息从数据库取，保证链接里的名字和账号一致
func (s *InviteService) BuildShareLink(ctx context.Context, userID int64, req dto.ShareLinkRequest) (*dto.ShareLinkData, error) {
	var user model.User
	err := database.DB().WithContext(ctx).
		Where("public_id = ?", userID).
		First(&user).Error
	if err != nil {
		return nil, errors.ErrUserNotFound
	}

	inv := invitelink.Invite{
		Kind:         invitelink.Kind(req.Kind),
		ID:           req.ID,
		Name:         req.Name,
		Icon:         req.Icon,
		InvitedBy:    strconv.FormatInt(userID, 10),
		InviterName:  user.DisplayName,
		Contribution: req.ContributionAmount,
		Frequency:    req.Frequency,
		Members:      req.MemberCount,
	}

	data := &dto.ShareLinkData{
		WebURL: s.codec.ShareURL(inv),
		AppURL: s.codec.AppURL(inv),
	}

	// 生成分享链接即视为完成 invite_friends 步骤，失败只记日志
	if _, err := s.steps.CompleteStep(ctx, userID, "invite_friends"); err != nil {
		logger.Logger.Warn("Failed to complete invite_friends step",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	return data, nil
}

// AcceptFromRequest 处理一次 accept 请求：请求体里带了邀请参数就用它
// （深链直达），否则回退会话槽位（注册回流）。join 成功后槽位清空——
// 深链场景下同一条邀请通常在注册前就暂存过，不清掉会在之后的
// GET pending 里诈尸。join 失败时槽位保留，用户可以重试。
func (s *InviteService) AcceptFromRequest(ctx context.Context, userID int64, body *dto.InviteData, slot *pending.Store) (*dto.AcceptInviteData, error) {
	inv := body
	if inv == nil {
		stashed, err := slot.Get()
		if err != nil {
			return nil, err
		}
		if stashed == nil {
			return nil, errors.InviteNotPending
		}
		inv = stashed
	}

	data, err := s.Accept(ctx, userID, *inv)
	if err != nil {
		return nil, err
	}

	if err := slot.Clear(); err != nil {
		logger.Logger.Warn("Failed to clear pending invite after accept",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	return data, nil
}

// Accept 接受邀请：写入成员关系，推进引导步骤，发布推荐事件。
// 返回值里的 StepCompleted 表示对应步骤是否在本次调用中首次完成。
func (s *InviteService) Accept(ctx context.Context, userID int64, inv dto.InviteData) (*dto.AcceptInviteData, error) {
	var stepID string
	switch inv.Kind {
	case string(invitelink.KindCircle):
		stepID = "join_circle"
		if err := s.joiner.JoinCircle(ctx, userID, inv); err != nil {
			logger.Logger.Error("Failed to join circle",
				zap.Int64("user_id", userID),
				zap.String("circle_id", inv.ID),
				zap.Error(err),
			)
			return nil, errors.CircleJoinFailed
		}
	case string(invitelink.KindCommunity):
		stepID = "explore_communities"
		if err := s.joiner.JoinCommunity(ctx, userID, inv); err != nil {
			logger.Logger.Error("Failed to join community",
				zap.Int64("user_id", userID),
				zap.String("community_id", inv.ID),
				zap.Error(err),
			)
			return nil, errors.CommunityJoinFailed
		}
	default:
		return nil, errors.InviteInvalid
	}

	stepCompleted, err := s.steps.CompleteStep(ctx, userID, stepID)
	if err != nil {
		// 步骤推进失败不回滚 join，内存状态仍然是权威的
		logger.Logger.Warn("Failed to advance onboarding step after join",
			zap.Int64("user_id", userID),
			zap.String("step_id", stepID),
			zap.Error(err),
		)
	}

	if inv.InvitedByUserID != "" {
		msg := model.InviteAcceptedMessage{
			Kind:       inv.Kind,
			TargetID:   inv.ID,
			InviterID:  inv.InvitedByUserID,
			InviteeID:  strconv.FormatInt(userID, 10),
			AcceptedAt: time.Now().Format(time.RFC3339),
		}
		if err := s.publish(msg); err != nil {
			// 发布失败只影响推荐计数，join 已经成功
			logger.Logger.Warn("Failed to publish invite accepted event",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
	}

	return &dto.AcceptInviteData{
		Kind:          inv.Kind,
		TargetID:      inv.ID,
		StepCompleted: stepCompleted,
	}, nil
}
