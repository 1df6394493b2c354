package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"TandaXN/internal/cache"
	"TandaXN/internal/model"
	"TandaXN/internal/model/dto"
	"TandaXN/pkg/errors"
	"TandaXN/pkg/logger"
)

var (
	onboardingService *OnboardingService
	onboardingOnce    sync.Once
)

func Onboarding() *OnboardingService {
	onboardingOnce.Do(func() {
		onboardingService = NewOnboardingService(redisRecordStore{})
	})
	return onboardingService
}

// RecordStore 引导记录的持久化后端，默认实现落 Redis
type RecordStore interface {
	LoadOnboarding(ctx context.Context, userID int64) (*model.OnboardingRecord, bool, error)
	SaveOnboarding(ctx context.Context, userID int64, rec *model.OnboardingRecord) error
	DeleteOnboarding(ctx context.Context, userID int64) error
	LoadTooltips(ctx context.Context, userID int64) ([]model.TooltipRecord, bool, error)
	SaveTooltips(ctx context.Context, userID int64, tips []model.TooltipRecord) error
	DeleteTooltips(ctx context.Context, userID int64) error
}

type redisRecordStore struct{}

func (redisRecordStore) LoadOnboarding(ctx context.Context, userID int64) (*model.OnboardingRecord, bool, error) {
	return cache.LoadOnboarding(ctx, userID)
}

func (redisRecordStore) SaveOnboarding(ctx context.Context, userID int64, rec *model.OnboardingRecord) error {
	return cache.SaveOnboarding(ctx, userID, rec)
}

func (redisRecordStore) DeleteOnboarding(ctx context.Context, userID int64) error {
	return cache.DeleteOnboarding(ctx, userID)
}

func (redisRecordStore) LoadTooltips(ctx context.Context, userID int64) ([]model.TooltipRecord, bool, error) {
	return cache.LoadTooltips(ctx, userID)
}

func (redisRecordStore) SaveTooltips(ctx context.Context, userID int64, tips []model.TooltipRecord) error {
	return cache.SaveTooltips(ctx, userID, tips)
}

func (redisRecordStore) DeleteTooltips(ctx context.Context, userID int64) error {
	return cache.DeleteTooltips(ctx, userID)
}

// OnboardingService 管理每个登录用户的引导状态。
// 内存副本是权威数据，持久化失败只降级为"重启后丢进度"，
// 不会让已经展示给用户的状态回退。
type OnboardingService struct {
	store RecordStore

	mu     sync.Mutex
	states map[int64]*userOnboardingState
}

// userOnboardingState 单个用户的状态。st.mu 串行化该用户的全部读写，
// 修改和持久化在同一个临界区里完成，并发请求不会交错出中间态。
type userOnboardingState struct {
	mu       sync.Mutex
	loaded   bool
	record   model.OnboardingRecord
	tooltips []model.TooltipRecord
}

func NewOnboardingService(store RecordStore) *OnboardingService {
	return &OnboardingService{
		store:  store,
		states: make(map[int64]*userOnboardingState),
	}
}

func (s *OnboardingService) entry(userID int64) *userOnboardingState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[userID]
	if !ok {
		st = &userOnboardingState{}
		s.states[userID] = st
	}
	return st
}

// ensureLoaded 在 st.mu 持有时调用。记录缺失、损坏或形状不合法时
// 整体回退默认种子，不做部分合并。
func (s *OnboardingService) ensureLoaded(ctx context.Context, st *userOnboardingState, userID int64) {
	if st.loaded {
		return
	}

	rec, found, err := s.store.LoadOnboarding(ctx, userID)
	switch {
	case err != nil:
		logger.Logger.Warn("Failed to load onboarding record, falling back to defaults",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		fallthrough
	case !found, !model.ValidRecord(rec):
		st.record = model.OnboardingRecord{
			Steps:         model.DefaultOnboardingSteps(),
			ProfileFields: model.DefaultProfileFields(),
		}
	default:
		st.record = *rec
	}

	tips, found, err := s.store.LoadTooltips(ctx, userID)
	switch {
	case err != nil:
		logger.Logger.Warn("Failed to load tooltips, falling back to defaults",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		fallthrough
	case !found, !model.ValidTooltips(tips):
		st.tooltips = model.DefaultTooltips()
	default:
		st.tooltips = tips
	}

	st.loaded = true
}

// Attach 登录成功后预热该用户的状态
func (s *OnboardingService) Attach(ctx context.Context, userID int64) {
	st := s.entry(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	s.ensureLoaded(ctx, st, userID)
}

// Detach 登出时丢弃内存状态，避免共享实例上的跨账号串扰。
// 持久化记录保留，下次登录重新加载。
func (s *OnboardingService) Detach(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}

// State 返回完整引导状态快照，派生值读取时现算
func (s *OnboardingService) State(ctx context.Context, userID int64) *dto.OnboardingStateData {
	st := s.entry(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	s.ensureLoaded(ctx, st, userID)

	steps := make([]model.OnboardingStep, len(st.record.Steps))
	copy(steps, st.record.Steps)
	fields := make([]model.ProfileField, len(st.record.ProfileFields))
	copy(fields, st.record.ProfileFields)

	return &dto.OnboardingStateData{
		Steps:               steps,
		ProfileFields:       fields,
		Completion:          ProfileCompletion(fields),
		IncompleteFields:    IncompleteFields(fields),
		NextIncompleteField: NextIncompleteField(fields),
		ActiveTooltip:       NextTooltip(st.tooltips, ""),
	}
}

// CompleteStep 标记步骤完成。幂等：已完成的步骤是无操作，不触发持久化。
// 返回值表示状态是否发生变化；持久化失败时内存已更新，错误只用于记录。
func (s *OnboardingService) CompleteStep(ctx context.Context, userID int64, stepID string) (bool, error) {
	st := s.entry(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	s.ensureLoaded(ctx, st, userID)

	idx := -1
	for i := range st.record.Steps {
		if st.record.Steps[i].ID == stepID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, errors.OnboardingStepInvalid
	}

	if st.record.Steps[idx].Completed {
		return false, nil
	}

	st.record.Steps[idx].Completed = true

	if err := s.store.SaveOnboarding(ctx, userID, &st.record); err != nil {
		return true, fmt.Errorf("failed to persist onboarding record: %w", err)
	}
	return true, nil
}

// CompleteProfileField 标记资料字段完成。所有必填字段完成后级联
// 强制完成 complete_profile 步骤，两处修改在同一次持久化里落盘。
func (s *OnboardingService) CompleteProfileField(ctx context.Context, userID int64, fieldID string) (bool, error) {
	st := s.entry(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	s.ensureLoaded(ctx, st, userID)

	idx := -1
	for i := range st.record.ProfileFields {
		if st.record.ProfileFields[i].ID == fieldID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, errors.ProfileFieldInvalid
	}

	if st.record.ProfileFields[idx].Completed {
		return false, nil
	}

	st.record.ProfileFields[idx].Completed = true

	if RequiredFieldsDone(st.record.ProfileFields) {
		for i := range st.record.Steps {
			if st.record.Steps[i].ID == model.StepCompleteProfile {
				st.record.Steps[i].Completed = true
				break
			}
		}
	}

	if err := s.store.SaveOnboarding(ctx, userID, &st.record); err != nil {
		return true, fmt.Errorf("failed to persist onboarding record: %w", err)
	}
	return true, nil
}

// SkipOnboarding 一次性标记所有步骤完成、所有气泡已展示。
// 跳过引导的用户不应该再被任何屏幕的气泡打扰，两份记录同一临界区内落盘。
func (s *OnboardingService) SkipOnboarding(ctx context.Context, userID int64) error {
	st := s.entry(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	s.ensureLoaded(ctx, st, userID)

	stepsChanged := false
	for i := range st.record.Steps {
		if !st.record.Steps[i].Completed {
			st.record.Steps[i].Completed = true
			stepsChanged = true
		}
	}
	tipsChanged := markAllTooltipsShown(st.tooltips, "") > 0

	if stepsChanged {
		if err := s.store.SaveOnboarding(ctx, userID, &st.record); err != nil {
			return fmt.Errorf("failed to persist onboarding record: %w", err)
		}
	}
	if tipsChanged {
		if err := s.store.SaveTooltips(ctx, userID, st.tooltips); err != nil {
			return fmt.Errorf("failed to persist tooltips: %w", err)
		}
	}
	return nil
}

// ResetOnboarding 回到默认种子，清掉持久化记录。主要给支持排障用。
func (s *OnboardingService) ResetOnboarding(ctx context.Context, userID int64) error {
	st := s.entry(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.record = model.OnboardingRecord{
		Steps:         model.DefaultOnboardingSteps(),
		ProfileFields: model.DefaultProfileFields(),
	}
	st.tooltips = model.DefaultTooltips()
	st.loaded = true

	if err := s.store.DeleteOnboarding(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete onboarding record: %w", err)
	}
	if err := s.store.DeleteTooltips(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete tooltips: %w", err)
	}
	return nil
}

// ActiveTooltip 返回指定屏幕下一条未展示的提示气泡，screen 为空不过滤
func (s *OnboardingService) ActiveTooltip(ctx context.Context, userID int64, screen string) *model.TooltipRecord {
	st := s.entry(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	s.ensureLoaded(ctx, st, userID)

	return NextTooltip(st.tooltips, screen)
}

// DismissTooltip 标记气泡已展示。重复标记是无操作。
func (s *OnboardingService) DismissTooltip(ctx context.Context, userID int64, tooltipID string) (bool, error) {
	st := s.entry(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	s.ensureLoaded(ctx, st, userID)

	found := false
	for i := range st.tooltips {
		if st.tooltips[i].ID == tooltipID {
			found = true
			if st.tooltips[i].Shown {
				return false, nil
			}
			break
		}
	}
	if !found {
		return false, errors.TooltipInvalid
	}

	markTooltipShown(st.tooltips, tooltipID)

	if err := s.store.SaveTooltips(ctx, userID, st.tooltips); err != nil {
		return true, fmt.Errorf("failed to persist tooltips: %w", err)
	}
	return true, nil
}

// SkipAllTooltips 批量跳过，screen 为空时跳过全部
func (s *OnboardingService) SkipAllTooltips(ctx context.Context, userID int64, screen string) error {
	st := s.entry(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	s.ensureLoaded(ctx, st, userID)

	if markAllTooltipsShown(st.tooltips, screen) == 0 {
		return nil
	}

	if err := s.store.SaveTooltips(ctx, userID, st.tooltips); err != nil {
		return fmt.Errorf("failed to persist tooltips: %w", err)
	}
	return nil
}
