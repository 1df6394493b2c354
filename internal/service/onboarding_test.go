package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TandaXN/internal/model"
	pkgerrors "TandaXN/pkg/errors"
)

// fakeRecordStore 内存持久化后端，可以按需注入读写失败
type fakeRecordStore struct {
	mu       sync.Mutex
	records  map[int64]*model.OnboardingRecord
	tooltips map[int64][]model.TooltipRecord
	failSave bool
	failLoad bool
	saves    int
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		records:  make(map[int64]*model.OnboardingRecord),
		tooltips: make(map[int64][]model.TooltipRecord),
	}
}

func copyRecord(rec *model.OnboardingRecord) *model.OnboardingRecord {
	out := &model.OnboardingRecord{
		Steps:         make([]model.OnboardingStep, len(rec.Steps)),
		ProfileFields: make([]model.ProfileField, len(rec.ProfileFields)),
	}
	copy(out.Steps, rec.Steps)
	copy(out.ProfileFields, rec.ProfileFields)
	return out
}

func (f *fakeRecordStore) LoadOnboarding(_ context.Context, userID int64) (*model.OnboardingRecord, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLoad {
		return nil, false, errors.New("redis down")
	}
	rec, ok := f.records[userID]
	if !ok {
		return nil, false, nil
	}
	return copyRecord(rec), true, nil
}

func (f *fakeRecordStore) SaveOnboarding(_ context.Context, userID int64, rec *model.OnboardingRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.failSave {
		return errors.New("redis down")
	}
	f.records[userID] = copyRecord(rec)
	return nil
}

func (f *fakeRecordStore) DeleteOnboarding(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, userID)
	return nil
}

func (f *fakeRecordStore) LoadTooltips(_ context.Context, userID int64) ([]model.TooltipRecord, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLoad {
		return nil, false, errors.New("redis down")
	}
	tips, ok := f.tooltips[userID]
	if !ok {
		return nil, false, nil
	}
	out := make([]model.TooltipRecord, len(tips))
	copy(out, tips)
	return out, true, nil
}

func (f *fakeRecordStore) SaveTooltips(_ context.Context, userID int64, tips []model.TooltipRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.failSave {
		return errors.New("redis down")
	}
	out := make([]model.TooltipRecord, len(tips))
	copy(out, tips)
	f.tooltips[userID] = out
	return nil
}

func (f *fakeRecordStore) DeleteTooltips(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tooltips, userID)
	return nil
}

func TestStateSeedsDefaults(t *testing.T) {
	svc := NewOnboardingService(newFakeRecordStore())

	state := svc.State(context.Background(), 1)
	require.Len(t, state.Steps, 4)
	require.Len(t, state.ProfileFields, 8)
	assert.Equal(t, 0, state.Completion)
	require.NotNil(t, state.NextIncompleteField)
	assert.Equal(t, "full_name", state.NextIncompleteField.ID)
	require.NotNil(t, state.ActiveTooltip)
	assert.Equal(t, "dashboard_balance", state.ActiveTooltip.ID)
}

func TestCompleteStepIdempotent(t *testing.T) {
	store := newFakeRecordStore()
	svc := NewOnboardingService(store)
	ctx := context.Background()

	changed, err := svc.CompleteStep(ctx, 1, "join_circle")
	require.NoError(t, err)
	assert.True(t, changed)
	savesAfterFirst := store.saves

	// 重复完成是无操作，也不触发持久化
	changed, err = svc.CompleteStep(ctx, 1, "join_circle")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, savesAfterFirst, store.saves)
}

func TestCompleteStepUnknown(t *testing.T) {
	svc := NewOnboardingService(newFakeRecordStore())

	_, err := svc.CompleteStep(context.Background(), 1, "no_such_step")
	assert.ErrorIs(t, err, pkgerrors.OnboardingStepInvalid)
}

func TestRequiredFieldsCascadeCompletesProfileStep(t *testing.T) {
	svc := NewOnboardingService(newFakeRecordStore())
	ctx := context.Background()

	for _, fieldID := range []string{"full_name", "email"} {
		_, err := svc.CompleteProfileField(ctx, 1, fieldID)
		require.NoError(t, err)
	}

	state := svc.State(ctx, 1)
	assert.False(t, state.Steps[0].Completed)

	_, err := svc.CompleteProfileField(ctx, 1, "phone")
	require.NoError(t, err)

	state = svc.State(ctx, 1)
	assert.Equal(t, model.StepCompleteProfile, state.Steps[0].ID)
	assert.True(t, state.Steps[0].Completed)
	assert.Equal(t, 38, state.Completion) // 3/8
}

func TestCompleteProfileFieldUnknown(t *testing.T) {
	svc := NewOnboardingService(newFakeRecordStore())

	_, err := svc.CompleteProfileField(context.Background(), 1, "shoe_size")
	assert.ErrorIs(t, err, pkgerrors.ProfileFieldInvalid)
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	store := newFakeRecordStore()
	store.failSave = true
	svc := NewOnboardingService(store)
	ctx := context.Background()

	changed, err := svc.CompleteStep(ctx, 1, "join_circle")
	assert.True(t, changed)
	assert.Error(t, err)

	// 内存副本是权威的，落盘失败不回退已展示的状态
	state := svc.State(ctx, 1)
	for _, step := range state.Steps {
		if step.ID == "join_circle" {
			assert.True(t, step.Completed)
		}
	}
}

func TestDetachReloadsFromStore(t *testing.T) {
	store := newFakeRecordStore()
	svc := NewOnboardingService(store)
	ctx := context.Background()

	_, err := svc.CompleteStep(ctx, 1, "invite_friends")
	require.NoError(t, err)

	svc.Detach(1)

	state := svc.State(ctx, 1)
	for _, step := range state.Steps {
		if step.ID == "invite_friends" {
			assert.True(t, step.Completed)
		}
	}
}

func TestDetachIsolatesUsers(t *testing.T) {
	svc := NewOnboardingService(newFakeRecordStore())
	ctx := context.Background()

	_, err := svc.CompleteStep(ctx, 1, "join_circle")
	require.NoError(t, err)
	svc.Detach(1)

	// 换一个账号登录，看到的是自己的空白进度
	state := svc.State(ctx, 2)
	for _, step := range state.Steps {
		assert.False(t, step.Completed)
	}
}

func TestCorruptRecordFallsBackWholesale(t *testing.T) {
	store := newFakeRecordStore()
	// 形状不合法：order 重复
	store.records[1] = &model.OnboardingRecord{
		Steps: []model.OnboardingStep{
			{ID: "a", Order: 1, Completed: true},
			{ID: "b", Order: 1},
		},
		ProfileFields: model.DefaultProfileFields(),
	}
	svc := NewOnboardingService(store)

	state := svc.State(context.Background(), 1)
	require.Len(t, state.Steps, 4)
	for _, step := range state.Steps {
		assert.False(t, step.Completed)
	}
}

func TestLoadErrorFallsBackToDefaults(t *testing.T) {
	store := newFakeRecordStore()
	store.failLoad = true
	svc := NewOnboardingService(store)

	state := svc.State(context.Background(), 1)
	require.Len(t, state.Steps, 4)
	require.Len(t, state.ProfileFields, 8)
}

func TestSkipOnboarding(t *testing.T) {
	store := newFakeRecordStore()
	svc := NewOnboardingService(store)
	ctx := context.Background()

	require.NoError(t, svc.SkipOnboarding(ctx, 1))

	state := svc.State(ctx, 1)
	for _, step := range state.Steps {
		assert.True(t, step.Completed)
	}

	// 跳过引导后任何屏幕都不再弹气泡，气泡记录也落盘了
	assert.Nil(t, state.ActiveTooltip)
	assert.Nil(t, svc.ActiveTooltip(ctx, 1, "Dashboard"))
	require.NotEmpty(t, store.tooltips[1])
	for _, tip := range store.tooltips[1] {
		assert.True(t, tip.Shown)
	}

	// 已全部完成时再跳过不触发持久化
	saves := store.saves
	require.NoError(t, svc.SkipOnboarding(ctx, 1))
	assert.Equal(t, saves, store.saves)
}

func TestSkipOnboardingSurvivesReload(t *testing.T) {
	store := newFakeRecordStore()
	svc := NewOnboardingService(store)
	ctx := context.Background()

	require.NoError(t, svc.SkipOnboarding(ctx, 1))
	svc.Detach(1)

	state := svc.State(ctx, 1)
	for _, step := range state.Steps {
		assert.True(t, step.Completed)
	}
	assert.Nil(t, state.ActiveTooltip)
}

func TestResetOnboarding(t *testing.T) {
	store := newFakeRecordStore()
	svc := NewOnboardingService(store)
	ctx := context.Background()

	_, err := svc.CompleteStep(ctx, 1, "join_circle")
	require.NoError(t, err)
	_, err = svc.DismissTooltip(ctx, 1, "dashboard_balance")
	require.NoError(t, err)

	require.NoError(t, svc.ResetOnboarding(ctx, 1))

	state := svc.State(ctx, 1)
	for _, step := range state.Steps {
		assert.False(t, step.Completed)
	}
	require.NotNil(t, state.ActiveTooltip)
	assert.Equal(t, "dashboard_balance", state.ActiveTooltip.ID)
	assert.Empty(t, store.records)
	assert.Empty(t, store.tooltips)
}

func TestDismissTooltip(t *testing.T) {
	store := newFakeRecordStore()
	svc := NewOnboardingService(store)
	ctx := context.Background()

	changed, err := svc.DismissTooltip(ctx, 1, "dashboard_balance")
	require.NoError(t, err)
	assert.True(t, changed)

	next := svc.ActiveTooltip(ctx, 1, "")
	require.NotNil(t, next)
	assert.Equal(t, "dashboard_quick_send", next.ID)

	// 重复 dismiss 是无操作
	saves := store.saves
	changed, err = svc.DismissTooltip(ctx, 1, "dashboard_balance")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, saves, store.saves)

	_, err = svc.DismissTooltip(ctx, 1, "no_such_tooltip")
	assert.ErrorIs(t, err, pkgerrors.TooltipInvalid)
}

func TestSkipAllTooltipsByScreen(t *testing.T) {
	svc := NewOnboardingService(newFakeRecordStore())
	ctx := context.Background()

	require.NoError(t, svc.SkipAllTooltips(ctx, 1, "Dashboard"))
	assert.Nil(t, svc.ActiveTooltip(ctx, 1, "Dashboard"))

	next := svc.ActiveTooltip(ctx, 1, "")
	require.NotNil(t, next)
	assert.Equal(t, "circles_overview", next.ID)

	require.NoError(t, svc.SkipAllTooltips(ctx, 1, ""))
	assert.Nil(t, svc.ActiveTooltip(ctx, 1, ""))
}

func TestCompletionPersistsAcrossReload(t *testing.T) {
	store := newFakeRecordStore()
	svc := NewOnboardingService(store)
	ctx := context.Background()

	_, err := svc.CompleteProfileField(ctx, 1, "full_name")
	require.NoError(t, err)

	svc.Detach(1)

	state := svc.State(ctx, 1)
	assert.Equal(t, 13, state.Completion)
	require.NotNil(t, state.NextIncompleteField)
	assert.Equal(t, "email", state.NextIncompleteField.ID)
}
