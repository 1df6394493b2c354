package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TandaXN/internal/model"
	"TandaXN/internal/model/dto"
	"TandaXN/internal/pending"
	pkgerrors "TandaXN/pkg/errors"
	"TandaXN/pkg/invitelink"
)

type fakeJoiner struct {
	circleCalls    int
	communityCalls int
	failCircle     bool
	failCommunity  bool
}

func (f *fakeJoiner) JoinCircle(_ context.Context, _ int64, _ dto.InviteData) error {
	f.circleCalls++
	if f.failCircle {
		return errors.New("db down")
	}
	return nil
}

func (f *fakeJoiner) JoinCommunity(_ context.Context, _ int64, _ dto.InviteData) error {
	f.communityCalls++
	if f.failCommunity {
		return errors.New("db down")
	}
	return nil
}

func newTestInviteService(joiner Joiner) (*InviteService, *[]model.InviteAcceptedMessage) {
	codec := invitelink.New("tandaxn", "https://tandaxn.com", []string{"https://tandaxn.com"})
	var published []model.InviteAcceptedMessage
	publish := func(msg model.InviteAcceptedMessage) error {
		published = append(published, msg)
		return nil
	}
	svc := NewInviteService(codec, joiner, NewOnboardingService(newFakeRecordStore()), publish)
	return svc, &published
}

func TestResolveInviteLink(t *testing.T) {
	svc, _ := newTestInviteService(&fakeJoiner{})

	inv := svc.Resolve("https://tandaxn.com/invite/circle/c1?name=Family+Vault&emoji=%F0%9F%92%B0&inviter=42&inviterName=Amara")
	require.NotNil(t, inv)
	assert.Equal(t, "circle", inv.Kind)
	assert.Equal(t, "c1", inv.ID)
	assert.Equal(t, "Amara", inv.InviterDisplayName)

	assert.Nil(t, svc.Resolve("https://evil.example.com/invite/circle/c1"))
	assert.Nil(t, svc.Resolve("not a url at all"))
}

func TestAcceptCircleInvite(t *testing.T) {
	joiner := &fakeJoiner{}
	svc, published := newTestInviteService(joiner)

	inv := dto.InviteData{
		Kind:            "circle",
		ID:              "c1",
		Name:            "Family Vault",
		InvitedByUserID: "42",
	}

	result, err := svc.Accept(context.Background(), 7, inv)
	require.NoError(t, err)
	assert.Equal(t, 1, joiner.circleCalls)
	assert.Equal(t, "circle", result.Kind)
	assert.Equal(t, "c1", result.TargetID)
	assert.True(t, result.StepCompleted)

	require.Len(t, *published, 1)
	assert.Equal(t, "42", (*published)[0].InviterID)
	assert.Equal(t, "7", (*published)[0].InviteeID)

	// 第二次接受同类邀请，步骤已经完成
	result, err = svc.Accept(context.Background(), 7, inv)
	require.NoError(t, err)
	assert.False(t, result.StepCompleted)
}

func TestAcceptCommunityInvite(t *testing.T) {
	joiner := &fakeJoiner{}
	svc, _ := newTestInviteService(joiner)

	inv := dto.InviteData{Kind: "community", ID: "com1", InvitedByUserID: "42"}

	result, err := svc.Accept(context.Background(), 7, inv)
	require.NoError(t, err)
	assert.Equal(t, 1, joiner.communityCalls)
	assert.True(t, result.StepCompleted)
}

func TestAcceptJoinFailure(t *testing.T) {
	joiner := &fakeJoiner{failCircle: true}
	svc, published := newTestInviteService(joiner)

	inv := dto.InviteData{Kind: "circle", ID: "c1", InvitedByUserID: "42"}

	_, err := svc.Accept(context.Background(), 7, inv)
	assert.ErrorIs(t, err, pkgerrors.CircleJoinFailed)
	assert.Empty(t, *published)
}

func TestAcceptUnknownKind(t *testing.T) {
	svc, _ := newTestInviteService(&fakeJoiner{})

	_, err := svc.Accept(context.Background(), 7, dto.InviteData{Kind: "party", ID: "x"})
	assert.ErrorIs(t, err, pkgerrors.InviteInvalid)
}

func TestAcceptWithoutInviterSkipsEvent(t *testing.T) {
	svc, published := newTestInviteService(&fakeJoiner{})

	inv := dto.InviteData{Kind: "circle", ID: "c1"}
	result, err := svc.Accept(context.Background(), 7, inv)
	require.NoError(t, err)
	assert.True(t, result.StepCompleted)
	assert.Empty(t, *published)
}

type fakeInviteSession struct {
	values map[interface{}]interface{}
}

func newFakeInviteSession() *fakeInviteSession {
	return &fakeInviteSession{values: make(map[interface{}]interface{})}
}

func (f *fakeInviteSession) Get(key interface{}) interface{} { return f.values[key] }

func (f *fakeInviteSession) Set(key interface{}, val interface{}) { f.values[key] = val }

func (f *fakeInviteSession) Delete(key interface{}) { delete(f.values, key) }

func (f *fakeInviteSession) Save() error { return nil }

func TestAcceptFromRequestBodyClearsStashedCopy(t *testing.T) {
	svc, _ := newTestInviteService(&fakeJoiner{})
	slot := pending.NewStore(newFakeInviteSession())

	// 深链直达：同一条邀请在注册前就暂存过
	inv := dto.InviteData{Kind: "circle", ID: "c1", Name: "Family Vault"}
	require.NoError(t, slot.Set(inv))

	result, err := svc.AcceptFromRequest(context.Background(), 7, &inv, slot)
	require.NoError(t, err)
	assert.Equal(t, "c1", result.TargetID)

	// 请求体携带邀请时槽位也要清掉，不然之后 GET pending 会取回陈旧副本
	stashed, err := slot.Get()
	require.NoError(t, err)
	assert.Nil(t, stashed)
}

func TestAcceptFromRequestFallsBackToPending(t *testing.T) {
	svc, _ := newTestInviteService(&fakeJoiner{})
	slot := pending.NewStore(newFakeInviteSession())

	require.NoError(t, slot.Set(dto.InviteData{Kind: "community", ID: "com1"}))

	result, err := svc.AcceptFromRequest(context.Background(), 7, nil, slot)
	require.NoError(t, err)
	assert.Equal(t, "com1", result.TargetID)

	stashed, err := slot.Get()
	require.NoError(t, err)
	assert.Nil(t, stashed)
}

func TestAcceptFromRequestEmptySlot(t *testing.T) {
	svc, _ := newTestInviteService(&fakeJoiner{})
	slot := pending.NewStore(newFakeInviteSession())

	_, err := svc.AcceptFromRequest(context.Background(), 7, nil, slot)
	assert.ErrorIs(t, err, pkgerrors.InviteNotPending)
}

func TestAcceptFromRequestJoinFailureKeepsSlot(t *testing.T) {
	svc, _ := newTestInviteService(&fakeJoiner{failCircle: true})
	slot := pending.NewStore(newFakeInviteSession())

	inv := dto.InviteData{Kind: "circle", ID: "c1"}
	require.NoError(t, slot.Set(inv))

	_, err := svc.AcceptFromRequest(context.Background(), 7, nil, slot)
	assert.ErrorIs(t, err, pkgerrors.CircleJoinFailed)

	// 失败时槽位保留，用户可以重试
	stashed, err := slot.Get()
	require.NoError(t, err)
	require.NotNil(t, stashed)
	assert.Equal(t, "c1", stashed.ID)
}
