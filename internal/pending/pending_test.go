package pending

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TandaXN/internal/model/dto"
)

type fakeSession struct {
	values  map[interface{}]interface{}
	saveErr error
	saves   int
}

func newFakeSession() *fakeSession {
	return &fakeSession{values: make(map[interface{}]interface{})}
}

func (f *fakeSession) Get(key interface{}) interface{} { return f.values[key] }
func (f *fakeSession) Set(key, val interface{})        { f.values[key] = val }
func (f *fakeSession) Delete(key interface{})          { delete(f.values, key) }
func (f *fakeSession) Save() error {
	f.saves++
	return f.saveErr
}

func circleInvite(id string) dto.InviteData {
	return dto.InviteData{
		Kind:               "circle",
		ID:                 id,
		Name:               "Family Vault",
		Icon:               "💰",
		InvitedByUserID:    "42",
		InviterDisplayName: "Amara",
	}
}

func TestSetGetClear(t *testing.T) {
	store := NewStore(newFakeSession())

	got, err := store.Get()
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Set(circleInvite("c1")))

	got, err = store.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "c1", got.ID)
	assert.Equal(t, "Amara", got.InviterDisplayName)

	require.NoError(t, store.Clear())

	got, err = store.Get()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLastWriteWins(t *testing.T) {
	store := NewStore(newFakeSession())

	require.NoError(t, store.Set(circleInvite("c1")))
	require.NoError(t, store.Set(circleInvite("c2")))

	got, err := store.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "c2", got.ID)
}

func TestClearEmptySlot(t *testing.T) {
	store := NewStore(newFakeSession())

	require.NoError(t, store.Clear())

	got, err := store.Get()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveErrorSurfaces(t *testing.T) {
	session := newFakeSession()
	session.saveErr = errors.New("cookie too large")
	store := NewStore(session)

	assert.Error(t, store.Set(circleInvite("c1")))
	assert.Error(t, store.Clear())
}

func TestGarbageValueTreatedAsEmpty(t *testing.T) {
	session := newFakeSession()
	session.values[sessionKey] = 12345
	store := NewStore(session)

	got, err := store.Get()
	require.NoError(t, err)
	assert.Nil(t, got)
}
