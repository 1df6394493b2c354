package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TandaXN/internal/model"
)

func TestProfileCompletionEmpty(t *testing.T) {
	assert.Equal(t, 0, ProfileCompletion(nil))
	assert.Equal(t, 0, ProfileCompletion([]model.ProfileField{}))
}

func TestProfileCompletionRounding(t *testing.T) {
	fields := model.DefaultProfileFields()
	require.Len(t, fields, 8)

	assert.Equal(t, 0, ProfileCompletion(fields))

	fields[0].Completed = true
	assert.Equal(t, 13, ProfileCompletion(fields)) // 12.5 四舍五入

	fields[1].Completed = true
	assert.Equal(t, 25, ProfileCompletion(fields))

	fields[2].Completed = true
	assert.Equal(t, 38, ProfileCompletion(fields)) // 37.5

	for i := range fields {
		fields[i].Completed = true
	}
	assert.Equal(t, 100, ProfileCompletion(fields))
}

func TestIncompleteFieldsKeepsSeedOrder(t *testing.T) {
	fields := model.DefaultProfileFields()
	fields[0].Completed = true // full_name
	fields[2].Completed = true // phone

	incomplete := IncompleteFields(fields)
	require.Len(t, incomplete, 6)
	assert.Equal(t, "email", incomplete[0].ID)
	assert.Equal(t, "avatar", incomplete[1].ID)
}

func TestNextIncompleteField(t *testing.T) {
	fields := model.DefaultProfileFields()

	next := NextIncompleteField(fields)
	require.NotNil(t, next)
	assert.Equal(t, "full_name", next.ID)

	// 顺序是定义顺序，不按 required 优先
	fields[0].Completed = true
	fields[1].Completed = true
	fields[2].Completed = true
	next = NextIncompleteField(fields)
	require.NotNil(t, next)
	assert.Equal(t, "avatar", next.ID)
	assert.False(t, next.Required)

	for i := range fields {
		fields[i].Completed = true
	}
	assert.Nil(t, NextIncompleteField(fields))
}

func TestRequiredFieldsDone(t *testing.T) {
	fields := model.DefaultProfileFields()
	assert.False(t, RequiredFieldsDone(fields))

	// 只完成必填三项即可，选填不影响
	for i := range fields {
		if fields[i].Required {
			fields[i].Completed = true
		}
	}
	assert.True(t, RequiredFieldsDone(fields))
}
