package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TandaXN/internal/model"
)

func TestNextTooltipSmallestOrder(t *testing.T) {
	tips := model.DefaultTooltips()

	next := NextTooltip(tips, "")
	require.NotNil(t, next)
	assert.Equal(t, "dashboard_balance", next.ID)
}

func TestNextTooltipSkipDoesNotBlock(t *testing.T) {
	tips := model.DefaultTooltips()

	// 跳过中间一条，序列不会卡在它上面
	require.True(t, markTooltipShown(tips, "dashboard_quick_send"))

	next := NextTooltip(tips, "")
	require.NotNil(t, next)
	assert.Equal(t, "dashboard_balance", next.ID)

	markTooltipShown(tips, "dashboard_balance")
	next = NextTooltip(tips, "")
	require.NotNil(t, next)
	assert.Equal(t, "circles_overview", next.ID)
}

func TestNextTooltipScreenFilter(t *testing.T) {
	tips := model.DefaultTooltips()

	next := NextTooltip(tips, "Communities")
	require.NotNil(t, next)
	assert.Equal(t, "community_feed", next.ID)

	assert.Nil(t, NextTooltip(tips, "Settings"))
}

func TestNextTooltipExhausted(t *testing.T) {
	tips := model.DefaultTooltips()
	markAllTooltipsShown(tips, "")
	assert.Nil(t, NextTooltip(tips, ""))
}

func TestMarkTooltipShownIdempotent(t *testing.T) {
	tips := model.DefaultTooltips()

	assert.True(t, markTooltipShown(tips, "rewards_intro"))
	assert.True(t, markTooltipShown(tips, "rewards_intro")) // 找到即 true，重复置位无副作用
	assert.False(t, markTooltipShown(tips, "no_such_tooltip"))
}

func TestMarkAllTooltipsShownByScreen(t *testing.T) {
	tips := model.DefaultTooltips()

	changed := markAllTooltipsShown(tips, "Dashboard")
	assert.Equal(t, 2, changed)
	assert.Nil(t, NextTooltip(tips, "Dashboard"))

	next := NextTooltip(tips, "")
	require.NotNil(t, next)
	assert.Equal(t, "circles_overview", next.ID)

	// 再跳过全部，已展示的不重复计数
	changed = markAllTooltipsShown(tips, "")
	assert.Equal(t, 3, changed)
}
