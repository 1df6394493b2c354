package service

import "TandaXN/internal/model"

// 提示气泡的顺序派生。没有"当前下标"游标，active tooltip 永远是
// 未展示集合里 order 最小的一条，跳过中间某条不会卡住序列。

// NextTooltip 返回应展示的提示气泡：未展示且 order 最小。
// screen 非空时只在该屏幕的气泡里选，序列耗尽返回 nil。
func NextTooltip(tips []model.TooltipRecord, screen string) *model.TooltipRecord {
	var best *model.TooltipRecord
	for i := range tips {
		t := &tips[i]
		if t.Shown {
			continue
		}
		if screen != "" && t.Screen != screen {
			continue
		}
		if best == nil || t.Order < best.Order {
			best = t
		}
	}

	if best == nil {
		return nil
	}
	out := *best
	return &out
}

// markTooltipShown 就地置位，返回是否找到该气泡。
// shown 只会 false -> true，重复标记是无操作。
func markTooltipShown(tips []model.TooltipRecord, tooltipID string) bool {
	for i := range tips {
		if tips[i].ID == tooltipID {
			tips[i].Shown = true
			return true
		}
	}
	return false
}

// markAllTooltipsShown 批量置位（"跳过引导"），screen 非空时只跳过该屏幕的。
// 返回实际改变的条数。
func markAllTooltipsShown(tips []model.TooltipRecord, screen string) int {
	changed := 0
	for i := range tips {
		if screen != "" && tips[i].Screen != screen {
			continue
		}
		if !tips[i].Shown {
			tips[i].Shown = true
			changed++
		}
	}
	return changed
}
