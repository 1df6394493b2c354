package service

import (
	"math"

	"TandaXN/internal/model"
)

// 资料完成度的派生计算。completion 不单独存储，每次从字段集合现算，
// 所以不存在计数器与字段状态漂移的问题。

// ProfileCompletion 返回 0~100 的整数百分比，round(100 * 完成数 / 总数)。
// 字段集合为空时返回 0。
func ProfileCompletion(fields []model.ProfileField) int {
	if len(fields) == 0 {
		return 0
	}

	completed := 0
	for _, f := range fields {
		if f.Completed {
			completed++
		}
	}

	return int(math.Round(100 * float64(completed) / float64(len(fields))))
}

// IncompleteFields 返回未完成字段，保持种子定义顺序
func IncompleteFields(fields []model.ProfileField) []model.ProfileField {
	var out []model.ProfileField
	for _, f := range fields {
		if !f.Completed {
			out = append(out, f)
		}
	}
	return out
}

// NextIncompleteField 返回种子顺序中第一个未完成的字段，全部完成时为 nil。
// 顺序就是定义顺序，不按 required 优先排序。
func NextIncompleteField(fields []model.ProfileField) *model.ProfileField {
	for i := range fields {
		if !fields[i].Completed {
			f := fields[i]
			return &f
		}
	}
	return nil
}

// RequiredFieldsDone 判断所有必填字段是否都已完成，
// 用于级联强制完成 complete_profile 步骤
func RequiredFieldsDone(fields []model.ProfileField) bool {
	for _, f := range fields {
		if f.Required && !f.Completed {
			return false
		}
	}
	return true
}
