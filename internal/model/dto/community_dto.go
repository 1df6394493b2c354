package dto

import "TandaXN/internal/model"

// SuggestedCommunitiesData 推荐社区列表，按 match_score 降序
type SuggestedCommunitiesData struct {
	Suggestions []model.SuggestedCommunity `json:"suggestions"`
}
