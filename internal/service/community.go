package service

import (
	"sort"
	"sync"

	"TandaXN/internal/model"
	"TandaXN/internal/model/dto"
	"TandaXN/pkg/errors"
)

var (
	communityService *CommunityService
	communityOnce    sync.Once
)

func Community() *CommunityService {
	communityOnce.Do(func() {
		communityService = NewCommunityService(seedScorer{})
	})
	return communityService
}

// Scorer 给候选社区打分。当前实现返回固定候选集，
// 换成按用户画像召回的实现时接口不变。
type Scorer interface {
	Score(profile dto.UserProfileData) []model.SuggestedCommunity
}

type seedScorer struct{}

func (seedScorer) Score(_ dto.UserProfileData) []model.SuggestedCommunity {
	return []model.SuggestedCommunity{
		{
			ID: "com_naija_london", Name: "Naija Savers London", Icon: "🇳🇬",
			Reason: "Popular with savers from your region", MemberCount: 2843,
			Category: "regional", MatchScore: 92,
		},
		{
			ID: "com_kenya_diaspora", Name: "Kenya Diaspora Network", Icon: "🇰🇪",
			Reason: "Active circles sending money home weekly", MemberCount: 1976,
			Category: "regional", MatchScore: 88,
		},
		{
			ID: "com_first_gen", Name: "First-Gen Wealth Builders", Icon: "💪",
			Reason: "Savers at a similar stage of their journey", MemberCount: 5214,
			Category: "interest", MatchScore: 81,
		},
		{
			ID: "com_students_abroad", Name: "Students Abroad", Icon: "🎓",
			Reason: "Budget-friendly circles with low contributions", MemberCount: 3390,
			Category: "interest", MatchScore: 74,
		},
		{
			ID: "com_ghana_union", Name: "Ghana Union Savings", Icon: "🇬🇭",
			Reason: "Long-running circles with verified organizers", MemberCount: 1528,
			Category: "regional", MatchScore: 69,
		},
		{
			ID: "com_family_remit", Name: "Family Remittance Tips", Icon: "🏠",
			Reason: "Advice on fees and transfer timing", MemberCount: 4102,
			Category: "interest", MatchScore: 63,
		},
	}
}

// CommunityService 推荐社区。忽略(dismiss)只存在于内存里，
// 重启或重新登录后会重新出现，这是产品预期行为。
type CommunityService struct {
	scorer Scorer

	mu        sync.Mutex
	dismissed map[int64]map[string]struct{}
}

func NewCommunityService(scorer Scorer) *CommunityService {
	return &CommunityService{
		scorer:    scorer,
		dismissed: make(map[int64]map[string]struct{}),
	}
}

// Suggestions 返回按 match_score 降序的推荐列表，
// 分数相同保持打分器给出的顺序，已忽略的条目被过滤掉
func (s *CommunityService) Suggestions(userID int64, profile dto.UserProfileData) []model.SuggestedCommunity {
	scored := s.scorer.Score(profile)

	s.mu.Lock()
	hidden := s.dismissed[userID]
	s.mu.Unlock()

	out := make([]model.SuggestedCommunity, 0, len(scored))
	for _, c := range scored {
		if _, skip := hidden[c.ID]; skip {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

// Dismiss 从推荐列表里移除一条。只改内存，不落盘。
func (s *CommunityService) Dismiss(userID int64, profile dto.UserProfileData, communityID string) error {
	known := false
	for _, c := range s.scorer.Score(profile) {
		if c.ID == communityID {
			known = true
			break
		}
	}
	if !known {
		return errors.SuggestionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dismissed[userID] == nil {
		s.dismissed[userID] = make(map[string]struct{})
	}
	s.dismissed[userID][communityID] = struct{}{}
	return nil
}

// Reset 登出时清空该用户的忽略集合
func (s *CommunityService) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.dismissed, userID)
}
