package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TandaXN/internal/model"
	"TandaXN/internal/model/dto"
	pkgerrors "TandaXN/pkg/errors"
)

func TestSuggestionsSortedByScore(t *testing.T) {
	svc := NewCommunityService(seedScorer{})

	got := svc.Suggestions(1, dto.UserProfileData{})
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].MatchScore, got[i].MatchScore)
	}
	assert.Equal(t, "com_naija_london", got[0].ID)
}

func TestDismissRemovesSuggestion(t *testing.T) {
	svc := NewCommunityService(seedScorer{})

	require.NoError(t, svc.Dismiss(1, dto.UserProfileData{}, "com_naija_london"))

	got := svc.Suggestions(1, dto.UserProfileData{})
	for _, c := range got {
		assert.NotEqual(t, "com_naija_london", c.ID)
	}

	// 其他用户的列表不受影响
	other := svc.Suggestions(2, dto.UserProfileData{})
	assert.Equal(t, "com_naija_london", other[0].ID)
}

func TestDismissUnknownSuggestion(t *testing.T) {
	svc := NewCommunityService(seedScorer{})

	err := svc.Dismiss(1, dto.UserProfileData{}, "com_nowhere")
	assert.ErrorIs(t, err, pkgerrors.SuggestionNotFound)
}

func TestResetRestoresDismissed(t *testing.T) {
	svc := NewCommunityService(seedScorer{})

	require.NoError(t, svc.Dismiss(1, dto.UserProfileData{}, "com_naija_london"))
	svc.Reset(1)

	got := svc.Suggestions(1, dto.UserProfileData{})
	assert.Equal(t, "com_naija_london", got[0].ID)
}

type tieScorer struct{}

func (tieScorer) Score(_ dto.UserProfileData) []model.SuggestedCommunity {
	return []model.SuggestedCommunity{
		{ID: "a", MatchScore: 80},
		{ID: "b", MatchScore: 90},
		{ID: "c", MatchScore: 80},
	}
}

func TestSuggestionsStableOnTies(t *testing.T) {
	svc := NewCommunityService(tieScorer{})

	got := svc.Suggestions(1, dto.UserProfileData{})
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].ID)
	// 同分保持打分器给出的顺序
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}
