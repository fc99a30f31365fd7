package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchQuery_Validate_Defaults(t *testing.T) {
	q := SearchQuery{Keywords: []string{"python"}}
	require.NoError(t, q.Validate())
	assert.Equal(t, MatchAny, q.MatchMode)
	assert.Equal(t, SortByScore, q.SortBy)
	assert.Equal(t, SortDesc, q.SortOrder)
	assert.Equal(t, 10, q.Limit)
}

func TestSearchQuery_Validate_RequiresAtLeastOneCriterion(t *testing.T) {
	q := SearchQuery{}
	err := q.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestSearchQuery_Validate_TitleOnlyIsSufficient(t *testing.T) {
	q := SearchQuery{TitleFilter: "design doc"}
	require.NoError(t, q.Validate())
}

func TestSearchQuery_Validate_DateRange(t *testing.T) {
	from := time.Now()
	to := from.Add(-time.Hour)
	q := SearchQuery{TitleFilter: "x", FromDate: &from, ToDate: &to}
	err := q.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestSearchQuery_Validate_MessageCountBounds(t *testing.T) {
	q := SearchQuery{TitleFilter: "x", MinMessages: 5, MaxMessages: 1}
	err := q.Validate()
	require.Error(t, err)
}

func TestSearchQuery_Validate_EmptyKeywordRejected(t *testing.T) {
	q := SearchQuery{Keywords: []string{""}}
	err := q.Validate()
	require.Error(t, err)
}

func TestSearchQuery_Validate_InvalidRoleFilter(t *testing.T) {
	bad := Role("bot")
	q := SearchQuery{TitleFilter: "x", RoleFilter: &bad}
	err := q.Validate()
	require.Error(t, err)
}
