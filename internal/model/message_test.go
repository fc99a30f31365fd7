package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage_RejectsEmptyID(t *testing.T) {
	_, err := NewMessage("", "hi", RoleUser, time.Now(), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewMessage_RejectsInvalidRole(t *testing.T) {
	_, err := NewMessage("m1", "hi", Role("bot"), time.Now(), nil, nil)
	require.Error(t, err)
}

func TestNewMessage_NormalizesToUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, loc)

	m, err := NewMessage("m1", "hi", RoleUser, ts, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, m.Timestamp.Location())
	assert.True(t, m.Timestamp.Equal(ts))
}

func TestMessage_IsPlaceholder(t *testing.T) {
	m, err := NewMessage("m1", "", RoleUser, time.Now(), nil, map[string]any{"is_placeholder": true})
	require.NoError(t, err)
	assert.True(t, m.IsPlaceholder())

	m2, err := NewMessage("m2", "hi", RoleUser, time.Now(), nil, nil)
	require.NoError(t, err)
	assert.False(t, m2.IsPlaceholder())
}
