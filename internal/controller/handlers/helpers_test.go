package handlers

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotsDate(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)
	// 22:30 UTC 31 января - уже 1 февраля в MSK
	now := time.Date(2024, time.January, 31, 22, 30, 0, 0, time.UTC)

	got, err := ParseSlotsDate("/slots", now, msk)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, msk), got)

	got, err = ParseSlotsDate("/slots   2024-03-15", now, msk)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, msk), got)

	_, err = ParseSlotsDate("/slots 15.03.2024", now, msk)
	assert.Error(t, err)
}

func TestIsMessageNotModified(t *testing.T) {
	assert.False(t, isMessageNotModified(nil))
	assert.False(t, isMessageNotModified(errors.New("bad request: chat not found")))
	assert.True(t, isMessageNotModified(errors.New("bad request, Bad Request: message is not modified: specified new message content and reply markup are exactly the same")))
}
