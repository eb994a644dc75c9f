package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRange_DefaultDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	from, to, err := historyRange(now, time.UTC, "", "", 7)
	require.NoError(t, err)
	assert.True(t, now.Equal(to))
	assert.True(t, now.Add(-7*24*time.Hour).Equal(from))
}

func TestHistoryRange_ExplicitDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	from, to, err := historyRange(now, time.UTC, "2025-06-01", "2025-06-10", 30)
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Equal(from))
	assert.True(t, time.Date(2025, 6, 10, 23, 59, 59, 999000000, time.UTC).Equal(to))
}

func TestHistoryRange_Invalid(t *testing.T) {
	now := time.Now()

	_, _, err := historyRange(now, time.UTC, "06/01/2025", "", 30)
	assert.Error(t, err)

	_, _, err = historyRange(now, time.UTC, "2025-06-10", "2025-06-01", 30)
	assert.Error(t, err)
}
