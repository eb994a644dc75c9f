package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gtfunds/calculos/internal/adapters/storage"
	"github.com/gtfunds/calculos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeEstimate(accounts int, cost float64) domain.EstimationResult {
	return domain.Estimate(domain.EstimationInput{
		AccountCount:           accounts,
		CostPerAccount:         cost,
		ConversionRatePct:      10,
		ProfitTargetPerAccount: 5000,
	})
}

func openJournal(t *testing.T) *storage.SQLiteJournal {
	t.Helper()
	j, err := storage.NewSQLiteJournal(":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func window() (time.Time, time.Time) {
	now := time.Now().UTC()
	return now.Add(-time.Minute), now.Add(time.Minute)
}

func TestSQLiteJournal_SaveAndGetHistory(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()

	id, err := j.SaveEstimation(ctx, makeEstimate(10, 150), true)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	from, to := window()
	history, err := j.GetHistory(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, history, 1)

	rec := history[0]
	assert.Equal(t, id, rec.ID)
	assert.True(t, rec.UsedHistorical)
	assert.WithinDuration(t, time.Now(), rec.CreatedAt, time.Minute)

	r := rec.Result
	assert.Equal(t, 10, r.Input.AccountCount)
	assert.InDelta(t, 150.0, r.Input.CostPerAccount, 0.0001)
	assert.InDelta(t, 1500.0, r.TotalCost, 0.0001)
	assert.InDelta(t, 1.0, r.ConvertedAccounts, 0.0001)
	assert.InDelta(t, 5000.0, r.ProjectedProfit, 0.0001)
	assert.InDelta(t, 3500.0, r.NetProfit, 0.0001)
	assert.True(t, r.ROIDefined)
	assert.InDelta(t, 233.3333, r.ROIPct, 0.001)
}

func TestSQLiteJournal_UndefinedROIRoundTrip(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()

	_, err := j.SaveEstimation(ctx, makeEstimate(10, 0), false)
	require.NoError(t, err)

	from, to := window()
	history, err := j.GetHistory(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, history, 1)

	_, err = history[0].Result.ROI()
	assert.ErrorIs(t, err, domain.ErrUndefinedROI)
	assert.False(t, history[0].UsedHistorical)
}

func TestSQLiteJournal_GetHistory_EmptyRange(t *testing.T) {
	j := openJournal(t)

	history, err := j.GetHistory(context.Background(), time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSQLiteJournal_NewestFirst(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, accounts := range []int{5, 10, 20} {
		ts := base.Add(time.Duration(i) * time.Hour)
		j.SetClock(func() time.Time { return ts })
		_, err := j.SaveEstimation(ctx, makeEstimate(accounts, 150), false)
		require.NoError(t, err)
	}

	history, err := j.GetHistory(ctx, base.Add(-time.Minute), base.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 20, history[0].Result.Input.AccountCount)
	assert.Equal(t, 10, history[1].Result.Input.AccountCount)
	assert.Equal(t, 5, history[2].Result.Input.AccountCount)
	assert.True(t, base.Add(2*time.Hour).Equal(history[0].CreatedAt))

	// rango parcial
	history, err = j.GetHistory(ctx, base.Add(30*time.Minute), base.Add(90*time.Minute))
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 10, history[0].Result.Input.AccountCount)
}

func TestSQLiteJournal_PruneOld(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()

	now := time.Now().UTC()
	j.SetClock(func() time.Time { return now.Add(-100 * 24 * time.Hour) })
	_, err := j.SaveEstimation(ctx, makeEstimate(10, 150), false)
	require.NoError(t, err)

	j.SetClock(func() time.Time { return now })
	_, err = j.SaveEstimation(ctx, makeEstimate(20, 150), false)
	require.NoError(t, err)

	j.Prune(ctx, 90*24*time.Hour)

	history, err := j.GetHistory(ctx, now.Add(-365*24*time.Hour), now.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 20, history[0].Result.Input.AccountCount)
}

func TestSQLiteJournal_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	j, err := storage.NewSQLiteJournal(path, 0)
	require.NoError(t, err)
	_, err = j.SaveEstimation(ctx, makeEstimate(10, 150), false)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j, err = storage.NewSQLiteJournal(path, 0)
	require.NoError(t, err)
	defer j.Close()

	from, to := window()
	history, err := j.GetHistory(ctx, from, to)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
