package gtapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gtfunds/calculos/internal/adapters/gtapi"
	"github.com/gtfunds/calculos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *gtapi.Client {
	return gtapi.NewClient(srv.URL, gtapi.WithRetryWait(time.Millisecond), gtapi.WithRate(1000))
}

func fixtureServer(t *testing.T, path, fixture string) *httptest.Server {
	t.Helper()
	data, err := os.ReadFile("../../../testdata/fixtures/" + fixture)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// --- Cycles ---

func TestListCycles_Success(t *testing.T) {
	srv := fixtureServer(t, "/cycles/", "cycles.json")

	cycles, err := newTestClient(srv).ListCycles(context.Background())
	require.NoError(t, err)
	require.Len(t, cycles, 2)

	assert.Equal(t, "c1", cycles[0].ID)
	assert.Equal(t, domain.CycleCompleted, cycles[0].Status)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), cycles[0].StartDate)

	// "id" en lugar de "_id" y fecha sin hora
	assert.Equal(t, "c2", cycles[1].ID)
	assert.Equal(t, domain.CycleActive, cycles[1].Status)
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), cycles[1].StartDate)
}

func TestFetchDashboard_Success(t *testing.T) {
	srv := fixtureServer(t, "/cycles/c1/dashboard", "cycle_dashboard.json")

	d, err := newTestClient(srv).FetchDashboard(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "c1", d.Cycle.ID)
	assert.Equal(t, "Ciclo Enero", d.Cycle.Name)
	assert.True(t, d.Cycle.IsCompleted())

	s := d.Summary
	assert.Equal(t, 4, s.TotalAccounts)
	assert.Equal(t, domain.PhaseCounts{Fase1: 1, Fase2: 1, Real: 1, Quemada: 1}, s.AccountsByPhase)
	assert.Equal(t, 1, s.RealAccounts)
	assert.InDelta(t, 25.0, s.ConversionRatePct, 0.0001)
	assert.Equal(t, 1, s.OpenTiros)
	assert.Equal(t, 1, s.ClosedTiros)
	assert.InDelta(t, 320.5, s.TirosResult, 0.0001)

	require.Len(t, d.Accounts, 4)
	assert.Equal(t, domain.PhaseReal, d.Accounts[2].Phase)
	assert.True(t, d.Accounts[2].IsFunded())
	assert.Equal(t, domain.AccountBurned, d.Accounts[3].Status)
	assert.InDelta(t, 600.0, d.TotalCost(), 0.0001)

	require.Len(t, d.Tiros, 2)
	closed := d.Tiros[0]
	require.NoError(t, closed.Validate())
	require.NotNil(t, closed.CloseDate)
	assert.Equal(t, 123456000, closed.OpenDate.Nanosecond())
	assert.InDelta(t, 320.5, closed.TotalResult(), 0.0001)

	open := d.Tiros[1]
	assert.Equal(t, domain.TiroOpen, open.Status)
	assert.Nil(t, open.Result)
	assert.Nil(t, open.CloseDate)
	assert.Nil(t, open.Leg1.Accounts[0].Operations[0].ExitPrice)
}

func TestFetchDashboard_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Cycle not found"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchDashboard(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gtapi.ErrNotFound))

	var apiErr *gtapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Cycle not found", apiErr.Detail)
}

func TestFetchHistoricalStatistics_Success(t *testing.T) {
	srv := fixtureServer(t, "/cycles/statistics/historical", "statistics_historical.json")

	h, err := newTestClient(srv).FetchHistoricalStatistics(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 12.5, h.AvgConversionRate, 0.0001)
	assert.InDelta(t, 162.5, h.AvgCostPerAccount, 0.0001)
	assert.InDelta(t, 5000.0, h.AvgProfitPerAccount, 0.0001)
	assert.Equal(t, 3, h.CompletedCycles)
	assert.Equal(t, 40, h.AccountsAnalyzed)
}

// --- Retries ---

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cycles, err := newTestClient(srv).ListCycles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cycles)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ListCycles(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(4), calls.Load())
}

func TestClient_RateLimitedOnEveryAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ListCycles(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited (429) after 3 retries")
	assert.Equal(t, int32(4), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad id"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ListCycles(context.Background())
	var apiErr *gtapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "bad id", apiErr.Detail)
	assert.False(t, errors.Is(err, gtapi.ErrNotFound))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv).ListCycles(ctx)
	assert.Error(t, err)
}
