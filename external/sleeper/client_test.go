package sleeper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lzpck/tfl-snapshot/internal/platform/resilience"
	"github.com/lzpck/tfl-snapshot/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler, maxRetries int, circuit resilience.CircuitBreakerConfig) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		Timeout:        2 * time.Second,
		MaxRetries:     maxRetries,
		CircuitBreaker: circuit,
	})
	return client, srv
}

func disabledCircuit() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{Enabled: false}
}

func TestFetchLeague(t *testing.T) {
	t.Parallel()

	var gotPath atomic.Value
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"league_id": "987654",
			"name": "TFL Dynasty",
			"status": "complete",
			"season": "2025",
			"total_rosters": 10,
			"previous_league_id": "876543",
			"settings": {"num_teams": 10, "playoff_teams": 6, "playoff_week_start": 14}
		}`))
	})
	client, _ := newTestClient(t, handler, 0, disabledCircuit())

	got, err := client.FetchLeague(context.Background(), "987654")
	require.NoError(t, err)
	require.Equal(t, "/league/987654", gotPath.Load())
	require.Equal(t, usecase.ExternalLeague{
		ID:               "987654",
		Name:             "TFL Dynasty",
		Season:           "2025",
		Status:           "complete",
		PreviousLeagueID: "876543",
		TotalRosters:     10,
		PlayoffWeekStart: 14,
	}, got)
}

func TestFetchRostersSplitPoints(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"roster_id": 1, "owner_id": "u1", "settings": {"wins": 9, "losses": 4, "ties": 1, "fpts": 1412, "fpts_decimal": 36, "fpts_against": 1250, "fpts_against_decimal": 5}},
			{"roster_id": 2, "owner_id": "u2", "settings": {"wins": 3, "losses": 11}}
		]`))
	})
	client, _ := newTestClient(t, handler, 0, disabledCircuit())

	got, err := client.FetchRosters(context.Background(), "111")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, usecase.ExternalRoster{
		RosterID:                1,
		OwnerID:                 "u1",
		Wins:                    9,
		Losses:                  4,
		Ties:                    1,
		PointsBase:              1412,
		PointsHundredths:        36,
		PointsAgainstBase:       1250,
		PointsAgainstHundredths: 5,
	}, got[0])
	require.Zero(t, got[1].PointsBase)
}

func TestFetchWinnersBracketSlotReferences(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"r": 1, "m": 1, "t1": 3, "t2": 6, "w": 3, "l": 6},
			{"r": 2, "m": 3, "t1": 1, "t2": null, "t2_from": {"w": 1}},
			{"r": 3, "m": 6, "t1_from": {"l": 3}, "t2_from": {"l": 4}}
		]`))
	})
	client, _ := newTestClient(t, handler, 0, disabledCircuit())

	got, err := client.FetchWinnersBracket(context.Background(), "111")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, 3, got[0].Winner)
	require.Equal(t, 1, got[1].Team2WinnerOf)
	require.Zero(t, got[1].Team2LoserOf)
	require.Equal(t, 3, got[2].Team1LoserOf)
	require.Equal(t, 4, got[2].Team2LoserOf)
}

func TestFetchMatchupsValidatesWeek(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:0", CircuitBreaker: disabledCircuit()})

	_, err := client.FetchMatchups(context.Background(), "111", 0)
	require.Error(t, err)

	_, err = client.FetchMatchups(context.Background(), "", 3)
	require.Error(t, err)
}

func TestExecuteRequestRetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"roster_id": 1, "matchup_id": 1, "points": 88.5}]`))
	})
	client, _ := newTestClient(t, handler, 2, disabledCircuit())

	got, err := client.FetchMatchups(context.Background(), "111", 14)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 88.5, got[0].Points)
	require.EqualValues(t, 2, calls.Load())
}

func TestExecuteRequestDoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`null`))
	})
	client, _ := newTestClient(t, handler, 3, disabledCircuit())

	_, err := client.FetchLeague(context.Background(), "missing")
	require.Error(t, err)
	require.EqualValues(t, 1, calls.Load())
}

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client, _ := newTestClient(t, handler, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	ctx := context.Background()
	_, err := client.FetchUsers(ctx, "111")
	require.Error(t, err)
	_, err = client.FetchUsers(ctx, "111")
	require.Error(t, err)

	before := calls.Load()
	_, err = client.FetchUsers(ctx, "111")
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	require.Equal(t, before, calls.Load(), "open circuit must not hit upstream")
}

func TestDoJSONDecodeError(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	})
	client, _ := newTestClient(t, handler, 0, disabledCircuit())

	_, err := client.FetchUsers(context.Background(), "111")
	require.Error(t, err)
	require.False(t, errors.Is(err, usecase.ErrDependencyUnavailable))
}
