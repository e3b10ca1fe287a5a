package sleeper

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/lzpck/tfl-snapshot/internal/platform/logging"
	"github.com/lzpck/tfl-snapshot/internal/platform/resilience"
	"github.com/lzpck/tfl-snapshot/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultBaseURL = "https://api.sleeper.app/v1"

var errSleeperTransient = crerr.New("sleeper transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the public Sleeper read API. Identical in-flight requests
// are collapsed and upstream outages trip a circuit breaker.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}
	if httpClient.Transport == nil {
		httpClient.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchLeague(ctx context.Context, leagueID string) (usecase.ExternalLeague, error) {
	if strings.TrimSpace(leagueID) == "" {
		return usecase.ExternalLeague{}, fmt.Errorf("league id is required")
	}

	var envelope League
	if err := c.doJSON(ctx, "/league/"+leagueID, &envelope); err != nil {
		return usecase.ExternalLeague{}, fmt.Errorf("fetch league league_id=%s: %w", leagueID, err)
	}

	return usecase.ExternalLeague{
		ID:               envelope.LeagueID,
		Name:             envelope.Name,
		Season:           envelope.Season,
		Status:           envelope.Status,
		PreviousLeagueID: envelope.PreviousLeagueID,
		TotalRosters:     envelope.TotalRosters,
		PlayoffWeekStart: envelope.Settings.PlayoffWeekStart,
	}, nil
}

func (c *Client) FetchUsers(ctx context.Context, leagueID string) ([]usecase.ExternalUser, error) {
	if strings.TrimSpace(leagueID) == "" {
		return nil, fmt.Errorf("league id is required")
	}

	var envelope []User
	if err := c.doJSON(ctx, "/league/"+leagueID+"/users", &envelope); err != nil {
		return nil, fmt.Errorf("fetch league users league_id=%s: %w", leagueID, err)
	}

	out := make([]usecase.ExternalUser, 0, len(envelope))
	for _, item := range envelope {
		out = append(out, usecase.ExternalUser{
			UserID:      item.UserID,
			Username:    item.Username,
			DisplayName: item.DisplayName,
			TeamName:    item.Metadata.TeamName,
		})
	}
	return out, nil
}

func (c *Client) FetchRosters(ctx context.Context, leagueID string) ([]usecase.ExternalRoster, error) {
	if strings.TrimSpace(leagueID) == "" {
		return nil, fmt.Errorf("league id is required")
	}

	var envelope []Roster
	if err := c.doJSON(ctx, "/league/"+leagueID+"/rosters", &envelope); err != nil {
		return nil, fmt.Errorf("fetch league rosters league_id=%s: %w", leagueID, err)
	}

	out := make([]usecase.ExternalRoster, 0, len(envelope))
	for _, item := range envelope {
		out = append(out, usecase.ExternalRoster{
			RosterID:                item.RosterID,
			OwnerID:                 item.OwnerID,
			Wins:                    item.Settings.Wins,
			Losses:                  item.Settings.Losses,
			Ties:                    item.Settings.Ties,
			PointsBase:              item.Settings.FPTS,
			PointsHundredths:        item.Settings.FPTSDecimal,
			PointsAgainstBase:       item.Settings.FPTSAgainst,
			PointsAgainstHundredths: item.Settings.FPTSAgainstDecimal,
		})
	}
	return out, nil
}

func (c *Client) FetchMatchups(ctx context.Context, leagueID string, week int) ([]usecase.ExternalMatchup, error) {
	if strings.TrimSpace(leagueID) == "" {
		return nil, fmt.Errorf("league id is required")
	}
	if week < 1 {
		return nil, fmt.Errorf("week must be greater than zero")
	}

	var envelope []Matchup
	path := fmt.Sprintf("/league/%s/matchups/%d", leagueID, week)
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("fetch matchups league_id=%s week=%d: %w", leagueID, week, err)
	}

	out := make([]usecase.ExternalMatchup, 0, len(envelope))
	for _, item := range envelope {
		out = append(out, usecase.ExternalMatchup{
			RosterID:  item.RosterID,
			MatchupID: item.MatchupID,
			Points:    item.Points,
		})
	}
	return out, nil
}

func (c *Client) FetchWinnersBracket(ctx context.Context, leagueID string) ([]usecase.ExternalBracketMatch, error) {
	if strings.TrimSpace(leagueID) == "" {
		return nil, fmt.Errorf("league id is required")
	}

	var envelope []BracketMatchup
	if err := c.doJSON(ctx, "/league/"+leagueID+"/winners_bracket", &envelope); err != nil {
		return nil, fmt.Errorf("fetch winners bracket league_id=%s: %w", leagueID, err)
	}

	out := make([]usecase.ExternalBracketMatch, 0, len(envelope))
	for _, item := range envelope {
		mapped := usecase.ExternalBracketMatch{
			Round:   item.Round,
			MatchID: item.MatchupID,
			Team1:   item.Team1,
			Team2:   item.Team2,
			Winner:  item.Winner,
			Loser:   item.Loser,
		}
		if item.Team1From != nil {
			mapped.Team1WinnerOf = item.Team1From.Winner
			mapped.Team1LoserOf = item.Team1From.Loser
		}
		if item.Team2From != nil {
			mapped.Team2WinnerOf = item.Team2From.Winner
			mapped.Team2LoserOf = item.Team2From.Loser
		}
		out = append(out, mapped)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sleeper circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: fantasy data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path

	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isSleeperCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errSleeperTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errSleeperTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errSleeperTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		c.logger.WarnContext(ctx, "sleeper request retrying",
			"url", fullURL,
			"attempt", attempt+1,
			"backoff", backoff,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func isSleeperCircuitFailure(err error) bool {
	return stderrors.Is(err, errSleeperTransient) || stderrors.Is(err, context.DeadlineExceeded)
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
