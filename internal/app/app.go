package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/lzpck/tfl-snapshot/external/sleeper"
	"github.com/lzpck/tfl-snapshot/internal/config"
	"github.com/lzpck/tfl-snapshot/internal/domain/history"
	cacherepo "github.com/lzpck/tfl-snapshot/internal/infrastructure/repository/cache"
	"github.com/lzpck/tfl-snapshot/internal/infrastructure/repository/memory"
	"github.com/lzpck/tfl-snapshot/internal/infrastructure/repository/postgres"
	"github.com/lzpck/tfl-snapshot/internal/interfaces/httpapi"
	"github.com/lzpck/tfl-snapshot/internal/platform/cache"
	"github.com/lzpck/tfl-snapshot/internal/platform/logging"
	"github.com/lzpck/tfl-snapshot/internal/platform/resilience"
	"github.com/lzpck/tfl-snapshot/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger, zlogger *logging.Logger, db *sqlx.DB) (*http.Server, error) {
	store := cache.NewStore()
	responseTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		responseTTL = 0
	}

	sleeperClient := sleeper.NewClient(sleeper.ClientConfig{
		BaseURL:    cfg.SleeperBaseURL,
		Timeout:    cfg.SleeperTimeout,
		MaxRetries: cfg.SleeperMaxRetries,
		Logger:     zlogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SleeperCircuitEnabled,
			FailureThreshold: cfg.SleeperCircuitFailureCount,
			OpenTimeout:      cfg.SleeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SleeperCircuitHalfOpenMaxReq,
		},
	})

	leagues := usecase.LeagueDirectory(cfg.LeagueIDByFormat)
	rosterSvc := usecase.NewRosterService(sleeperClient, leagues)
	standingsSvc := usecase.NewStandingsService(rosterSvc, store, responseTTL)
	bracketSvc := usecase.NewBracketService(sleeperClient, rosterSvc, leagues, store, responseTTL)
	matchupSvc := usecase.NewMatchupService(sleeperClient, rosterSvc, bracketSvc, leagues, store, responseTTL)

	var historyRepo history.Repository
	if db != nil {
		historyRepo = postgres.NewSeasonRecordRepository(db)
	} else {
		logger.Warn("history repository running in memory", "reason", "no database connection")
		historyRepo = memory.NewSeasonRecordRepository()
	}
	if cfg.CacheEnabled {
		historyRepo = cacherepo.NewSeasonRecordRepository(historyRepo, store, cfg.CacheTTL)
	}
	historySvc := usecase.NewHistoryService(historyRepo, sleeperClient, rosterSvc, bracketSvc, leagues)

	handler := httpapi.NewHandler(standingsSvc, matchupSvc, bracketSvc, historySvc, cfg.CacheMaxAge, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
