package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lzpck/tfl-snapshot/internal/domain/league"
	"github.com/lzpck/tfl-snapshot/internal/usecase"
)

type Handler struct {
	standingsService *usecase.StandingsService
	matchupService   *usecase.MatchupService
	bracketService   *usecase.BracketService
	historyService   *usecase.HistoryService
	cacheMaxAge      time.Duration
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	standingsService *usecase.StandingsService,
	matchupService *usecase.MatchupService,
	bracketService *usecase.BracketService,
	historyService *usecase.HistoryService,
	cacheMaxAge time.Duration,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		standingsService: standingsService,
		matchupService:   matchupService,
		bracketService:   bracketService,
		historyService:   historyService,
		cacheMaxAge:      cacheMaxAge,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// setPublicCache marks a public GET response as cacheable for the configured
// window. The in-process cache keeps the TTL authoritative; this only lets
// browsers and CDNs skip repeat round trips.
func (h *Handler) setPublicCache(w http.ResponseWriter) {
	if h.cacheMaxAge <= 0 {
		return
	}
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.cacheMaxAge.Seconds())))
}

func (h *Handler) formatFromPath(r *http.Request) (league.Format, error) {
	format, err := league.ParseFormat(r.PathValue("format"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return format, nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
