package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/lzpck/tfl-snapshot/internal/usecase"
)

const standingsViewPointsRace = "points-race"

type standingsQuery struct {
	View string `validate:"omitempty,oneof=points-race"`
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	format, err := h.formatFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := standingsQuery{View: strings.TrimSpace(r.URL.Query().Get("view"))}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	ranked, err := h.standingsService.Standings(ctx, format)
	if query.View == standingsViewPointsRace {
		ranked, err = h.standingsService.PointsRace(ctx, format)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "format", format, "view", query.View, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.setPublicCache(w)
	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(ctx, format, query.View, ranked))
}

func (h *Handler) GetMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchups")
	defer span.End()

	format, err := h.formatFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rawWeek := strings.TrimSpace(r.URL.Query().Get("week"))
	if rawWeek == "" {
		writeError(ctx, w, fmt.Errorf("%w: week query parameter is required", usecase.ErrInvalidInput))
		return
	}
	week, err := strconv.Atoi(rawWeek)
	if err != nil || week < 1 {
		writeError(ctx, w, fmt.Errorf("%w: week must be a positive integer", usecase.ErrInvalidInput))
		return
	}

	matchups, err := h.matchupService.Week(ctx, format, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get matchups failed", "format", format, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.setPublicCache(w)
	writeSuccess(ctx, w, http.StatusOK, weekMatchupsToDTO(ctx, matchups))
}

func (h *Handler) GetBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBracket")
	defer span.End()

	format, err := h.formatFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rounds, err := h.bracketService.Bracket(ctx, format)
	if err != nil {
		h.logger.WarnContext(ctx, "get bracket failed", "format", format, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.setPublicCache(w)
	writeSuccess(ctx, w, http.StatusOK, bracketToDTO(ctx, format, rounds))
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHistory")
	defer span.End()

	format, err := h.formatFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	records, err := h.historyService.List(ctx, format)
	if err != nil {
		h.logger.WarnContext(ctx, "get history failed", "format", format, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonRecordDTO, 0, len(records))
	for _, record := range records {
		items = append(items, seasonRecordToDTO(ctx, record))
	}

	h.setPublicCache(w)
	writeSuccess(ctx, w, http.StatusOK, items)
}
