package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/lzpck/tfl-snapshot/internal/domain/league"
	"github.com/lzpck/tfl-snapshot/internal/usecase"
)

type archiveSeasonRequest struct {
	Format string `json:"format" validate:"required,oneof=redraft dynasty"`
}

func (h *Handler) RunArchiveSeasonJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunArchiveSeasonJob")
	defer span.End()

	var req archiveSeasonRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	record, err := h.historyService.Archive(ctx, league.Format(req.Format))
	if err != nil {
		h.logger.ErrorContext(ctx, "archive season job failed", "format", req.Format, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "archive season job finished", "format", req.Format, "season", record.Season)
	writeSuccess(ctx, w, http.StatusOK, seasonRecordToDTO(ctx, record))
}
