package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/{format}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/leagues/{format}/matchups", handler.GetMatchups)
	mux.HandleFunc("GET /v1/leagues/{format}/bracket", handler.GetBracket)
	mux.HandleFunc("GET /v1/leagues/{format}/history", handler.GetHistory)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/archive-season", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunArchiveSeasonJob)))
}
