package server

import (
	"embed"
	"encoding/json"
	"errors"
	"net/http"

	"music_hub/infrastructure/config"
	"music_hub/infrastructure/metrics"
	"music_hub/internal/core/domain"
	"music_hub/internal/core/ports"
	"music_hub/internal/core/usecases"
)

const (
	endpointSearch   = "search"
	endpointTrending = "trending"

	outcomePreflight  = "preflight"
	outcomeBadRequest = "bad_request"
)

//go:embed static/sw.js
var staticFiles embed.FS

type missingQueryResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// API serves the music endpoints, the browser worker script and a health check.
type API struct {
	cfg   *config.Config
	music usecases.MusicUseCase
	log   ports.LoggerPort
}

func NewAPI(cfg *config.Config, music usecases.MusicUseCase, logger ports.LoggerPort) *API {
	return &API{
		cfg:   cfg,
		music: music,
		log:   logger,
	}
}

// Handler routes by path only. Every method other than OPTIONS is answered like GET.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/search", corsMiddleware(endpointSearch, http.HandlerFunc(a.search)))
	mux.Handle("/api/trending", corsMiddleware(endpointTrending, http.HandlerFunc(a.trending)))
	mux.HandleFunc("/sw.js", a.serviceWorker)
	mux.HandleFunc("/healthz", a.health)

	return requestIDMiddleware(accessLogMiddleware(a.log, recoveryMiddleware(a.log, mux)))
}

func (a *API) search(w http.ResponseWriter, r *http.Request) {
	res, err := a.music.Search(r.Context(), r.URL.Query().Get("q"))
	if errors.Is(err, domain.ErrMissingQuery) {
		countRequest(endpointSearch, outcomeBadRequest)
		writeJSON(w, http.StatusBadRequest, missingQueryResponse{
			Error:   "Missing search query parameter",
			Message: "Please provide a search query using the 'q' parameter.",
		})
		return
	}

	a.respond(w, endpointSearch, res, a.cfg.SearchCacheControl())
}

func (a *API) trending(w http.ResponseWriter, r *http.Request) {
	a.respond(w, endpointTrending, a.music.Trending(r.Context()), a.cfg.TrendingCacheControl())
}

// respond writes live responses unchanged with Cache-Control, and demo payloads without it.
func (a *API) respond(w http.ResponseWriter, endpoint string, res usecases.Result, cacheControl string) {
	countRequest(endpoint, string(res.Outcome))
	if !res.Live {
		writeJSON(w, http.StatusOK, res.Body)
		return
	}

	h := w.Header()
	h.Set("Cache-Control", cacheControl)
	h.Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Raw); err != nil {
		a.log.Error("failed to write upstream body", err)
	}
}

func (a *API) serviceWorker(w http.ResponseWriter, r *http.Request) {
	script, err := staticFiles.ReadFile("static/sw.js")
	if err != nil {
		a.log.Error("failed to read embedded worker script", err)
		http.Error(w, "service worker unavailable", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/javascript")
	h.Set("Cache-Control", "no-cache")
	h.Set("Service-Worker-Allowed", "/")
	w.Write(script)
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	mode := "demo"
	if a.cfg.HasAPIKey() || a.cfg.YouTubeTokenFile != "" {
		mode = "live"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "mode": mode})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func countRequest(endpoint, outcome string) {
	metrics.RequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}
