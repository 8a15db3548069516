package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"chinook/logger"
	"chinook/repository"

	"github.com/gorilla/mux"
)

// APIHandler serves the catalog API. Every handler issues its repository
// calls in sequence with the request context and writes exactly one response.
type APIHandler struct {
	genreRepo    repository.GenreRepository
	artistRepo   repository.ArtistRepository
	albumRepo    repository.AlbumRepository
	playlistRepo repository.PlaylistRepository
	trackRepo    repository.TrackRepository
	healthCheck  func(ctx context.Context) error
}

// NewAPIHandler creates the API handler. healthCheck backs /healthz and may
// be nil.
func NewAPIHandler(
	genreRepo repository.GenreRepository,
	artistRepo repository.ArtistRepository,
	albumRepo repository.AlbumRepository,
	playlistRepo repository.PlaylistRepository,
	trackRepo repository.TrackRepository,
	healthCheck func(ctx context.Context) error,
) *APIHandler {
	return &APIHandler{
		genreRepo:    genreRepo,
		artistRepo:   artistRepo,
		albumRepo:    albumRepo,
		playlistRepo: playlistRepo,
		trackRepo:    trackRepo,
		healthCheck:  healthCheck,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeNotFound(w http.ResponseWriter, entity string, id int64) {
	writeError(w, http.StatusNotFound, fmt.Sprintf("%s %d not found", entity, id))
}

// writeInternalError logs err with the request id and hides it from the client.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error("Request failed",
		logger.String("requestId", RequestIDFromContext(r.Context())),
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
		logger.ErrorField(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// pathID reads a numeric mux variable. The router only matches digits, so
// a parse failure means the value overflowed int64.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// HealthHandler reports whether the database answers.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.healthCheck != nil {
		if err := h.healthCheck(r.Context()); err != nil {
			logger.Warn("Health check failed", logger.ErrorField(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
