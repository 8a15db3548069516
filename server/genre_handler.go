package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"chinook/model"
)

// GetGenresHandler lists genres, optionally restricted to names starting with ?q=.
func (h *APIHandler) GetGenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genreRepo.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

// GetGenreHandler returns one genre.
func (h *APIHandler) GetGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundHandler(w, r)
		return
	}

	genre, err := h.genreRepo.GetByID(r.Context(), id)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if genre == nil {
		writeNotFound(w, "Genre", id)
		return
	}
	writeJSON(w, http.StatusOK, genre)
}

// CreateGenreHandler creates a genre from {"name": ...}. A missing name is
// validated as an empty one.
func (h *APIHandler) CreateGenreHandler(w http.ResponseWriter, r *http.Request) {
	var req model.GenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	genre := &model.Genre{}
	if req.Name != nil {
		genre.Name = *req.Name
	}

	if err := h.genreRepo.Create(r.Context(), genre); err != nil {
		h.writeWriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, genre)
}

// UpdateGenreHandler renames a genre and returns the stored record. A body
// without a name leaves the genre unchanged.
func (h *APIHandler) UpdateGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundHandler(w, r)
		return
	}

	var req model.GenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	genre, err := h.genreRepo.GetByID(r.Context(), id)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if genre == nil {
		writeNotFound(w, "Genre", id)
		return
	}

	if req.Name != nil {
		genre.Name = *req.Name
		if err := h.genreRepo.Update(r.Context(), genre); err != nil {
			h.writeWriteError(w, r, err)
			return
		}
	}

	refreshed, err := h.genreRepo.GetByID(r.Context(), id)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if refreshed == nil {
		writeNotFound(w, "Genre", id)
		return
	}
	writeJSON(w, http.StatusOK, refreshed)
}

type validationResponse struct {
	Errors model.ValidationErrors `json:"errors"`
}

// writeWriteError maps a failed create or update to 422 for validation
// failures and 500 otherwise.
func (h *APIHandler) writeWriteError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs model.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: verrs})
		return
	}
	writeInternalError(w, r, err)
}
