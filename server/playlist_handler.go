package server

import (
	"encoding/json"
	"net/http"

	"chinook/logger"
	"chinook/model"
)

// GetPlaylistsHandler lists every playlist.
func (h *APIHandler) GetPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.playlistRepo.List(r.Context())
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

// GetPlaylistHandler returns a playlist with its tracks embedded.
func (h *APIHandler) GetPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundHandler(w, r)
		return
	}

	playlist, err := h.playlistRepo.GetWithTracks(r.Context(), id)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if playlist == nil {
		writeNotFound(w, "Playlist", id)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

// DeletePlaylistHandler detaches all tracks from a playlist and deletes it.
func (h *APIHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundHandler(w, r)
		return
	}

	playlist, err := h.playlistRepo.GetByID(r.Context(), id)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if playlist == nil {
		writeNotFound(w, "Playlist", id)
		return
	}

	if err := h.playlistRepo.Delete(r.Context(), id); err != nil {
		writeInternalError(w, r, err)
		return
	}

	logger.Info("Playlist deleted",
		logger.Int64("playlistId", id),
		logger.String("requestId", RequestIDFromContext(r.Context())))
	w.WriteHeader(http.StatusNoContent)
}

// AddPlaylistTrackHandler links the track named in {"trackId": ...} to the playlist.
func (h *APIHandler) AddPlaylistTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundHandler(w, r)
		return
	}

	var req model.PlaylistTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TrackID <= 0 {
		writeError(w, http.StatusBadRequest, "trackId is required")
		return
	}

	playlist, err := h.playlistRepo.GetByID(r.Context(), id)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if playlist == nil {
		writeNotFound(w, "Playlist", id)
		return
	}

	track, err := h.trackRepo.GetByID(r.Context(), req.TrackID)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if track == nil {
		writeNotFound(w, "Track", req.TrackID)
		return
	}

	if err := h.playlistRepo.AddTrack(r.Context(), id, track.ID); err != nil {
		writeInternalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemovePlaylistTrackHandler unlinks a track from the playlist.
func (h *APIHandler) RemovePlaylistTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundHandler(w, r)
		return
	}
	trackID, ok := pathID(r, "trackId")
	if !ok {
		notFoundHandler(w, r)
		return
	}

	playlist, err := h.playlistRepo.GetByID(r.Context(), id)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if playlist == nil {
		writeNotFound(w, "Playlist", id)
		return
	}

	if err := h.playlistRepo.RemoveTrack(r.Context(), id, trackID); err != nil {
		writeInternalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
