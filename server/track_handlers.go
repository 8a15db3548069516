package server

import "net/http"

// GetTrackHandler returns a track with the playlists containing it.
func (h *APIHandler) GetTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundHandler(w, r)
		return
	}

	track, err := h.trackRepo.GetWithPlaylists(r.Context(), id)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if track == nil {
		writeNotFound(w, "Track", id)
		return
	}
	writeJSON(w, http.StatusOK, track)
}
