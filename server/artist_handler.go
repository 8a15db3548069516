package server

import "net/http"

// GetArtistHandler returns an artist with its albums embedded.
func (h *APIHandler) GetArtistHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundHandler(w, r)
		return
	}

	artist, err := h.artistRepo.GetWithAlbums(r.Context(), id)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if artist == nil {
		writeNotFound(w, "Artist", id)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}
