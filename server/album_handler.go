package server

import "net/http"

// GetAlbumHandler returns an album with its artist embedded.
func (h *APIHandler) GetAlbumHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundHandler(w, r)
		return
	}

	album, err := h.albumRepo.GetWithArtist(r.Context(), id)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if album == nil {
		writeNotFound(w, "Album", id)
		return
	}
	writeJSON(w, http.StatusOK, album)
}
