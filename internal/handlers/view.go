package handlers

import (
	"net/http"

	"taskmanager/internal/view"
)

// View returns the filtered, sorted and decorated task list with statistics.
// Query parameters: status, category, sort.
func (h *Handlers) View(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := view.ParseSelection(q.Get("status"), q.Get("category"), q.Get("sort"))

	dash, err := h.tasks.View(r.Context(), sel)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dash)
}

// Stats returns the statistics bundle for the whole collection.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tasks.Stats(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// Categories returns the known categories with their task counts.
func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.tasks.Categories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cats)
}
