package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"taskmanager/internal/models"
	"taskmanager/internal/service"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	tasks *service.TaskService
	log   *logrus.Entry
}

// New creates a new Handlers instance.
func New(tasks *service.TaskService, log *logrus.Entry) *Handlers {
	return &Handlers{
		tasks: tasks,
		log:   log,
	}
}

// Routes mounts the task API on r.
func (h *Handlers) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/tasks", h.ListTasks)
		r.Post("/tasks", h.CreateTask)
		r.Get("/tasks/{id}", h.GetTask)
		r.Put("/tasks/{id}", h.UpdateTask)
		r.Delete("/tasks/{id}", h.DeleteTask)
		r.Patch("/tasks/{id}/toggle-complete", h.ToggleTask)

		r.Get("/view", h.View)
		r.Get("/stats", h.Stats)
		r.Get("/categories", h.Categories)
	})
}

// parseID extracts and parses an integer ID from URL parameters.
func parseID(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	json.NewEncoder(w).Encode(v)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

// respondServiceError maps service and store errors onto status codes.
func (h *Handlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, "task not found")
	default:
		h.log.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("internal server error")
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
