package handlers

import (
	"net/http"

	"taskmanager/internal/models"
)

// ListTasks returns every task in id order.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// GetTask returns a single task.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	task, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// CreateTask creates a new task.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var input models.TaskInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	task, err := h.tasks.Create(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// UpdateTask applies a partial update to an existing task.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var patch models.TaskPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	task, err := h.tasks.Update(r.Context(), id, patch)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// DeleteTask deletes a task.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleTask toggles the completion status of a task.
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	task, err := h.tasks.ToggleComplete(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}
