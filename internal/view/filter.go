package view

import (
	"time"

	"taskmanager/internal/models"
)

// StatusFilter narrows tasks by temporal or completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusToday     StatusFilter = "today"
	StatusUpcoming  StatusFilter = "upcoming"
	StatusCompleted StatusFilter = "completed"
)

// Filter returns the tasks matching category and status, in input order.
// An empty category means no category filter. Unknown status values behave
// like StatusAll. The input slice is never modified.
func Filter(tasks []models.Task, status StatusFilter, category string, ref time.Time) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if category != "" && t.Category != category {
			continue
		}
		if !matchStatus(t, status, ref) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchStatus(t models.Task, status StatusFilter, ref time.Time) bool {
	switch status {
	case StatusToday:
		// completed tasks due today still show up here
		return Classify(t.DueDate, ref).Kind == DueToday
	case StatusUpcoming:
		return !t.Completed && Classify(t.DueDate, ref).Upcoming()
	case StatusCompleted:
		return t.Completed
	default:
		return true
	}
}
