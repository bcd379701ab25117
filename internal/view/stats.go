package view

import (
	"math"
	"time"

	"taskmanager/internal/models"
)

// Stats is the dashboard summary over the full task collection.
type Stats struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	DueToday       int            `json:"dueToday"`
	Upcoming       int            `json:"upcoming"`
	CompletionRate int            `json:"completionRate"`
	WeeklyGrowth   int            `json:"weeklyGrowth"`
	ByCategory     map[string]int `json:"byCategory"`
}

// ComputeStats aggregates counts over tasks. DueToday and Upcoming never
// include completed tasks. ByCategory only holds categories that occur;
// tasks without a category are counted under models.CategoryUnknown.
func ComputeStats(tasks []models.Task, ref time.Time) Stats {
	s := Stats{
		Total:      len(tasks),
		ByCategory: make(map[string]int),
	}

	for _, t := range tasks {
		s.ByCategory[categoryKey(t.Category)]++

		if t.Completed {
			s.Completed++
			continue
		}

		due := Classify(t.DueDate, ref)
		switch {
		case due.Kind == DueToday:
			s.DueToday++
		case due.Upcoming():
			s.Upcoming++
		}
	}

	s.CompletionRate = CompletionRate(s.Completed, s.Total)
	s.WeeklyGrowth = WeeklyGrowth(s.Total, s.Total-1)
	return s
}

// CompletionRate is the rounded percentage of completed tasks, 0 when there are none.
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// WeeklyGrowth is the percentage change from previous to current. There are
// no historical snapshots yet, so callers pass total and total-1 and the
// figure is only a display placeholder.
func WeeklyGrowth(current, previous int) int {
	base := previous
	if base < 1 {
		base = 1
	}
	return int(math.Round(float64(current-previous) / float64(base) * 100))
}

func categoryKey(category string) string {
	if category == "" {
		return models.CategoryUnknown
	}
	return category
}
