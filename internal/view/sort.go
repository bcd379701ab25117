package view

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskmanager/internal/models"
)

// SortKey selects the ordering of the visible task list.
type SortKey string

const (
	SortDueDate      SortKey = "dueDate"
	SortPriority     SortKey = "priority"
	SortAlphabetical SortKey = "alphabetical"
)

// Sort returns a sorted copy of tasks. Every ordering is stable, so tasks with
// equal keys keep their relative input order. Unknown keys return an
// unchanged copy.
func Sort(tasks []models.Task, key SortKey) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)

	switch key {
	case SortDueDate:
		sort.SliceStable(sorted, func(i, j int) bool {
			left, right := sorted[i].DueDate, sorted[j].DueDate
			if left == "" || right == "" {
				// tasks without a due date go last
				return left != "" && right == ""
			}
			return left < right
		})
	case SortPriority:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].PriorityOrder() < sorted[j].PriorityOrder()
		})
	case SortAlphabetical:
		// A Collator keeps internal buffers, so each call gets its own.
		c := collate.New(language.English)
		sort.SliceStable(sorted, func(i, j int) bool {
			return c.CompareString(sorted[i].Title, sorted[j].Title) < 0
		})
	}

	return sorted
}
