// Package view derives the visible task list and dashboard statistics from a
// task collection. Everything here is pure: the same tasks, selection and
// reference time always produce the same result, and inputs are never modified.
package view

import (
	"sort"
	"strings"
	"time"

	"taskmanager/internal/models"
)

// Selection is the transient filter and sort state chosen by the user.
type Selection struct {
	Status   StatusFilter `json:"status"`
	Category string       `json:"category,omitempty"`
	Sort     SortKey      `json:"sort"`
}

// DefaultSelection shows every task ordered by due date.
func DefaultSelection() Selection {
	return Selection{Status: StatusAll, Sort: SortDueDate}
}

// ParseSelection maps raw query values onto a Selection. Empty values take
// the defaults; unrecognized values are kept and fall back at compute time.
func ParseSelection(status, category, sortKey string) Selection {
	sel := DefaultSelection()
	if s := strings.TrimSpace(status); s != "" {
		sel.Status = StatusFilter(s)
	}
	sel.Category = strings.TrimSpace(category)
	if s := strings.TrimSpace(sortKey); s != "" {
		sel.Sort = SortKey(s)
	}
	return sel
}

// Result is the output of Compute.
type Result struct {
	Tasks []models.Task `json:"tasks"`
	Stats Stats         `json:"stats"`
}

// Compute filters and sorts tasks for display and aggregates statistics over
// the unfiltered collection.
func Compute(tasks []models.Task, sel Selection, ref time.Time) Result {
	visible := Filter(tasks, sel.Status, sel.Category, ref)
	return Result{
		Tasks: Sort(visible, sel.Sort),
		Stats: ComputeStats(tasks, ref),
	}
}

// Item is a task decorated with display hints.
type Item struct {
	models.Task
	DueKind       string `json:"dueKind"`
	DueLabel      string `json:"dueLabel,omitempty"`
	DueTone       string `json:"dueTone"`
	CategoryTone  string `json:"categoryTone"`
	PriorityLabel string `json:"priorityLabel,omitempty"`
	PriorityTone  string `json:"priorityTone"`
}

// Decorate attaches display hints to each task.
func Decorate(tasks []models.Task, ref time.Time) []Item {
	items := make([]Item, 0, len(tasks))
	for _, t := range tasks {
		due := Classify(t.DueDate, ref)
		items = append(items, Item{
			Task:          t,
			DueKind:       due.Kind.String(),
			DueLabel:      due.Label(),
			DueTone:       due.Tone(),
			CategoryTone:  CategoryTone(t.Category),
			PriorityLabel: PriorityLabel(t.Priority),
			PriorityTone:  PriorityTone(t.Priority),
		})
	}
	return items
}

// CategoryTone returns the color used for a category. Matching is
// case-insensitive; unknown or empty categories are gray.
func CategoryTone(category string) string {
	switch strings.ToLower(category) {
	case "work":
		return "blue"
	case "personal":
		return "purple"
	case "study":
		return "green"
	case "health":
		return "red"
	case "shopping":
		return "yellow"
	default:
		return "gray"
	}
}

// PriorityTone returns the badge color for a priority, case-insensitive.
func PriorityTone(priority string) string {
	switch strings.ToLower(priority) {
	case models.PriorityHigh:
		return "red"
	case models.PriorityMedium:
		return "yellow"
	default:
		return "gray"
	}
}

// PriorityLabel is the badge text for a priority. Low and missing
// priorities get no badge.
func PriorityLabel(priority string) string {
	p := strings.TrimSpace(priority)
	if p == "" || strings.EqualFold(p, models.PriorityLow) {
		return ""
	}
	return strings.ToUpper(p[:1]) + p[1:] + " Priority"
}

// CategoryCount pairs a category with the number of tasks in it.
type CategoryCount struct {
	Name  string `json:"name"`
	Tone  string `json:"tone"`
	Count int    `json:"count"`
}

// CategoryCounts lists the known categories in display order with their
// counts from stats, followed by any other categories present in the
// collection in name order.
func CategoryCounts(stats Stats) []CategoryCount {
	known := models.Categories()
	out := make([]CategoryCount, 0, len(known)+len(stats.ByCategory))
	seen := make(map[string]bool, len(known))
	for _, name := range known {
		seen[name] = true
		out = append(out, CategoryCount{Name: name, Tone: CategoryTone(name), Count: stats.ByCategory[name]})
	}

	extra := make([]string, 0)
	for name := range stats.ByCategory {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, CategoryCount{Name: name, Tone: CategoryTone(name), Count: stats.ByCategory[name]})
	}
	return out
}
