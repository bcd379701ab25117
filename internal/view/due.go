package view

import (
	"fmt"
	"time"

	"taskmanager/internal/models"
)

// DueKind buckets a due date relative to a reference day.
type DueKind int

const (
	DueNone DueKind = iota
	DueOverdue
	DueToday
	DueTomorrow
	DueSoon
	DueLater
)

var dueKindNames = map[DueKind]string{
	DueNone:     "none",
	DueOverdue:  "overdue",
	DueToday:    "today",
	DueTomorrow: "tomorrow",
	DueSoon:     "soon",
	DueLater:    "later",
}

func (k DueKind) String() string {
	if s, ok := dueKindNames[k]; ok {
		return s
	}
	return "none"
}

// soonDays is the largest day distance still labelled as soon.
const soonDays = 3

const secondsPerDay = 24 * 60 * 60

// Due is the classification of a task's due date. Days is the signed number
// of calendar days from the reference day and is zero when Kind is DueNone.
type Due struct {
	Kind DueKind
	Days int
}

// Classify compares dueDate with ref at day granularity. The time of day is
// ignored on both sides; ref's calendar day is taken in ref's own location.
// An absent or malformed due date classifies as DueNone.
func Classify(dueDate string, ref time.Time) Due {
	due, ok := models.ParseDate(dueDate)
	if !ok {
		return Due{Kind: DueNone}
	}

	days := daysBetween(ref, due)
	switch {
	case days < 0:
		return Due{Kind: DueOverdue, Days: days}
	case days == 0:
		return Due{Kind: DueToday}
	case days == 1:
		return Due{Kind: DueTomorrow, Days: 1}
	case days <= soonDays:
		return Due{Kind: DueSoon, Days: days}
	default:
		return Due{Kind: DueLater, Days: days}
	}
}

// daysBetween counts calendar days from ref's day to due's day. Both are
// re-anchored at UTC midnight so DST transitions cannot skew the result.
func daysBetween(ref, due time.Time) int {
	from := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	// Unix seconds instead of Sub, which saturates after about 292 years.
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}

// Upcoming reports whether the date lies strictly after the reference day.
func (d Due) Upcoming() bool {
	return d.Kind != DueNone && d.Days > 0
}

// Label is the human-readable due text shown next to a task.
func (d Due) Label() string {
	switch d.Kind {
	case DueOverdue:
		return "Overdue"
	case DueToday:
		return "Due today"
	case DueTomorrow:
		return "Due tomorrow"
	case DueSoon, DueLater:
		return fmt.Sprintf("Due in %d days", d.Days)
	default:
		return ""
	}
}

// Tone is the color hint used when rendering the due label.
func (d Due) Tone() string {
	switch d.Kind {
	case DueOverdue:
		return "red"
	case DueToday:
		return "yellow"
	case DueTomorrow:
		return "orange"
	case DueSoon:
		return "blue"
	default:
		return "gray"
	}
}
