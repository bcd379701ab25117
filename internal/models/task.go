package models

import (
	"strings"
	"time"
)

// DateLayout is the storage and wire format of due dates.
const DateLayout = "2006-01-02"

// Known categories. Anything else is grouped under CategoryUnknown for display.
const (
	CategoryWork     = "Work"
	CategoryPersonal = "Personal"
	CategoryStudy    = "Study"
	CategoryHealth   = "Health"
	CategoryShopping = "Shopping"
	CategoryOther    = "Other"
	CategoryUnknown  = "unknown"
)

// Priority levels.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Field defaults applied on create.
const (
	DefaultCategory = CategoryWork
	DefaultPriority = PriorityMedium
	DefaultUserID   = int64(1)
)

// Categories returns the known categories in display order.
func Categories() []string {
	return []string{
		CategoryWork,
		CategoryPersonal,
		CategoryStudy,
		CategoryHealth,
		CategoryShopping,
		CategoryOther,
	}
}

// Task represents a single to-do item owned by a user.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"` // "high", "medium", "low"
	DueDate     string    `json:"dueDate,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      int64     `json:"userId"`
}

// PriorityOrder returns a numeric value for sorting by priority.
// Lower numbers indicate higher priority.
func (t *Task) PriorityOrder() int {
	switch t.Priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// HasDueDate reports whether a due date is set.
func (t *Task) HasDueDate() bool {
	return t.DueDate != ""
}

// ParseDate parses a YYYY-MM-DD date. A longer ISO timestamp is accepted and
// truncated to its date part.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		s = s[:len(DateLayout)]
	}
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// TaskInput holds the fields accepted when creating a task.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

// Normalize trims whitespace and fills in field defaults.
func (in *TaskInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.Priority = strings.TrimSpace(in.Priority)
	in.DueDate = strings.TrimSpace(in.DueDate)
	if in.Priority == "" {
		in.Priority = DefaultPriority
	}
}

// Validate checks that the input has valid field values.
func (in *TaskInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title", "is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return invalid("category", "is required")
	}
	return validateCommon(in.Priority, in.DueDate)
}

// Task builds a new, unsaved task for the given user.
func (in *TaskInput) Task(userID int64) *Task {
	return &Task{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		DueDate:     normalizeDate(in.DueDate),
		UserID:      userID,
	}
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Validate checks the provided fields only.
func (p *TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("title", "is required")
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return invalid("category", "is required")
	}
	priority := DefaultPriority
	if p.Priority != nil {
		priority = strings.TrimSpace(*p.Priority)
	}
	dueDate := ""
	if p.DueDate != nil {
		dueDate = *p.DueDate
	}
	return validateCommon(priority, dueDate)
}

// Apply copies the provided fields onto t. ID, CreatedAt and UserID are never touched.
// An empty DueDate clears the due date.
func (p *TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = strings.TrimSpace(*p.Category)
	}
	if p.Priority != nil {
		t.Priority = strings.TrimSpace(*p.Priority)
	}
	if p.DueDate != nil {
		t.DueDate = normalizeDate(*p.DueDate)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

func validateCommon(priority, dueDate string) error {
	if priority != PriorityHigh && priority != PriorityMedium && priority != PriorityLow {
		return invalid("priority", "must be 'high', 'medium', or 'low'")
	}
	if strings.TrimSpace(dueDate) != "" {
		if _, ok := ParseDate(dueDate); !ok {
			return invalid("dueDate", "must be a date in YYYY-MM-DD format")
		}
	}
	return nil
}

func normalizeDate(s string) string {
	d, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return d.Format(DateLayout)
}
