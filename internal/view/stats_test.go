package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskmanager/internal/models"
)

func TestComputeStats(t *testing.T) {
	s := ComputeStats(fixtureTasks(), ref)

	assert.Equal(t, 8, s.Total)
	assert.Equal(t, 3, s.Completed)
	// task 4 is due today but completed
	assert.Equal(t, 1, s.DueToday)
	// tasks 2 and 5; task 3 is completed and task 7 is overdue
	assert.Equal(t, 2, s.Upcoming)
	assert.Equal(t, 38, s.CompletionRate)
	assert.Equal(t, map[string]int{
		"Work":     3,
		"Personal": 1,
		"Study":    1,
		"Shopping": 1,
		"Health":   1,
		"Other":    1,
	}, s.ByCategory)
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil, ref)

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.Completed)
	assert.Equal(t, 0, s.DueToday)
	assert.Equal(t, 0, s.Upcoming)
	assert.Equal(t, 0, s.CompletionRate)
	assert.NotNil(t, s.ByCategory)
	assert.Empty(t, s.ByCategory)
}

func TestComputeStats_MissingCategoryCountsAsUnknown(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b", Category: "Work"},
		{ID: 3, Title: "c"},
	}

	s := ComputeStats(tasks, ref)

	assert.Equal(t, map[string]int{models.CategoryUnknown: 2, "Work": 1}, s.ByCategory)
}

func TestComputeStats_OverdueNotCounted(t *testing.T) {
	tasks := []models.Task{{ID: 1, Title: "late", Category: "Work", DueDate: day(-1)}}

	s := ComputeStats(tasks, ref)

	assert.Equal(t, DueOverdue, Classify(tasks[0].DueDate, ref).Kind)
	assert.Equal(t, 0, s.DueToday)
	assert.Equal(t, 0, s.Upcoming)
}

func TestComputeStats_CountInvariants(t *testing.T) {
	s := ComputeStats(fixtureTasks(), ref)

	assert.LessOrEqual(t, s.Completed, s.Total)
	assert.LessOrEqual(t, s.DueToday, s.Total-s.Completed)
	assert.LessOrEqual(t, s.Upcoming, s.Total-s.Completed)
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 5, 100},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
	}
	for _, tt := range tests {
		got := CompletionRate(tt.completed, tt.total)
		assert.Equal(t, tt.want, got, "CompletionRate(%d, %d)", tt.completed, tt.total)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}

func TestWeeklyGrowth(t *testing.T) {
	assert.Equal(t, 100, WeeklyGrowth(0, -1))
	assert.Equal(t, 100, WeeklyGrowth(1, 0))
	assert.Equal(t, 100, WeeklyGrowth(2, 1))
	assert.Equal(t, 50, WeeklyGrowth(3, 2))
	assert.Equal(t, 11, WeeklyGrowth(10, 9))
	assert.Equal(t, 11, ComputeStats(make([]models.Task, 10), ref).WeeklyGrowth)
}
