package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/models"
)

func scenarioTasks() []models.Task {
	return []models.Task{
		{ID: 1, Title: "A", Category: "Work", Priority: "medium", DueDate: day(0), Completed: false},
		{ID: 2, Title: "B", Category: "Personal", Priority: "medium", Completed: true},
	}
}

func TestCompute_AllByDueDate(t *testing.T) {
	got := Compute(scenarioTasks(), Selection{Status: StatusAll, Sort: SortDueDate}, ref)

	assert.Equal(t, []string{"A", "B"}, titles(got.Tasks))
	assert.Equal(t, 2, got.Stats.Total)
	assert.Equal(t, 1, got.Stats.Completed)
	assert.Equal(t, 1, got.Stats.DueToday)
	assert.Equal(t, 50, got.Stats.CompletionRate)
}

func TestCompute_CompletedOnly(t *testing.T) {
	got := Compute(scenarioTasks(), Selection{Status: StatusCompleted, Sort: SortDueDate}, ref)

	assert.Equal(t, []string{"B"}, titles(got.Tasks))
	// statistics always cover the whole collection
	assert.Equal(t, 2, got.Stats.Total)
}

func TestCompute_PriorityOrder(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Title: "h", Priority: "high"},
		{ID: 2, Title: "l", Priority: "low"},
		{ID: 3, Title: "m", Priority: "medium"},
	}

	got := Compute(tasks, Selection{Status: StatusAll, Sort: SortPriority}, ref)

	assert.Equal(t, []string{"h", "m", "l"}, titles(got.Tasks))
}

func TestCompute_Empty(t *testing.T) {
	selections := []Selection{
		DefaultSelection(),
		{Status: StatusToday, Category: "Work", Sort: SortPriority},
		{Status: StatusUpcoming, Sort: SortAlphabetical},
		{Status: StatusCompleted, Category: "Health", Sort: "nope"},
	}

	for _, sel := range selections {
		got := Compute(nil, sel, ref)
		require.NotNil(t, got.Tasks)
		assert.Empty(t, got.Tasks)
		assert.Equal(t, Stats{ByCategory: map[string]int{}, WeeklyGrowth: 100}, got.Stats)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	tasks := fixtureTasks()
	sel := Selection{Status: StatusAll, Category: "Work", Sort: SortAlphabetical}

	first := Compute(tasks, sel, ref)
	second := Compute(tasks, sel, ref)

	assert.Equal(t, first, second)
	assert.Equal(t, fixtureTasks(), tasks)
}

func TestCompute_ToleratesVanishedTask(t *testing.T) {
	tasks := fixtureTasks()
	before := Compute(tasks, DefaultSelection(), ref)

	after := Compute(tasks[1:], DefaultSelection(), ref)

	assert.Equal(t, before.Stats.Total-1, after.Stats.Total)
	assert.NotContains(t, ids(after.Tasks), int64(1))
}

func TestParseSelection(t *testing.T) {
	assert.Equal(t, DefaultSelection(), ParseSelection("", "", ""))
	assert.Equal(t,
		Selection{Status: StatusUpcoming, Category: "Health", Sort: SortPriority},
		ParseSelection(" upcoming ", "Health", "priority"),
	)
	// unknown values survive parsing and fall back when computed
	sel := ParseSelection("weird", "", "random")
	assert.Equal(t, StatusFilter("weird"), sel.Status)
	assert.Len(t, Compute(fixtureTasks(), sel, ref).Tasks, len(fixtureTasks()))
}

func TestDecorate(t *testing.T) {
	items := Decorate([]models.Task{
		{ID: 1, Title: "a", Category: "Work", Priority: "high", DueDate: day(-1)},
		{ID: 2, Title: "b", Category: "", Priority: "low", DueDate: ""},
		{ID: 3, Title: "c", Category: "health", Priority: "medium", DueDate: day(2)},
	}, ref)

	require.Len(t, items, 3)
	assert.Equal(t, "overdue", items[0].DueKind)
	assert.Equal(t, "Overdue", items[0].DueLabel)
	assert.Equal(t, "blue", items[0].CategoryTone)
	assert.Equal(t, "none", items[1].DueKind)
	assert.Equal(t, "", items[1].DueLabel)
	assert.Equal(t, "gray", items[1].CategoryTone)
	assert.Equal(t, "Due in 2 days", items[2].DueLabel)
	assert.Equal(t, "red", items[2].CategoryTone)

	assert.Equal(t, "High Priority", items[0].PriorityLabel)
	assert.Equal(t, "red", items[0].PriorityTone)
	assert.Equal(t, "", items[1].PriorityLabel)
	assert.Equal(t, "gray", items[1].PriorityTone)
	assert.Equal(t, "Medium Priority", items[2].PriorityLabel)
	assert.Equal(t, "yellow", items[2].PriorityTone)
}

func TestPriorityBadge(t *testing.T) {
	tests := []struct {
		priority, tone, label string
	}{
		{"high", "red", "High Priority"},
		{"HIGH", "red", "HIGH Priority"},
		{"medium", "yellow", "Medium Priority"},
		{"low", "gray", ""},
		{"Low", "gray", ""},
		{"", "gray", ""},
		{"urgent", "gray", "Urgent Priority"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.tone, PriorityTone(tt.priority), "PriorityTone(%q)", tt.priority)
		assert.Equal(t, tt.label, PriorityLabel(tt.priority), "PriorityLabel(%q)", tt.priority)
	}
}

func TestCategoryTone(t *testing.T) {
	assert.Equal(t, "blue", CategoryTone("Work"))
	assert.Equal(t, "purple", CategoryTone("PERSONAL"))
	assert.Equal(t, "green", CategoryTone("Study"))
	assert.Equal(t, "yellow", CategoryTone("Shopping"))
	assert.Equal(t, "gray", CategoryTone("Other"))
	assert.Equal(t, "gray", CategoryTone(""))
}

func TestCategoryCounts(t *testing.T) {
	stats := Stats{ByCategory: map[string]int{"Work": 2, "Zebra": 1, "unknown": 3}}

	got := CategoryCounts(stats)

	require.Len(t, got, 8)
	assert.Equal(t, CategoryCount{Name: "Work", Tone: "blue", Count: 2}, got[0])
	assert.Equal(t, CategoryCount{Name: "Personal", Tone: "purple", Count: 0}, got[1])
	assert.Equal(t, "Other", got[5].Name)
	assert.Equal(t, "Zebra", got[6].Name)
	assert.Equal(t, "unknown", got[7].Name)
}
