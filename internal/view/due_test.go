package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ref = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func day(offset int) string {
	return ref.AddDate(0, 0, offset).Format("2006-01-02")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		dueDate  string
		wantKind DueKind
		wantDays int
		label    string
		tone     string
	}{
		{name: "absent", dueDate: "", wantKind: DueNone, label: "", tone: "gray"},
		{name: "malformed", dueDate: "someday", wantKind: DueNone, label: "", tone: "gray"},
		{name: "yesterday", dueDate: day(-1), wantKind: DueOverdue, wantDays: -1, label: "Overdue", tone: "red"},
		{name: "last month", dueDate: day(-30), wantKind: DueOverdue, wantDays: -30, label: "Overdue", tone: "red"},
		{name: "today", dueDate: day(0), wantKind: DueToday, label: "Due today", tone: "yellow"},
		{name: "tomorrow", dueDate: day(1), wantKind: DueTomorrow, wantDays: 1, label: "Due tomorrow", tone: "orange"},
		{name: "two days", dueDate: day(2), wantKind: DueSoon, wantDays: 2, label: "Due in 2 days", tone: "blue"},
		{name: "three days", dueDate: day(3), wantKind: DueSoon, wantDays: 3, label: "Due in 3 days", tone: "blue"},
		{name: "four days", dueDate: day(4), wantKind: DueLater, wantDays: 4, label: "Due in 4 days", tone: "gray"},
		{name: "far future", dueDate: "2400-03-10", wantKind: DueLater, wantDays: 136601, label: "Due in 136601 days", tone: "gray"},
		{name: "far past", dueDate: "1652-03-10", wantKind: DueOverdue, wantDays: -136600, label: "Overdue", tone: "red"},
		{name: "timestamp input", dueDate: day(0) + "T23:59:00Z", wantKind: DueToday, label: "Due today", tone: "yellow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.dueDate, ref)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantDays, got.Days)
			assert.Equal(t, tt.label, got.Label())
			assert.Equal(t, tt.tone, got.Tone())
		})
	}
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	early := time.Date(2026, time.March, 10, 0, 0, 1, 0, time.UTC)
	late := time.Date(2026, time.March, 10, 23, 59, 59, 0, time.UTC)

	for _, r := range []time.Time{early, late} {
		assert.Equal(t, DueToday, Classify("2026-03-10", r).Kind)
		assert.Equal(t, DueOverdue, Classify("2026-03-09", r).Kind)
		assert.Equal(t, DueTomorrow, Classify("2026-03-11", r).Kind)
	}
}

func TestClassify_UsesReferenceLocationDay(t *testing.T) {
	// 02:00 on the 11th in UTC+5 is still the 10th in UTC.
	zone := time.FixedZone("UTC+5", 5*60*60)
	r := time.Date(2026, time.March, 11, 2, 0, 0, 0, zone)

	assert.Equal(t, DueToday, Classify("2026-03-11", r).Kind)
}

func TestClassify_AcrossMonthAndYear(t *testing.T) {
	r := time.Date(2026, time.December, 31, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, Due{Kind: DueTomorrow, Days: 1}, Classify("2027-01-01", r))
	assert.Equal(t, Due{Kind: DueLater, Days: 60}, Classify("2027-03-01", r))
}

func TestDue_Upcoming(t *testing.T) {
	assert.False(t, Classify("", ref).Upcoming())
	assert.False(t, Classify(day(-2), ref).Upcoming())
	assert.False(t, Classify(day(0), ref).Upcoming())
	assert.True(t, Classify(day(1), ref).Upcoming())
	assert.True(t, Classify(day(45), ref).Upcoming())
}

func TestDueKind_String(t *testing.T) {
	assert.Equal(t, "overdue", DueOverdue.String())
	assert.Equal(t, "later", DueLater.String())
	assert.Equal(t, "none", DueKind(42).String())
}
