package stats

import (
	"testing"
	"time"

	"pomodoro/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(minutes int, ts string) model.HistoryEntry {
	return model.HistoryEntry{Kind: model.KindFocus, Minutes: minutes, Timestamp: ts}
}

func TestSummarizeBuckets(t *testing.T) {
	// Wednesday 2024-03-13.
	now := time.Date(2024, 3, 13, 18, 0, 0, 0, time.UTC)
	entries := []model.HistoryEntry{
		entryAt(25, "2024-02-28T10:00:00Z"), // previous month
		entryAt(25, "2024-03-04T10:00:00Z"), // this month, previous week
		entryAt(30, "2024-03-11T08:00:00Z"), // Monday of this week
		entryAt(25, "2024-03-13T09:00:00+00:00"),
		entryAt(50, "2024-03-13T11:00:00.123456+00:00"),
		entryAt(25, "not a timestamp"),
	}

	summary := Summarize(entries, now, time.UTC)
	assert.Equal(t, 75, summary.TodayMinutes)
	assert.Equal(t, 105, summary.WeekMinutes)
	assert.Equal(t, 130, summary.MonthMinutes)
	assert.Equal(t, 5, summary.Sessions)

	require.Len(t, summary.Daily, 4)
	assert.Equal(t, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), summary.Daily[0].Day)
	assert.Equal(t, 75, summary.Daily[3].Minutes)
	assert.InDelta(t, 1.25, summary.Daily[3].Hours(), 1e-9)
}

func TestSummarizeWeekStartsMonday(t *testing.T) {
	// Sunday: the week began six days earlier.
	now := time.Date(2024, 3, 17, 12, 0, 0, 0, time.UTC)
	entries := []model.HistoryEntry{
		entryAt(10, "2024-03-10T12:00:00Z"),
		entryAt(20, "2024-03-11T12:00:00Z"),
	}
	summary := Summarize(entries, now, time.UTC)
	assert.Equal(t, 20, summary.WeekMinutes)
}

func TestSummarizeUsesLocation(t *testing.T) {
	zone := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2024, 3, 13, 8, 0, 0, 0, zone)
	entries := []model.HistoryEntry{entryAt(25, "2024-03-12T20:00:00Z")}

	summary := Summarize(entries, now, zone)
	assert.Equal(t, 25, summary.TodayMinutes)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, time.Now(), nil)
	assert.Zero(t, summary.Sessions)
	assert.Empty(t, summary.Daily)
}

func TestRecentNewestFirst(t *testing.T) {
	var entries []model.HistoryEntry
	for i := 1; i <= 60; i++ {
		entries = append(entries, entryAt(i, ""))
	}
	recent := Recent(entries, RecentLimit)
	require.Len(t, recent, 50)
	assert.Equal(t, 60, recent[0].Minutes)
	assert.Equal(t, 11, recent[49].Minutes)

	assert.Len(t, Recent(entries[:3], RecentLimit), 3)
	assert.Empty(t, Recent(nil, RecentLimit))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0h 0m", FormatMinutes(0))
	assert.Equal(t, "1h 25m", FormatMinutes(85))
	assert.Equal(t, "0h 0m", FormatMinutes(-4))
}
