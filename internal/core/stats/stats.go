// Package stats aggregates focus history for the history views.
package stats

import (
	"fmt"
	"sort"
	"time"

	"pomodoro/internal/core/model"
)

// RecentLimit is the number of entries shown in the recent sessions table.
const RecentLimit = 50

// DayTotal is the focus time recorded on a calendar day.
type DayTotal struct {
	Day     time.Time
	Minutes int
}

// Hours returns the day total in hours.
func (total DayTotal) Hours() float64 {
	return float64(total.Minutes) / 60
}

// Summary holds the aggregate numbers shown above the history table.
type Summary struct {
	TodayMinutes int
	WeekMinutes  int
	MonthMinutes int
	Sessions     int
	Daily        []DayTotal
}

// Summarize buckets entries into days of loc relative to now. Weeks start on Monday.
// Entries without a parseable timestamp are skipped.
func Summarize(entries []model.HistoryEntry, now time.Time, loc *time.Location) Summary {
	if loc == nil {
		loc = time.Local
	}
	today := startOfDay(now.In(loc))
	weekStart := today.AddDate(0, 0, -mondayOffset(today.Weekday()))
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)

	var summary Summary
	daily := make(map[time.Time]int)
	for _, entry := range entries {
		at, ok := entry.Time()
		if !ok {
			continue
		}
		day := startOfDay(at.In(loc))
		daily[day] += entry.Minutes
		if day.Equal(today) {
			summary.TodayMinutes += entry.Minutes
		}
		if !day.Before(weekStart) {
			summary.WeekMinutes += entry.Minutes
		}
		if !day.Before(monthStart) {
			summary.MonthMinutes += entry.Minutes
		}
		summary.Sessions++
	}

	summary.Daily = make([]DayTotal, 0, len(daily))
	for day, minutes := range daily {
		summary.Daily = append(summary.Daily, DayTotal{Day: day, Minutes: minutes})
	}
	sort.Slice(summary.Daily, func(i, j int) bool {
		return summary.Daily[i].Day.Before(summary.Daily[j].Day)
	})
	return summary
}

// Recent returns up to limit entries, newest first.
func Recent(entries []model.HistoryEntry, limit int) []model.HistoryEntry {
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}
	recent := make([]model.HistoryEntry, 0, limit)
	for i := len(entries) - 1; i >= len(entries)-limit; i-- {
		recent = append(recent, entries[i])
	}
	return recent
}

// FormatMinutes renders a total as "1h 25m".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func startOfDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}

func mondayOffset(weekday time.Weekday) int {
	return (int(weekday) + 6) % 7
}
