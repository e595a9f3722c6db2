package history

import (
	"strconv"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/stats"
)

// ChartDays is the number of most recent days drawn in the bar chart.
const ChartDays = 14

type row struct {
	When    string
	Kind    string
	Minutes string
}

// tableRows formats the most recent entries, newest first.
func tableRows(entries []model.HistoryEntry, loc *time.Location) []row {
	recent := stats.Recent(entries, stats.RecentLimit)
	rows := make([]row, 0, len(recent))
	for _, entry := range recent {
		rows = append(rows, row{
			When:    formatWhen(entry, loc),
			Kind:    entry.Kind,
			Minutes: strconv.Itoa(entry.Minutes),
		})
	}
	return rows
}

// formatWhen shows the entry in loc, or the raw timestamp when it cannot be parsed.
func formatWhen(entry model.HistoryEntry, loc *time.Location) string {
	at, ok := entry.Time()
	if !ok {
		return entry.Timestamp
	}
	if loc == nil {
		loc = time.Local
	}
	return at.In(loc).Format("2006-01-02 15:04")
}

// chartDays keeps the last limit days of daily.
func chartDays(daily []stats.DayTotal, limit int) []stats.DayTotal {
	if limit > 0 && len(daily) > limit {
		return daily[len(daily)-limit:]
	}
	return daily
}

// barFractions scales each day against the busiest one.
func barFractions(days []stats.DayTotal) []float32 {
	busiest := 0
	for _, day := range days {
		if day.Minutes > busiest {
			busiest = day.Minutes
		}
	}
	fractions := make([]float32, len(days))
	if busiest == 0 {
		return fractions
	}
	for i, day := range days {
		fractions[i] = float32(day.Minutes) / float32(busiest)
	}
	return fractions
}

// zoneCaption names the time zone the day buckets are counted in.
func zoneCaption(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return "Days counted in " + loc.String() + " time"
}
