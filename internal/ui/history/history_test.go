package history

import (
	"testing"
	"time"

	"pomodoro/internal/app"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/stats"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)

func sampleEntries() []model.HistoryEntry {
	return []model.HistoryEntry{
		model.NewFocusEntry(25, now.AddDate(0, 0, -1)),
		{Kind: model.KindFocus, Minutes: 10, Timestamp: "garbage"},
		model.NewFocusEntry(50, now.Add(-time.Hour)),
	}
}

func TestTableRowsNewestFirst(t *testing.T) {
	rows := tableRows(sampleEntries(), time.UTC)
	require.Len(t, rows, 3)
	assert.Equal(t, row{When: "2024-03-06 11:00", Kind: "focus", Minutes: "50"}, rows[0])
	assert.Equal(t, "garbage", rows[1].When)
	assert.Equal(t, "2024-03-05 12:00", rows[2].When)
}

func TestZoneCaption(t *testing.T) {
	assert.Equal(t, "Days counted in UTC time", zoneCaption(time.UTC))
	assert.Equal(t, "Days counted in Australia/Sydney time", zoneCaption(time.FixedZone("Australia/Sydney", 10*60*60)))
	assert.Equal(t, "Days counted in Local time", zoneCaption(nil))
}

func TestTableRowsLimit(t *testing.T) {
	entries := make([]model.HistoryEntry, 0, 60)
	for i := 0; i < 60; i++ {
		entries = append(entries, model.NewFocusEntry(i+1, now))
	}
	rows := tableRows(entries, time.UTC)
	assert.Len(t, rows, stats.RecentLimit)
	assert.Equal(t, "60", rows[0].Minutes)
}

func TestChartHelpers(t *testing.T) {
	days := []stats.DayTotal{{Minutes: 30}, {Minutes: 60}, {Minutes: 0}}
	assert.Equal(t, []float32{0.5, 1, 0}, barFractions(days))
	assert.Equal(t, []float32{0}, barFractions([]stats.DayTotal{{}}))
	assert.Len(t, chartDays(make([]stats.DayTotal, 20), ChartDays), ChartDays)
	assert.Len(t, chartDays(days, ChartDays), 3)
}

func TestWindowSummaries(t *testing.T) {
	fyneApp := test.NewTempApp(t)
	var posted []app.CommandKind
	w := New(fyneApp, Options{
		Post:     func(cmd app.Command) bool { posted = append(posted, cmd.Kind); return true },
		Now:      func() time.Time { return now },
		Location: time.UTC,
	})
	assert.True(t, w.empty.Visible())

	w.SetEntries(sampleEntries())
	assert.Equal(t, "0h 50m", w.cards[0].value.Text)
	assert.Equal(t, "1h 15m", w.cards[1].value.Text)
	assert.Equal(t, "2", w.cards[3].value.Text)
	assert.False(t, w.empty.Visible())
	assert.Len(t, w.chart.container.Objects, 4)

	w.Show()
	assert.True(t, w.Visible())
	assert.Equal(t, []app.CommandKind{app.CommandLoadHistory}, posted)
	w.Hide()
	assert.False(t, w.Visible())
}
