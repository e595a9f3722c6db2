package tui

import (
	"fmt"
	"strings"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/stats"
	"pomodoro/internal/core/timer"

	"github.com/charmbracelet/lipgloss"
)

// historyRows is how many recent sessions fit in the terminal view.
const historyRows = 10

var (
	accentColor = lipgloss.Color("#1f6feb")
	breakColor  = lipgloss.Color("#a371f7")
	subtleColor = lipgloss.Color("#8b949e")
	greenColor  = lipgloss.Color("#2ea043")
	warnColor   = lipgloss.Color("#f0883e")

	frameStyle  = lipgloss.NewStyle().Margin(1, 2)
	titleStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	phaseStyle  = lipgloss.NewStyle().Bold(true)
	clockStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	subtleStyle = lipgloss.NewStyle().Foreground(subtleColor)
	noticeStyle = lipgloss.NewStyle().Foreground(greenColor)
	stretchBox  = lipgloss.NewStyle().Foreground(breakColor).Bold(true).Border(lipgloss.RoundedBorder()).BorderForeground(breakColor).Padding(0, 2)
	promptStyle = lipgloss.NewStyle().Foreground(warnColor).Bold(true)
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(subtleColor).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var body string
	if m.view == viewHistory {
		body = m.historyView()
	} else {
		body = m.timerView()
	}
	return frameStyle.Render(body + "\n\n" + m.help.View(m.keys))
}

func (m Model) timerView() string {
	state := m.snapshot.State
	accent := accentColor
	if state.Phase == timer.PhaseBreak {
		accent = breakColor
	}

	phase := "Ready"
	if state.Status() != timer.StatusIdle {
		phase = state.Phase.Label()
	}

	lines := []string{
		titleStyle.Render("Pomodoro"),
		"",
		phaseStyle.Foreground(accent).Render(phase) + clockStyle.Foreground(accent).Render(state.Clock()),
		m.progress.ViewAs(m.snapshot.Progress),
		"",
		subtleStyle.Render(settingsLine(m.settings)),
		subtleStyle.Render(m.snapshot.Status),
	}
	if m.notice != "" {
		lines = append(lines, noticeStyle.Render(m.notice))
	}
	if m.stretchRemaining > 0 {
		lines = append(lines, "", stretchBox.Render(fmt.Sprintf("Break Time - Recharge! Stand up and stretch: %ds", m.stretchRemaining)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) historyView() string {
	summary := m.summary
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render("Today\n"+stats.FormatMinutes(summary.TodayMinutes)),
		cardStyle.Render("This Week\n"+stats.FormatMinutes(summary.WeekMinutes)),
		cardStyle.Render("This Month\n"+stats.FormatMinutes(summary.MonthMinutes)),
		cardStyle.Render(fmt.Sprintf("Sessions\n%d", summary.Sessions)),
	)

	lines := []string{titleStyle.Render("Focus History"), "", cards, ""}
	recent := stats.Recent(m.entries, stats.RecentLimit)
	if len(recent) == 0 {
		lines = append(lines, subtleStyle.Render("No focus sessions recorded yet."))
	} else {
		lines = append(lines, headerStyle.Render(fmt.Sprintf("%-20s %-6s %7s", "Date", "Type", "Minutes")))
		for i, entry := range recent {
			if i == historyRows {
				lines = append(lines, subtleStyle.Render(fmt.Sprintf("... %d more", len(recent)-historyRows)))
				break
			}
			when := entry.Timestamp
			if at, ok := entry.Time(); ok {
				when = at.Local().Format("2006-01-02 15:04")
			}
			lines = append(lines, fmt.Sprintf("%-20s %-6s %7d", when, entry.Kind, entry.Minutes))
		}
	}

	switch m.prompt {
	case promptExport:
		lines = append(lines, "", promptStyle.Render("Export to (.json, .csv, .pdf):"), m.input.View())
	case promptClear:
		lines = append(lines, "", promptStyle.Render("Clear all history? (y/n)"))
	}
	if m.notice != "" {
		lines = append(lines, "", noticeStyle.Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

func settingsLine(settings model.Settings) string {
	repeat := "off"
	if settings.AutoRepeat {
		repeat = "on"
	}
	return fmt.Sprintf("Focus %dm  Break %dm  Auto-repeat %s", settings.FocusMinutes, settings.BreakMinutes, repeat)
}
