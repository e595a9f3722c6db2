// Package export writes the focus history to a user-chosen file.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/stats"

	"github.com/go-pdf/fpdf"
	"github.com/goccy/go-json"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ErrEmptyHistory is returned when there is nothing to export.
var ErrEmptyHistory = errors.New("no history to export")

// FormatForPath picks the format from the file extension. Anything other than
// .csv or .pdf is written as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".pdf":
		return FormatPDF
	default:
		return FormatJSON
	}
}

// WithDefaultExtension appends .json when path has no extension.
func WithDefaultExtension(path string) string {
	if filepath.Ext(path) == "" {
		return path + ".json"
	}
	return path
}

// WriteFile exports entries to path in the format implied by its extension.
func WriteFile(path string, entries []model.HistoryEntry) error {
	if len(entries) == 0 {
		return ErrEmptyHistory
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := Write(file, FormatForPath(path), entries); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}

// Write encodes entries to out. Unknown formats fall back to JSON.
func Write(out io.Writer, format Format, entries []model.HistoryEntry) error {
	switch format {
	case FormatCSV:
		return writeCSV(out, entries)
	case FormatPDF:
		return writePDF(out, entries, time.Now())
	default:
		return writeJSON(out, entries)
	}
}

func writeJSON(out io.Writer, entries []model.HistoryEntry) error {
	serialized, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history export: %w", err)
	}
	if _, err := out.Write(serialized); err != nil {
		return fmt.Errorf("write json export: %w", err)
	}
	return nil
}

func writeCSV(out io.Writer, entries []model.HistoryEntry) error {
	writer := csv.NewWriter(out)
	if err := writer.Write([]string{"type", "minutes", "ts"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, entry := range entries {
		if err := writer.Write([]string{entry.Kind, strconv.Itoa(entry.Minutes), entry.Timestamp}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv export: %w", err)
	}
	return nil
}

func writePDF(out io.Writer, entries []model.HistoryEntry, now time.Time) error {
	summary := stats.Summarize(entries, now, time.Local)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Pomodoro History: %s", now.Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Today: %s   This week: %s   This month: %s   Sessions: %d",
		stats.FormatMinutes(summary.TodayMinutes),
		stats.FormatMinutes(summary.WeekMinutes),
		stats.FormatMinutes(summary.MonthMinutes),
		summary.Sessions))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	for _, header := range []struct {
		label string
		width float64
	}{{"Date", 40}, {"Time", 30}, {"Type", 30}, {"Minutes", 25}} {
		pdf.CellFormat(header.width, 8, header.label, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	for _, entry := range stats.Recent(entries, 0) {
		date, clock := entry.Timestamp, ""
		if at, ok := entry.Time(); ok {
			local := at.In(time.Local)
			date, clock = local.Format("2006-01-02"), local.Format("15:04:05")
		}
		pdf.CellFormat(40, 7, date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, clock, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, entry.Kind, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, strconv.Itoa(entry.Minutes), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("render pdf export: %w", err)
	}
	return nil
}
