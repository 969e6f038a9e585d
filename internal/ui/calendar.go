package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"quill/internal/storage"
)

var todayStyle = selectedStyle.Underline(true)

// dailyNoteDays returns the days of the month that have a daily note, i.e.
// a file named YYYY-MM-DD.md inside the daily notes directory.
func dailyNoteDays(notes []storage.Note, year int, month time.Month) map[int]bool {
	days := map[int]bool{}
	for _, n := range notes {
		if filepath.Base(filepath.Dir(n.Path)) != storage.DailyNotesDirName {
			continue
		}
		stem := strings.TrimSuffix(filepath.Base(n.Path), filepath.Ext(n.Path))
		d, err := time.Parse(storage.DateLayout, stem)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month {
			days[d.Day()] = true
		}
	}
	return days
}

// renderCalendar draws a Monday-first month grid.
func renderCalendar(notes []storage.Note, year int, month time.Month, today time.Time) string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysIn := first.AddDate(0, 1, -1).Day()
	lead := (int(first.Weekday()) + 6) % 7
	marked := dailyNoteDays(notes, year, month)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", month, year)) + "\n")
	b.WriteString(dimStyle.Render("Mo Tu We Th Fr Sa Su") + "\n")
	b.WriteString(strings.Repeat("   ", lead))

	col := lead
	for day := 1; day <= daysIn; day++ {
		cell := fmt.Sprintf("%2d", day)
		switch {
		case today.Year() == year && today.Month() == month && today.Day() == day:
			cell = todayStyle.Render(cell)
		case marked[day]:
			cell = selectedStyle.Render(cell)
		}
		b.WriteString(cell)
		col++
		if col%7 == 0 {
			b.WriteString("\n")
		} else if day < daysIn {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d daily notes this month", len(marked))))
	return b.String()
}
