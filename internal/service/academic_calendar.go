package service

import (
	"fmt"
	"time"

	"github.com/omanjaya/websmansa-sub000/internal/model"
)

// ── day-of-week table ──

// DayInfo pairs a weekday code with its display label.
type DayInfo struct {
	Code  int
	Label string
}

// Weekdays is the canonical day order for every timetable view. Codes
// follow ISO-8601 (1=Monday … 7=Sunday).
var Weekdays = [7]DayInfo{
	{1, "Monday"},
	{2, "Tuesday"},
	{3, "Wednesday"},
	{4, "Thursday"},
	{5, "Friday"},
	{6, "Saturday"},
	{7, "Sunday"},
}

// DayLabel returns the display label for a weekday code, or "" for an
// unknown code.
func DayLabel(code int) string {
	if code < 1 || code > 7 {
		return ""
	}
	return Weekdays[code-1].Label
}

// IsValidDay reports whether code is a known weekday.
func IsValidDay(code int) bool {
	return code >= 1 && code <= 7
}

// ── academic term resolution ──

// ResolveAcademicTerm maps a calendar date to the academic year and
// semester it falls in. The academic year runs July–June and is written
// "YYYY/YYYY+1"; July–December is the odd semester, January–June the even
// one. Pure and deterministic: callers inject the date, services keep a
// swappable clock so tests never depend on wall time.
func ResolveAcademicTerm(t time.Time) (academicYear, semester string) {
	year := t.Year()
	if t.Month() >= time.July {
		return fmt.Sprintf("%d/%d", year, year+1), model.SemesterOdd
	}
	return fmt.Sprintf("%d/%d", year-1, year), model.SemesterEven
}

// termStart returns the first calendar day of a semester, used to anchor
// iCalendar feeds. The odd semester starts July 1 of the year the academic
// year is named after; the even semester starts January 1 of the following
// year.
func termStart(academicYear, semester string) (time.Time, error) {
	var first, second int
	if _, err := fmt.Sscanf(academicYear, "%d/%d", &first, &second); err != nil {
		return time.Time{}, fmt.Errorf("malformed academic year %q", academicYear)
	}
	if semester == model.SemesterOdd {
		return time.Date(first, time.July, 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Date(second, time.January, 1, 0, 0, 0, 0, time.UTC), nil
}
