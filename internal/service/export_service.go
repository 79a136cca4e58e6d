package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omanjaya/websmansa-sub000/internal/dto"
	"github.com/omanjaya/websmansa-sub000/internal/repository"
	pkgerrors "github.com/omanjaya/websmansa-sub000/pkg/errors"
)

var (
	ErrExportNoPeriods    = errors.New("no periods to export for this term")
	ErrExportGenerateFail = errors.New("generating export file failed")
)

// ExportService renders a class timetable as a downloadable file. Excel
// gives the printable weekly grid; the iCalendar feed lets periods show up
// in a calendar app as weekly recurring events anchored to the term start.
type ExportService interface {
	ExportTimetableXLSX(ctx context.Context, classID string, req *dto.TimetableRequest) (*bytes.Buffer, string, error)
	ExportTimetableICS(ctx context.Context, classID string, req *dto.TimetableRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo      *repository.Repository
	timetable TimetableService
	logger    *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, timetable TimetableService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, timetable: timetable, logger: logger}
}

// weeksPerTerm bounds the weekly recurrence in the iCalendar feed.
const weeksPerTerm = 18

// ────────────────────── Excel ──────────────────────

func (s *exportService) ExportTimetableXLSX(ctx context.Context, classID string, req *dto.TimetableRequest) (*bytes.Buffer, string, error) {
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", pkgerrors.NewNotFound("class", classID)
		}
		return nil, "", pkgerrors.NewStore("get class", err)
	}

	timetable, err := s.timetable.ByClass(ctx, classID, req)
	if err != nil {
		return nil, "", err
	}
	if countPeriods(timetable) == 0 {
		return nil, "", ErrExportNoPeriods
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Timetable"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 28)
	f.SetColWidth(sheetName, "D", "D", 24)
	f.SetColWidth(sheetName, "E", "E", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	title := fmt.Sprintf("%s — Timetable %s (%s semester)", class.Name, timetable.AcademicYear, timetable.Semester)
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", "E1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	row := 2
	f.SetCellValue(sheetName, cell("A", row), "Day")
	f.SetCellValue(sheetName, cell("B", row), "Time")
	f.SetCellValue(sheetName, cell("C", row), "Subject")
	f.SetCellValue(sheetName, cell("D", row), "Teacher")
	f.SetCellValue(sheetName, cell("E", row), "Room")
	f.SetCellStyle(sheetName, cell("A", row), cell("E", row), headerStyle)

	row = 3
	for _, day := range timetable.Days {
		for _, p := range day.Periods {
			f.SetCellValue(sheetName, cell("A", row), day.Label)
			f.SetCellValue(sheetName, cell("B", row), fmt.Sprintf("%s-%s", p.StartTime, p.EndTime))
			subjectName := p.SubjectID
			if p.Subject != nil {
				subjectName = p.Subject.Name
			}
			f.SetCellValue(sheetName, cell("C", row), subjectName)
			teacherName := "-"
			if p.Teacher != nil {
				teacherName = p.Teacher.Name
			}
			f.SetCellValue(sheetName, cell("D", row), teacherName)
			room := p.Room
			if room == "" {
				room = "-"
			}
			f.SetCellValue(sheetName, cell("E", row), room)
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing Excel failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("timetable_%s_%s_%s.xlsx",
		class.Name, sanitizeYear(timetable.AcademicYear), timetable.Semester)
	return buf, filename, nil
}

// ────────────────────── iCalendar ──────────────────────

func (s *exportService) ExportTimetableICS(ctx context.Context, classID string, req *dto.TimetableRequest) (*bytes.Buffer, string, error) {
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", pkgerrors.NewNotFound("class", classID)
		}
		return nil, "", pkgerrors.NewStore("get class", err)
	}

	timetable, err := s.timetable.ByClass(ctx, classID, req)
	if err != nil {
		return nil, "", err
	}
	if countPeriods(timetable) == 0 {
		return nil, "", ErrExportNoPeriods
	}

	start, err := termStart(timetable.AcademicYear, timetable.Semester)
	if err != nil {
		return nil, "", pkgerrors.NewValidation("academic_year", err.Error())
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//websmansa//timetable//EN")

	for _, day := range timetable.Days {
		for _, p := range day.Periods {
			first := firstWeekday(start, day.DayOfWeek)

			startAt, err := combineDateTime(first, p.StartTime)
			if err != nil {
				continue // defective row; skip rather than break the whole feed
			}
			endAt, err := combineDateTime(first, p.EndTime)
			if err != nil {
				continue
			}

			summary := p.SubjectID
			if p.Subject != nil {
				summary = p.Subject.Name
			}
			if p.Teacher != nil {
				summary = fmt.Sprintf("%s (%s)", summary, p.Teacher.Name)
			}

			evt := cal.AddEvent(p.ID)
			evt.SetSummary(summary)
			evt.SetStartAt(startAt)
			evt.SetEndAt(endAt)
			if p.Room != "" {
				evt.SetLocation(p.Room)
			}
			evt.AddRrule(fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", weeksPerTerm))
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("timetable_%s_%s_%s.ics",
		class.Name, sanitizeYear(timetable.AcademicYear), timetable.Semester)
	return buf, filename, nil
}

// ── helpers ──

func countPeriods(t *dto.TimetableResponse) int {
	n := 0
	for _, d := range t.Days {
		n += len(d.Periods)
	}
	return n
}

// firstWeekday returns the first date on or after start that falls on the
// given ISO weekday code (1=Monday … 7=Sunday).
func firstWeekday(start time.Time, code int) time.Time {
	target := time.Weekday(code % 7) // ISO 7 (Sunday) maps to time.Sunday (0)
	for start.Weekday() != target {
		start = start.AddDate(0, 0, 1)
	}
	return start
}

func combineDateTime(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse(timeLayout, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

func sanitizeYear(academicYear string) string {
	out := make([]byte, 0, len(academicYear))
	for i := 0; i < len(academicYear); i++ {
		if academicYear[i] == '/' {
			out = append(out, '-')
			continue
		}
		out = append(out, academicYear[i])
	}
	return string(out)
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
