package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omanjaya/websmansa-sub000/internal/dto"
	"github.com/omanjaya/websmansa-sub000/internal/model"
	"github.com/omanjaya/websmansa-sub000/internal/repository"
	pkgerrors "github.com/omanjaya/websmansa-sub000/pkg/errors"
)

// TimetableService renders the weekly grid views: one class's timetable
// and one teacher's timetable, grouped by weekday.
type TimetableService interface {
	ByClass(ctx context.Context, classID string, req *dto.TimetableRequest) (*dto.TimetableResponse, error)
	ByTeacher(ctx context.Context, teacherID string, req *dto.TimetableRequest) (*dto.TimetableResponse, error)
}

type timetableService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewTimetableService creates a TimetableService.
func NewTimetableService(repo *repository.Repository, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, logger: logger, now: time.Now}
}

func (s *timetableService) ByClass(ctx context.Context, classID string, req *dto.TimetableRequest) (*dto.TimetableResponse, error) {
	if _, err := s.repo.Class.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("class", classID)
		}
		return nil, pkgerrors.NewStore("get class", err)
	}
	return s.buildTimetable(ctx, repository.ScheduleFilter{ClassID: classID}, req)
}

func (s *timetableService) ByTeacher(ctx context.Context, teacherID string, req *dto.TimetableRequest) (*dto.TimetableResponse, error) {
	if _, err := s.repo.Teacher.GetByID(ctx, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("teacher", teacherID)
		}
		return nil, pkgerrors.NewStore("get teacher", err)
	}
	return s.buildTimetable(ctx, repository.ScheduleFilter{TeacherID: teacherID}, req)
}

func (s *timetableService) buildTimetable(ctx context.Context, filter repository.ScheduleFilter, req *dto.TimetableRequest) (*dto.TimetableResponse, error) {
	year, semester := req.AcademicYear, req.Semester
	if year == "" && semester == "" {
		year, semester = ResolveAcademicTerm(s.now())
	}
	filter.AcademicYear = year
	filter.Semester = semester

	schedules, err := s.repo.Schedule.List(ctx, filter)
	if err != nil {
		s.logger.Error("listing timetable failed", zap.Error(err))
		return nil, pkgerrors.NewStore("list schedules", err)
	}

	return &dto.TimetableResponse{
		AcademicYear: year,
		Semester:     semester,
		Days:         GroupByDay(schedules),
	}, nil
}

// GroupByDay partitions periods into the fixed Monday→Sunday grid. Every
// weekday is present even with zero periods, so clients render a stable
// seven-column table; within a day, periods are ordered by start time.
// Pure transformation, no I/O.
func GroupByDay(schedules []model.Schedule) []dto.TimetableDay {
	days := make([]dto.TimetableDay, 0, len(Weekdays))
	for _, d := range Weekdays {
		days = append(days, dto.TimetableDay{
			DayOfWeek: d.Code,
			Label:     d.Label,
			Periods:   []dto.ScheduleResponse{},
		})
	}

	for i := range schedules {
		code := schedules[i].DayOfWeek
		if code < 1 || code > 7 {
			continue // defective row; never rendered
		}
		days[code-1].Periods = append(days[code-1].Periods, *toScheduleResponse(&schedules[i]))
	}

	for i := range days {
		sort.SliceStable(days[i].Periods, func(a, b int) bool {
			return days[i].Periods[a].StartTime < days[i].Periods[b].StartTime
		})
	}

	return days
}
