package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/omanjaya/websmansa-sub000/internal/dto"
	"github.com/omanjaya/websmansa-sub000/internal/model"
	"github.com/omanjaya/websmansa-sub000/internal/repository"
	pkgerrors "github.com/omanjaya/websmansa-sub000/pkg/errors"
)

func seedPeriod(repo *repository.Repository, id, classID string, day int, start, end string) {
	teacherID := "teacher-1"
	repo.Schedule.(*mockScheduleRepo).schedules[id] = &model.Schedule{
		ScheduleID:   id,
		ClassID:      classID,
		SubjectID:    "subject-math",
		TeacherID:    &teacherID,
		DayOfWeek:    day,
		StartTime:    start,
		EndTime:      end,
		AcademicYear: "2024/2025",
		Semester:     "odd",
		IsActive:     true,
	}
}

func newTimetableTestEnv(t *testing.T) (*repository.Repository, *timetableService) {
	t.Helper()
	repo := newTestRepo()
	repo.Class.(*mockClassRepo).classes["class-10a"] = &model.SchoolClass{ClassID: "class-10a", Name: "10A", Grade: 10}
	repo.Teacher.(*mockTeacherRepo).teachers["teacher-1"] = &model.Teacher{TeacherID: "teacher-1", NIP: "19800101", Name: "Ibu Sari"}

	svc := NewTimetableService(repo, zap.NewNop()).(*timetableService)
	svc.now = func() time.Time {
		return time.Date(2024, time.September, 2, 8, 0, 0, 0, time.UTC)
	}
	return repo, svc
}

func TestGroupByDayAlwaysSevenDays(t *testing.T) {
	days := GroupByDay(nil)
	if len(days) != 7 {
		t.Fatalf("len(days) = %d, want 7", len(days))
	}
	for i, d := range days {
		if d.DayOfWeek != i+1 {
			t.Errorf("days[%d].DayOfWeek = %d, want %d", i, d.DayOfWeek, i+1)
		}
		if d.Periods == nil {
			t.Errorf("days[%d].Periods is nil, want empty slice", i)
		}
		if len(d.Periods) != 0 {
			t.Errorf("days[%d] has %d periods, want 0", i, len(d.Periods))
		}
	}
	if days[0].Label != "Monday" || days[6].Label != "Sunday" {
		t.Errorf("labels = %s…%s, want Monday…Sunday", days[0].Label, days[6].Label)
	}
}

func TestGroupByDaySortsWithinDay(t *testing.T) {
	teacherID := "teacher-1"
	mk := func(id string, day int, start, end string) model.Schedule {
		return model.Schedule{
			ScheduleID: id, ClassID: "class-10a", SubjectID: "subject-math",
			TeacherID: &teacherID, DayOfWeek: day, StartTime: start, EndTime: end,
			AcademicYear: "2024/2025", Semester: "odd", IsActive: true,
		}
	}

	days := GroupByDay([]model.Schedule{
		mk("s-3", 1, "10:00", "11:00"),
		mk("s-1", 1, "07:00", "08:00"),
		mk("s-2", 1, "08:00", "09:00"),
		mk("s-4", 5, "13:00", "14:00"),
		mk("s-bad", 9, "08:00", "09:00"), // out-of-range day is dropped
	})

	monday := days[0]
	if len(monday.Periods) != 3 {
		t.Fatalf("monday has %d periods, want 3", len(monday.Periods))
	}
	for i, want := range []string{"s-1", "s-2", "s-3"} {
		if monday.Periods[i].ID != want {
			t.Errorf("monday[%d] = %s, want %s", i, monday.Periods[i].ID, want)
		}
	}
	if len(days[4].Periods) != 1 {
		t.Errorf("friday has %d periods, want 1", len(days[4].Periods))
	}

	total := 0
	for _, d := range days {
		total += len(d.Periods)
	}
	if total != 4 {
		t.Errorf("total rendered periods = %d, want 4 (defective row dropped)", total)
	}
}

func TestTimetableByClass(t *testing.T) {
	repo, svc := newTimetableTestEnv(t)
	seedPeriod(repo, "s-1", "class-10a", 1, "07:00", "08:00")
	seedPeriod(repo, "s-2", "class-10a", 3, "09:00", "10:00")

	got, err := svc.ByClass(context.Background(), "class-10a", &dto.TimetableRequest{})
	if err != nil {
		t.Fatalf("ByClass: %v", err)
	}
	if got.AcademicYear != "2024/2025" || got.Semester != "odd" {
		t.Errorf("term = %s %s, want current term 2024/2025 odd", got.AcademicYear, got.Semester)
	}
	if len(got.Days) != 7 {
		t.Fatalf("len(Days) = %d, want 7", len(got.Days))
	}
	if len(got.Days[0].Periods) != 1 || len(got.Days[2].Periods) != 1 {
		t.Errorf("periods landed on wrong days: %+v", got.Days)
	}
}

func TestTimetableByClassUnknownClass(t *testing.T) {
	_, svc := newTimetableTestEnv(t)

	_, err := svc.ByClass(context.Background(), "ghost", &dto.TimetableRequest{})
	var nf *pkgerrors.NotFoundError
	if !errors.As(err, &nf) || nf.Resource != "class" {
		t.Fatalf("expected class NotFoundError, got %v", err)
	}
}

func TestTimetableByTeacherSpansClasses(t *testing.T) {
	repo, svc := newTimetableTestEnv(t)
	seedPeriod(repo, "s-1", "class-10a", 1, "07:00", "08:00")
	seedPeriod(repo, "s-2", "class-10b", 1, "08:00", "09:00")

	got, err := svc.ByTeacher(context.Background(), "teacher-1", &dto.TimetableRequest{})
	if err != nil {
		t.Fatalf("ByTeacher: %v", err)
	}
	if len(got.Days[0].Periods) != 2 {
		t.Errorf("monday has %d periods, want 2 across both classes", len(got.Days[0].Periods))
	}
}
