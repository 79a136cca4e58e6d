package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/omanjaya/websmansa-sub000/internal/model"
)

// ScheduleFilter narrows the period list.
type ScheduleFilter struct {
	ClassID         string
	TeacherID       string
	DayOfWeek       *int
	AcademicYear    string
	Semester        string
	IncludeInactive bool
}

// ConflictQuery selects the persisted periods a candidate has to be checked
// against: active rows in one (year, semester, day) slice, keyed by exactly
// one of ClassID, TeacherID or Room, minus the period being updated.
type ConflictQuery struct {
	ClassID      string
	TeacherID    string
	Room         string
	AcademicYear string
	Semester     string
	DayOfWeek    int
	ExcludeID    string
}

// ScheduleRepository is the period store. The database enforces the
// no-overlap invariant once more via a trigger that serializes writers on
// the scope with an advisory lock, closing the race between a clean
// conflict check and the insert. The trigger ignores is_active flips, so
// SetActive can always reactivate a period.
type ScheduleRepository interface {
	Create(ctx context.Context, s *model.Schedule) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	List(ctx context.Context, f ScheduleFilter) ([]model.Schedule, error)
	ListForConflictCheck(ctx context.Context, q ConflictQuery) ([]model.Schedule, error)
	Update(ctx context.Context, s *model.Schedule) error
	SetActive(ctx context.Context, id string, active bool, updatedBy string) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo creates the gorm-backed ScheduleRepository.
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, s *model.Schedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var s model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Subject").
		Preload("Teacher").
		Where("schedule_id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *scheduleRepo) List(ctx context.Context, f ScheduleFilter) ([]model.Schedule, error) {
	var schedules []model.Schedule
	db := r.db.WithContext(ctx)

	if !f.IncludeInactive {
		db = db.Where("is_active = ?", true)
	}
	if f.ClassID != "" {
		db = db.Where("class_id = ?", f.ClassID)
	}
	if f.TeacherID != "" {
		db = db.Where("teacher_id = ?", f.TeacherID)
	}
	if f.DayOfWeek != nil {
		db = db.Where("day_of_week = ?", *f.DayOfWeek)
	}
	if f.AcademicYear != "" {
		db = db.Where("academic_year = ?", f.AcademicYear)
	}
	if f.Semester != "" {
		db = db.Where("semester = ?", f.Semester)
	}

	err := db.Preload("Class").
		Preload("Subject").
		Preload("Teacher").
		Order("day_of_week ASC, start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) ListForConflictCheck(ctx context.Context, q ConflictQuery) ([]model.Schedule, error) {
	var schedules []model.Schedule
	db := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("academic_year = ? AND semester = ? AND day_of_week = ?",
			q.AcademicYear, q.Semester, q.DayOfWeek)

	switch {
	case q.ClassID != "":
		db = db.Where("class_id = ?", q.ClassID)
	case q.TeacherID != "":
		db = db.Where("teacher_id = ?", q.TeacherID)
	case q.Room != "":
		db = db.Where("room = ?", q.Room)
	}
	if q.ExcludeID != "" {
		db = db.Where("schedule_id <> ?", q.ExcludeID)
	}

	err := db.Order("start_time ASC").Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) Update(ctx context.Context, s *model.Schedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *scheduleRepo) SetActive(ctx context.Context, id string, active bool, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("schedule_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_by": updatedBy,
		}).Error
}

func (r *scheduleRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("schedule_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
