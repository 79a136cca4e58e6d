package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omanjaya/websmansa-sub000/internal/dto"
	"github.com/omanjaya/websmansa-sub000/internal/model"
	"github.com/omanjaya/websmansa-sub000/internal/repository"
	pkgerrors "github.com/omanjaya/websmansa-sub000/pkg/errors"
)

// ConflictScope selects which dimensions the conflict engine checks beyond
// the owning class. The historical behavior is class-only: a teacher or a
// room appearing in two classes at once is tolerated (co-teaching, shared
// halls). The wider scopes close that gap per deployment.
type ConflictScope string

const (
	ConflictScopeClass        ConflictScope = "class"
	ConflictScopeClassTeacher ConflictScope = "class_teacher"
	ConflictScopeClassRoom    ConflictScope = "class_room"
	ConflictScopeAll          ConflictScope = "all"
)

func (s ConflictScope) includesTeacher() bool {
	return s == ConflictScopeClassTeacher || s == ConflictScopeAll
}

func (s ConflictScope) includesRoom() bool {
	return s == ConflictScopeClassRoom || s == ConflictScopeAll
}

// ScheduleService owns the class-period lifecycle: validation, conflict
// detection, persistence and the audit trail.
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest, callerID string) (*dto.ScheduleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error)
	List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest, callerID string) (*dto.ScheduleResponse, error)
	SetActive(ctx context.Context, id string, active bool, callerID string) (*dto.ScheduleResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	CurrentTerm() dto.CurrentTermResponse
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
	scope  ConflictScope
	now    func() time.Time // swappable clock; tests pin it to a fixed date
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(repo *repository.Repository, logger *zap.Logger, scope ConflictScope) ScheduleService {
	return &scheduleService{
		repo:   repo,
		logger: logger,
		scope:  scope,
		now:    time.Now,
	}
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest, callerID string) (*dto.ScheduleResponse, error) {
	cand := periodCandidate{
		ClassID:      req.ClassID,
		SubjectID:    req.SubjectID,
		TeacherID:    req.TeacherID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Room:         req.Room,
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
	}
	if err := s.resolveTerm(&cand); err != nil {
		return nil, err
	}
	if err := validateCandidate(&cand); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, &cand); err != nil {
		return nil, err
	}

	conflicts, err := s.findConflicts(ctx, &cand, "")
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &pkgerrors.ConflictError{ConflictingIDs: conflicts}
	}

	schedule := &model.Schedule{
		ClassID:      cand.ClassID,
		SubjectID:    cand.SubjectID,
		TeacherID:    cand.TeacherID,
		DayOfWeek:    cand.DayOfWeek,
		StartTime:    cand.StartTime,
		EndTime:      cand.EndTime,
		Room:         cand.Room,
		AcademicYear: cand.AcademicYear,
		Semester:     cand.Semester,
		IsActive:     true,
	}
	schedule.CreatedBy = &callerID
	schedule.UpdatedBy = &callerID

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.logger.Error("creating schedule failed", zap.Error(err))
		return nil, pkgerrors.NewStore("create schedule", err)
	}

	created, err := s.repo.Schedule.GetByID(ctx, schedule.ScheduleID)
	if err != nil {
		return nil, pkgerrors.NewStore("reload schedule", err)
	}

	s.recordActivity(ctx, "create",
		fmt.Sprintf("schedule created: day %d %s-%s, %s semester %s",
			cand.DayOfWeek, cand.StartTime, cand.EndTime, cand.AcademicYear, cand.Semester),
		&schedule.ScheduleID, callerID)

	return toScheduleResponse(created), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *scheduleService) GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("schedule", id)
		}
		s.logger.Error("loading schedule failed", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.NewStore("get schedule", err)
	}
	return toScheduleResponse(schedule), nil
}

// ────────────────────── List ──────────────────────

func (s *scheduleService) List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, error) {
	year, semester := req.AcademicYear, req.Semester
	// Listings default to "this term" when the caller names no scope at
	// all; a partially supplied scope is passed through untouched.
	if year == "" && semester == "" {
		year, semester = ResolveAcademicTerm(s.now())
	}

	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{
		ClassID:         req.ClassID,
		TeacherID:       req.TeacherID,
		DayOfWeek:       req.DayOfWeek,
		AcademicYear:    year,
		Semester:        semester,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		s.logger.Error("listing schedules failed", zap.Error(err))
		return nil, pkgerrors.NewStore("list schedules", err)
	}

	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, *toScheduleResponse(&schedules[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *scheduleService) Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest, callerID string) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("schedule", id)
		}
		s.logger.Error("loading schedule failed", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.NewStore("get schedule", err)
	}

	// The effective candidate is the stored period merged with the patch.
	cand := periodCandidate{
		ClassID:      schedule.ClassID,
		SubjectID:    schedule.SubjectID,
		TeacherID:    schedule.TeacherID,
		DayOfWeek:    schedule.DayOfWeek,
		StartTime:    hhmm(schedule.StartTime),
		EndTime:      hhmm(schedule.EndTime),
		Room:         schedule.Room,
		AcademicYear: schedule.AcademicYear,
		Semester:     schedule.Semester,
	}
	if req.ClassID != nil {
		cand.ClassID = *req.ClassID
	}
	if req.SubjectID != nil {
		cand.SubjectID = *req.SubjectID
	}
	if req.TeacherID != nil {
		cand.TeacherID = req.TeacherID
	}
	if req.DayOfWeek != nil {
		cand.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		cand.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		cand.EndTime = *req.EndTime
	}
	if req.Room != nil {
		cand.Room = *req.Room
	}
	if req.AcademicYear != nil {
		cand.AcademicYear = *req.AcademicYear
	}
	if req.Semester != nil {
		cand.Semester = *req.Semester
	}

	if err := validateCandidate(&cand); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, &cand); err != nil {
		return nil, err
	}

	// Exclude the period itself so an unrelated field change (room, subject)
	// is never flagged as a self-collision.
	conflicts, err := s.findConflicts(ctx, &cand, id)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &pkgerrors.ConflictError{ConflictingIDs: conflicts}
	}

	schedule.ClassID = cand.ClassID
	schedule.SubjectID = cand.SubjectID
	schedule.TeacherID = cand.TeacherID
	schedule.DayOfWeek = cand.DayOfWeek
	schedule.StartTime = cand.StartTime
	schedule.EndTime = cand.EndTime
	schedule.Room = cand.Room
	schedule.AcademicYear = cand.AcademicYear
	schedule.Semester = cand.Semester
	schedule.UpdatedBy = &callerID
	schedule.Class, schedule.Subject, schedule.Teacher = nil, nil, nil

	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		s.logger.Error("updating schedule failed", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.NewStore("update schedule", err)
	}

	updated, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.NewStore("reload schedule", err)
	}

	s.recordActivity(ctx, "update",
		fmt.Sprintf("schedule updated: day %d %s-%s", cand.DayOfWeek, cand.StartTime, cand.EndTime),
		&id, callerID)

	return toScheduleResponse(updated), nil
}

// ────────────────────── SetActive ──────────────────────

// SetActive toggles a period. Deactivation removes it from conflict checks
// and default listings. Reactivation deliberately does NOT re-run the
// conflict check, so a period deactivated before a colliding one was
// created can be switched back on top of it. Long-standing behavior,
// covered by tests so any future change is a conscious one.
func (s *scheduleService) SetActive(ctx context.Context, id string, active bool, callerID string) (*dto.ScheduleResponse, error) {
	if _, err := s.repo.Schedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("schedule", id)
		}
		return nil, pkgerrors.NewStore("get schedule", err)
	}

	if err := s.repo.Schedule.SetActive(ctx, id, active, callerID); err != nil {
		s.logger.Error("toggling schedule failed", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.NewStore("set schedule active", err)
	}

	action := "deactivate"
	if active {
		action = "activate"
	}
	s.recordActivity(ctx, action, "schedule "+action+"d", &id, callerID)

	updated, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.NewStore("reload schedule", err)
	}
	return toScheduleResponse(updated), nil
}

// ────────────────────── Delete ──────────────────────

// Delete soft-removes a period. No conflict check: removing a period can
// never introduce an overlap.
func (s *scheduleService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("schedule", id)
		}
		return pkgerrors.NewStore("get schedule", err)
	}

	if err := s.repo.Schedule.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("deleting schedule failed", zap.String("id", id), zap.Error(err))
		return pkgerrors.NewStore("delete schedule", err)
	}

	s.recordActivity(ctx, "delete", "schedule deleted", &id, callerID)
	return nil
}

// ────────────────────── CurrentTerm ──────────────────────

func (s *scheduleService) CurrentTerm() dto.CurrentTermResponse {
	year, semester := ResolveAcademicTerm(s.now())
	return dto.CurrentTermResponse{AcademicYear: year, Semester: semester}
}

// ── conflict engine ──

// periodCandidate is the effective period being checked: the request on
// create, the stored row merged with the patch on update.
type periodCandidate struct {
	ClassID      string
	SubjectID    string
	TeacherID    *string
	DayOfWeek    int
	StartTime    string
	EndTime      string
	Room         string
	AcademicYear string
	Semester     string
}

// findConflicts returns the ids of all active periods the candidate
// overlaps, in the candidate's (academic year, semester, day) slice. The
// class dimension is always checked; teacher and room dimensions only when
// the configured scope includes them. excludeID drops the period being
// updated from every dimension.
func (s *scheduleService) findConflicts(ctx context.Context, cand *periodCandidate, excludeID string) ([]string, error) {
	base := repository.ConflictQuery{
		AcademicYear: cand.AcademicYear,
		Semester:     cand.Semester,
		DayOfWeek:    cand.DayOfWeek,
		ExcludeID:    excludeID,
	}

	var ids []string
	seen := make(map[string]bool)

	collect := func(q repository.ConflictQuery) error {
		rows, err := s.repo.Schedule.ListForConflictCheck(ctx, q)
		if err != nil {
			s.logger.Error("conflict query failed", zap.Error(err))
			return pkgerrors.NewStore("conflict query", err)
		}
		for i := range rows {
			if !overlaps(cand.StartTime, cand.EndTime, hhmm(rows[i].StartTime), hhmm(rows[i].EndTime)) {
				continue
			}
			if !seen[rows[i].ScheduleID] {
				seen[rows[i].ScheduleID] = true
				ids = append(ids, rows[i].ScheduleID)
			}
		}
		return nil
	}

	classQ := base
	classQ.ClassID = cand.ClassID
	if err := collect(classQ); err != nil {
		return nil, err
	}

	if s.scope.includesTeacher() && cand.TeacherID != nil && *cand.TeacherID != "" {
		teacherQ := base
		teacherQ.TeacherID = *cand.TeacherID
		if err := collect(teacherQ); err != nil {
			return nil, err
		}
	}

	if s.scope.includesRoom() && cand.Room != "" {
		roomQ := base
		roomQ.Room = cand.Room
		if err := collect(roomQ); err != nil {
			return nil, err
		}
	}

	return ids, nil
}

// overlaps implements the half-open interval test: [a,b) and [c,d) overlap
// iff a < d && c < b. A period ending exactly when another starts is not a
// conflict. Zero-padded "HH:MM" strings compare correctly as text.
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// hhmm trims seconds off times read back from the store ("08:00:00" →
// "08:00") so comparisons against request values stay uniform.
func hhmm(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

// ── validation ──

const timeLayout = "15:04"

// resolveTerm fills the academic year and semester from today's date when
// the caller supplied neither; an explicit scope is never overridden.
func (s *scheduleService) resolveTerm(cand *periodCandidate) error {
	if cand.AcademicYear == "" && cand.Semester == "" {
		cand.AcademicYear, cand.Semester = ResolveAcademicTerm(s.now())
		return nil
	}
	if cand.AcademicYear == "" || cand.Semester == "" {
		return pkgerrors.NewValidation("academic_year", "academic_year and semester must be supplied together or both omitted")
	}
	return nil
}

// validateCandidate checks the candidate's shape. Runs before any store
// access so a rejected request never touches the database.
func validateCandidate(cand *periodCandidate) error {
	if cand.ClassID == "" {
		return pkgerrors.NewValidation("class_id", "must not be empty")
	}
	if cand.SubjectID == "" {
		return pkgerrors.NewValidation("subject_id", "must not be empty")
	}
	if !IsValidDay(cand.DayOfWeek) {
		return pkgerrors.NewValidation("day_of_week", "must be between 1 (Monday) and 7 (Sunday)")
	}
	if _, err := time.Parse(timeLayout, cand.StartTime); err != nil {
		return pkgerrors.NewValidation("start_time", `must be zero-padded "HH:MM"`)
	}
	if _, err := time.Parse(timeLayout, cand.EndTime); err != nil {
		return pkgerrors.NewValidation("end_time", `must be zero-padded "HH:MM"`)
	}
	if cand.EndTime <= cand.StartTime {
		return pkgerrors.NewValidation("end_time", "must be after start_time")
	}
	// Sscanf stops at the last %4d, so trailing garbage has to be ruled
	// out by length first.
	var first, second int
	if n, err := fmt.Sscanf(cand.AcademicYear, "%4d/%4d", &first, &second); len(cand.AcademicYear) != 9 || n != 2 || err != nil || second != first+1 {
		return pkgerrors.NewValidation("academic_year", `must be "YYYY/YYYY+1", e.g. "2024/2025"`)
	}
	if cand.Semester != model.SemesterOdd && cand.Semester != model.SemesterEven {
		return pkgerrors.NewValidation("semester", `must be "odd" or "even"`)
	}
	return nil
}

// checkReferences verifies the foreign keys exist before the conflict
// check runs.
func (s *scheduleService) checkReferences(ctx context.Context, cand *periodCandidate) error {
	ok, err := s.repo.Class.Exists(ctx, cand.ClassID)
	if err != nil {
		return pkgerrors.NewStore("check class", err)
	}
	if !ok {
		return pkgerrors.NewNotFound("class", cand.ClassID)
	}

	ok, err = s.repo.Subject.Exists(ctx, cand.SubjectID)
	if err != nil {
		return pkgerrors.NewStore("check subject", err)
	}
	if !ok {
		return pkgerrors.NewNotFound("subject", cand.SubjectID)
	}

	if cand.TeacherID != nil && *cand.TeacherID != "" {
		ok, err = s.repo.Teacher.Exists(ctx, *cand.TeacherID)
		if err != nil {
			return pkgerrors.NewStore("check teacher", err)
		}
		if !ok {
			return pkgerrors.NewNotFound("teacher", *cand.TeacherID)
		}
	}
	return nil
}

// ── helpers ──

// recordActivity writes one audit entry. Best-effort: failures are logged
// and swallowed, they never fail the mutation that succeeded.
func (s *scheduleService) recordActivity(ctx context.Context, action, description string, subjectID *string, actorID string) {
	entry := &model.ActivityLog{
		Action:      action,
		Description: description,
		SubjectType: "schedule",
		SubjectID:   subjectID,
	}
	if actorID != "" {
		entry.ActorID = &actorID
	}
	if err := s.repo.ActivityLog.Record(ctx, entry); err != nil {
		s.logger.Warn("recording activity failed", zap.String("action", action), zap.Error(err))
	}
}

func toScheduleResponse(m *model.Schedule) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ID:           m.ScheduleID,
		ClassID:      m.ClassID,
		SubjectID:    m.SubjectID,
		TeacherID:    m.TeacherID,
		DayOfWeek:    m.DayOfWeek,
		DayLabel:     DayLabel(m.DayOfWeek),
		StartTime:    hhmm(m.StartTime),
		EndTime:      hhmm(m.EndTime),
		Room:         m.Room,
		AcademicYear: m.AcademicYear,
		Semester:     m.Semester,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    m.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if m.Class != nil {
		resp.Class = &dto.ClassBrief{ID: m.Class.ClassID, Name: m.Class.Name}
	}
	if m.Subject != nil {
		resp.Subject = &dto.SubjectBrief{ID: m.Subject.SubjectID, Code: m.Subject.Code, Name: m.Subject.Name}
	}
	if m.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{ID: m.Teacher.TeacherID, Name: m.Teacher.Name}
	}
	return resp
}
