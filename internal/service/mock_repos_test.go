package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/omanjaya/websmansa-sub000/internal/model"
	"github.com/omanjaya/websmansa-sub000/internal/repository"
)

// ── Mock Repositories ──

type mockClassRepo struct {
	classes map[string]*model.SchoolClass
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.SchoolClass)}
}

func (m *mockClassRepo) Create(_ context.Context, c *model.SchoolClass) error {
	if c.ClassID == "" {
		c.ClassID = fmt.Sprintf("class-%d", len(m.classes)+1)
	}
	m.classes[c.ClassID] = c
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.SchoolClass, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.classes[id]
	return ok, nil
}

func (m *mockClassRepo) List(_ context.Context) ([]model.SchoolClass, error) {
	var all []model.SchoolClass
	for _, c := range m.classes {
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (m *mockClassRepo) Update(_ context.Context, c *model.SchoolClass) error {
	m.classes[c.ClassID] = c
	return nil
}

func (m *mockClassRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.classes, id)
	return nil
}

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, s *model.Subject) error {
	if s.SubjectID == "" {
		s.SubjectID = fmt.Sprintf("subject-%d", len(m.subjects)+1)
	}
	m.subjects[s.SubjectID] = s
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.subjects[id]
	return ok, nil
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	var all []model.Subject
	for _, s := range m.subjects {
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, s *model.Subject) error {
	m.subjects[s.SubjectID] = s
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.subjects, id)
	return nil
}

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, t *model.Teacher) error {
	if t.TeacherID == "" {
		t.TeacherID = fmt.Sprintf("teacher-%d", len(m.teachers)+1)
	}
	m.teachers[t.TeacherID] = t
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.teachers[id]
	return ok, nil
}

func (m *mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	var all []model.Teacher
	for _, t := range m.teachers {
		all = append(all, *t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (m *mockTeacherRepo) Update(_ context.Context, t *model.Teacher) error {
	m.teachers[t.TeacherID] = t
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.teachers, id)
	return nil
}

type mockUserRepo struct {
	users map[string]*model.User // keyed by user_id and username
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.users["name:"+username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(_ context.Context, u *model.User) error {
	if u.UserID == "" {
		u.UserID = "user-" + u.Username
	}
	m.users[u.UserID] = u
	m.users["name:"+u.Username] = u
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, u *model.User) error {
	m.users[u.UserID] = u
	m.users["name:"+u.Username] = u
	return nil
}

type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
	seq       int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.Schedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, s *model.Schedule) error {
	if s.ScheduleID == "" {
		m.seq++
		s.ScheduleID = fmt.Sprintf("schedule-%d", m.seq)
	}
	cp := *s
	m.schedules[s.ScheduleID] = &cp
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context, f repository.ScheduleFilter) ([]model.Schedule, error) {
	var all []model.Schedule
	for _, s := range m.schedules {
		if !f.IncludeInactive && !s.IsActive {
			continue
		}
		if f.ClassID != "" && s.ClassID != f.ClassID {
			continue
		}
		if f.TeacherID != "" && (s.TeacherID == nil || *s.TeacherID != f.TeacherID) {
			continue
		}
		if f.DayOfWeek != nil && s.DayOfWeek != *f.DayOfWeek {
			continue
		}
		if f.AcademicYear != "" && s.AcademicYear != f.AcademicYear {
			continue
		}
		if f.Semester != "" && s.Semester != f.Semester {
			continue
		}
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].DayOfWeek != all[j].DayOfWeek {
			return all[i].DayOfWeek < all[j].DayOfWeek
		}
		return all[i].StartTime < all[j].StartTime
	})
	return all, nil
}

func (m *mockScheduleRepo) ListForConflictCheck(_ context.Context, q repository.ConflictQuery) ([]model.Schedule, error) {
	var all []model.Schedule
	for _, s := range m.schedules {
		if !s.IsActive {
			continue
		}
		if s.AcademicYear != q.AcademicYear || s.Semester != q.Semester || s.DayOfWeek != q.DayOfWeek {
			continue
		}
		switch {
		case q.ClassID != "":
			if s.ClassID != q.ClassID {
				continue
			}
		case q.TeacherID != "":
			if s.TeacherID == nil || *s.TeacherID != q.TeacherID {
				continue
			}
		case q.Room != "":
			if s.Room != q.Room {
				continue
			}
		}
		if q.ExcludeID != "" && s.ScheduleID == q.ExcludeID {
			continue
		}
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartTime < all[j].StartTime })
	return all, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, s *model.Schedule) error {
	cp := *s
	m.schedules[s.ScheduleID] = &cp
	return nil
}

func (m *mockScheduleRepo) SetActive(_ context.Context, id string, active bool, updatedBy string) error {
	s, ok := m.schedules[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.IsActive = active
	s.UpdatedBy = &updatedBy
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.schedules, id)
	return nil
}

type mockActivityLogRepo struct {
	entries []model.ActivityLog
	failErr error // when set, Record fails; mutations must still succeed
}

func newMockActivityLogRepo() *mockActivityLogRepo {
	return &mockActivityLogRepo{}
}

func (m *mockActivityLogRepo) Record(_ context.Context, log *model.ActivityLog) error {
	if m.failErr != nil {
		return m.failErr
	}
	if log.LogID == "" {
		log.LogID = fmt.Sprintf("log-%d", len(m.entries)+1)
	}
	m.entries = append(m.entries, *log)
	return nil
}

func (m *mockActivityLogRepo) List(_ context.Context, subjectType string, offset, limit int) ([]model.ActivityLog, int64, error) {
	var filtered []model.ActivityLog
	for _, e := range m.entries {
		if subjectType != "" && e.SubjectType != subjectType {
			continue
		}
		filtered = append(filtered, e)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

// newTestRepo assembles a Repository backed entirely by in-memory mocks.
func newTestRepo() *repository.Repository {
	return &repository.Repository{
		User:        newMockUserRepo(),
		Class:       newMockClassRepo(),
		Subject:     newMockSubjectRepo(),
		Teacher:     newMockTeacherRepo(),
		Schedule:    newMockScheduleRepo(),
		ActivityLog: newMockActivityLogRepo(),
	}
}
