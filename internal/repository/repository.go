package repository

import "gorm.io/gorm"

// Repository aggregates all data-access interfaces.
type Repository struct {
	User        UserRepository
	Class       ClassRepository
	Subject     SubjectRepository
	Teacher     TeacherRepository
	Schedule    ScheduleRepository
	ActivityLog ActivityLogRepository
}

// NewRepository wires the gorm-backed implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:        NewUserRepo(db),
		Class:       NewClassRepo(db),
		Subject:     NewSubjectRepo(db),
		Teacher:     NewTeacherRepo(db),
		Schedule:    NewScheduleRepo(db),
		ActivityLog: NewActivityLogRepo(db),
	}
}
