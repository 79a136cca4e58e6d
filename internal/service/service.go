package service

import (
	"go.uber.org/zap"

	"github.com/omanjaya/websmansa-sub000/config"
	"github.com/omanjaya/websmansa-sub000/internal/repository"
	"github.com/omanjaya/websmansa-sub000/pkg/jwt"
	"github.com/omanjaya/websmansa-sub000/pkg/redis"
)

// Service is the aggregate entry point for all services.
type Service struct {
	Auth        AuthService
	Schedule    ScheduleService
	Timetable   TimetableService
	Export      ExportService
	Class       ClassService
	Subject     SubjectService
	Teacher     TeacherService
	ActivityLog ActivityLogService
}

// NewService wires the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	timetable := NewTimetableService(repo, logger)
	return &Service{
		Auth:        NewAuthService(repo, jwtMgr, rdb, logger),
		Schedule:    NewScheduleService(repo, logger, ConflictScope(cfg.Timetable.ConflictScope)),
		Timetable:   timetable,
		Export:      NewExportService(repo, timetable, logger),
		Class:       NewClassService(repo, logger),
		Subject:     NewSubjectService(repo, logger),
		Teacher:     NewTeacherService(repo, logger),
		ActivityLog: NewActivityLogService(repo, logger),
	}
}
