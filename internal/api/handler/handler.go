package handler

import "github.com/omanjaya/websmansa-sub000/internal/service"

// Handler is the aggregate entry point for all HTTP handlers.
type Handler struct {
	Auth        *AuthHandler
	Schedule    *ScheduleHandler
	Timetable   *TimetableHandler
	Export      *ExportHandler
	Class       *ClassHandler
	Subject     *SubjectHandler
	Teacher     *TeacherHandler
	ActivityLog *ActivityLogHandler
}

// NewHandler wires the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Schedule:    NewScheduleHandler(svc.Schedule),
		Timetable:   NewTimetableHandler(svc.Timetable),
		Export:      NewExportHandler(svc.Export),
		Class:       NewClassHandler(svc.Class),
		Subject:     NewSubjectHandler(svc.Subject),
		Teacher:     NewTeacherHandler(svc.Teacher),
		ActivityLog: NewActivityLogHandler(svc.ActivityLog),
	}
}
