package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omanjaya/websmansa-sub000/internal/dto"
	"github.com/omanjaya/websmansa-sub000/internal/model"
	"github.com/omanjaya/websmansa-sub000/internal/repository"
	pkgerrors "github.com/omanjaya/websmansa-sub000/pkg/errors"
)

// TeacherService is the Teacher CRUD.
type TeacherService interface {
	Create(ctx context.Context, req *dto.CreateTeacherRequest, callerID string) (*dto.TeacherResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error)
	List(ctx context.Context) ([]dto.TeacherResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest, callerID string) (*dto.TeacherResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService creates a TeacherService.
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest, callerID string) (*dto.TeacherResponse, error) {
	if req.SubjectID != nil {
		ok, err := s.repo.Subject.Exists(ctx, *req.SubjectID)
		if err != nil {
			return nil, pkgerrors.NewStore("check subject", err)
		}
		if !ok {
			return nil, pkgerrors.NewNotFound("subject", *req.SubjectID)
		}
	}

	teacher := &model.Teacher{NIP: req.NIP, Name: req.Name, SubjectID: req.SubjectID}
	teacher.CreatedBy = &callerID
	teacher.UpdatedBy = &callerID

	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		s.logger.Error("creating teacher failed", zap.Error(err))
		return nil, pkgerrors.NewStore("create teacher", err)
	}

	created, err := s.repo.Teacher.GetByID(ctx, teacher.TeacherID)
	if err != nil {
		return nil, pkgerrors.NewStore("reload teacher", err)
	}
	return toTeacherResponse(created), nil
}

func (s *teacherService) GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("teacher", id)
		}
		return nil, pkgerrors.NewStore("get teacher", err)
	}
	return toTeacherResponse(teacher), nil
}

func (s *teacherService) List(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("listing teachers failed", zap.Error(err))
		return nil, pkgerrors.NewStore("list teachers", err)
	}
	result := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		result = append(result, *toTeacherResponse(&teachers[i]))
	}
	return result, nil
}

func (s *teacherService) Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest, callerID string) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("teacher", id)
		}
		return nil, pkgerrors.NewStore("get teacher", err)
	}

	if req.NIP != nil {
		teacher.NIP = *req.NIP
	}
	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.SubjectID != nil {
		ok, err := s.repo.Subject.Exists(ctx, *req.SubjectID)
		if err != nil {
			return nil, pkgerrors.NewStore("check subject", err)
		}
		if !ok {
			return nil, pkgerrors.NewNotFound("subject", *req.SubjectID)
		}
		teacher.SubjectID = req.SubjectID
	}
	teacher.UpdatedBy = &callerID
	teacher.Subject = nil

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		s.logger.Error("updating teacher failed", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.NewStore("update teacher", err)
	}

	updated, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.NewStore("reload teacher", err)
	}
	return toTeacherResponse(updated), nil
}

func (s *teacherService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Teacher.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("teacher", id)
		}
		return pkgerrors.NewStore("get teacher", err)
	}
	if err := s.repo.Teacher.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("deleting teacher failed", zap.String("id", id), zap.Error(err))
		return pkgerrors.NewStore("delete teacher", err)
	}
	return nil
}

func toTeacherResponse(t *model.Teacher) *dto.TeacherResponse {
	resp := &dto.TeacherResponse{
		ID:        t.TeacherID,
		NIP:       t.NIP,
		Name:      t.Name,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if t.Subject != nil {
		resp.Subject = &dto.SubjectBrief{ID: t.Subject.SubjectID, Code: t.Subject.Code, Name: t.Subject.Name}
	}
	return resp
}
