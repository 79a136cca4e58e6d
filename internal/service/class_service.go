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

// ClassService is the SchoolClass CRUD.
type ClassService interface {
	Create(ctx context.Context, req *dto.CreateClassRequest, callerID string) (*dto.ClassResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ClassResponse, error)
	List(ctx context.Context) ([]dto.ClassResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateClassRequest, callerID string) (*dto.ClassResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type classService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassService creates a ClassService.
func NewClassService(repo *repository.Repository, logger *zap.Logger) ClassService {
	return &classService{repo: repo, logger: logger}
}

func (s *classService) Create(ctx context.Context, req *dto.CreateClassRequest, callerID string) (*dto.ClassResponse, error) {
	class := &model.SchoolClass{Name: req.Name, Grade: req.Grade}
	class.CreatedBy = &callerID
	class.UpdatedBy = &callerID

	if err := s.repo.Class.Create(ctx, class); err != nil {
		s.logger.Error("creating class failed", zap.Error(err))
		return nil, pkgerrors.NewStore("create class", err)
	}
	return toClassResponse(class), nil
}

func (s *classService) GetByID(ctx context.Context, id string) (*dto.ClassResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("class", id)
		}
		return nil, pkgerrors.NewStore("get class", err)
	}
	return toClassResponse(class), nil
}

func (s *classService) List(ctx context.Context) ([]dto.ClassResponse, error) {
	classes, err := s.repo.Class.List(ctx)
	if err != nil {
		s.logger.Error("listing classes failed", zap.Error(err))
		return nil, pkgerrors.NewStore("list classes", err)
	}
	result := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, *toClassResponse(&classes[i]))
	}
	return result, nil
}

func (s *classService) Update(ctx context.Context, id string, req *dto.UpdateClassRequest, callerID string) (*dto.ClassResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("class", id)
		}
		return nil, pkgerrors.NewStore("get class", err)
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.Grade != nil {
		class.Grade = *req.Grade
	}
	class.UpdatedBy = &callerID

	if err := s.repo.Class.Update(ctx, class); err != nil {
		s.logger.Error("updating class failed", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.NewStore("update class", err)
	}
	return toClassResponse(class), nil
}

func (s *classService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Class.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("class", id)
		}
		return pkgerrors.NewStore("get class", err)
	}
	if err := s.repo.Class.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("deleting class failed", zap.String("id", id), zap.Error(err))
		return pkgerrors.NewStore("delete class", err)
	}
	return nil
}

func toClassResponse(c *model.SchoolClass) *dto.ClassResponse {
	return &dto.ClassResponse{
		ID:        c.ClassID,
		Name:      c.Name,
		Grade:     c.Grade,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
