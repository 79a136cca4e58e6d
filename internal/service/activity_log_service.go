package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/omanjaya/websmansa-sub000/internal/dto"
	"github.com/omanjaya/websmansa-sub000/internal/repository"
	pkgerrors "github.com/omanjaya/websmansa-sub000/pkg/errors"
)

// ActivityLogService reads the audit trail.
type ActivityLogService interface {
	List(ctx context.Context, req *dto.ActivityLogListRequest) ([]dto.ActivityLogResponse, int64, error)
}

type activityLogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityLogService creates an ActivityLogService.
func NewActivityLogService(repo *repository.Repository, logger *zap.Logger) ActivityLogService {
	return &activityLogService{repo: repo, logger: logger}
}

func (s *activityLogService) List(ctx context.Context, req *dto.ActivityLogListRequest) ([]dto.ActivityLogResponse, int64, error) {
	logs, total, err := s.repo.ActivityLog.List(ctx, req.SubjectType, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("listing activity logs failed", zap.Error(err))
		return nil, 0, pkgerrors.NewStore("list activity logs", err)
	}

	result := make([]dto.ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		result = append(result, dto.ActivityLogResponse{
			ID:          l.LogID,
			Action:      l.Action,
			Description: l.Description,
			SubjectType: l.SubjectType,
			SubjectID:   l.SubjectID,
			ActorID:     l.ActorID,
			CreatedAt:   l.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return result, total, nil
}
