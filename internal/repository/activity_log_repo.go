package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/omanjaya/websmansa-sub000/internal/model"
)

// ActivityLogRepository is the audit-trail sink and reader.
type ActivityLogRepository interface {
	Record(ctx context.Context, log *model.ActivityLog) error
	List(ctx context.Context, subjectType string, offset, limit int) ([]model.ActivityLog, int64, error)
}

type activityLogRepo struct {
	db *gorm.DB
}

// NewActivityLogRepo creates the gorm-backed ActivityLogRepository.
func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Record(ctx context.Context, log *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *activityLogRepo) List(ctx context.Context, subjectType string, offset, limit int) ([]model.ActivityLog, int64, error) {
	var (
		logs  []model.ActivityLog
		total int64
	)

	db := r.db.WithContext(ctx).Model(&model.ActivityLog{})
	if subjectType != "" {
		db = db.Where("subject_type = ?", subjectType)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&logs).Error
	return logs, total, err
}
