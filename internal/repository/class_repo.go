package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/omanjaya/websmansa-sub000/internal/model"
)

// ClassRepository is the SchoolClass store.
type ClassRepository interface {
	Create(ctx context.Context, c *model.SchoolClass) error
	GetByID(ctx context.Context, id string) (*model.SchoolClass, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]model.SchoolClass, error)
	Update(ctx context.Context, c *model.SchoolClass) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type classRepo struct {
	db *gorm.DB
}

// NewClassRepo creates the gorm-backed ClassRepository.
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) Create(ctx context.Context, c *model.SchoolClass) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *classRepo) GetByID(ctx context.Context, id string) (*model.SchoolClass, error) {
	var c model.SchoolClass
	if err := r.db.WithContext(ctx).Where("class_id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *classRepo) Exists(ctx context.Context, id string) (bool, error) {
	var c model.SchoolClass
	err := r.db.WithContext(ctx).Select("class_id").Where("class_id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *classRepo) List(ctx context.Context) ([]model.SchoolClass, error) {
	var classes []model.SchoolClass
	err := r.db.WithContext(ctx).Order("grade ASC, name ASC").Find(&classes).Error
	return classes, err
}

func (r *classRepo) Update(ctx context.Context, c *model.SchoolClass) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *classRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.SchoolClass{}).
		Where("class_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
