package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/omanjaya/websmansa-sub000/internal/model"
)

// TeacherRepository is the Teacher store.
type TeacherRepository interface {
	Create(ctx context.Context, t *model.Teacher) error
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]model.Teacher, error)
	Update(ctx context.Context, t *model.Teacher) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo creates the gorm-backed TeacherRepository.
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) Create(ctx context.Context, t *model.Teacher) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *teacherRepo) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	var t model.Teacher
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("teacher_id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *teacherRepo) Exists(ctx context.Context, id string) (bool, error) {
	var t model.Teacher
	err := r.db.WithContext(ctx).Select("teacher_id").Where("teacher_id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *teacherRepo) List(ctx context.Context) ([]model.Teacher, error) {
	var teachers []model.Teacher
	err := r.db.WithContext(ctx).Preload("Subject").Order("name ASC").Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepo) Update(ctx context.Context, t *model.Teacher) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *teacherRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Teacher{}).
		Where("teacher_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
