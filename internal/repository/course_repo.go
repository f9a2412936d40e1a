package repository

import (
	"context"

	"gorm.io/gorm"

	"schedule-gen/backend/internal/model"
	pkgerrors "schedule-gen/backend/pkg/errors"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByIDAndUser(ctx context.Context, id, userID string) (*model.Course, error)
	// ListByUser 按创建顺序返回，该顺序即枚举顺序
	ListByUser(ctx context.Context, userID string) ([]model.Course, error)
	// Delete 课程不存在或不属于该用户时返回 pkgerrors.ErrNotFound
	Delete(ctx context.Context, id, userID string) error
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return pkgerrors.Translate(r.db.WithContext(ctx).Create(course).Error)
}

func (r *courseRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND user_id = ?", id, userID).
		First(&course).Error
	if err != nil {
		return nil, pkgerrors.Translate(err)
	}
	return &course, nil
}

func (r *courseRepo) ListByUser(ctx context.Context, userID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, course_id ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) Delete(ctx context.Context, id, userID string) error {
	// 软删除：已生成的课表方案仍可展示被删除的课程，直到下次重新生成
	result := r.db.WithContext(ctx).
		Where("course_id = ? AND user_id = ?", id, userID).
		Delete(&model.Course{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
