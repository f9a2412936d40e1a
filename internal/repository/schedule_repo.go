package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schedule-gen/backend/internal/model"
	pkgerrors "schedule-gen/backend/pkg/errors"
)

// ScheduleRepository 课表方案数据访问接口
type ScheduleRepository interface {
	// ListByUser 按 rank 升序返回，并预加载方案内课程
	ListByUser(ctx context.Context, userID string) ([]model.Schedule, error)
	GetByIDAndUser(ctx context.Context, id, userID string) (*model.Schedule, error)
	// ReplaceByUser 在事务中全量替换用户的课表方案：先删除旧数据，再批量插入新数据
	ReplaceByUser(ctx context.Context, userID string, schedules []model.Schedule) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

// withItems 预加载方案课程；课程软删除后方案仍保留其快照
func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Preload("Items.Course", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() })
}

func (r *scheduleRepo) ListByUser(ctx context.Context, userID string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := withItems(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("rank ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := withItems(r.db.WithContext(ctx)).
		Where("schedule_id = ? AND user_id = ?", id, userID).
		First(&schedule).Error
	if err != nil {
		return nil, pkgerrors.Translate(err)
	}
	return &schedule, nil
}

func (r *scheduleRepo) ReplaceByUser(ctx context.Context, userID string, schedules []model.Schedule) error {
	var items []model.ScheduleCourse
	for i := range schedules {
		if schedules[i].ScheduleID == "" {
			schedules[i].ScheduleID = uuid.NewString()
		}
		schedules[i].UserID = userID
		for _, it := range schedules[i].Items {
			it.ScheduleID = schedules[i].ScheduleID
			it.Course = nil
			items = append(items, it)
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 关联表通过外键级联删除
		if err := tx.Where("user_id = ?", userID).Delete(&model.Schedule{}).Error; err != nil {
			return err
		}
		if len(schedules) == 0 {
			return nil
		}
		if err := tx.Omit("Items").CreateInBatches(&schedules, 200).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.CreateInBatches(&items, 500).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
