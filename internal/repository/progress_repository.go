package repository

import (
	"context"

	"youthhub_backend/internal/model"
	"youthhub_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Find(ctx context.Context, tx *gorm.DB, userID, courseID uint) (*model.CourseProgress, error) {
	var progress model.CourseProgress
	err := conn(ctx, r.DB, tx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Create 已存在时不覆盖，返回是否新建
func (r *ProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.CourseProgress) (bool, error) {
	result := conn(ctx, r.DB, tx).Clauses(clause.OnConflict{DoNothing: true}).Create(progress)
	return result.RowsAffected > 0, result.Error
}

// SaveConditional 基于版本号的条件更新，成功后版本号加一
func (r *ProgressRepository) SaveConditional(ctx context.Context, tx *gorm.DB, progress *model.CourseProgress) error {
	result := conn(ctx, r.DB, tx).Model(&model.CourseProgress{}).
		Where("id = ?", progress.ID).
		Scopes(model.AtVersion(progress.Version)).
		Updates(map[string]interface{}{
			"completed_modules": progress.CompletedModules,
			"active_module":     progress.ActiveModule,
			"version":           model.NextVersion,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrStorageConflict
	}
	progress.Version++
	return nil
}
