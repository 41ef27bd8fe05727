package repository

import (
	"context"

	"youthhub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

// TrySet 原子地写入完成标记；返回 false 表示标记已存在
func (r *CompletionRepository) TrySet(ctx context.Context, tx *gorm.DB, flag *model.CompletionFlag) (bool, error) {
	result := conn(ctx, r.DB, tx).Clauses(clause.OnConflict{DoNothing: true}).Create(flag)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *CompletionRepository) IsSet(ctx context.Context, tx *gorm.DB, userID uint, kind model.CompletionKind, targetID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.DB, tx).Model(&model.CompletionFlag{}).
		Where("user_id = ? AND kind = ? AND target_id = ?", userID, kind, targetID).
		Count(&count).Error
	return count > 0, err
}
