package repository

import (
	"context"

	"youthhub_backend/internal/model"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

// ListCatalog 按阈值升序返回徽章目录，阈值相同时保持声明顺序
func (r *BadgeRepository) ListCatalog(ctx context.Context, tx *gorm.DB) ([]model.Badge, error) {
	var badges []model.Badge
	err := conn(ctx, r.DB, tx).
		Order("threshold_points ASC").
		Order("position ASC").
		Order("id ASC").
		Find(&badges).Error
	if err != nil {
		return nil, err
	}
	return badges, nil
}
