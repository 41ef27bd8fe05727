package repository

import (
	"context"

	"youthhub_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityLogRepository struct {
	DB *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

func (r *ActivityLogRepository) Create(ctx context.Context, tx *gorm.DB, log *model.ActivityLog) error {
	return conn(ctx, r.DB, tx).Create(log).Error
}

func (r *ActivityLogRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

func (r *QuizAttemptRepository) Create(ctx context.Context, tx *gorm.DB, attempt *model.QuizAttempt) error {
	return conn(ctx, r.DB, tx).Create(attempt).Error
}

func (r *QuizAttemptRepository) CountByModule(ctx context.Context, userID, courseID uint, position int) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
		Where("user_id = ? AND course_id = ? AND module_position = ?", userID, courseID, position).
		Count(&count).Error
	return count, err
}
