package repository

import (
	"context"
	"time"

	"youthhub_backend/internal/model"
	"youthhub_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*model.User, error) {
	var user model.User
	err := conn(ctx, r.DB, tx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreditPoints 积分与徽章缓存在一次条件更新中写入，版本号不匹配时返回 ErrStorageConflict
func (r *UserRepository) CreditPoints(ctx context.Context, tx *gorm.DB, userID uint, expectedVersion, amount int, badgeIDs []uint) error {
	result := conn(ctx, r.DB, tx).Model(&model.User{}).
		Where("id = ?", userID).
		Scopes(model.AtVersion(expectedVersion)).
		Updates(map[string]interface{}{
			"points":    gorm.Expr("points + ?", amount),
			"badge_ids": datatypes.JSONSlice[uint](badgeIDs),
			"version":   model.NextVersion,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrStorageConflict
	}
	return nil
}

func (r *UserRepository) FindTopByPoints(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).Order("points DESC").Order("id ASC").Limit(limit).Find(&users).Error
	return users, err
}

// AddCompletedCourse 集合语义：重复插入不报错，返回是否新增
func (r *UserRepository) AddCompletedCourse(ctx context.Context, tx *gorm.DB, userID, courseID uint) (bool, error) {
	row := &model.CompletedCourse{UserID: userID, CourseID: courseID, CompletedAt: time.Now()}
	result := conn(ctx, r.DB, tx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	return result.RowsAffected > 0, result.Error
}

func (r *UserRepository) AddCompletedChallenge(ctx context.Context, tx *gorm.DB, userID, challengeID uint) (bool, error) {
	row := &model.CompletedChallenge{UserID: userID, ChallengeID: challengeID, CompletedAt: time.Now()}
	result := conn(ctx, r.DB, tx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	return result.RowsAffected > 0, result.Error
}

func (r *UserRepository) CompletedCourseIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.DB.WithContext(ctx).Model(&model.CompletedCourse{}).
		Where("user_id = ?", userID).
		Order("course_id ASC").
		Pluck("course_id", &ids).Error
	return ids, err
}

func (r *UserRepository) CompletedChallengeIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.DB.WithContext(ctx).Model(&model.CompletedChallenge{}).
		Where("user_id = ?", userID).
		Order("challenge_id ASC").
		Pluck("challenge_id", &ids).Error
	return ids, err
}
