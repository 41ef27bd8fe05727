package repository

import (
	"context"
	"time"

	"youthhub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) FindByID(ctx context.Context, challengeID uint) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.DB.WithContext(ctx).First(&challenge, challengeID).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// AddParticipant 集合语义，返回是否新加入
func (r *ChallengeRepository) AddParticipant(ctx context.Context, tx *gorm.DB, challengeID, userID uint) (bool, error) {
	row := &model.ChallengeParticipant{ChallengeID: challengeID, UserID: userID, JoinedAt: time.Now()}
	result := conn(ctx, r.DB, tx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	return result.RowsAffected > 0, result.Error
}

func (r *ChallengeRepository) IsParticipant(ctx context.Context, tx *gorm.DB, challengeID, userID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.DB, tx).Model(&model.ChallengeParticipant{}).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddSubmission 每人只能提交一次，返回 false 表示已经提交过
func (r *ChallengeRepository) AddSubmission(ctx context.Context, tx *gorm.DB, submission *model.ChallengeSubmission) (bool, error) {
	result := conn(ctx, r.DB, tx).Clauses(clause.OnConflict{DoNothing: true}).Create(submission)
	return result.RowsAffected > 0, result.Error
}

func (r *ChallengeRepository) FindSubmission(ctx context.Context, tx *gorm.DB, challengeID, userID uint) (*model.ChallengeSubmission, error) {
	var submission model.ChallengeSubmission
	err := conn(ctx, r.DB, tx).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *ChallengeRepository) AddWinner(ctx context.Context, tx *gorm.DB, challengeID, userID uint) (bool, error) {
	row := &model.ChallengeWinner{ChallengeID: challengeID, UserID: userID, WonAt: time.Now()}
	result := conn(ctx, r.DB, tx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	return result.RowsAffected > 0, result.Error
}

func (r *ChallengeRepository) IsWinner(ctx context.Context, tx *gorm.DB, challengeID, userID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.DB, tx).Model(&model.ChallengeWinner{}).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ChallengeRepository) ParticipantIDs(ctx context.Context, challengeID uint) ([]uint, error) {
	ids := []uint{}
	err := r.DB.WithContext(ctx).Model(&model.ChallengeParticipant{}).
		Where("challenge_id = ?", challengeID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *ChallengeRepository) WinnerIDs(ctx context.Context, challengeID uint) ([]uint, error) {
	ids := []uint{}
	err := r.DB.WithContext(ctx).Model(&model.ChallengeWinner{}).
		Where("challenge_id = ?", challengeID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *ChallengeRepository) CountSubmissions(ctx context.Context, challengeID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ChallengeSubmission{}).
		Where("challenge_id = ?", challengeID).
		Count(&count).Error
	return count, err
}
