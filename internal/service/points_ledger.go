package service

import (
	"context"
	"errors"
	"fmt"

	"youthhub_backend/internal/model"
	"youthhub_backend/internal/repository"
	"youthhub_backend/internal/util"

	"gorm.io/gorm"
)

// PointsLedger 只负责加分。调用方（CompletionOrchestrator）保证每个完成事件只调用一次
type PointsLedger struct {
	UserRepo  *repository.UserRepository
	BadgeRepo *repository.BadgeRepository
}

func NewPointsLedger(userRepo *repository.UserRepository, badgeRepo *repository.BadgeRepository) *PointsLedger {
	return &PointsLedger{
		UserRepo:  userRepo,
		BadgeRepo: badgeRepo,
	}
}

type CreditResult struct {
	PreviousPoints int           `json:"previousPoints"`
	NewPoints      int           `json:"newPoints"`
	Badges         BadgeProgress `json:"badges"`
	NewlyEarned    []model.Badge `json:"newlyEarned"`
}

// Credit 在 tx 中增加积分，并把重新计算的徽章集合与新积分一起写入
func (l *PointsLedger) Credit(ctx context.Context, tx *gorm.DB, userID uint, amount int) (*CreditResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit %d points: %w", amount, util.ErrInvalidAmount)
	}

	user, err := l.UserRepo.FindByID(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("credit learner %d: %w", userID, util.ErrLearnerNotFound)
		}
		return nil, err
	}

	catalog, err := l.BadgeRepo.ListCatalog(ctx, tx)
	if err != nil {
		return nil, err
	}

	newPoints := user.Points + amount
	before := ResolveBadges(catalog, user.Points)
	after := ResolveBadges(catalog, newPoints)

	if err := l.UserRepo.CreditPoints(ctx, tx, userID, user.Version, amount, BadgeIDs(after.Earned)); err != nil {
		return nil, err
	}

	return &CreditResult{
		PreviousPoints: user.Points,
		NewPoints:      newPoints,
		Badges:         after,
		NewlyEarned:    after.Earned[len(before.Earned):],
	}, nil
}
