package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"youthhub_backend/internal/model"
	"youthhub_backend/internal/repository"
	"youthhub_backend/internal/util"
	"youthhub_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AchievementService struct {
	UserRepo     *repository.UserRepository
	BadgeRepo    *repository.BadgeRepository
	ActivityRepo *repository.ActivityLogRepository
	Redis        *redis.Client
	CacheTTL     time.Duration
}

func NewAchievementService(
	userRepo *repository.UserRepository,
	badgeRepo *repository.BadgeRepository,
	activityRepo *repository.ActivityLogRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) *AchievementService {
	return &AchievementService{
		UserRepo:     userRepo,
		BadgeRepo:    badgeRepo,
		ActivityRepo: activityRepo,
		Redis:        rdb,
		CacheTTL:     cacheTTL,
	}
}

type UserAchievements struct {
	UserID              uint                `json:"userId"`
	Points              int                 `json:"points"`
	Badges              []model.Badge       `json:"badges"`
	NextBadge           *model.Badge        `json:"nextBadge,omitempty"`
	ProgressFraction    float64             `json:"progressFraction"`
	CompletedCourses    []uint              `json:"completedCourses"`
	CompletedChallenges []uint              `json:"completedChallenges"`
	RecentActivity      []model.ActivityLog `json:"recentActivity"`
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID uint   `json:"userId"`
	User   string `json:"user"`
	Points int    `json:"points"`
	Badges int    `json:"badges"`
}

const recentActivityLimit = 10

// 缓存键带代数：每次提交积分变化后代数加一，旧代数下的回写不会再被读到
func achievementsCacheKey(userID uint, gen int64) string {
	return fmt.Sprintf("achievements:%d:%d", userID, gen)
}

func achievementsGenKey(userID uint) string {
	return fmt.Sprintf("achievements:%d:gen", userID)
}

// invalidateAchievements 积分变化提交后推进缓存代数；Redis 未启用时什么都不做
func invalidateAchievements(ctx context.Context, rdb *redis.Client, userID uint) {
	if rdb == nil {
		return
	}
	if err := rdb.Incr(ctx, achievementsGenKey(userID)).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate achievements cache",
			zap.Uint("userID", userID),
			zap.Error(err))
	}
}

// GetUserAchievements 积分、徽章与完成记录汇总。徽章总是由积分重新推导，不读取缓存列
func (s *AchievementService) GetUserAchievements(ctx context.Context, userID uint) (*UserAchievements, error) {
	// 代数必须在读数据库之前取得
	gen, cacheable := s.cacheGeneration(ctx, userID)
	if cacheable {
		if cached, ok := s.readCache(ctx, userID, gen); ok {
			return cached, nil
		}
	}

	// 获取用户信息
	user, err := s.UserRepo.FindByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("learner %d: %w", userID, util.ErrLearnerNotFound)
		}
		return nil, err
	}

	catalog, err := s.BadgeRepo.ListCatalog(ctx, nil)
	if err != nil {
		return nil, err
	}
	progress := ResolveBadges(catalog, user.Points)

	courses, err := s.UserRepo.CompletedCourseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	challenges, err := s.UserRepo.CompletedChallengeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 最近动态
	activity, err := s.ActivityRepo.ListByUser(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	result := &UserAchievements{
		UserID:              user.ID,
		Points:              user.Points,
		Badges:              progress.Earned,
		NextBadge:           progress.Next,
		ProgressFraction:    progress.ProgressFraction,
		CompletedCourses:    courses,
		CompletedChallenges: challenges,
		RecentActivity:      activity,
	}
	if cacheable {
		s.writeCache(ctx, userID, gen, result)
	}
	return result, nil
}

func (s *AchievementService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = util.DefaultLeaderboardLimit
	}
	if limit > util.MaxLeaderboardLimit {
		limit = util.MaxLeaderboardLimit
	}

	users, err := s.UserRepo.FindTopByPoints(ctx, limit)
	if err != nil {
		return nil, err
	}

	// 徽章数由积分推导，从未加过分的学习者也能拿到 0 分徽章
	catalog, err := s.BadgeRepo.ListCatalog(ctx, nil)
	if err != nil {
		return nil, err
	}

	leaderboard := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		leaderboard[i] = LeaderboardEntry{
			Rank:   i + 1,
			UserID: user.ID,
			User:   user.Name,
			Points: user.Points,
			Badges: len(ResolveBadges(catalog, user.Points).Earned),
		}
	}

	return leaderboard, nil
}

// ListBadges 徽章目录，按阈值升序
func (s *AchievementService) ListBadges(ctx context.Context) ([]model.Badge, error) {
	catalog, err := s.BadgeRepo.ListCatalog(ctx, nil)
	if err != nil {
		return nil, err
	}
	return SortBadgeCatalog(catalog), nil
}

func (s *AchievementService) cacheGeneration(ctx context.Context, userID uint) (int64, bool) {
	if s.Redis == nil {
		return 0, false
	}
	gen, err := s.Redis.Get(ctx, achievementsGenKey(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, true
		}
		logger.Log.Warn("Failed to read achievements cache generation", zap.Uint("userID", userID), zap.Error(err))
		return 0, false
	}
	return gen, true
}

func (s *AchievementService) readCache(ctx context.Context, userID uint, gen int64) (*UserAchievements, bool) {
	data, err := s.Redis.Get(ctx, achievementsCacheKey(userID, gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("Failed to read achievements cache", zap.Uint("userID", userID), zap.Error(err))
		}
		return nil, false
	}
	var cached UserAchievements
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false
	}
	return &cached, true
}

func (s *AchievementService) writeCache(ctx context.Context, userID uint, gen int64, value *UserAchievements) {
	if s.CacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, achievementsCacheKey(userID, gen), data, s.CacheTTL).Err(); err != nil {
		logger.Log.Warn("Failed to write achievements cache", zap.Uint("userID", userID), zap.Error(err))
	}
}
