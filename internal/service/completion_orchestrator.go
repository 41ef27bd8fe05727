package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"youthhub_backend/internal/config"
	"youthhub_backend/internal/model"
	"youthhub_backend/internal/repository"
	"youthhub_backend/internal/util"
	"youthhub_backend/pkg/logger"
	"youthhub_backend/pkg/monitoring"
	"youthhub_backend/pkg/tracing"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompletionOrchestrator 是唯一允许发放积分、标记课程/挑战完成的组件。
// 触发函数均为包内私有，只能由课程进度和挑战流程在事务中调用。
type CompletionOrchestrator struct {
	DB             *gorm.DB
	Ledger         *PointsLedger
	CompletionRepo *repository.CompletionRepository
	UserRepo       *repository.UserRepository
	ChallengeRepo  *repository.ChallengeRepository
	ActivityRepo   *repository.ActivityLogRepository
	Redis          *redis.Client

	mu     sync.RWMutex
	policy config.ProgressionConfig
}

func NewCompletionOrchestrator(
	db *gorm.DB,
	ledger *PointsLedger,
	completionRepo *repository.CompletionRepository,
	userRepo *repository.UserRepository,
	challengeRepo *repository.ChallengeRepository,
	activityRepo *repository.ActivityLogRepository,
	rdb *redis.Client,
) *CompletionOrchestrator {
	return &CompletionOrchestrator{
		DB:             db,
		Ledger:         ledger,
		CompletionRepo: completionRepo,
		UserRepo:       userRepo,
		ChallengeRepo:  challengeRepo,
		ActivityRepo:   activityRepo,
		Redis:          rdb,
		policy:         config.DefaultProgressionConfig(),
	}
}

// SetRetryPolicy 配置热更新时调用
func (o *CompletionOrchestrator) SetRetryPolicy(policy config.ProgressionConfig) {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	o.mu.Lock()
	o.policy = policy
	o.mu.Unlock()
}

func (o *CompletionOrchestrator) retryPolicy() config.ProgressionConfig {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.policy
}

// txEffects 收集事务提交后才能执行的副作用（指标、缓存失效）
type txEffects struct {
	credits []creditEffect
	dupes   []model.CompletionKind
}

type creditEffect struct {
	userID uint
	kind   model.CompletionKind
	amount int
}

// transact 在一个数据库事务中执行 fn；遇到 ErrStorageConflict 时整体重试，重试耗尽后返回 ErrStorageConflict
func (o *CompletionOrchestrator) transact(ctx context.Context, op string, fn func(tx *gorm.DB, fx *txEffects) error) (err error) {
	ctx, span := tracing.StartSpan(ctx, "progression."+op)
	defer func() { tracing.EndSpan(span, err) }()

	policy := o.retryPolicy()
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = policy.RetryInitialInterval
	b.MaxInterval = policy.RetryMaxInterval

	attempt := 0
	var committed *txEffects
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		fx := &txEffects{}
		txErr := o.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(tx, fx)
		})
		if txErr == nil {
			committed = fx
			return struct{}{}, nil
		}
		if errors.Is(txErr, util.ErrStorageConflict) {
			monitoring.StorageConflicts.WithLabelValues(op).Inc()
			logger.Log.Warn("Storage conflict, retrying",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", policy.MaxAttempts))
			return struct{}{}, txErr
		}
		return struct{}{}, backoff.Permanent(txErr)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(policy.MaxAttempts)),
	)
	if err != nil {
		// 最后一次尝试返回的 Permanent 不会被 Retry 解包
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Unwrap()
		}
		return err
	}

	o.afterCommit(ctx, committed)
	return nil
}

func (o *CompletionOrchestrator) afterCommit(ctx context.Context, fx *txEffects) {
	if fx == nil {
		return
	}
	for _, kind := range fx.dupes {
		monitoring.Completions.WithLabelValues(string(kind), "duplicate").Inc()
	}
	for _, c := range fx.credits {
		monitoring.Completions.WithLabelValues(string(c.kind), "credited").Inc()
		monitoring.PointsCredited.WithLabelValues(string(c.kind)).Add(float64(c.amount))
		invalidateAchievements(ctx, o.Redis, c.userID)
	}
}

// onModuleAdvance 记录模块完成，不发放积分
func (o *CompletionOrchestrator) onModuleAdvance(ctx context.Context, tx *gorm.DB, userID uint, course *model.Course, index int) error {
	title := ""
	if index >= 0 && index < len(course.Modules) {
		title = course.Modules[index].Title
	}
	return o.ActivityRepo.Create(ctx, tx, &model.ActivityLog{
		UserID:   userID,
		Activity: model.ActivityModuleCompleted,
		TargetID: course.ID,
		Content:  fmt.Sprintf("完成了课程《%s》第 %d 个模块：%s", course.Title, index+1, title),
	})
}

// onCourseCompleted 课程完成奖励，完成标记保证每位学习者只发放一次
func (o *CompletionOrchestrator) onCourseCompleted(ctx context.Context, tx *gorm.DB, fx *txEffects, userID uint, course *model.Course) (bool, error) {
	return o.award(ctx, tx, fx, awardSpec{
		userID:   userID,
		kind:     model.CompletionCourse,
		targetID: course.ID,
		reward:   course.PointsReward,
		activity: model.ActivityCourseCompleted,
		content:  fmt.Sprintf("完成课程：%s", course.Title),
		membership: func() error {
			_, err := o.UserRepo.AddCompletedCourse(ctx, tx, userID, course.ID)
			return err
		},
	})
}

// onChallengeWon 挑战获胜奖励：写入获胜者、已完成挑战并发放一次积分
func (o *CompletionOrchestrator) onChallengeWon(ctx context.Context, tx *gorm.DB, fx *txEffects, userID uint, challenge *model.Challenge) (bool, error) {
	return o.award(ctx, tx, fx, awardSpec{
		userID:   userID,
		kind:     model.CompletionChallenge,
		targetID: challenge.ID,
		reward:   challenge.PointsReward,
		activity: model.ActivityChallengeWon,
		content:  fmt.Sprintf("赢得挑战：%s", challenge.Title),
		membership: func() error {
			if _, err := o.ChallengeRepo.AddWinner(ctx, tx, challenge.ID, userID); err != nil {
				return err
			}
			_, err := o.UserRepo.AddCompletedChallenge(ctx, tx, userID, challenge.ID)
			return err
		},
	})
}

type awardSpec struct {
	userID     uint
	kind       model.CompletionKind
	targetID   uint
	reward     int
	activity   string
	content    string
	membership func() error
}

// award 检查并设置完成标记、加分、写入集合，全部在同一事务中；任何一步失败都会整体回滚
func (o *CompletionOrchestrator) award(ctx context.Context, tx *gorm.DB, fx *txEffects, a awardSpec) (bool, error) {
	set, err := o.CompletionRepo.TrySet(ctx, tx, &model.CompletionFlag{
		UserID:    a.userID,
		Kind:      a.kind,
		TargetID:  a.targetID,
		Reward:    a.reward,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return false, err
	}
	if !set {
		logger.Log.Debug("Completion already credited",
			zap.Uint("userID", a.userID),
			zap.String("kind", string(a.kind)),
			zap.Uint("targetID", a.targetID))
		fx.dupes = append(fx.dupes, a.kind)
		return false, nil
	}

	total, err := o.creditReward(ctx, tx, a)
	if err != nil {
		return false, err
	}

	if err := a.membership(); err != nil {
		return false, err
	}

	if err := o.ActivityRepo.Create(ctx, tx, &model.ActivityLog{
		UserID:   a.userID,
		Activity: a.activity,
		TargetID: a.targetID,
		Content:  a.content,
		Points:   rewardPoints(a.reward),
	}); err != nil {
		return false, err
	}

	fx.credits = append(fx.credits, creditEffect{userID: a.userID, kind: a.kind, amount: rewardPoints(a.reward)})

	logger.Log.Info("Completion credited",
		zap.Uint("userID", a.userID),
		zap.String("kind", string(a.kind)),
		zap.Uint("targetID", a.targetID),
		zap.Int("points", rewardPoints(a.reward)),
		zap.Int("total", total))
	return true, nil
}

// creditReward 发放奖励并返回新的积分总数。奖励未配置（<= 0）时只记录完成，不调用 Ledger
func (o *CompletionOrchestrator) creditReward(ctx context.Context, tx *gorm.DB, a awardSpec) (int, error) {
	if a.reward > 0 {
		credit, err := o.Ledger.Credit(ctx, tx, a.userID, a.reward)
		if err != nil {
			return 0, err
		}
		return credit.NewPoints, nil
	}

	user, err := o.UserRepo.FindByID(ctx, tx, a.userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("complete for learner %d: %w", a.userID, util.ErrLearnerNotFound)
		}
		return 0, err
	}
	logger.Log.Warn("Completion has no points reward, skipping credit",
		zap.Uint("userID", a.userID),
		zap.String("kind", string(a.kind)),
		zap.Uint("targetID", a.targetID),
		zap.Int("reward", a.reward))
	return user.Points, nil
}

// rewardPoints 实际发放的积分，未配置的奖励按 0 计
func rewardPoints(reward int) int {
	return max(reward, 0)
}
