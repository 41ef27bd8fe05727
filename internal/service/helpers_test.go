package service

import (
	"testing"
	"time"

	"youthhub_backend/internal/config"
	"youthhub_backend/internal/repository"
	"youthhub_backend/internal/testutil"

	"gorm.io/gorm"
)

type testEngine struct {
	db          *gorm.DB
	ledger      *PointsLedger
	completion  *CompletionOrchestrator
	courses     *CourseProgressionService
	challenges  *ChallengeService
	achievement *AchievementService
	quizRepo    *repository.QuizAttemptRepository
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()

	db := testutil.DB(t)
	userRepo := repository.NewUserRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	quizRepo := repository.NewQuizAttemptRepository(db)

	ledger := NewPointsLedger(userRepo, badgeRepo)
	completion := NewCompletionOrchestrator(
		db,
		ledger,
		repository.NewCompletionRepository(db),
		userRepo,
		challengeRepo,
		activityRepo,
		nil,
	)
	completion.SetRetryPolicy(config.ProgressionConfig{
		MaxAttempts:          3,
		RetryInitialInterval: time.Millisecond,
		RetryMaxInterval:     2 * time.Millisecond,
	})

	return &testEngine{
		db:         db,
		ledger:     ledger,
		completion: completion,
		courses: NewCourseProgressionService(
			repository.NewCourseRepository(db),
			repository.NewProgressRepository(db),
			quizRepo,
			completion,
		),
		challenges:  NewChallengeService(challengeRepo, userRepo, completion),
		achievement: NewAchievementService(userRepo, badgeRepo, activityRepo, nil, 0),
		quizRepo:    quizRepo,
	}
}
