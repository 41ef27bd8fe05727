package service

import (
	"context"
	"sync"
	"testing"

	"youthhub_backend/internal/model"
	"youthhub_backend/internal/testutil"
	"youthhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreQuiz(t *testing.T) {
	passing := 0.7
	module := &model.CourseModule{
		PassingScore: &passing,
		Questions: []model.QuizQuestion{
			{CorrectAnswerIndex: 2},
			{CorrectAnswerIndex: 0},
		},
	}

	correct, score, passed, err := ScoreQuiz(module, []int{2, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, correct)
	assert.Equal(t, 0.5, score)
	assert.False(t, passed)

	correct, score, passed, err = ScoreQuiz(module, []int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, correct)
	assert.Equal(t, 1.0, score)
	assert.True(t, passed)

	_, _, _, err = ScoreQuiz(module, []int{2})
	assert.ErrorIs(t, err, util.ErrInvalidSubmission)
}

func TestScoreQuiz_NoQuestionsPasses(t *testing.T) {
	passing := 1.0
	_, score, passed, err := ScoreQuiz(&model.CourseModule{PassingScore: &passing}, []int{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
	assert.True(t, passed)
}

func TestCourseProgression_Enroll(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	learner := testutil.SeedLearner(t, e.db, "ana")
	course := testutil.SeedCourse(t, e.db, 100, testutil.Plain("a"), testutil.Plain("b"), testutil.Plain("c"))

	progress, err := e.courses.Enroll(ctx, learner.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, false}, []bool(progress.CompletedModules))
	assert.Equal(t, 0, progress.ActiveModule)

	_, err = e.courses.CompleteModule(ctx, learner.ID, course.ID, 0)
	require.NoError(t, err)

	// 重复报名不会重置进度
	again, err := e.courses.Enroll(ctx, learner.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, progress.ID, again.ID)
	assert.Equal(t, []bool{true, false, false}, []bool(again.CompletedModules))

	_, err = e.courses.Enroll(ctx, learner.ID, 4242)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestCourseProgression_QuizGatedModuleExample(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	learner := testutil.SeedLearner(t, e.db, "ben")
	course := testutil.SeedCourse(t, e.db, 100,
		testutil.Plain("intro"),
		testutil.Quiz("checkpoint", 0.7, 1, 3),
		testutil.Plain("wrap-up"),
	)

	_, err := e.courses.Enroll(ctx, learner.ID, course.ID)
	require.NoError(t, err)
	_, err = e.courses.CompleteModule(ctx, learner.ID, course.ID, 0)
	require.NoError(t, err)

	failed, err := e.courses.SubmitQuiz(ctx, learner.ID, course.ID, 1, []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.5, failed.Score)
	assert.False(t, failed.Passed)
	assert.False(t, failed.ModuleCompleted)

	view, err := e.courses.GetProgress(ctx, learner.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ModuleCompleted, view.Modules[0].State)
	assert.Equal(t, model.ModuleInProgress, view.Modules[1].State)
	assert.Equal(t, model.ModuleNotStarted, view.Modules[2].State)

	passed, err := e.courses.SubmitQuiz(ctx, learner.ID, course.ID, 1, []int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 1.0, passed.Score)
	assert.True(t, passed.Passed)
	assert.True(t, passed.ModuleCompleted)
	assert.Equal(t, 2, passed.ActiveModule)

	view, err = e.courses.GetProgress(ctx, learner.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ModuleCompleted, view.Modules[1].State)
	assert.Equal(t, model.ModuleInProgress, view.Modules[2].State)
	assert.False(t, view.CourseComplete)

	attempts, err := e.quizRepo.CountByModule(ctx, learner.ID, course.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), attempts)
}

func TestCourseProgression_CourseCompletionCreditsOnce(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	learner := testutil.SeedLearner(t, e.db, "cai")
	course := testutil.SeedCourse(t, e.db, 120, testutil.Plain("a"), testutil.Quiz("b", 0.5, 0), testutil.Plain("c"))

	_, err := e.courses.Enroll(ctx, learner.ID, course.ID)
	require.NoError(t, err)

	_, err = e.courses.CompleteModule(ctx, learner.ID, course.ID, 0)
	require.NoError(t, err)
	_, err = e.courses.SubmitQuiz(ctx, learner.ID, course.ID, 1, []int{0})
	require.NoError(t, err)
	last, err := e.courses.CompleteModule(ctx, learner.ID, course.ID, 2)
	require.NoError(t, err)

	assert.True(t, last.CourseCompleted)
	assert.Equal(t, 120, last.PointsAwarded)
	assert.Equal(t, 2, last.ActiveModule)
	assert.Equal(t, 120, testutil.ReloadLearner(t, e.db, learner.ID).Points)

	again, err := e.courses.CompleteModule(ctx, learner.ID, course.ID, 2)
	require.NoError(t, err)
	assert.True(t, again.AlreadyCompleted)
	assert.True(t, again.CourseCompleted)
	assert.Equal(t, 0, again.PointsAwarded)

	// 已完成模块的测验仍然计分，但不改变状态
	rescored, err := e.courses.SubmitQuiz(ctx, learner.ID, course.ID, 1, []int{2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, rescored.Score)
	assert.True(t, rescored.AlreadyCompleted)

	assert.Equal(t, 120, testutil.ReloadLearner(t, e.db, learner.ID).Points)

	completed, err := e.completion.UserRepo.CompletedCourseIDs(ctx, learner.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{course.ID}, completed)
}

func TestCourseProgression_ConcurrentDuplicateCompletion(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	learner := testutil.SeedLearner(t, e.db, "dee")
	course := testutil.SeedCourse(t, e.db, 75, testutil.Plain("only"))

	_, err := e.courses.Enroll(ctx, learner.ID, course.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.courses.CompleteModule(ctx, learner.ID, course.ID, 0)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 75, testutil.ReloadLearner(t, e.db, learner.ID).Points)
}

func TestCourseProgression_Errors(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	learner := testutil.SeedLearner(t, e.db, "eve")
	course := testutil.SeedCourse(t, e.db, 50, testutil.Plain("a"), testutil.Quiz("b", 1, 0, 1))

	_, err := e.courses.CompleteModule(ctx, learner.ID, course.ID, 0)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	_, err = e.courses.GetProgress(ctx, learner.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	_, err = e.courses.Enroll(ctx, learner.ID, course.ID)
	require.NoError(t, err)

	_, err = e.courses.CompleteModule(ctx, learner.ID, course.ID, 1)
	assert.ErrorIs(t, err, util.ErrQuizRequired)

	_, err = e.courses.CompleteModule(ctx, learner.ID, course.ID, 5)
	assert.ErrorIs(t, err, util.ErrInvalidModule)

	_, err = e.courses.CompleteModule(ctx, learner.ID, course.ID, -1)
	assert.ErrorIs(t, err, util.ErrInvalidModule)

	_, err = e.courses.SubmitQuiz(ctx, learner.ID, course.ID, 1, []int{0})
	assert.ErrorIs(t, err, util.ErrInvalidSubmission)

	_, err = e.courses.SubmitQuiz(ctx, learner.ID, course.ID, 0, []int{})
	assert.ErrorIs(t, err, util.ErrInvalidSubmission)

	attempts, err := e.quizRepo.CountByModule(ctx, learner.ID, course.ID, 1)
	require.NoError(t, err)
	assert.Zero(t, attempts)
}

func TestCourseProgression_ZeroRewardCourseStillCompletes(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	testutil.SeedBadges(t, e.db, 0, 100)
	learner := testutil.SeedLearner(t, e.db, "gus")
	course := testutil.SeedCourse(t, e.db, 0, testutil.Plain("only"))

	_, err := e.courses.Enroll(ctx, learner.ID, course.ID)
	require.NoError(t, err)

	outcome, err := e.courses.CompleteModule(ctx, learner.ID, course.ID, 0)
	require.NoError(t, err)
	assert.True(t, outcome.CourseCompleted)
	assert.Equal(t, 0, outcome.PointsAwarded)

	view, err := e.courses.GetProgress(ctx, learner.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, view.CourseComplete)
	assert.True(t, view.Rewarded)
	assert.Equal(t, model.ModuleCompleted, view.Modules[0].State)

	stored := testutil.ReloadLearner(t, e.db, learner.ID)
	assert.Equal(t, 0, stored.Points)
	assert.Equal(t, learner.Version, stored.Version)

	completed, err := e.completion.UserRepo.CompletedCourseIDs(ctx, learner.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{course.ID}, completed)

	// 重复完成仍是幂等的
	again, err := e.courses.CompleteModule(ctx, learner.ID, course.ID, 0)
	require.NoError(t, err)
	assert.True(t, again.AlreadyCompleted)
}

func TestCourseProgression_EmptyCourseRejected(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	learner := testutil.SeedLearner(t, e.db, "hal")
	course := testutil.SeedCourse(t, e.db, 40)

	_, err := e.courses.Enroll(ctx, learner.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrInvalidModule)

	_, err = e.courses.GetProgress(ctx, learner.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestCourseProgression_ProgressReportsAttemptsAndReward(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	learner := testutil.SeedLearner(t, e.db, "ivy")
	course := testutil.SeedCourse(t, e.db, 30, testutil.Plain("read"), testutil.Quiz("check", 1, 2))

	_, err := e.courses.Enroll(ctx, learner.ID, course.ID)
	require.NoError(t, err)
	_, err = e.courses.CompleteModule(ctx, learner.ID, course.ID, 0)
	require.NoError(t, err)
	_, err = e.courses.SubmitQuiz(ctx, learner.ID, course.ID, 1, []int{0})
	require.NoError(t, err)

	view, err := e.courses.GetProgress(ctx, learner.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), view.Modules[0].Attempts)
	assert.Equal(t, int64(1), view.Modules[1].Attempts)
	assert.False(t, view.Rewarded)

	_, err = e.courses.SubmitQuiz(ctx, learner.ID, course.ID, 1, []int{2})
	require.NoError(t, err)

	view, err = e.courses.GetProgress(ctx, learner.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), view.Modules[1].Attempts)
	assert.True(t, view.CourseComplete)
	assert.True(t, view.Rewarded)
}
