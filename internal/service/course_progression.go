package service

import (
	"context"
	"errors"
	"fmt"

	"youthhub_backend/internal/model"
	"youthhub_backend/internal/repository"
	"youthhub_backend/internal/util"
	"youthhub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseProgressionService struct {
	CourseRepo      *repository.CourseRepository
	ProgressRepo    *repository.ProgressRepository
	QuizAttemptRepo *repository.QuizAttemptRepository
	Completion      *CompletionOrchestrator
}

func NewCourseProgressionService(
	courseRepo *repository.CourseRepository,
	progressRepo *repository.ProgressRepository,
	quizAttemptRepo *repository.QuizAttemptRepository,
	completion *CompletionOrchestrator,
) *CourseProgressionService {
	return &CourseProgressionService{
		CourseRepo:      courseRepo,
		ProgressRepo:    progressRepo,
		QuizAttemptRepo: quizAttemptRepo,
		Completion:      completion,
	}
}

// ModuleProgress 单个模块的状态，Attempts 为测验模块的提交次数
type ModuleProgress struct {
	Index    int               `json:"index"`
	Title    string            `json:"title"`
	HasQuiz  bool              `json:"hasQuiz"`
	State    model.ModuleState `json:"state"`
	Attempts int64             `json:"attempts,omitempty"`
}

type CourseProgressView struct {
	CourseID       uint             `json:"courseId"`
	ActiveModule   int              `json:"activeModule"`
	Modules        []ModuleProgress `json:"modules"`
	CourseComplete bool             `json:"courseComplete"`
	Rewarded       bool             `json:"rewarded"`
}

// ModuleOutcome 一次模块完成操作的结果
type ModuleOutcome struct {
	CourseID         uint `json:"courseId"`
	ModuleIndex      int  `json:"moduleIndex"`
	ModuleCompleted  bool `json:"moduleCompleted"`
	AlreadyCompleted bool `json:"alreadyCompleted"`
	ActiveModule     int  `json:"activeModule"`
	CourseCompleted  bool `json:"courseCompleted"`
	PointsAwarded    int  `json:"pointsAwarded"`
}

type QuizOutcome struct {
	ModuleOutcome
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Score   float64 `json:"score"`
	Passed  bool    `json:"passed"`
}

// IsCourseComplete 所有模块均已完成
func IsCourseComplete(progress *model.CourseProgress) bool {
	return progress != nil && progress.IsComplete()
}

// ScoreQuiz 逐题精确比对答案下标。答案数量必须与题目数量一致
func ScoreQuiz(module *model.CourseModule, answers []int) (correct int, score float64, passed bool, err error) {
	if !module.HasQuiz() {
		return 0, 0, false, fmt.Errorf("module %q has no quiz: %w", module.Title, util.ErrInvalidSubmission)
	}
	if len(answers) != len(module.Questions) {
		return 0, 0, false, fmt.Errorf("got %d answers for %d questions: %w", len(answers), len(module.Questions), util.ErrInvalidSubmission)
	}

	for i, q := range module.Questions {
		if answers[i] == q.CorrectAnswerIndex {
			correct++
		}
	}

	score = 1
	if total := len(module.Questions); total > 0 {
		score = float64(correct) / float64(total)
	}
	return correct, score, score >= *module.PassingScore, nil
}

// Enroll 报名课程，按当前模块数创建全 false 的进度；重复报名直接返回已有进度
func (s *CourseProgressionService) Enroll(ctx context.Context, userID, courseID uint) (*model.CourseProgress, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	// 空课程永远无法触发完成奖励，不允许报名
	if len(course.Modules) == 0 {
		return nil, fmt.Errorf("course %d has no modules: %w", courseID, util.ErrInvalidModule)
	}

	var progress *model.CourseProgress
	err = s.Completion.transact(ctx, "enroll", func(tx *gorm.DB, fx *txEffects) error {
		p := &model.CourseProgress{
			UserID:           userID,
			CourseID:         course.ID,
			CompletedModules: make(datatypes.JSONSlice[bool], len(course.Modules)),
		}
		created, err := s.ProgressRepo.Create(ctx, tx, p)
		if err != nil {
			return err
		}
		if created {
			logger.Log.Info("Learner enrolled",
				zap.Uint("userID", userID),
				zap.Uint("courseID", course.ID),
				zap.Int("modules", len(course.Modules)))
		}
		progress, err = s.ProgressRepo.Find(ctx, tx, userID, course.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// GetProgress 返回每个模块的状态
func (s *CourseProgressionService) GetProgress(ctx context.Context, userID, courseID uint) (*CourseProgressView, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	progress, err := s.ProgressRepo.Find(ctx, nil, userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, util.ErrNotEnrolled)
		}
		return nil, err
	}

	view := &CourseProgressView{
		CourseID:       courseID,
		ActiveModule:   progress.ActiveModule,
		Modules:        make([]ModuleProgress, 0, len(progress.CompletedModules)),
		CourseComplete: IsCourseComplete(progress),
	}
	for i := range progress.CompletedModules {
		m := ModuleProgress{Index: i, State: progress.ModuleState(i)}
		if i < len(course.Modules) {
			m.Title = course.Modules[i].Title
			m.HasQuiz = course.Modules[i].HasQuiz()
		}
		if m.HasQuiz {
			if m.Attempts, err = s.QuizAttemptRepo.CountByModule(ctx, userID, courseID, i); err != nil {
				return nil, err
			}
		}
		view.Modules = append(view.Modules, m)
	}

	view.Rewarded, err = s.Completion.CompletionRepo.IsSet(ctx, nil, userID, model.CompletionCourse, courseID)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// CompleteModule 手动完成没有测验的模块
func (s *CourseProgressionService) CompleteModule(ctx context.Context, userID, courseID uint, index int) (*ModuleOutcome, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	module, err := moduleAt(course, index)
	if err != nil {
		return nil, err
	}
	if module.HasQuiz() {
		return nil, fmt.Errorf("module %d of course %d: %w", index, courseID, util.ErrQuizRequired)
	}

	var outcome *ModuleOutcome
	err = s.Completion.transact(ctx, "complete_module", func(tx *gorm.DB, fx *txEffects) error {
		var err error
		outcome, err = s.completeInTx(ctx, tx, fx, userID, course, index)
		return err
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// SubmitQuiz 提交测验。通过则完成模块并推进到下一个模块；未通过只返回得分，不限重试次数。
// 已完成的模块再次提交仍然计分，但不改变状态。
func (s *CourseProgressionService) SubmitQuiz(ctx context.Context, userID, courseID uint, index int, answers []int) (*QuizOutcome, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	module, err := moduleAt(course, index)
	if err != nil {
		return nil, err
	}

	correct, score, passed, err := ScoreQuiz(module, answers)
	if err != nil {
		return nil, err
	}

	var outcome *QuizOutcome
	err = s.Completion.transact(ctx, "submit_quiz", func(tx *gorm.DB, fx *txEffects) error {
		attempt := &model.QuizAttempt{
			UserID:         userID,
			CourseID:       course.ID,
			ModulePosition: index,
			Answers:        datatypes.JSONSlice[int](answers),
			Correct:        correct,
			Total:          len(module.Questions),
			Score:          score,
			Passed:         passed,
		}

		outcome = &QuizOutcome{Correct: correct, Total: len(module.Questions), Score: score, Passed: passed}

		if !passed {
			progress, err := s.findProgress(ctx, tx, userID, course.ID, index)
			if err != nil {
				return err
			}
			outcome.ModuleOutcome = ModuleOutcome{
				CourseID:         course.ID,
				ModuleIndex:      index,
				ModuleCompleted:  progress.CompletedModules[index],
				AlreadyCompleted: progress.CompletedModules[index],
				ActiveModule:     progress.ActiveModule,
				CourseCompleted:  IsCourseComplete(progress),
			}
			return s.QuizAttemptRepo.Create(ctx, tx, attempt)
		}

		moduleOutcome, err := s.completeInTx(ctx, tx, fx, userID, course, index)
		if err != nil {
			return err
		}
		outcome.ModuleOutcome = *moduleOutcome
		return s.QuizAttemptRepo.Create(ctx, tx, attempt)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Debug("Quiz scored",
		zap.Uint("userID", userID),
		zap.Uint("courseID", courseID),
		zap.Int("module", index),
		zap.Int("correct", correct),
		zap.Int("total", outcome.Total),
		zap.Bool("passed", passed))
	return outcome, nil
}

// completeInTx 标记模块完成并推进；课程全部完成时交给 Orchestrator 发放奖励（完成标记保证只发一次）
func (s *CourseProgressionService) completeInTx(ctx context.Context, tx *gorm.DB, fx *txEffects, userID uint, course *model.Course, index int) (*ModuleOutcome, error) {
	progress, err := s.findProgress(ctx, tx, userID, course.ID, index)
	if err != nil {
		return nil, err
	}

	outcome := &ModuleOutcome{
		CourseID:        course.ID,
		ModuleIndex:     index,
		ModuleCompleted: true,
	}

	if progress.CompletedModules[index] {
		outcome.AlreadyCompleted = true
	} else {
		progress.CompletedModules[index] = true
		progress.ActiveModule = nextActiveModule(index, len(progress.CompletedModules))
		if err := s.ProgressRepo.SaveConditional(ctx, tx, progress); err != nil {
			return nil, err
		}
		if err := s.Completion.onModuleAdvance(ctx, tx, userID, course, index); err != nil {
			return nil, err
		}
	}
	outcome.ActiveModule = progress.ActiveModule

	if IsCourseComplete(progress) {
		outcome.CourseCompleted = true
		credited, err := s.Completion.onCourseCompleted(ctx, tx, fx, userID, course)
		if err != nil {
			return nil, err
		}
		if credited {
			outcome.PointsAwarded = rewardPoints(course.PointsReward)
		}
	}
	return outcome, nil
}

func (s *CourseProgressionService) findProgress(ctx context.Context, tx *gorm.DB, userID, courseID uint, index int) (*model.CourseProgress, error) {
	progress, err := s.ProgressRepo.Find(ctx, tx, userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, util.ErrNotEnrolled)
		}
		return nil, err
	}
	if index < 0 || index >= len(progress.CompletedModules) {
		return nil, fmt.Errorf("module %d of %d enrolled modules: %w", index, len(progress.CompletedModules), util.ErrInvalidModule)
	}
	return progress, nil
}

func (s *CourseProgressionService) loadCourse(ctx context.Context, courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindWithModules(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, util.ErrCourseNotFound)
		}
		return nil, err
	}
	return course, nil
}

func moduleAt(course *model.Course, index int) (*model.CourseModule, error) {
	if index < 0 || index >= len(course.Modules) {
		return nil, fmt.Errorf("module %d of course %d: %w", index, course.ID, util.ErrInvalidModule)
	}
	return &course.Modules[index], nil
}

// nextActiveModule 推进到下一个模块，最后一个模块保持不变
func nextActiveModule(index, count int) int {
	if index+1 >= count {
		return count - 1
	}
	return index + 1
}
