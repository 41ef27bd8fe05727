package testutil

import (
	"fmt"
	"testing"
	"time"

	"youthhub_backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ModuleSpec 描述一个待创建的课程模块。CorrectAnswers 为空且 PassingScore 为 nil 表示无测验
type ModuleSpec struct {
	Title          string
	PassingScore   *float64
	CorrectAnswers []int
}

func Plain(title string) ModuleSpec {
	return ModuleSpec{Title: title}
}

func Quiz(title string, passingScore float64, correctAnswers ...int) ModuleSpec {
	return ModuleSpec{Title: title, PassingScore: &passingScore, CorrectAnswers: correctAnswers}
}

func SeedLearner(tb testing.TB, db *gorm.DB, name string) *model.User {
	tb.Helper()
	u := &model.User{
		Name:  name,
		Email: fmt.Sprintf("%s-%s@youthhub.test", name, uuid.NewString()[:8]),
		Role:  model.Student,
	}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed learner: %v", err)
	}
	return u
}

// SeedLearnerWithPoints 直接写入积分，绕过账本，只用于准备测试数据
func SeedLearnerWithPoints(tb testing.TB, db *gorm.DB, name string, points int) *model.User {
	tb.Helper()
	u := SeedLearner(tb, db, name)
	if err := db.Model(u).Update("points", points).Error; err != nil {
		tb.Fatalf("seed learner points: %v", err)
	}
	u.Points = points
	return u
}

// SeedBadges 按给定阈值顺序创建徽章
func SeedBadges(tb testing.TB, db *gorm.DB, thresholds ...int) []model.Badge {
	tb.Helper()
	badges := make([]model.Badge, 0, len(thresholds))
	for i, t := range thresholds {
		badges = append(badges, model.Badge{
			Name:            fmt.Sprintf("badge-%d", t),
			ThresholdPoints: t,
			Position:        i,
		})
	}
	if len(badges) == 0 {
		return badges
	}
	if err := db.Create(&badges).Error; err != nil {
		tb.Fatalf("seed badges: %v", err)
	}
	return badges
}

func SeedCourse(tb testing.TB, db *gorm.DB, reward int, modules ...ModuleSpec) *model.Course {
	tb.Helper()
	course := &model.Course{
		Title:        "course-" + uuid.NewString()[:8],
		PointsReward: reward,
	}
	if err := db.Create(course).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}

	for i, spec := range modules {
		m := model.CourseModule{
			CourseID:     course.ID,
			Position:     i,
			Title:        spec.Title,
			PassingScore: spec.PassingScore,
		}
		if err := db.Create(&m).Error; err != nil {
			tb.Fatalf("seed module %d: %v", i, err)
		}
		for q, answer := range spec.CorrectAnswers {
			question := model.QuizQuestion{
				ModuleID:           m.ID,
				Position:           q,
				Prompt:             fmt.Sprintf("question %d", q),
				Options:            datatypes.JSONSlice[string]{"a", "b", "c", "d"},
				CorrectAnswerIndex: answer,
			}
			if err := db.Create(&question).Error; err != nil {
				tb.Fatalf("seed question %d of module %d: %v", q, i, err)
			}
		}
	}
	return course
}

func SeedChallenge(tb testing.TB, db *gorm.DB, reward int, deadline *time.Time) *model.Challenge {
	tb.Helper()
	c := &model.Challenge{
		Title:        "challenge-" + uuid.NewString()[:8],
		PointsReward: reward,
		Deadline:     deadline,
	}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed challenge: %v", err)
	}
	return c
}

func ReloadLearner(tb testing.TB, db *gorm.DB, id uint) *model.User {
	tb.Helper()
	var u model.User
	if err := db.First(&u, id).Error; err != nil {
		tb.Fatalf("reload learner %d: %v", id, err)
	}
	return &u
}
