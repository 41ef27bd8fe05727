package model

import (
	"gorm.io/datatypes"
)

// Course 课程目录条目（由后台维护，引擎只读）
// swagger:model Course
type Course struct {
	BaseModel
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	PointsReward int            `gorm:"not null" json:"pointsReward"`
	Modules      []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule 课程中的有序模块，Position 决定进度数组下标
type CourseModule struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	Position int    `gorm:"not null;default:0" json:"position"`
	Title    string `gorm:"size:255;not null" json:"title"`
	// PassingScore 为空表示该模块没有测验
	PassingScore *float64      `json:"passingScore,omitempty"`
	Questions    []QuizQuestion `gorm:"foreignKey:ModuleID" json:"questions,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

func (m *CourseModule) HasQuiz() bool {
	return m.PassingScore != nil
}

// QuizQuestion 测验题目，每题只有一个正确选项
type QuizQuestion struct {
	BaseModel
	ModuleID           uint                        `gorm:"index;not null" json:"moduleId"`
	Position           int                         `gorm:"not null;default:0" json:"position"`
	Prompt             string                      `gorm:"type:text" json:"prompt"`
	Options            datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswerIndex int                         `gorm:"not null" json:"-"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
