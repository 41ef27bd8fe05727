package model

import (
	"gorm.io/datatypes"
)

// QuizAttempt 存储每一次测验提交（不限次数）
type QuizAttempt struct {
	BaseModel
	UserID         uint                     `gorm:"index;not null"`
	CourseID       uint                     `gorm:"index;not null"`
	ModulePosition int                      `gorm:"not null"`
	Answers        datatypes.JSONSlice[int] `json:"answers"`
	Correct        int                      `gorm:"not null"`
	Total          int                      `gorm:"not null"`
	Score          float64                  `gorm:"not null"`
	Passed         bool                     `gorm:"default:false"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
