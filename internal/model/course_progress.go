package model

import (
	"time"

	"gorm.io/datatypes"
)

type ModuleState string

const (
	ModuleNotStarted ModuleState = "not_started"
	ModuleInProgress ModuleState = "in_progress"
	ModuleCompleted  ModuleState = "completed"
)

// CourseProgress 学习者在某门课程上的进度，报名时按模块数创建，永不删除
type CourseProgress struct {
	ID               uint                      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           uint                      `gorm:"not null;uniqueIndex:idx_progress_user_course" json:"userId"`
	CourseID         uint                      `gorm:"not null;uniqueIndex:idx_progress_user_course" json:"courseId"`
	CompletedModules datatypes.JSONSlice[bool] `gorm:"not null" json:"completedModules"`
	ActiveModule     int                       `gorm:"not null;default:0" json:"activeModule"`
	Versioned
	CreatedAt        time.Time                 `json:"createdAt"`
	UpdatedAt        time.Time                 `json:"updatedAt"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}

// IsComplete 所有模块都已完成
func (p *CourseProgress) IsComplete() bool {
	for _, done := range p.CompletedModules {
		if !done {
			return false
		}
	}
	return true
}

func (p *CourseProgress) ModuleState(index int) ModuleState {
	if index < 0 || index >= len(p.CompletedModules) {
		return ModuleNotStarted
	}
	if p.CompletedModules[index] {
		return ModuleCompleted
	}
	if index == p.ActiveModule {
		return ModuleInProgress
	}
	return ModuleNotStarted
}
