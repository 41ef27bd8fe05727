package model

import (
	"time"
)

type CompletionKind string

const (
	CompletionCourse    CompletionKind = "course"
	CompletionChallenge CompletionKind = "challenge"
)

// CompletionFlag 奖励发放的幂等标记，每个 (学习者, 类型, 目标) 只能写入一次
type CompletionFlag struct {
	ID        uint           `gorm:"primaryKey;autoIncrement"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_completion_flag"`
	Kind      CompletionKind `gorm:"size:20;not null;uniqueIndex:idx_completion_flag"`
	TargetID  uint           `gorm:"not null;uniqueIndex:idx_completion_flag"`
	Reward    int            `gorm:"not null;default:0"`
	CreatedAt time.Time
}

func (CompletionFlag) TableName() string {
	return "completion_flags"
}
