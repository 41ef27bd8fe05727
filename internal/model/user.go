package model

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// User 学习者账户：积分账本 + 徽章缓存
// swagger:model User
type User struct {
	BaseModel
	Versioned
	Name   string   `gorm:"size:100;not null" json:"name"`
	Email  string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Role   UserRole `gorm:"size:20;default:'student'" json:"role"`
	Points int      `gorm:"not null;default:0" json:"points"`
	// BadgeIDs 是徽章解析结果的缓存，只能和 Points 在同一次更新中写入
	BadgeIDs datatypes.JSONSlice[uint] `gorm:"column:badge_ids" json:"badgeIds"`
}

func (User) TableName() string {
	return "users"
}

// CompletedCourse 学习者已完成课程集合
type CompletedCourse struct {
	ID          uint `gorm:"primaryKey;autoIncrement"`
	UserID      uint `gorm:"not null;uniqueIndex:idx_completed_course_user_course"`
	CourseID    uint `gorm:"not null;uniqueIndex:idx_completed_course_user_course"`
	CompletedAt time.Time
}

func (CompletedCourse) TableName() string {
	return "completed_courses"
}

// CompletedChallenge 学习者已完成挑战集合
type CompletedChallenge struct {
	ID          uint `gorm:"primaryKey;autoIncrement"`
	UserID      uint `gorm:"not null;uniqueIndex:idx_completed_challenge_user_challenge"`
	ChallengeID uint `gorm:"not null;uniqueIndex:idx_completed_challenge_user_challenge"`
	CompletedAt time.Time
}

func (CompletedChallenge) TableName() string {
	return "completed_challenges"
}
