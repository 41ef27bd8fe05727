package model

import (
	"time"
)

type ChallengeState string

const (
	ChallengeNotJoined ChallengeState = "not_joined"
	ChallengeJoined    ChallengeState = "joined"
	ChallengeSubmitted ChallengeState = "submitted"
	ChallengeWon       ChallengeState = "won"
)

// Challenge 挑战目录条目（由后台维护）
// swagger:model Challenge
type Challenge struct {
	BaseModel
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	PointsReward int        `gorm:"not null" json:"pointsReward"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// IsClosed 截止时间之后不再接受报名
func (c *Challenge) IsClosed(now time.Time) bool {
	return c.Deadline != nil && now.After(*c.Deadline)
}

type ChallengeParticipant struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ChallengeID uint      `gorm:"not null;uniqueIndex:idx_participant_challenge_user" json:"challengeId"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_participant_challenge_user" json:"userId"`
	JoinedAt    time.Time `json:"joinedAt"`
}

func (ChallengeParticipant) TableName() string {
	return "challenge_participants"
}

// ChallengeSubmission 每位学习者在每个挑战中只能提交一次，提交后不可修改
type ChallengeSubmission struct {
	UUIDBase
	ChallengeID   uint      `gorm:"not null;uniqueIndex:idx_submission_challenge_user" json:"challengeId"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_submission_challenge_user" json:"userId"`
	Content       string    `gorm:"type:text" json:"content"`
	AttachmentURL string    `gorm:"size:512" json:"attachmentUrl,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

func (ChallengeSubmission) TableName() string {
	return "challenge_submissions"
}

type ChallengeWinner struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ChallengeID uint      `gorm:"not null;uniqueIndex:idx_winner_challenge_user" json:"challengeId"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_winner_challenge_user" json:"userId"`
	WonAt       time.Time `json:"wonAt"`
}

func (ChallengeWinner) TableName() string {
	return "challenge_winners"
}
