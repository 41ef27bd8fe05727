package util

import "errors"

var (
	ErrPermissionDenied = errors.New("permission denied")

	// 积分与进度
	ErrInvalidAmount     = errors.New("credit amount must be positive")
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrInvalidModule     = errors.New("module index out of range")
	ErrQuizRequired      = errors.New("module is gated by a quiz")
	ErrNotEnrolled       = errors.New("learner is not enrolled in course")
	ErrCourseNotFound    = errors.New("course not found")
	ErrLearnerNotFound   = errors.New("learner not found")

	// 挑战
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrChallengeClosed   = errors.New("challenge is closed")
	ErrNotJoined         = errors.New("learner has not joined challenge")
	ErrAlreadySubmitted  = errors.New("challenge already submitted")
	ErrNotSubmitted      = errors.New("learner has no submission for challenge")

	// 乐观并发重试耗尽
	ErrStorageConflict = errors.New("storage conflict, please retry")
)
