package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"youthhub_backend/internal/model"
	"youthhub_backend/internal/repository"
	"youthhub_backend/internal/util"
	"youthhub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ChallengeService struct {
	ChallengeRepo *repository.ChallengeRepository
	UserRepo      *repository.UserRepository
	Completion    *CompletionOrchestrator

	now func() time.Time
}

func NewChallengeService(
	challengeRepo *repository.ChallengeRepository,
	userRepo *repository.UserRepository,
	completion *CompletionOrchestrator,
) *ChallengeService {
	return &ChallengeService{
		ChallengeRepo: challengeRepo,
		UserRepo:      userRepo,
		Completion:    completion,
		now:           time.Now,
	}
}

// SetClock 测试中固定当前时间
func (s *ChallengeService) SetClock(now func() time.Time) {
	s.now = now
}

type SubmissionInput struct {
	Content       string `json:"content" binding:"required"`
	AttachmentURL string `json:"attachmentUrl"`
}

type ChallengeStatus struct {
	ChallengeID  uint                 `json:"challengeId"`
	State        model.ChallengeState `json:"state"`
	Closed       bool                 `json:"closed"`
	Deadline     *time.Time           `json:"deadline,omitempty"`
	Participants int                  `json:"participants"`
	Submissions  int64                `json:"submissions"`
	Winners      []uint               `json:"winners"`
}

type WinnerOutcome struct {
	ChallengeID   uint `json:"challengeId"`
	LearnerID     uint `json:"learnerId"`
	AlreadyWon    bool `json:"alreadyWon"`
	PointsAwarded int  `json:"pointsAwarded"`
}

// Join 报名挑战。重复报名视为成功；截止后新报名返回 ErrChallengeClosed
func (s *ChallengeService) Join(ctx context.Context, userID, challengeID uint) (bool, error) {
	challenge, err := s.loadChallenge(ctx, challengeID)
	if err != nil {
		return false, err
	}

	var joined bool
	err = s.Completion.transact(ctx, "join_challenge", func(tx *gorm.DB, fx *txEffects) error {
		already, err := s.ChallengeRepo.IsParticipant(ctx, tx, challenge.ID, userID)
		if err != nil {
			return err
		}
		if already {
			joined = false
			return nil
		}
		if challenge.IsClosed(s.now()) {
			return fmt.Errorf("challenge %d closed at %s: %w", challenge.ID, challenge.Deadline.Format(util.TimeFormat), util.ErrChallengeClosed)
		}
		joined, err = s.ChallengeRepo.AddParticipant(ctx, tx, challenge.ID, userID)
		return err
	})
	if err != nil {
		return false, err
	}

	if joined {
		logger.Log.Info("Learner joined challenge",
			zap.Uint("userID", userID),
			zap.Uint("challengeID", challengeID))
	}
	return joined, nil
}

// Submit 提交作品，一人一次，提交后不可修改
func (s *ChallengeService) Submit(ctx context.Context, userID, challengeID uint, input SubmissionInput) (*model.ChallengeSubmission, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("empty submission content: %w", util.ErrInvalidSubmission)
	}

	challenge, err := s.loadChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	var submission *model.ChallengeSubmission
	err = s.Completion.transact(ctx, "submit_challenge", func(tx *gorm.DB, fx *txEffects) error {
		joined, err := s.ChallengeRepo.IsParticipant(ctx, tx, challenge.ID, userID)
		if err != nil {
			return err
		}
		if !joined {
			return fmt.Errorf("challenge %d: %w", challenge.ID, util.ErrNotJoined)
		}

		row := &model.ChallengeSubmission{
			ChallengeID:   challenge.ID,
			UserID:        userID,
			Content:       input.Content,
			AttachmentURL: input.AttachmentURL,
			SubmittedAt:   s.now(),
		}
		created, err := s.ChallengeRepo.AddSubmission(ctx, tx, row)
		if err != nil {
			return err
		}
		if !created {
			return fmt.Errorf("challenge %d: %w", challenge.ID, util.ErrAlreadySubmitted)
		}
		submission = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Challenge submission received",
		zap.Uint("userID", userID),
		zap.Uint("challengeID", challengeID),
		zap.String("submissionID", submission.ID))
	return submission, nil
}

// MarkWinner 由教师或管理员评定获胜者。必须先有提交；重复评定不会重复加分
func (s *ChallengeService) MarkWinner(ctx context.Context, userID, challengeID uint) (*WinnerOutcome, error) {
	challenge, err := s.loadChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	outcome := &WinnerOutcome{ChallengeID: challenge.ID, LearnerID: userID}
	err = s.Completion.transact(ctx, "mark_winner", func(tx *gorm.DB, fx *txEffects) error {
		if _, err := s.UserRepo.FindByID(ctx, tx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("learner %d: %w", userID, util.ErrLearnerNotFound)
			}
			return err
		}

		if _, err := s.ChallengeRepo.FindSubmission(ctx, tx, challenge.ID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("challenge %d: %w", challenge.ID, util.ErrNotSubmitted)
			}
			return err
		}

		credited, err := s.Completion.onChallengeWon(ctx, tx, fx, userID, challenge)
		if err != nil {
			return err
		}
		outcome.AlreadyWon = !credited
		outcome.PointsAwarded = 0
		if credited {
			outcome.PointsAwarded = rewardPoints(challenge.PointsReward)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (s *ChallengeService) GetStatus(ctx context.Context, userID, challengeID uint) (*ChallengeStatus, error) {
	challenge, err := s.loadChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	participants, err := s.ChallengeRepo.ParticipantIDs(ctx, challenge.ID)
	if err != nil {
		return nil, err
	}
	winners, err := s.ChallengeRepo.WinnerIDs(ctx, challenge.ID)
	if err != nil {
		return nil, err
	}
	submissions, err := s.ChallengeRepo.CountSubmissions(ctx, challenge.ID)
	if err != nil {
		return nil, err
	}

	state, err := s.learnerState(ctx, userID, challenge.ID)
	if err != nil {
		return nil, err
	}

	return &ChallengeStatus{
		ChallengeID:  challenge.ID,
		State:        state,
		Closed:       challenge.IsClosed(s.now()),
		Deadline:     challenge.Deadline,
		Participants: len(participants),
		Submissions:  submissions,
		Winners:      winners,
	}, nil
}

func (s *ChallengeService) learnerState(ctx context.Context, userID, challengeID uint) (model.ChallengeState, error) {
	won, err := s.ChallengeRepo.IsWinner(ctx, nil, challengeID, userID)
	if err != nil {
		return "", err
	}
	if won {
		return model.ChallengeWon, nil
	}
	joined, err := s.ChallengeRepo.IsParticipant(ctx, nil, challengeID, userID)
	if err != nil {
		return "", err
	}
	if !joined {
		return model.ChallengeNotJoined, nil
	}
	_, err = s.ChallengeRepo.FindSubmission(ctx, nil, challengeID, userID)
	if err == nil {
		return model.ChallengeSubmitted, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ChallengeJoined, nil
	}
	return "", err
}

func (s *ChallengeService) loadChallenge(ctx context.Context, challengeID uint) (*model.Challenge, error) {
	challenge, err := s.ChallengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("challenge %d: %w", challengeID, util.ErrChallengeNotFound)
		}
		return nil, err
	}
	return challenge, nil
}
