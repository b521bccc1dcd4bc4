package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"askstack/internal/cache"
	apperrors "askstack/internal/errors"
	"askstack/internal/model"
	"askstack/internal/repository"
)

// VoteService applies votes and the one-accepted-answer-per-question rule.
type VoteService interface {
	Vote(ctx context.Context, userID, answerID uint, vote model.VoteType) (*model.Answer, error)
	AcceptAnswer(ctx context.Context, userID, questionID, answerID uint) (*model.Answer, error)
}

type voteService struct {
	questionRepo  repository.QuestionRepository
	answerRepo    repository.AnswerRepository
	voteRepo      repository.VoteRepository
	notifications NotificationService
	cache         *cache.Client
}

// NewVoteService creates a new voting and acceptance service.
func NewVoteService(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	voteRepo repository.VoteRepository,
	notifications NotificationService,
	cache *cache.Client,
) VoteService {
	return &voteService{
		questionRepo:  questionRepo,
		answerRepo:    answerRepo,
		voteRepo:      voteRepo,
		notifications: notifications,
		cache:         cache,
	}
}

// Vote records a user's vote on an answer through the vote ledger: at most
// one vote per (user, answer), enforced by a pre-check plus the ledger's
// unique index for the concurrent case. The ledger insert and the counter
// increment commit in one transaction.
func (s *voteService) Vote(ctx context.Context, userID, answerID uint, vote model.VoteType) (*model.Answer, error) {
	if !vote.Valid() {
		return nil, apperrors.ErrInvalidVoteType
	}

	answer, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAnswerNotFound
		}
		return nil, fmt.Errorf("find answer: %w", err)
	}

	err = s.voteRepo.WithTransaction(ctx, func(ctx context.Context, votes repository.VoteRepository, answers repository.AnswerRepository) error {
		existing, err := votes.FindByUserAndAnswer(ctx, userID, answerID)
		if err == nil && existing != nil {
			return apperrors.ErrAlreadyVoted
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check existing vote: %w", err)
		}

		if err := votes.Create(ctx, &model.Vote{
			UserID:   userID,
			AnswerID: answerID,
			Value:    vote,
		}); err != nil {
			// Lost the race against a concurrent vote by the same user.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrAlreadyVoted
			}
			return fmt.Errorf("create vote: %w", err)
		}

		return answers.IncrementVote(ctx, answerID, vote)
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, questionCacheKey(answer.QuestionID))

	updated, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		return nil, fmt.Errorf("reload answer: %w", err)
	}
	return updated, nil
}

// AcceptAnswer marks one answer as the question's accepted answer. Only the
// question owner may accept, and the clear-then-set runs inside one
// transaction so readers never observe two accepted answers.
func (s *voteService) AcceptAnswer(ctx context.Context, userID, questionID, answerID uint) (*model.Answer, error) {
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}

	if question.UserID != userID {
		return nil, apperrors.ErrNotQuestionOwner
	}

	if _, err := s.answerRepo.FindByIDAndQuestionID(ctx, answerID, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAnswerNotFound
		}
		return nil, fmt.Errorf("find answer: %w", err)
	}

	err = s.answerRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.AnswerRepository) error {
		if err := repo.ClearAccepted(ctx, questionID); err != nil {
			return fmt.Errorf("clear accepted: %w", err)
		}
		return repo.SetAccepted(ctx, answerID)
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, questionCacheKey(questionID))

	// Side channel: acceptance fan-out must not fail the accept itself.
	if err := s.notifications.AnswerAccepted(ctx, answerID, userID); err != nil {
		log.Printf("notify answer accepted: %v", err)
	}

	updated, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		return nil, fmt.Errorf("reload answer: %w", err)
	}
	return updated, nil
}
