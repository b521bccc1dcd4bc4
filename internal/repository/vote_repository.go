package repository

import (
	"context"

	"gorm.io/gorm"

	"askstack/internal/model"
)

// VoteRepository defines vote ledger persistence operations.
type VoteRepository interface {
	Create(ctx context.Context, vote *model.Vote) error
	FindByUserAndAnswer(ctx context.Context, userID, answerID uint) (*model.Vote, error)
	// WithTransaction executes fn with transaction-scoped vote and answer
	// repositories, so the ledger insert and the counter increment commit
	// or roll back together.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, votes VoteRepository, answers AnswerRepository) error) error
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Create inserts a ledger entry. The unique (user_id, answer_id) index
// rejects a second vote even under concurrent requests.
func (r *voteRepository) Create(ctx context.Context, vote *model.Vote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

// FindByUserAndAnswer finds a user's existing vote on an answer.
func (r *voteRepository) FindByUserAndAnswer(ctx context.Context, userID, answerID uint) (*model.Vote, error) {
	var vote model.Vote
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND answer_id = ?", userID, answerID).
		First(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}

// WithTransaction executes a function within a database transaction.
func (r *voteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, votes VoteRepository, answers AnswerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &voteRepository{db: tx}, &answerRepository{db: tx})
	})
}
