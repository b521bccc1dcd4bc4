package repository

import (
	"context"

	"gorm.io/gorm"

	"askstack/internal/model"
)

// AnswerRepository defines answer persistence operations.
type AnswerRepository interface {
	Create(ctx context.Context, answer *model.Answer) error
	FindByID(ctx context.Context, id uint) (*model.Answer, error)
	FindByIDAndQuestionID(ctx context.Context, id, questionID uint) (*model.Answer, error)
	FindByQuestionID(ctx context.Context, questionID uint) ([]model.Answer, error)
	IncrementVote(ctx context.Context, id uint, vote model.VoteType) error
	ClearAccepted(ctx context.Context, questionID uint) error
	SetAccepted(ctx context.Context, id uint) error
	// WithTransaction executes fn against a transaction-scoped repository.
	// Accept-answer runs its clear-then-set inside one transaction so
	// concurrent accepts never expose two accepted rows.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo AnswerRepository) error) error
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new answer repository.
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// Create creates a new answer.
func (r *answerRepository) Create(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

// FindByID finds an answer by ID.
func (r *answerRepository) FindByID(ctx context.Context, id uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

// FindByIDAndQuestionID finds an answer only if it belongs to the question.
func (r *answerRepository) FindByIDAndQuestionID(ctx context.Context, id, questionID uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND question_id = ?", id, questionID).
		First(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

// FindByQuestionID returns a question's answers in insertion order.
func (r *answerRepository) FindByQuestionID(ctx context.Context, questionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	if err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("created_at ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

// IncrementVote bumps the counter matching the vote direction and stamps
// the updated timestamp in the same statement.
func (r *answerRepository) IncrementVote(ctx context.Context, id uint, vote model.VoteType) error {
	column := "upvotes"
	if vote == model.VoteDown {
		column = "downvotes"
	}
	return r.db.WithContext(ctx).Model(&model.Answer{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", 1)).Error
}

// ClearAccepted unsets the accepted flag on any accepted answer of the question.
func (r *answerRepository) ClearAccepted(ctx context.Context, questionID uint) error {
	return r.db.WithContext(ctx).Model(&model.Answer{}).
		Where("question_id = ? AND is_accepted = ?", questionID, true).
		Update("is_accepted", false).Error
}

// SetAccepted marks one answer as the question's accepted answer.
func (r *answerRepository) SetAccepted(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Answer{}).
		Where("id = ?", id).
		Update("is_accepted", true).Error
}

// WithTransaction executes a function within a database transaction.
func (r *answerRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo AnswerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &answerRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
