package repository

import (
	"context"

	"gorm.io/gorm"

	"askstack/internal/model"
)

// QuestionRepository defines question persistence operations.
type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	Update(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	List(ctx context.Context) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new question repository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// Create creates a new question.
func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

// Update saves a modified question, bumping its updated timestamp.
func (r *questionRepository) Update(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Save(question).Error
}

// FindByID finds a question by ID.
func (r *questionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// List returns all questions, newest first.
func (r *questionRepository) List(ctx context.Context) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
