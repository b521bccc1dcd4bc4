package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"askstack/internal/cache"
	apperrors "askstack/internal/errors"
	"askstack/internal/model"
	"askstack/internal/repository"
)

const questionCacheTTL = 5 * time.Minute

func questionCacheKey(id uint) string {
	return fmt.Sprintf("question:%d", id)
}

// QuestionService handles question operations.
type QuestionService interface {
	Create(ctx context.Context, userID uint, req *model.CreateQuestionRequest) (*model.Question, error)
	List(ctx context.Context) ([]model.Question, error)
	Get(ctx context.Context, id uint) (*model.QuestionDetail, error)
	Update(ctx context.Context, userID, id uint, patch *model.UpdateQuestionRequest) (*model.Question, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	userRepo     repository.UserRepository
	cache        *cache.Client
}

// NewQuestionService creates a new question service.
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		userRepo:     userRepo,
		cache:        cache,
	}
}

// Create validates and stores a new question. Tags default to an empty
// sequence when absent.
func (s *questionService) Create(ctx context.Context, userID uint, req *model.CreateQuestionRequest) (*model.Question, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.ErrInvalidInput
	}

	tags := model.Tags(req.Tags)
	if tags == nil {
		tags = model.Tags{}
	}

	question := &model.Question{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        tags,
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	return question, nil
}

// List returns all questions, newest first.
func (s *questionService) List(ctx context.Context) ([]model.Question, error) {
	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// Get retrieves a question with its answers (insertion order) and author
// usernames, with caching. Every mutation of the question or its answers
// invalidates the cached detail.
func (s *questionService) Get(ctx context.Context, id uint) (*model.QuestionDetail, error) {
	if data, _ := s.cache.Get(ctx, questionCacheKey(id)); data != nil {
		var cached model.QuestionDetail
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}

	answers, err := s.answerRepo.FindByQuestionID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find answers: %w", err)
	}

	detail := &model.QuestionDetail{
		Question: *question,
		Author:   s.username(ctx, question.UserID),
		Answers:  make([]model.AnswerView, 0, len(answers)),
	}

	usernames := map[uint]string{question.UserID: detail.Author}
	for _, answer := range answers {
		author, ok := usernames[answer.UserID]
		if !ok {
			author = s.username(ctx, answer.UserID)
			usernames[answer.UserID] = author
		}
		detail.Answers = append(detail.Answers, model.AnswerView{Answer: answer, Author: author})
	}

	if payload, err := json.Marshal(detail); err == nil {
		_ = s.cache.Set(ctx, questionCacheKey(id), payload, questionCacheTTL)
	}

	return detail, nil
}

func (s *questionService) username(ctx context.Context, userID uint) string {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ""
	}
	return user.Username
}

// Update applies a typed partial patch: only supplied, non-empty fields are
// written, and any applied field bumps the updated timestamp.
func (s *questionService) Update(ctx context.Context, userID, id uint, patch *model.UpdateQuestionRequest) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}

	if question.UserID != userID {
		return nil, apperrors.ErrNotQuestionOwner
	}

	changed := false
	if strings.TrimSpace(patch.Title) != "" {
		question.Title = patch.Title
		changed = true
	}
	if strings.TrimSpace(patch.Description) != "" {
		question.Description = patch.Description
		changed = true
	}
	if patch.Tags != nil {
		question.Tags = model.Tags(patch.Tags)
		changed = true
	}

	if !changed {
		return question, nil
	}

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}

	_ = s.cache.Delete(ctx, questionCacheKey(id))

	return question, nil
}
