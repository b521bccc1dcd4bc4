package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"askstack/internal/cache"
	apperrors "askstack/internal/errors"
	"askstack/internal/model"
	"askstack/internal/repository"
	"askstack/internal/upload"
)

const answerImageFolder = "answers"

// AnswerService handles answer creation with optional image attachment.
type AnswerService interface {
	Create(ctx context.Context, userID, questionID uint, req *model.CreateAnswerRequest, image *upload.Image) (*model.Answer, error)
}

type answerService struct {
	questionRepo  repository.QuestionRepository
	answerRepo    repository.AnswerRepository
	notifications NotificationService
	uploader      upload.Client
	cache         *cache.Client
}

// NewAnswerService creates a new answer service.
func NewAnswerService(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	notifications NotificationService,
	uploader upload.Client,
	cache *cache.Client,
) AnswerService {
	return &answerService{
		questionRepo:  questionRepo,
		answerRepo:    answerRepo,
		notifications: notifications,
		uploader:      uploader,
		cache:         cache,
	}
}

// Create stores a new answer for an existing question. When an image is
// attached it is uploaded to the asset host first; an upload failure aborts
// creation without a partial record. After the answer exists, notification
// fan-out (question owner plus @mentions) runs best-effort.
func (s *answerService) Create(ctx context.Context, userID, questionID uint, req *model.CreateAnswerRequest, image *upload.Image) (*model.Answer, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.ErrInvalidInput
	}

	if _, err := s.questionRepo.FindByID(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}

	var imageURL string
	if image != nil && len(image.Data) > 0 {
		url, err := s.uploader.Upload(ctx, image.Data, image.Filename, answerImageFolder)
		if err != nil {
			log.Printf("upload answer image: %v", err)
			return nil, apperrors.ErrUploadFailed
		}
		imageURL = url
	}

	tags := model.Tags(req.Tags)
	if tags == nil {
		tags = model.Tags{}
	}

	answer := &model.Answer{
		QuestionID:  questionID,
		UserID:      userID,
		Description: req.Description,
		ImageURL:    imageURL,
		Tags:        tags,
	}

	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}

	_ = s.cache.Delete(ctx, questionCacheKey(questionID))

	// Notifications ride alongside the answer and never fail it.
	if err := s.notifications.AnswerCreated(ctx, answer.ID, userID); err != nil {
		log.Printf("notify answer created: %v", err)
	}
	if err := s.notifications.Mentions(ctx, answer.ID, userID); err != nil {
		log.Printf("notify mentions: %v", err)
	}

	return answer, nil
}
