package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"askstack/internal/cache"
	apperrors "askstack/internal/errors"
	"askstack/internal/mention"
	"askstack/internal/model"
	"askstack/internal/repository"
)

const unreadCountCacheTTL = time.Minute

func unreadCountCacheKey(userID uint) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

// NotificationService derives notifications from content mutations and
// manages the recipient-facing inbox. Fan-out methods never notify the
// acting user about their own action.
type NotificationService interface {
	AnswerCreated(ctx context.Context, answerID, actorID uint) error
	AnswerAccepted(ctx context.Context, answerID, actorID uint) error
	Mentions(ctx context.Context, answerID, actorID uint) error
	List(ctx context.Context, userID uint) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	questionRepo     repository.QuestionRepository
	answerRepo       repository.AnswerRepository
	cache            *cache.Client
}

// NewNotificationService creates a new notification service.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	cache *cache.Client,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		questionRepo:     questionRepo,
		answerRepo:       answerRepo,
		cache:            cache,
	}
}

// fanOutContext loads the answer, its question and the acting user, the
// shared inputs of every fan-out path.
func (s *notificationService) fanOutContext(ctx context.Context, answerID, actorID uint) (*model.Answer, *model.Question, *model.User, error) {
	answer, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, apperrors.ErrAnswerNotFound
		}
		return nil, nil, nil, fmt.Errorf("find answer: %w", err)
	}

	question, err := s.questionRepo.FindByID(ctx, answer.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, apperrors.ErrQuestionNotFound
		}
		return nil, nil, nil, fmt.Errorf("find question: %w", err)
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("find acting user: %w", err)
	}

	return answer, question, actor, nil
}

func (s *notificationService) create(ctx context.Context, n *model.Notification) error {
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	_ = s.cache.Delete(ctx, unreadCountCacheKey(n.UserID))
	return nil
}

// AnswerCreated notifies the question owner about a new answer, unless the
// owner wrote it themselves.
func (s *notificationService) AnswerCreated(ctx context.Context, answerID, actorID uint) error {
	answer, question, actor, err := s.fanOutContext(ctx, answerID, actorID)
	if err != nil {
		return err
	}

	if question.UserID == actorID {
		return nil
	}

	return s.create(ctx, &model.Notification{
		UserID:    question.UserID,
		Type:      model.NotificationAnswer,
		RelatedID: answer.ID,
		Message:   fmt.Sprintf("User %s answered your question: %s", actor.Username, question.Title),
	})
}

// AnswerAccepted notifies the answer's author that the question owner
// accepted it, unless they accepted their own answer.
func (s *notificationService) AnswerAccepted(ctx context.Context, answerID, actorID uint) error {
	answer, question, actor, err := s.fanOutContext(ctx, answerID, actorID)
	if err != nil {
		return err
	}

	if answer.UserID == actorID {
		return nil
	}

	return s.create(ctx, &model.Notification{
		UserID:    answer.UserID,
		Type:      model.NotificationAnswer,
		RelatedID: answer.ID,
		Message:   fmt.Sprintf("User %s accepted your answer to question: %s", actor.Username, question.Title),
	})
}

// Mentions scans the answer's description for @username patterns and
// notifies each distinct resolved user once. Unresolved names and
// self-mentions are skipped silently; individual failures are logged and do
// not stop the remaining recipients.
func (s *notificationService) Mentions(ctx context.Context, answerID, actorID uint) error {
	answer, question, actor, err := s.fanOutContext(ctx, answerID, actorID)
	if err != nil {
		return err
	}

	names := mention.Scan(answer.Description)
	if len(names) == 0 {
		return nil
	}

	message := fmt.Sprintf("User %s mentioned you in an answer to question: %s", actor.Username, question.Title)
	for _, name := range names {
		mentioned, err := s.userRepo.FindByUsername(ctx, name)
		if err != nil {
			continue
		}
		if mentioned.ID == actorID {
			continue
		}

		n := &model.Notification{
			UserID:    mentioned.ID,
			Type:      model.NotificationMention,
			RelatedID: answer.ID,
			Message:   message,
		}
		if err := s.create(ctx, n); err != nil {
			log.Printf("mention notification for %s: %v", name, err)
		}
	}

	return nil
}

// List returns a user's notifications, newest first.
func (s *notificationService) List(ctx context.Context, userID uint) ([]model.Notification, error) {
	notifications, err := s.notificationRepo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications, with caching.
func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	if count, ok := s.cache.GetInt64(ctx, unreadCountCacheKey(userID)); ok {
		return count, nil
	}

	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}

	_ = s.cache.SetInt64(ctx, unreadCountCacheKey(userID), count, unreadCountCacheTTL)
	return count, nil
}

// MarkRead flips one owned notification to read. A notification that is
// absent or owned by someone else fails identically, so existence is not
// leaked.
func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	notification, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotificationDenied
		}
		return fmt.Errorf("find notification: %w", err)
	}

	if notification.UserID != userID {
		return apperrors.ErrNotificationDenied
	}

	if err := s.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}

	_ = s.cache.Delete(ctx, unreadCountCacheKey(userID))
	return nil
}

// MarkAllRead flips all unread notifications owned by the user. Idempotent.
func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}

	_ = s.cache.Delete(ctx, unreadCountCacheKey(userID))
	return nil
}
