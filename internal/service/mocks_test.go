package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"askstack/internal/model"
	"askstack/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockQuestionRepository is a mock implementation of QuestionRepository.
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *model.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Update(ctx context.Context, question *model.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

// MockAnswerRepository is a mock implementation of AnswerRepository. Its
// WithTransaction runs the callback against the mock itself, so inner
// expectations are set on the same mock.
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) Create(ctx context.Context, answer *model.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) FindByID(ctx context.Context, id uint) (*model.Answer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Answer), args.Error(1)
}

func (m *MockAnswerRepository) FindByIDAndQuestionID(ctx context.Context, id, questionID uint) (*model.Answer, error) {
	args := m.Called(ctx, id, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Answer), args.Error(1)
}

func (m *MockAnswerRepository) FindByQuestionID(ctx context.Context, questionID uint) ([]model.Answer, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Answer), args.Error(1)
}

func (m *MockAnswerRepository) IncrementVote(ctx context.Context, id uint, vote model.VoteType) error {
	args := m.Called(ctx, id, vote)
	return args.Error(0)
}

func (m *MockAnswerRepository) ClearAccepted(ctx context.Context, questionID uint) error {
	args := m.Called(ctx, questionID)
	return args.Error(0)
}

func (m *MockAnswerRepository) SetAccepted(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAnswerRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.AnswerRepository) error) error {
	m.Called(ctx)
	return fn(ctx, m)
}

// MockVoteRepository is a mock implementation of VoteRepository. TxAnswers is
// the answer repository handed to WithTransaction callbacks.
type MockVoteRepository struct {
	mock.Mock
	TxAnswers *MockAnswerRepository
}

func (m *MockVoteRepository) Create(ctx context.Context, vote *model.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockVoteRepository) FindByUserAndAnswer(ctx context.Context, userID, answerID uint) (*model.Vote, error) {
	args := m.Called(ctx, userID, answerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vote), args.Error(1)
}

func (m *MockVoteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, votes repository.VoteRepository, answers repository.AnswerRepository) error) error {
	m.Called(ctx)
	return fn(ctx, m, m.TxAnswers)
}

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uint) (*model.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByRecipient(ctx context.Context, userID uint) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockRevocationStore is a mock implementation of auth.RevocationStore.
type MockRevocationStore struct {
	mock.Mock
}

func (m *MockRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockRevocationStore) IsRevoked(ctx context.Context, tokenID string) bool {
	args := m.Called(ctx, tokenID)
	return args.Bool(0)
}

// MockNotifier is a mock implementation of NotificationService for the
// services that fan out as a side effect.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) AnswerCreated(ctx context.Context, answerID, actorID uint) error {
	args := m.Called(ctx, answerID, actorID)
	return args.Error(0)
}

func (m *MockNotifier) AnswerAccepted(ctx context.Context, answerID, actorID uint) error {
	args := m.Called(ctx, answerID, actorID)
	return args.Error(0)
}

func (m *MockNotifier) Mentions(ctx context.Context, answerID, actorID uint) error {
	args := m.Called(ctx, answerID, actorID)
	return args.Error(0)
}

func (m *MockNotifier) List(ctx context.Context, userID uint) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotifier) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotifier) MarkRead(ctx context.Context, userID, notificationID uint) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *MockNotifier) MarkAllRead(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockUploader is a mock implementation of upload.Client.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, data []byte, filename, folder string) (string, error) {
	args := m.Called(ctx, data, filename, folder)
	return args.String(0), args.Error(1)
}
