package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "askstack/internal/errors"
	"askstack/internal/model"
)

type notificationMocks struct {
	notifications *MockNotificationRepository
	users         *MockUserRepository
	questions     *MockQuestionRepository
	answers       *MockAnswerRepository
}

func newNotificationService(t *testing.T) (NotificationService, *notificationMocks) {
	t.Helper()
	m := &notificationMocks{
		notifications: new(MockNotificationRepository),
		users:         new(MockUserRepository),
		questions:     new(MockQuestionRepository),
		answers:       new(MockAnswerRepository),
	}
	return NewNotificationService(m.notifications, m.users, m.questions, m.answers, nil), m
}

func (m *notificationMocks) expectFanOutContext(answer *model.Answer, question *model.Question, actor *model.User) {
	m.answers.On("FindByID", mock.Anything, answer.ID).Return(answer, nil)
	m.questions.On("FindByID", mock.Anything, question.ID).Return(question, nil)
	m.users.On("FindByID", mock.Anything, actor.ID).Return(actor, nil)
}

func (m *notificationMocks) assertExpectations(t *testing.T) {
	m.notifications.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.questions.AssertExpectations(t)
	m.answers.AssertExpectations(t)
}

func TestNotificationService_AnswerCreated(t *testing.T) {
	t.Run("question owner is notified", func(t *testing.T) {
		service, m := newNotificationService(t)
		m.expectFanOutContext(
			&model.Answer{ID: 5, QuestionID: 1, UserID: 20},
			&model.Question{ID: 1, UserID: 10, Title: "How to test?"},
			&model.User{ID: 20, Username: "helper"},
		)
		m.notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
			return n.UserID == 10 &&
				n.Type == model.NotificationAnswer &&
				n.RelatedID == 5 &&
				n.Message == "User helper answered your question: How to test?"
		})).Return(nil)

		assert.NoError(t, service.AnswerCreated(context.Background(), 5, 20))
		m.assertExpectations(t)
	})

	t.Run("answering your own question notifies nobody", func(t *testing.T) {
		service, m := newNotificationService(t)
		m.expectFanOutContext(
			&model.Answer{ID: 5, QuestionID: 1, UserID: 10},
			&model.Question{ID: 1, UserID: 10, Title: "Self answered"},
			&model.User{ID: 10, Username: "asker"},
		)

		assert.NoError(t, service.AnswerCreated(context.Background(), 5, 10))
		m.assertExpectations(t)
	})

	t.Run("unknown answer", func(t *testing.T) {
		service, m := newNotificationService(t)
		m.answers.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		assert.Equal(t, apperrors.ErrAnswerNotFound, service.AnswerCreated(context.Background(), 5, 20))
		m.assertExpectations(t)
	})
}

func TestNotificationService_AnswerAccepted(t *testing.T) {
	t.Run("answer author is notified", func(t *testing.T) {
		service, m := newNotificationService(t)
		m.expectFanOutContext(
			&model.Answer{ID: 5, QuestionID: 1, UserID: 20},
			&model.Question{ID: 1, UserID: 10, Title: "Accepted question"},
			&model.User{ID: 10, Username: "asker"},
		)
		m.notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
			return n.UserID == 20 &&
				n.Message == "User asker accepted your answer to question: Accepted question"
		})).Return(nil)

		assert.NoError(t, service.AnswerAccepted(context.Background(), 5, 10))
		m.assertExpectations(t)
	})

	t.Run("accepting your own answer notifies nobody", func(t *testing.T) {
		service, m := newNotificationService(t)
		m.expectFanOutContext(
			&model.Answer{ID: 5, QuestionID: 1, UserID: 10},
			&model.Question{ID: 1, UserID: 10, Title: "Own answer"},
			&model.User{ID: 10, Username: "asker"},
		)

		assert.NoError(t, service.AnswerAccepted(context.Background(), 5, 10))
		m.assertExpectations(t)
	})
}

func TestNotificationService_Mentions(t *testing.T) {
	t.Run("each resolved user is notified once", func(t *testing.T) {
		service, m := newNotificationService(t)
		m.expectFanOutContext(
			&model.Answer{ID: 5, QuestionID: 1, UserID: 20, Description: "Thanks @alice and @alice, also @ghost and @helper"},
			&model.Question{ID: 1, UserID: 10, Title: "Mention test"},
			&model.User{ID: 20, Username: "helper"},
		)
		m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 30, Username: "alice"}, nil).Once()
		m.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound).Once()
		// The actor mentioning themselves is resolved but skipped.
		m.users.On("FindByUsername", mock.Anything, "helper").Return(&model.User{ID: 20, Username: "helper"}, nil).Once()
		m.notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
			return n.UserID == 30 &&
				n.Type == model.NotificationMention &&
				n.Message == "User helper mentioned you in an answer to question: Mention test"
		})).Return(nil).Once()

		assert.NoError(t, service.Mentions(context.Background(), 5, 20))
		m.assertExpectations(t)
	})

	t.Run("text without mentions does nothing", func(t *testing.T) {
		service, m := newNotificationService(t)
		m.expectFanOutContext(
			&model.Answer{ID: 5, QuestionID: 1, UserID: 20, Description: "No handles here"},
			&model.Question{ID: 1, UserID: 10, Title: "Plain"},
			&model.User{ID: 20, Username: "helper"},
		)

		assert.NoError(t, service.Mentions(context.Background(), 5, 20))
		m.assertExpectations(t)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	tests := []struct {
		name          string
		userID        uint
		setupMock     func(*notificationMocks)
		expectedError error
	}{
		{
			name:   "own notification marked",
			userID: 10,
			setupMock: func(m *notificationMocks) {
				m.notifications.On("FindByID", mock.Anything, uint(7)).Return(&model.Notification{ID: 7, UserID: 10}, nil)
				m.notifications.On("MarkRead", mock.Anything, uint(7)).Return(nil)
			},
		},
		{
			name:   "someone else's notification is denied",
			userID: 99,
			setupMock: func(m *notificationMocks) {
				m.notifications.On("FindByID", mock.Anything, uint(7)).Return(&model.Notification{ID: 7, UserID: 10}, nil)
			},
			expectedError: apperrors.ErrNotificationDenied,
		},
		{
			name:   "missing notification is denied the same way",
			userID: 10,
			setupMock: func(m *notificationMocks) {
				m.notifications.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotificationDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newNotificationService(t)
			tt.setupMock(m)

			err := service.MarkRead(context.Background(), tt.userID, 7)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
			m.assertExpectations(t)
		})
	}
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	service, m := newNotificationService(t)
	m.notifications.On("MarkAllRead", mock.Anything, uint(10)).Return(nil).Twice()

	// Second run is a no-op at the store level but still succeeds.
	assert.NoError(t, service.MarkAllRead(context.Background(), 10))
	assert.NoError(t, service.MarkAllRead(context.Background(), 10))
	m.assertExpectations(t)
}

func TestNotificationService_UnreadCount(t *testing.T) {
	service, m := newNotificationService(t)
	m.notifications.On("CountUnread", mock.Anything, uint(10)).Return(int64(3), nil)

	count, err := service.UnreadCount(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	m.assertExpectations(t)
}
