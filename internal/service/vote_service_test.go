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

func TestVoteService_Vote(t *testing.T) {
	answer := func() *model.Answer {
		return &model.Answer{ID: 5, QuestionID: 1, UserID: 20, Upvotes: 3}
	}

	tests := []struct {
		name          string
		vote          model.VoteType
		setupMock     func(*MockAnswerRepository, *MockVoteRepository)
		expectedError error
	}{
		{
			name: "successful upvote",
			vote: model.VoteUp,
			setupMock: func(mAnswers *MockAnswerRepository, mVotes *MockVoteRepository) {
				mAnswers.On("FindByID", mock.Anything, uint(5)).Return(answer(), nil)
				mVotes.On("WithTransaction", mock.Anything).Return(nil)
				mVotes.On("FindByUserAndAnswer", mock.Anything, uint(10), uint(5)).Return(nil, gorm.ErrRecordNotFound)
				mVotes.On("Create", mock.Anything, mock.AnythingOfType("*model.Vote")).Return(nil)
				mAnswers.On("IncrementVote", mock.Anything, uint(5), model.VoteUp).Return(nil)
			},
		},
		{
			name: "invalid vote direction",
			vote: model.VoteType("sideways"),
			setupMock: func(mAnswers *MockAnswerRepository, mVotes *MockVoteRepository) {
			},
			expectedError: apperrors.ErrInvalidVoteType,
		},
		{
			name: "unknown answer",
			vote: model.VoteDown,
			setupMock: func(mAnswers *MockAnswerRepository, mVotes *MockVoteRepository) {
				mAnswers.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrAnswerNotFound,
		},
		{
			name: "second vote by the same user",
			vote: model.VoteUp,
			setupMock: func(mAnswers *MockAnswerRepository, mVotes *MockVoteRepository) {
				mAnswers.On("FindByID", mock.Anything, uint(5)).Return(answer(), nil)
				mVotes.On("WithTransaction", mock.Anything).Return(nil)
				mVotes.On("FindByUserAndAnswer", mock.Anything, uint(10), uint(5)).Return(&model.Vote{
					UserID: 10, AnswerID: 5, Value: model.VoteDown,
				}, nil)
			},
			expectedError: apperrors.ErrAlreadyVoted,
		},
		{
			name: "concurrent duplicate caught by the unique index",
			vote: model.VoteUp,
			setupMock: func(mAnswers *MockAnswerRepository, mVotes *MockVoteRepository) {
				mAnswers.On("FindByID", mock.Anything, uint(5)).Return(answer(), nil)
				mVotes.On("WithTransaction", mock.Anything).Return(nil)
				mVotes.On("FindByUserAndAnswer", mock.Anything, uint(10), uint(5)).Return(nil, gorm.ErrRecordNotFound)
				mVotes.On("Create", mock.Anything, mock.AnythingOfType("*model.Vote")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrAlreadyVoted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAnswers := new(MockAnswerRepository)
			mockVotes := &MockVoteRepository{TxAnswers: mockAnswers}
			tt.setupMock(mockAnswers, mockVotes)

			service := NewVoteService(new(MockQuestionRepository), mockAnswers, mockVotes, new(MockNotifier), nil)
			result, err := service.Vote(context.Background(), 10, 5, tt.vote)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
			}

			mockAnswers.AssertExpectations(t)
			mockVotes.AssertExpectations(t)
		})
	}
}

func TestVoteService_AcceptAnswer(t *testing.T) {
	question := func() *model.Question {
		return &model.Question{ID: 1, UserID: 10, Title: "Q"}
	}

	tests := []struct {
		name          string
		userID        uint
		setupMock     func(*MockQuestionRepository, *MockAnswerRepository, *MockNotifier)
		expectedError error
	}{
		{
			name:   "owner accepts, previous acceptance cleared first",
			userID: 10,
			setupMock: func(mQuestions *MockQuestionRepository, mAnswers *MockAnswerRepository, mNotifier *MockNotifier) {
				mQuestions.On("FindByID", mock.Anything, uint(1)).Return(question(), nil)
				mAnswers.On("FindByIDAndQuestionID", mock.Anything, uint(5), uint(1)).Return(&model.Answer{ID: 5, QuestionID: 1, UserID: 20}, nil)
				mAnswers.On("WithTransaction", mock.Anything).Return(nil)
				mAnswers.On("ClearAccepted", mock.Anything, uint(1)).Return(nil)
				mAnswers.On("SetAccepted", mock.Anything, uint(5)).Return(nil)
				mNotifier.On("AnswerAccepted", mock.Anything, uint(5), uint(10)).Return(nil)
				mAnswers.On("FindByID", mock.Anything, uint(5)).Return(&model.Answer{ID: 5, QuestionID: 1, UserID: 20, IsAccepted: true}, nil)
			},
		},
		{
			name:   "acceptance survives a failed notification",
			userID: 10,
			setupMock: func(mQuestions *MockQuestionRepository, mAnswers *MockAnswerRepository, mNotifier *MockNotifier) {
				mQuestions.On("FindByID", mock.Anything, uint(1)).Return(question(), nil)
				mAnswers.On("FindByIDAndQuestionID", mock.Anything, uint(5), uint(1)).Return(&model.Answer{ID: 5, QuestionID: 1, UserID: 20}, nil)
				mAnswers.On("WithTransaction", mock.Anything).Return(nil)
				mAnswers.On("ClearAccepted", mock.Anything, uint(1)).Return(nil)
				mAnswers.On("SetAccepted", mock.Anything, uint(5)).Return(nil)
				mNotifier.On("AnswerAccepted", mock.Anything, uint(5), uint(10)).Return(assert.AnError)
				mAnswers.On("FindByID", mock.Anything, uint(5)).Return(&model.Answer{ID: 5, QuestionID: 1, UserID: 20, IsAccepted: true}, nil)
			},
		},
		{
			name:   "non-owner cannot accept",
			userID: 99,
			setupMock: func(mQuestions *MockQuestionRepository, mAnswers *MockAnswerRepository, mNotifier *MockNotifier) {
				mQuestions.On("FindByID", mock.Anything, uint(1)).Return(question(), nil)
			},
			expectedError: apperrors.ErrNotQuestionOwner,
		},
		{
			name:   "answer from another question",
			userID: 10,
			setupMock: func(mQuestions *MockQuestionRepository, mAnswers *MockAnswerRepository, mNotifier *MockNotifier) {
				mQuestions.On("FindByID", mock.Anything, uint(1)).Return(question(), nil)
				mAnswers.On("FindByIDAndQuestionID", mock.Anything, uint(5), uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrAnswerNotFound,
		},
		{
			name:   "unknown question",
			userID: 10,
			setupMock: func(mQuestions *MockQuestionRepository, mAnswers *MockAnswerRepository, mNotifier *MockNotifier) {
				mQuestions.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrQuestionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQuestions := new(MockQuestionRepository)
			mockAnswers := new(MockAnswerRepository)
			mockNotifier := new(MockNotifier)
			tt.setupMock(mockQuestions, mockAnswers, mockNotifier)

			service := NewVoteService(mockQuestions, mockAnswers, &MockVoteRepository{TxAnswers: mockAnswers}, mockNotifier, nil)
			result, err := service.AcceptAnswer(context.Background(), tt.userID, 1, 5)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.True(t, result.IsAccepted)
			}

			mockQuestions.AssertExpectations(t)
			mockAnswers.AssertExpectations(t)
			mockNotifier.AssertExpectations(t)
		})
	}
}
