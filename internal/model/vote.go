package model

import (
	"time"
)

// VoteType is the direction of a vote on an answer.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Valid reports whether v is a known vote direction.
func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// Vote is the per-(user, answer) vote ledger entry. The unique index is what
// enforces at-most-one-vote-per-user-per-answer.
type Vote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_votes_user_answer"`
	AnswerID  uint      `json:"answer_id" gorm:"not null;uniqueIndex:idx_votes_user_answer"`
	Value     VoteType  `json:"value" gorm:"size:5;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteRequest represents a vote on an answer.
type VoteRequest struct {
	VoteType VoteType `json:"vote_type" validate:"required,oneof=up down"`
}
