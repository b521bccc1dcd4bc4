package model

import (
	"time"
)

// Answer represents an answer to a question.
type Answer struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	QuestionID  uint      `json:"question_id" gorm:"not null;index"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Description string    `json:"description" gorm:"type:text;not null"`
	ImageURL    string    `json:"image_url,omitempty" gorm:"size:255"`
	Tags        Tags      `json:"tags" gorm:"serializer:json;type:text"`
	Upvotes     int       `json:"upvotes" gorm:"not null;default:0"`
	Downvotes   int       `json:"downvotes" gorm:"not null;default:0"`
	IsAccepted  bool      `json:"is_accepted" gorm:"not null;default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Question Question `json:"-" gorm:"foreignKey:QuestionID"`
	User     User     `json:"-" gorm:"foreignKey:UserID"`
}

// CreateAnswerRequest represents an answer creation request.
type CreateAnswerRequest struct {
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags"`
}

// AnswerView is an answer joined with its author's username for display.
type AnswerView struct {
	Answer
	Author string `json:"author"`
}
