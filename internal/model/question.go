package model

import (
	"time"
)

// Tags is an ordered sequence of tag strings. MySQL has no array column
// type, so it is stored through GORM's JSON serializer.
type Tags []string

// Question represents a question posted by a user.
type Question struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Tags        Tags      `json:"tags" gorm:"serializer:json;type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User    User     `json:"-" gorm:"foreignKey:UserID"`
	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:QuestionID"`
}

// CreateQuestionRequest represents a question creation request.
type CreateQuestionRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags"`
}

// UpdateQuestionRequest is a typed partial patch: only supplied, non-empty
// fields are applied. A nil Tags slice means "leave tags unchanged".
type UpdateQuestionRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// QuestionDetail is the denormalized read model for a single question page.
type QuestionDetail struct {
	Question Question     `json:"question"`
	Author   string       `json:"author"`
	Answers  []AnswerView `json:"answers"`
}
