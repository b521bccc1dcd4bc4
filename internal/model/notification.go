package model

import (
	"time"
)

// NotificationType classifies what produced a notification.
type NotificationType string

const (
	NotificationAnswer  NotificationType = "answer"
	NotificationComment NotificationType = "comment"
	NotificationMention NotificationType = "mention"
)

// Notification is a per-user event record produced as a side effect of
// content mutations. RelatedID is an untyped reference; the type implies
// which entity it points at (answer for both "answer" and "mention").
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;index"`
	Type      NotificationType `json:"type" gorm:"size:10;not null"`
	RelatedID uint             `json:"related_id" gorm:"not null"`
	Message   string           `json:"message" gorm:"size:255;not null"`
	IsRead    bool             `json:"is_read" gorm:"not null;default:false;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
}

// NotifyRequest names the answer a manual fan-out trigger refers to.
type NotifyRequest struct {
	AnswerID uint `json:"answer_id" validate:"required"`
}
