package model

import (
	"time"

	"github.com/google/uuid"
)

// NoticePriority enumerates notice urgency levels.
type NoticePriority string

const (
	NoticePriorityLow    NoticePriority = "low"
	NoticePriorityMedium NoticePriority = "medium"
	NoticePriorityHigh   NoticePriority = "high"
	NoticePriorityUrgent NoticePriority = "urgent"
)

// Notice is a school announcement. Empty TargetClassIDs means school-wide.
// Students and parents only see notices between publish and expiry.
type Notice struct {
	ID             uuid.UUID      `json:"id"`
	SchoolID       uuid.UUID      `json:"school_id"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	Priority       NoticePriority `json:"priority"`
	TargetClassIDs []uuid.UUID    `json:"target_class_ids"`
	Attachment     *Attachment    `json:"attachment,omitempty"`
	CreatedBy      uuid.UUID      `json:"created_by"`
	IsActive       bool           `json:"is_active"`
	PublishDate    time.Time      `json:"publish_date"`
	ExpiryDate     *time.Time     `json:"expiry_date,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// CreateNoticeRequest is the payload for publishing a notice.
type CreateNoticeRequest struct {
	Title          string         `json:"title" binding:"required,min=2,max=200"`
	Content        string         `json:"content" binding:"required"`
	Priority       NoticePriority `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	TargetClassIDs []uuid.UUID    `json:"target_class_ids" binding:"omitempty"`
	Attachment     *Attachment    `json:"attachment" binding:"omitempty"`
	PublishDate    time.Time      `json:"publish_date" binding:"required"`
	ExpiryDate     *time.Time     `json:"expiry_date" binding:"omitempty"`
}

// UpdateNoticeRequest is the payload for editing a notice.
type UpdateNoticeRequest struct {
	Title          string         `json:"title" binding:"omitempty,min=2,max=200"`
	Content        string         `json:"content" binding:"omitempty"`
	Priority       NoticePriority `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	TargetClassIDs *[]uuid.UUID   `json:"target_class_ids" binding:"omitempty"`
	ExpiryDate     *time.Time     `json:"expiry_date" binding:"omitempty"`
	IsActive       *bool          `json:"is_active" binding:"omitempty"`
}
