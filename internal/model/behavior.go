package model

import (
	"time"

	"github.com/google/uuid"
)

// BehaviorType classifies a behavior category.
type BehaviorType string

const (
	BehaviorTypePositive BehaviorType = "positive"
	BehaviorTypeNegative BehaviorType = "negative"
	BehaviorTypeNeutral  BehaviorType = "neutral"
)

// BehaviorCategory defines a named behavior with a point value. Negative
// categories carry negative points.
type BehaviorCategory struct {
	ID        uuid.UUID    `json:"id"`
	SchoolID  uuid.UUID    `json:"school_id"`
	Name      string       `json:"name"`
	Type      BehaviorType `json:"type"`
	Points    int          `json:"points"`
	IsActive  bool         `json:"is_active"`
	CreatedAt time.Time    `json:"created_at"`
}

// BehaviorLog records one behavior incident for a student.
type BehaviorLog struct {
	ID             uuid.UUID `json:"id"`
	StudentID      uuid.UUID `json:"student_id"`
	CategoryID     uuid.UUID `json:"category_id"`
	CategoryName   string    `json:"category_name,omitempty"`
	CategoryPoints int       `json:"category_points,omitempty"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	DateRecorded   time.Time `json:"date_recorded"`
	ReportedBy     uuid.UUID `json:"reported_by"`
	ActionTaken    string    `json:"action_taken,omitempty"`
	ParentNotified bool      `json:"parent_notified"`
	CreatedAt      time.Time `json:"created_at"`
}

// BehaviorPointTotal is the sum of category points across a student's logs.
type BehaviorPointTotal struct {
	StudentID   uuid.UUID `json:"student_id"`
	TotalPoints int       `json:"total_points"`
	LogCount    int       `json:"log_count"`
}

// CreateBehaviorCategoryRequest is the payload for defining a category.
type CreateBehaviorCategoryRequest struct {
	Name   string       `json:"name" binding:"required,min=2,max=100"`
	Type   BehaviorType `json:"type" binding:"required,oneof=positive negative neutral"`
	Points int          `json:"points" binding:"required"`
}

// CreateBehaviorLogRequest is the payload for recording an incident.
type CreateBehaviorLogRequest struct {
	StudentID      uuid.UUID `json:"student_id" binding:"required"`
	CategoryID     uuid.UUID `json:"category_id" binding:"required"`
	Title          string    `json:"title" binding:"required,min=2,max=200"`
	Description    string    `json:"description" binding:"required"`
	DateRecorded   time.Time `json:"date_recorded" binding:"required"`
	ActionTaken    string    `json:"action_taken" binding:"omitempty"`
	ParentNotified bool      `json:"parent_notified" binding:"omitempty"`
}

// UpdateBehaviorLogRequest is the payload for amending an incident.
type UpdateBehaviorLogRequest struct {
	Title          string `json:"title" binding:"omitempty,min=2,max=200"`
	Description    string `json:"description" binding:"omitempty"`
	ActionTaken    string `json:"action_taken" binding:"omitempty"`
	ParentNotified *bool  `json:"parent_notified" binding:"omitempty"`
}
