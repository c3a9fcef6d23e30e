package model

import (
	"time"

	"github.com/google/uuid"
)

// Subject belongs to a school. Code is unique per school.
type Subject struct {
	ID          uuid.UUID `json:"id"`
	SchoolID    uuid.UUID `json:"school_id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateSubjectRequest is the payload for creating a subject.
type CreateSubjectRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Code        string `json:"code" binding:"required,min=1,max=20"`
	Description string `json:"description" binding:"omitempty"`
}

// UpdateSubjectRequest is the payload for updating a subject.
type UpdateSubjectRequest struct {
	Name        string `json:"name" binding:"omitempty,min=2,max=100"`
	Code        string `json:"code" binding:"omitempty,min=1,max=20"`
	Description string `json:"description" binding:"omitempty"`
	IsActive    *bool  `json:"is_active" binding:"omitempty"`
}
