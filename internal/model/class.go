package model

import (
	"time"

	"github.com/google/uuid"
)

// Class groups sections within a school. Name is unique per school.
type Class struct {
	ID         uuid.UUID `json:"id"`
	SchoolID   uuid.UUID `json:"school_id"`
	Name       string    `json:"name"`
	GradeLevel int       `json:"grade_level"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Section is a named group (A, B, ...) within a class with a capacity and an
// optional homeroom teacher. Name is unique per class.
type Section struct {
	ID              uuid.UUID  `json:"id"`
	ClassID         uuid.UUID  `json:"class_id"`
	Name            string     `json:"name"`
	HomeroomTeacher *uuid.UUID `json:"homeroom_teacher_id,omitempty"`
	MaxCapacity     int        `json:"max_capacity"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
}

// CreateClassRequest is the payload for creating a class.
type CreateClassRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=50"`
	GradeLevel int    `json:"grade_level" binding:"required,min=1,max=13"`
}

// UpdateClassRequest is the payload for updating a class.
type UpdateClassRequest struct {
	Name       string `json:"name" binding:"omitempty,min=1,max=50"`
	GradeLevel *int   `json:"grade_level" binding:"omitempty,min=1,max=13"`
	IsActive   *bool  `json:"is_active" binding:"omitempty"`
}

// CreateSectionRequest is the payload for creating a section under a class.
type CreateSectionRequest struct {
	Name            string     `json:"name" binding:"required,min=1,max=10"`
	HomeroomTeacher *uuid.UUID `json:"homeroom_teacher_id" binding:"omitempty"`
	MaxCapacity     int        `json:"max_capacity" binding:"omitempty,min=1,max=200"`
}

// UpdateSectionRequest is the payload for updating a section.
type UpdateSectionRequest struct {
	Name            string     `json:"name" binding:"omitempty,min=1,max=10"`
	HomeroomTeacher *uuid.UUID `json:"homeroom_teacher_id" binding:"omitempty"`
	MaxCapacity     *int       `json:"max_capacity" binding:"omitempty,min=1,max=200"`
	IsActive        *bool      `json:"is_active" binding:"omitempty"`
}
