package model

import (
	"time"

	"github.com/google/uuid"
)

// Weekday is an ISO weekday index, Monday=1 through Sunday=7.
type Weekday int

// Valid reports whether the weekday index is in range.
func (w Weekday) Valid() bool {
	return w >= 1 && w <= 7
}

// TimetableSlot schedules one subject period for a class. Unique per
// (class, weekday, start_time); duplicates are rejected, never upserted.
type TimetableSlot struct {
	ID         uuid.UUID  `json:"id"`
	SchoolID   uuid.UUID  `json:"school_id"`
	ClassID    uuid.UUID  `json:"class_id"`
	SectionID  *uuid.UUID `json:"section_id,omitempty"`
	SubjectID  uuid.UUID  `json:"subject_id"`
	TeacherID  uuid.UUID  `json:"teacher_id"`
	Weekday    Weekday    `json:"weekday"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	RoomNumber string     `json:"room_number,omitempty"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateTimetableSlotRequest is the payload for scheduling a period.
type CreateTimetableSlotRequest struct {
	ClassID    uuid.UUID  `json:"class_id" binding:"required"`
	SectionID  *uuid.UUID `json:"section_id" binding:"omitempty"`
	SubjectID  uuid.UUID  `json:"subject_id" binding:"required"`
	TeacherID  uuid.UUID  `json:"teacher_id" binding:"required"`
	Weekday    Weekday    `json:"weekday" binding:"required,min=1,max=7"`
	StartTime  string     `json:"start_time" binding:"required"`
	EndTime    string     `json:"end_time" binding:"required"`
	RoomNumber string     `json:"room_number" binding:"omitempty,max=50"`
}

// UpdateTimetableSlotRequest is the payload for moving or editing a period.
type UpdateTimetableSlotRequest struct {
	SubjectID  *uuid.UUID `json:"subject_id" binding:"omitempty"`
	TeacherID  *uuid.UUID `json:"teacher_id" binding:"omitempty"`
	Weekday    *Weekday   `json:"weekday" binding:"omitempty,min=1,max=7"`
	StartTime  string     `json:"start_time" binding:"omitempty"`
	EndTime    string     `json:"end_time" binding:"omitempty"`
	RoomNumber string     `json:"room_number" binding:"omitempty,max=50"`
	IsActive   *bool      `json:"is_active" binding:"omitempty"`
}
