package model

import (
	"time"

	"github.com/google/uuid"
)

// AssignmentStatus enumerates the lifecycle of an assignment.
type AssignmentStatus string

const (
	AssignmentStatusDraft    AssignmentStatus = "draft"
	AssignmentStatusAssigned AssignmentStatus = "assigned"
	AssignmentStatusGraded   AssignmentStatus = "graded"
	AssignmentStatusArchived AssignmentStatus = "archived"
)

// SubmissionStatus enumerates the lifecycle of a submission.
type SubmissionStatus string

const (
	SubmissionStatusSubmitted SubmissionStatus = "submitted"
	SubmissionStatusLate      SubmissionStatus = "late"
	SubmissionStatusGraded    SubmissionStatus = "graded"
	SubmissionStatusReturned  SubmissionStatus = "returned"
)

// Attachment is opaque file metadata; blobs live in external storage.
type Attachment struct {
	Filename   string    `json:"filename"`
	Path       string    `json:"path"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Assignment is work given to a class/section in one subject.
type Assignment struct {
	ID           uuid.UUID        `json:"id"`
	SchoolID     uuid.UUID        `json:"school_id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	ClassID      uuid.UUID        `json:"class_id"`
	SectionID    uuid.UUID        `json:"section_id"`
	SubjectID    uuid.UUID        `json:"subject_id"`
	TeacherID    uuid.UUID        `json:"teacher_id"`
	AssignedDate time.Time        `json:"assigned_date"`
	DueDate      time.Time        `json:"due_date"`
	MaxMarks     float64          `json:"max_marks"`
	Status       AssignmentStatus `json:"status"`
	Instructions string           `json:"instructions,omitempty"`
	Attachment   *Attachment      `json:"attachment,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// AssignmentSubmission is one student's answer to one assignment.
// Unique per (assignment, student); re-submission before grading updates
// in place. IsLate is strict: submitting exactly at the deadline is on time.
type AssignmentSubmission struct {
	ID             uuid.UUID        `json:"id"`
	AssignmentID   uuid.UUID        `json:"assignment_id"`
	StudentID      uuid.UUID        `json:"student_id"`
	SubmissionText string           `json:"submission_text,omitempty"`
	Attachment     *Attachment      `json:"attachment,omitempty"`
	SubmittedAt    time.Time        `json:"submitted_at"`
	Status         SubmissionStatus `json:"status"`
	IsLate         bool             `json:"is_late"`
	MarksObtained  *float64         `json:"marks_obtained,omitempty"`
	Feedback       string           `json:"teacher_feedback,omitempty"`
	GradedAt       *time.Time       `json:"graded_at,omitempty"`
	GradedBy       *uuid.UUID       `json:"graded_by,omitempty"`
}

// AssignmentStats summarises submission and grading progress.
type AssignmentStats struct {
	AssignmentID   uuid.UUID `json:"assignment_id"`
	TotalStudents  int       `json:"total_students"`
	SubmittedCount int       `json:"submitted_count"`
	GradedCount    int       `json:"graded_count"`
	SubmissionRate float64   `json:"submission_rate"`
	GradedRate     float64   `json:"graded_rate"`
}

// SubmissionReportRow reports one student's submission state, including
// students with no submission (Submitted=false), never omitting them.
type SubmissionReportRow struct {
	StudentID     uuid.UUID  `json:"student_id"`
	StudentName   string     `json:"student_name"`
	Submitted     bool       `json:"submitted"`
	IsLate        bool       `json:"is_late"`
	Status        string     `json:"status,omitempty"`
	MarksObtained *float64   `json:"marks_obtained,omitempty"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
}

// CreateAssignmentRequest is the payload for creating an assignment.
type CreateAssignmentRequest struct {
	Title        string      `json:"title" binding:"required,min=2,max=200"`
	Description  string      `json:"description" binding:"required"`
	ClassID      uuid.UUID   `json:"class_id" binding:"required"`
	SectionID    uuid.UUID   `json:"section_id" binding:"required"`
	SubjectID    uuid.UUID   `json:"subject_id" binding:"required"`
	AssignedDate time.Time   `json:"assigned_date" binding:"required"`
	DueDate      time.Time   `json:"due_date" binding:"required,gtfield=AssignedDate"`
	MaxMarks     float64     `json:"max_marks" binding:"omitempty,gt=0"`
	Instructions string      `json:"instructions" binding:"omitempty"`
	Attachment   *Attachment `json:"attachment" binding:"omitempty"`
}

// UpdateAssignmentRequest is the payload for updating an assignment.
type UpdateAssignmentRequest struct {
	Title        string           `json:"title" binding:"omitempty,min=2,max=200"`
	Description  string           `json:"description" binding:"omitempty"`
	DueDate      *time.Time       `json:"due_date" binding:"omitempty"`
	MaxMarks     *float64         `json:"max_marks" binding:"omitempty,gt=0"`
	Status       AssignmentStatus `json:"status" binding:"omitempty,oneof=draft assigned graded archived"`
	Instructions string           `json:"instructions" binding:"omitempty"`
}

// SubmitAssignmentRequest is a student's submission payload.
type SubmitAssignmentRequest struct {
	SubmissionText string      `json:"submission_text" binding:"omitempty"`
	Attachment     *Attachment `json:"attachment" binding:"omitempty"`
}

// GradeSubmissionRequest is the payload for grading a submission.
type GradeSubmissionRequest struct {
	MarksObtained float64 `json:"marks_obtained" binding:"min=0"`
	Feedback      string  `json:"teacher_feedback" binding:"omitempty"`
}
