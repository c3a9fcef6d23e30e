package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamType enumerates the kinds of assessment.
type ExamType string

const (
	ExamTypeMidTerm    ExamType = "mid_term"
	ExamTypeFinal      ExamType = "final"
	ExamTypeUnitTest   ExamType = "unit_test"
	ExamTypeQuiz       ExamType = "quiz"
	ExamTypeAssignment ExamType = "assignment"
	ExamTypeProject    ExamType = "project"
)

// Exam is an assessment scheduled for a class/section in one subject.
type Exam struct {
	ID        uuid.UUID `json:"id"`
	SchoolID  uuid.UUID `json:"school_id"`
	Name      string    `json:"name"`
	ExamType  ExamType  `json:"exam_type"`
	ClassID   uuid.UUID `json:"class_id"`
	SectionID uuid.UUID `json:"section_id"`
	SubjectID uuid.UUID `json:"subject_id"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	MaxMarks  float64   `json:"max_marks"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Mark is one student's result for one exam. At most one mark per
// (student, exam); repeated grading updates in place.
type Mark struct {
	ID            uuid.UUID `json:"id"`
	StudentID     uuid.UUID `json:"student_id"`
	ExamID        uuid.UUID `json:"exam_id"`
	MarksObtained float64   `json:"marks_obtained"`
	Percentage    float64   `json:"percentage"`
	GradeLetter   string    `json:"grade_letter"`
	Remarks       string    `json:"remarks,omitempty"`
	GradedBy      uuid.UUID `json:"graded_by"`
	GradedAt      time.Time `json:"graded_at"`
}

// LetterGrade maps a percentage to its letter band. Boundaries are inclusive
// at the lower bound of each band.
func LetterGrade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B+"
	case percentage >= 60:
		return "B"
	case percentage >= 50:
		return "C"
	case percentage >= 40:
		return "D"
	default:
		return "F"
	}
}

// CreateExamRequest is the payload for scheduling an exam.
type CreateExamRequest struct {
	Name      string    `json:"name" binding:"required,min=2,max=100"`
	ExamType  ExamType  `json:"exam_type" binding:"required,oneof=mid_term final unit_test quiz assignment project"`
	ClassID   uuid.UUID `json:"class_id" binding:"required"`
	SectionID uuid.UUID `json:"section_id" binding:"required"`
	SubjectID uuid.UUID `json:"subject_id" binding:"required"`
	Date      time.Time `json:"date" binding:"required"`
	StartTime string    `json:"start_time" binding:"required"`
	EndTime   string    `json:"end_time" binding:"required"`
	MaxMarks  float64   `json:"max_marks" binding:"required,gt=0"`
}

// UpdateExamRequest is the payload for rescheduling or renaming an exam.
type UpdateExamRequest struct {
	Name      string     `json:"name" binding:"omitempty,min=2,max=100"`
	Date      *time.Time `json:"date" binding:"omitempty"`
	StartTime string     `json:"start_time" binding:"omitempty"`
	EndTime   string     `json:"end_time" binding:"omitempty"`
	MaxMarks  *float64   `json:"max_marks" binding:"omitempty,gt=0"`
}

// RecordMarkRequest is the payload for grading one student on an exam.
// Recording twice for the same (student, exam) updates the existing mark.
type RecordMarkRequest struct {
	StudentID     uuid.UUID `json:"student_id" binding:"required"`
	MarksObtained float64   `json:"marks_obtained" binding:"min=0"`
	Remarks       string    `json:"remarks" binding:"omitempty"`
}
