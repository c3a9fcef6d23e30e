package model

import "github.com/google/uuid"

// SubjectPerformance aggregates a student's marks within one subject.
type SubjectPerformance struct {
	SubjectID         uuid.UUID `json:"subject_id"`
	SubjectName       string    `json:"subject_name"`
	ExamCount         int       `json:"exam_count"`
	AveragePercentage float64   `json:"average_percentage"`
	GradeLetter       string    `json:"grade_letter"`
	Marks             []Mark    `json:"marks"`
}

// StudentPerformance is a per-subject breakdown of a student's results.
type StudentPerformance struct {
	StudentID uuid.UUID            `json:"student_id"`
	Subjects  []SubjectPerformance `json:"subjects"`
}
