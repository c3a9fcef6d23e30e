package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusExcused AttendanceStatus = "excused"
)

// Valid reports whether the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one student's status for one (class, subject, date).
// SubjectID is nil for whole-day attendance. Unique per
// (student, class, subject, date) with upsert-on-repeat semantics.
type AttendanceRecord struct {
	ID          uuid.UUID        `json:"id"`
	StudentID   uuid.UUID        `json:"student_id"`
	StudentName string           `json:"student_name,omitempty"`
	ClassID     uuid.UUID        `json:"class_id"`
	SubjectID   *uuid.UUID       `json:"subject_id,omitempty"`
	Date        time.Time        `json:"date"`
	Status      AttendanceStatus `json:"status"`
	MarkedBy    uuid.UUID        `json:"marked_by"`
	Remarks     string           `json:"remarks,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// AttendanceSummary is a derived per-(student, month) aggregate, recomputed
// synchronously whenever a record in its bucket changes.
type AttendanceSummary struct {
	ID          uuid.UUID `json:"id"`
	StudentID   uuid.UUID `json:"student_id"`
	Month       time.Time `json:"month"` // First day of the month
	TotalDays   int       `json:"total_days"`
	PresentDays int       `json:"present_days"`
	AbsentDays  int       `json:"absent_days"`
	LateDays    int       `json:"late_days"`
	ExcusedDays int       `json:"excused_days"`
	Percentage  float64   `json:"attendance_percentage"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TallyAttendance derives a summary's totals from its per-status counts.
// Total is the sum of every status; percentage is present over total rounded
// to two decimals, 0 for an empty bucket.
func TallyAttendance(present, absent, late, excused int) (total int, percentage float64) {
	total = present + absent + late + excused
	if total == 0 {
		return 0, 0
	}
	percentage = math.Round(float64(present)/float64(total)*10000) / 100
	return total, percentage
}

// BulkAttendanceEntry is one student's status within a bulk marking payload.
type BulkAttendanceEntry struct {
	StudentID uuid.UUID        `json:"student_id" binding:"required"`
	Status    AttendanceStatus `json:"status" binding:"required,oneof=present absent late excused"`
	Remarks   string           `json:"remarks" binding:"omitempty"`
}

// BulkAttendanceRequest marks a whole class for one date in one transaction.
// Re-submitting the same payload is idempotent (one record per student).
type BulkAttendanceRequest struct {
	ClassID   uuid.UUID             `json:"class_id" binding:"required"`
	SubjectID *uuid.UUID            `json:"subject_id" binding:"omitempty"`
	Date      time.Time             `json:"date" binding:"required"`
	Entries   []BulkAttendanceEntry `json:"entries" binding:"required,min=1,dive"`
}

// AttendanceReportRow is one row of a class attendance report. Status is
// "not_marked" for students without a record on the requested date.
type AttendanceReportRow struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	Status      string    `json:"status"`
	Remarks     string    `json:"remarks,omitempty"`
}
