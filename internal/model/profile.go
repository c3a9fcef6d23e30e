package model

import (
	"time"

	"github.com/google/uuid"
)

// TeacherProfile wraps a teacher actor with assignment data. Assigned sections
// must belong to the same school as the profile.
type TeacherProfile struct {
	ID         uuid.UUID   `json:"id"`
	ActorID    uuid.UUID   `json:"actor_id"`
	SchoolID   uuid.UUID   `json:"school_id"`
	EmployeeID string      `json:"employee_id"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	SubjectIDs []uuid.UUID `json:"subject_ids"`
	SectionIDs []uuid.UUID `json:"section_ids"`
	IsActive   bool        `json:"is_active"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// StudentProfile wraps a student actor. The section must belong to the class.
type StudentProfile struct {
	ID            uuid.UUID `json:"id"`
	ActorID       uuid.UUID `json:"actor_id"`
	SchoolID      uuid.UUID `json:"school_id"`
	StudentNumber string    `json:"student_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	ClassID       uuid.UUID `json:"class_id"`
	SectionID     uuid.UUID `json:"section_id"`
	AdmissionDate time.Time `json:"admission_date"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ParentProfile wraps a parent actor. Children is a many-to-many link; at most
// one link per child carries the primary-guardian flag.
type ParentProfile struct {
	ID         uuid.UUID    `json:"id"`
	ActorID    uuid.UUID    `json:"actor_id"`
	SchoolID   uuid.UUID    `json:"school_id"`
	FirstName  string       `json:"first_name"`
	LastName   string       `json:"last_name"`
	Occupation string       `json:"occupation,omitempty"`
	Children   []ParentLink `json:"children"`
	IsActive   bool         `json:"is_active"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// ParentLink ties a parent profile to one student profile.
type ParentLink struct {
	StudentID uuid.UUID `json:"student_id"`
	IsPrimary bool      `json:"is_primary"`
}

// PrincipalProfile wraps a principal actor.
type PrincipalProfile struct {
	ID         uuid.UUID `json:"id"`
	ActorID    uuid.UUID `json:"actor_id"`
	SchoolID   uuid.UUID `json:"school_id"`
	EmployeeID string    `json:"employee_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateTeacherProfileRequest attaches a teacher profile to an actor.
type CreateTeacherProfileRequest struct {
	ActorID    uuid.UUID   `json:"actor_id" binding:"required"`
	EmployeeID string      `json:"employee_id" binding:"required,min=2,max=50"`
	FirstName  string      `json:"first_name" binding:"required,min=1,max=100"`
	LastName   string      `json:"last_name" binding:"required,min=1,max=100"`
	SubjectIDs []uuid.UUID `json:"subject_ids" binding:"omitempty"`
	SectionIDs []uuid.UUID `json:"section_ids" binding:"omitempty"`
}

// UpdateTeacherProfileRequest replaces a teacher's assignment lists when present.
type UpdateTeacherProfileRequest struct {
	FirstName  string       `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName   string       `json:"last_name" binding:"omitempty,min=1,max=100"`
	SubjectIDs *[]uuid.UUID `json:"subject_ids" binding:"omitempty"`
	SectionIDs *[]uuid.UUID `json:"section_ids" binding:"omitempty"`
	IsActive   *bool        `json:"is_active" binding:"omitempty"`
}

// CreateStudentProfileRequest attaches a student profile to an actor.
type CreateStudentProfileRequest struct {
	ActorID       uuid.UUID `json:"actor_id" binding:"required"`
	StudentNumber string    `json:"student_number" binding:"required,min=2,max=50"`
	FirstName     string    `json:"first_name" binding:"required,min=1,max=100"`
	LastName      string    `json:"last_name" binding:"required,min=1,max=100"`
	ClassID       uuid.UUID `json:"class_id" binding:"required"`
	SectionID     uuid.UUID `json:"section_id" binding:"required"`
	AdmissionDate time.Time `json:"admission_date" binding:"required"`
}

// UpdateStudentProfileRequest moves or renames a student.
type UpdateStudentProfileRequest struct {
	FirstName string     `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  string     `json:"last_name" binding:"omitempty,min=1,max=100"`
	ClassID   *uuid.UUID `json:"class_id" binding:"omitempty"`
	SectionID *uuid.UUID `json:"section_id" binding:"omitempty"`
	IsActive  *bool      `json:"is_active" binding:"omitempty"`
}

// CreateParentProfileRequest attaches a parent profile to an actor.
type CreateParentProfileRequest struct {
	ActorID    uuid.UUID    `json:"actor_id" binding:"required"`
	FirstName  string       `json:"first_name" binding:"required,min=1,max=100"`
	LastName   string       `json:"last_name" binding:"required,min=1,max=100"`
	Occupation string       `json:"occupation" binding:"omitempty,max=100"`
	Children   []ParentLink `json:"children" binding:"omitempty"`
}

// CreatePrincipalProfileRequest attaches a principal profile to an actor.
type CreatePrincipalProfileRequest struct {
	ActorID    uuid.UUID `json:"actor_id" binding:"required"`
	EmployeeID string    `json:"employee_id" binding:"required,min=2,max=50"`
	FirstName  string    `json:"first_name" binding:"required,min=1,max=100"`
	LastName   string    `json:"last_name" binding:"required,min=1,max=100"`
}
