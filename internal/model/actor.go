package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the single role tag carried by every actor.
type Role string

const (
	RoleDeveloper Role = "DEVELOPER"
	RolePrincipal Role = "PRINCIPAL"
	RoleTeacher   Role = "TEACHER"
	RoleStudent   Role = "STUDENT"
	RoleParent    Role = "PARENT"
)

// Valid reports whether the role is one of the supported values.
func (r Role) Valid() bool {
	switch r {
	case RoleDeveloper, RolePrincipal, RoleTeacher, RoleStudent, RoleParent:
		return true
	default:
		return false
	}
}

// Actor is an authenticated identity with exactly one role.
// SchoolID is nil only for developers, who operate across tenants.
type Actor struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	SchoolID     *uuid.UUID `json:"school_id,omitempty"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	Actor Actor  `json:"actor"`
}

// CreateActorRequest is the payload for creating a new actor account.
// The role is fixed at creation and cannot be changed afterwards.
type CreateActorRequest struct {
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=6,max=128"`
	Role     Role       `json:"role" binding:"required,oneof=DEVELOPER PRINCIPAL TEACHER STUDENT PARENT"`
	SchoolID *uuid.UUID `json:"school_id" binding:"omitempty"`
}

// UpdateActorRequest updates mutable actor fields. Role is intentionally absent.
type UpdateActorRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6,max=128"`
	IsActive *bool  `json:"is_active" binding:"omitempty"`
}
