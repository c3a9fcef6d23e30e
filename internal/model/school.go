package model

import (
	"time"

	"github.com/google/uuid"
)

// School is the top-level tenant boundary. No entity reference may cross it.
type School struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Website   string    `json:"website,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSchoolRequest is the payload for registering a school.
type CreateSchoolRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=200"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required,max=20"`
	Email   string `json:"email" binding:"required,email"`
	Website string `json:"website" binding:"omitempty,url"`
}

// UpdateSchoolRequest is the payload for updating school details.
type UpdateSchoolRequest struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=200"`
	Address  string `json:"address" binding:"omitempty"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Email    string `json:"email" binding:"omitempty,email"`
	Website  string `json:"website" binding:"omitempty,url"`
	IsActive *bool  `json:"is_active" binding:"omitempty"`
}
