package model

import (
	"time"

	"github.com/google/uuid"
)

// ResourceType enumerates learning material kinds.
type ResourceType string

const (
	ResourceTypeDocument ResourceType = "document"
	ResourceTypeVideo    ResourceType = "video"
	ResourceTypeAudio    ResourceType = "audio"
	ResourceTypeImage    ResourceType = "image"
	ResourceTypeLink     ResourceType = "link"
	ResourceTypeOther    ResourceType = "other"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceTypeDocument, ResourceTypeVideo, ResourceTypeAudio,
		ResourceTypeImage, ResourceTypeLink, ResourceTypeOther:
		return true
	}
	return false
}

// Resource is learning material attached to a subject. A nil ClassID makes it
// subject-wide; students and parents only see public resources.
type Resource struct {
	ID           uuid.UUID    `json:"id"`
	SchoolID     uuid.UUID    `json:"school_id"`
	SubjectID    uuid.UUID    `json:"subject_id"`
	ClassID      *uuid.UUID   `json:"class_id,omitempty"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ResourceType ResourceType `json:"resource_type"`
	Attachment   *Attachment  `json:"attachment,omitempty"`
	ExternalLink string       `json:"external_link,omitempty"`
	IsPublic     bool         `json:"is_public"`
	UploadedBy   uuid.UUID    `json:"uploaded_by"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// CreateResourceRequest is the payload for sharing learning material.
type CreateResourceRequest struct {
	SubjectID    uuid.UUID    `json:"subject_id" binding:"required"`
	ClassID      *uuid.UUID   `json:"class_id" binding:"omitempty"`
	Title        string       `json:"title" binding:"required,min=2,max=200"`
	Description  string       `json:"description" binding:"omitempty"`
	ResourceType ResourceType `json:"resource_type" binding:"required,oneof=document video audio image link other"`
	Attachment   *Attachment  `json:"attachment" binding:"omitempty"`
	ExternalLink string       `json:"external_link" binding:"omitempty,url"`
	IsPublic     bool         `json:"is_public"`
}

// UpdateResourceRequest is the payload for editing learning material.
type UpdateResourceRequest struct {
	Title        string       `json:"title" binding:"omitempty,min=2,max=200"`
	Description  *string      `json:"description" binding:"omitempty"`
	ResourceType ResourceType `json:"resource_type" binding:"omitempty,oneof=document video audio image link other"`
	ExternalLink *string      `json:"external_link" binding:"omitempty,url"`
	IsPublic     *bool        `json:"is_public" binding:"omitempty"`
}
