package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
	"github.com/edustack/campus-backend/internal/repository"
)

// ResourceService handles learning material sharing.
type ResourceService struct {
	resourceRepo *repository.ResourceRepository
	subjectRepo  *repository.SubjectRepository
	classRepo    *repository.ClassRepository
}

// NewResourceService creates a new ResourceService.
func NewResourceService(resourceRepo *repository.ResourceRepository, subjectRepo *repository.SubjectRepository, classRepo *repository.ClassRepository) *ResourceService {
	return &ResourceService{resourceRepo: resourceRepo, subjectRepo: subjectRepo, classRepo: classRepo}
}

// GetByID retrieves one resource visible to the actor.
func (s *ResourceService) GetByID(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*model.Resource, error) {
	if !policy.Can(actor.Role, policy.ResourceLearningMaterials, policy.ActionRead) {
		return nil, ErrForbidden
	}
	res, err := s.resourceRepo.GetByID(ctx, policy.Scope(actor, policy.ResourceLearningMaterials), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// List retrieves resources visible to the actor. Students and parents only
// see public material for their (children's) classes.
func (s *ResourceService) List(ctx context.Context, actor *policy.Actor, subjectID, classID *uuid.UUID, resourceType *model.ResourceType, limit, offset int) ([]model.Resource, int, error) {
	if !policy.Can(actor.Role, policy.ResourceLearningMaterials, policy.ActionRead) {
		return nil, 0, ErrForbidden
	}
	return s.resourceRepo.List(ctx, policy.Scope(actor, policy.ResourceLearningMaterials), subjectID, classID, resourceType, limit, offset)
}

// Create shares learning material in the actor's school. The subject — and
// the class, when given — must belong to the same school.
func (s *ResourceService) Create(ctx context.Context, actor *policy.Actor, req *model.CreateResourceRequest) (*model.Resource, error) {
	if !policy.Can(actor.Role, policy.ResourceLearningMaterials, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	if actor.SchoolID == nil {
		return nil, ErrCrossSchool
	}

	if _, err := s.subjectRepo.GetByID(ctx, policy.Scope(actor, policy.ResourceSubjects), req.SubjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.ClassID != nil {
		classSchool, err := s.classRepo.SchoolIDForClass(ctx, *req.ClassID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if classSchool != *actor.SchoolID {
			return nil, ErrCrossSchool
		}
	}

	res := &model.Resource{
		SchoolID:     *actor.SchoolID,
		SubjectID:    req.SubjectID,
		ClassID:      req.ClassID,
		Title:        req.Title,
		Description:  req.Description,
		ResourceType: req.ResourceType,
		Attachment:   req.Attachment,
		ExternalLink: req.ExternalLink,
		IsPublic:     req.IsPublic,
		UploadedBy:   actor.ID,
	}
	if err := s.resourceRepo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Update edits a resource visible to the actor.
func (s *ResourceService) Update(ctx context.Context, actor *policy.Actor, id uuid.UUID, req *model.UpdateResourceRequest) (*model.Resource, error) {
	if !policy.Can(actor.Role, policy.ResourceLearningMaterials, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	res, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		res.Title = req.Title
	}
	if req.Description != nil {
		res.Description = *req.Description
	}
	if req.ResourceType != "" {
		res.ResourceType = req.ResourceType
	}
	if req.ExternalLink != nil {
		res.ExternalLink = *req.ExternalLink
	}
	if req.IsPublic != nil {
		res.IsPublic = *req.IsPublic
	}

	if err := s.resourceRepo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Delete removes a resource visible to the actor.
func (s *ResourceService) Delete(ctx context.Context, actor *policy.Actor, id uuid.UUID) error {
	if !policy.Can(actor.Role, policy.ResourceLearningMaterials, policy.ActionDelete) {
		return ErrForbidden
	}
	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return err
	}
	return s.resourceRepo.Delete(ctx, id)
}
