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

// SubjectService handles subject management.
type SubjectService struct {
	subjectRepo     *repository.SubjectRepository
	includeInactive bool
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(subjectRepo *repository.SubjectRepository, includeInactive bool) *SubjectService {
	return &SubjectService{subjectRepo: subjectRepo, includeInactive: includeInactive}
}

// GetByID retrieves one subject visible to the actor.
func (s *SubjectService) GetByID(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*model.Subject, error) {
	if !policy.Can(actor.Role, policy.ResourceSubjects, policy.ActionRead) {
		return nil, ErrForbidden
	}
	subject, err := s.subjectRepo.GetByID(ctx, policy.Scope(actor, policy.ResourceSubjects), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return subject, nil
}

// List retrieves subjects visible to the actor.
func (s *SubjectService) List(ctx context.Context, actor *policy.Actor, limit, offset int) ([]model.Subject, int, error) {
	if !policy.Can(actor.Role, policy.ResourceSubjects, policy.ActionRead) {
		return nil, 0, ErrForbidden
	}
	return s.subjectRepo.List(ctx, policy.Scope(actor, policy.ResourceSubjects), s.includeInactive, limit, offset)
}

// Create adds a subject to the actor's school.
func (s *SubjectService) Create(ctx context.Context, actor *policy.Actor, req *model.CreateSubjectRequest) (*model.Subject, error) {
	if !policy.Can(actor.Role, policy.ResourceSubjects, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	if actor.SchoolID == nil {
		return nil, ErrCrossSchool
	}
	subject := &model.Subject{
		SchoolID:    *actor.SchoolID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Update modifies a subject visible to the actor.
func (s *SubjectService) Update(ctx context.Context, actor *policy.Actor, id uuid.UUID, req *model.UpdateSubjectRequest) (*model.Subject, error) {
	if !policy.Can(actor.Role, policy.ResourceSubjects, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	subject, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		subject.Name = req.Name
	}
	if req.Code != "" {
		subject.Code = req.Code
	}
	if req.Description != "" {
		subject.Description = req.Description
	}
	if req.IsActive != nil {
		subject.IsActive = *req.IsActive
	}

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}
