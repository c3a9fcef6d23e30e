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

// SchoolService handles school management.
type SchoolService struct {
	schoolRepo      *repository.SchoolRepository
	includeInactive bool
}

// NewSchoolService creates a new SchoolService.
func NewSchoolService(schoolRepo *repository.SchoolRepository, includeInactive bool) *SchoolService {
	return &SchoolService{schoolRepo: schoolRepo, includeInactive: includeInactive}
}

// GetByID retrieves one school visible to the actor.
func (s *SchoolService) GetByID(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*model.School, error) {
	if !policy.Can(actor.Role, policy.ResourceSchools, policy.ActionRead) {
		return nil, ErrForbidden
	}
	school, err := s.schoolRepo.GetByID(ctx, policy.Scope(actor, policy.ResourceSchools), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return school, nil
}

// List retrieves schools visible to the actor.
func (s *SchoolService) List(ctx context.Context, actor *policy.Actor, limit, offset int) ([]model.School, int, error) {
	if !policy.Can(actor.Role, policy.ResourceSchools, policy.ActionRead) {
		return nil, 0, ErrForbidden
	}
	return s.schoolRepo.List(ctx, policy.Scope(actor, policy.ResourceSchools), s.includeInactive, limit, offset)
}

// Create registers a school. Developer only.
func (s *SchoolService) Create(ctx context.Context, actor *policy.Actor, req *model.CreateSchoolRequest) (*model.School, error) {
	if !policy.Can(actor.Role, policy.ResourceSchools, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	school := &model.School{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Website: req.Website,
	}
	if err := s.schoolRepo.Create(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

// Update modifies a school visible to the actor.
func (s *SchoolService) Update(ctx context.Context, actor *policy.Actor, id uuid.UUID, req *model.UpdateSchoolRequest) (*model.School, error) {
	if !policy.Can(actor.Role, policy.ResourceSchools, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	school, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		school.Name = req.Name
	}
	if req.Address != "" {
		school.Address = req.Address
	}
	if req.Phone != "" {
		school.Phone = req.Phone
	}
	if req.Email != "" {
		school.Email = req.Email
	}
	if req.Website != "" {
		school.Website = req.Website
	}
	if req.IsActive != nil {
		school.IsActive = *req.IsActive
	}

	if err := s.schoolRepo.Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

// Deactivate retires a school. Developer only; records are kept.
func (s *SchoolService) Deactivate(ctx context.Context, actor *policy.Actor, id uuid.UUID) error {
	if !policy.Can(actor.Role, policy.ResourceSchools, policy.ActionDelete) {
		return ErrForbidden
	}
	return s.schoolRepo.Deactivate(ctx, id)
}
