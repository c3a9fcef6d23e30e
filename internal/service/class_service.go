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

// ClassService handles class and section management.
type ClassService struct {
	classRepo       *repository.ClassRepository
	includeInactive bool
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo *repository.ClassRepository, includeInactive bool) *ClassService {
	return &ClassService{classRepo: classRepo, includeInactive: includeInactive}
}

// GetByID retrieves one class visible to the actor.
func (s *ClassService) GetByID(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*model.Class, error) {
	if !policy.Can(actor.Role, policy.ResourceClasses, policy.ActionRead) {
		return nil, ErrForbidden
	}
	class, err := s.classRepo.GetByID(ctx, policy.Scope(actor, policy.ResourceClasses), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return class, nil
}

// List retrieves classes visible to the actor.
func (s *ClassService) List(ctx context.Context, actor *policy.Actor, limit, offset int) ([]model.Class, int, error) {
	if !policy.Can(actor.Role, policy.ResourceClasses, policy.ActionRead) {
		return nil, 0, ErrForbidden
	}
	return s.classRepo.List(ctx, policy.Scope(actor, policy.ResourceClasses), s.includeInactive, limit, offset)
}

// Create adds a class to the actor's school.
func (s *ClassService) Create(ctx context.Context, actor *policy.Actor, req *model.CreateClassRequest) (*model.Class, error) {
	if !policy.Can(actor.Role, policy.ResourceClasses, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	if actor.SchoolID == nil {
		return nil, ErrCrossSchool
	}
	class := &model.Class{
		SchoolID:   *actor.SchoolID,
		Name:       req.Name,
		GradeLevel: req.GradeLevel,
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// Update modifies a class visible to the actor.
func (s *ClassService) Update(ctx context.Context, actor *policy.Actor, id uuid.UUID, req *model.UpdateClassRequest) (*model.Class, error) {
	if !policy.Can(actor.Role, policy.ResourceClasses, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	class, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		class.Name = req.Name
	}
	if req.GradeLevel != nil {
		class.GradeLevel = *req.GradeLevel
	}
	if req.IsActive != nil {
		class.IsActive = *req.IsActive
	}

	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// ListSections retrieves the sections of a class visible to the actor.
func (s *ClassService) ListSections(ctx context.Context, actor *policy.Actor, classID uuid.UUID) ([]model.Section, error) {
	if !policy.Can(actor.Role, policy.ResourceSections, policy.ActionRead) {
		return nil, ErrForbidden
	}
	if _, err := s.GetByID(ctx, actor, classID); err != nil {
		return nil, err
	}
	return s.classRepo.ListSections(ctx, classID, s.includeInactive)
}

// CreateSection adds a section under a class visible to the actor.
func (s *ClassService) CreateSection(ctx context.Context, actor *policy.Actor, classID uuid.UUID, req *model.CreateSectionRequest) (*model.Section, error) {
	if !policy.Can(actor.Role, policy.ResourceSections, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	if _, err := s.GetByID(ctx, actor, classID); err != nil {
		return nil, err
	}

	maxCapacity := req.MaxCapacity
	if maxCapacity == 0 {
		maxCapacity = 40
	}
	section := &model.Section{
		ClassID:         classID,
		Name:            req.Name,
		HomeroomTeacher: req.HomeroomTeacher,
		MaxCapacity:     maxCapacity,
	}
	if err := s.classRepo.CreateSection(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

// UpdateSection modifies a section of a class visible to the actor.
func (s *ClassService) UpdateSection(ctx context.Context, actor *policy.Actor, sectionID uuid.UUID, req *model.UpdateSectionRequest) (*model.Section, error) {
	if !policy.Can(actor.Role, policy.ResourceSections, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	section, err := s.classRepo.GetSectionByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Visibility check via the owning class.
	if _, err := s.GetByID(ctx, actor, section.ClassID); err != nil {
		return nil, err
	}

	if req.Name != "" {
		section.Name = req.Name
	}
	if req.HomeroomTeacher != nil {
		section.HomeroomTeacher = req.HomeroomTeacher
	}
	if req.MaxCapacity != nil {
		section.MaxCapacity = *req.MaxCapacity
	}
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}

	if err := s.classRepo.UpdateSection(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

// EnsureCapacity verifies a section can accept one more student.
func (s *ClassService) EnsureCapacity(ctx context.Context, sectionID uuid.UUID) error {
	section, err := s.classRepo.GetSectionByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	enrolled, err := s.classRepo.SectionEnrollment(ctx, sectionID)
	if err != nil {
		return err
	}
	if enrolled >= section.MaxCapacity {
		return ErrSectionFull
	}
	return nil
}
