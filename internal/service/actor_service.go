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

// ActorService handles actor account management.
type ActorService struct {
	actorRepo       *repository.ActorRepository
	authSvc         *AuthService
	contextSvc      *ContextService
	includeInactive bool
}

// NewActorService creates a new ActorService.
func NewActorService(actorRepo *repository.ActorRepository, authSvc *AuthService, contextSvc *ContextService, includeInactive bool) *ActorService {
	return &ActorService{
		actorRepo:       actorRepo,
		authSvc:         authSvc,
		contextSvc:      contextSvc,
		includeInactive: includeInactive,
	}
}

// GetByID retrieves one actor visible to the caller.
func (s *ActorService) GetByID(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*model.Actor, error) {
	if !policy.Can(actor.Role, policy.ResourceActors, policy.ActionRead) {
		return nil, ErrForbidden
	}
	target, err := s.actorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.visible(actor, target) {
		return nil, ErrNotFound
	}
	return target, nil
}

// visible enforces tenancy on single-actor reads: non-developers only see
// actors of their own school.
func (s *ActorService) visible(actor *policy.Actor, target *model.Actor) bool {
	if actor.Role == model.RoleDeveloper {
		return true
	}
	return actor.SchoolID != nil && target.SchoolID != nil && *actor.SchoolID == *target.SchoolID
}

// List retrieves actors visible to the caller, optionally filtered by role.
func (s *ActorService) List(ctx context.Context, actor *policy.Actor, role *model.Role, limit, offset int) ([]model.Actor, int, error) {
	if !policy.Can(actor.Role, policy.ResourceActors, policy.ActionRead) {
		return nil, 0, ErrForbidden
	}
	return s.actorRepo.List(ctx, policy.Scope(actor, policy.ResourceActors), role, s.includeInactive, limit, offset)
}

// Create registers a new actor account. The role is fixed at creation.
// Principals may only create accounts in their own school; developer accounts
// are created by developers alone.
func (s *ActorService) Create(ctx context.Context, actor *policy.Actor, req *model.CreateActorRequest) (*model.Actor, error) {
	if !policy.Can(actor.Role, policy.ResourceActors, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	if req.Role == model.RoleDeveloper && actor.Role != model.RoleDeveloper {
		return nil, ErrForbidden
	}

	schoolID := req.SchoolID
	if actor.Role != model.RoleDeveloper {
		if actor.SchoolID == nil {
			return nil, ErrCrossSchool
		}
		if schoolID != nil && *schoolID != *actor.SchoolID {
			return nil, ErrCrossSchool
		}
		schoolID = actor.SchoolID
	}
	// Every non-developer account must be bound to a school.
	if req.Role != model.RoleDeveloper && schoolID == nil {
		return nil, ErrCrossSchool
	}

	hash, err := s.authSvc.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	target := &model.Actor{
		Email:        req.Email,
		Role:         req.Role,
		SchoolID:     schoolID,
		PasswordHash: hash,
	}
	if err := s.actorRepo.Create(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// Update modifies an actor's email, password or active flag. The role never
// changes after creation.
func (s *ActorService) Update(ctx context.Context, actor *policy.Actor, id uuid.UUID, req *model.UpdateActorRequest) (*model.Actor, error) {
	if !policy.Can(actor.Role, policy.ResourceActors, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	target, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		target.Email = req.Email
	}
	if req.IsActive != nil {
		target.IsActive = *req.IsActive
	}
	if err := s.actorRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if req.Password != "" {
		hash, err := s.authSvc.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		if err := s.actorRepo.UpdatePassword(ctx, target.ID, hash); err != nil {
			return nil, err
		}
	}

	// A deactivated actor loses their session and cached scope immediately.
	if req.IsActive != nil && !*req.IsActive {
		_ = s.authSvc.Logout(ctx, target.ID)
		s.contextSvc.Invalidate(ctx, target.ID)
	}
	return target, nil
}

// Deactivate soft-deactivates an actor and revokes their session.
func (s *ActorService) Deactivate(ctx context.Context, actor *policy.Actor, id uuid.UUID) error {
	if !policy.Can(actor.Role, policy.ResourceActors, policy.ActionDelete) {
		return ErrForbidden
	}
	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return err
	}
	if err := s.actorRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	_ = s.authSvc.Logout(ctx, id)
	s.contextSvc.Invalidate(ctx, id)
	return nil
}
