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

// BehaviorService handles behavior categories, logs and point totals.
type BehaviorService struct {
	behaviorRepo *repository.BehaviorRepository
	profileRepo  *repository.ProfileRepository
}

// NewBehaviorService creates a new BehaviorService.
func NewBehaviorService(behaviorRepo *repository.BehaviorRepository, profileRepo *repository.ProfileRepository) *BehaviorService {
	return &BehaviorService{behaviorRepo: behaviorRepo, profileRepo: profileRepo}
}

// ListCategories retrieves behavior categories visible to the actor.
func (s *BehaviorService) ListCategories(ctx context.Context, actor *policy.Actor) ([]model.BehaviorCategory, error) {
	if !policy.Can(actor.Role, policy.ResourceBehaviorCategories, policy.ActionRead) {
		return nil, ErrForbidden
	}
	return s.behaviorRepo.ListCategories(ctx, policy.Scope(actor, policy.ResourceBehaviorCategories))
}

// CreateCategory defines a behavior category in the actor's school.
func (s *BehaviorService) CreateCategory(ctx context.Context, actor *policy.Actor, req *model.CreateBehaviorCategoryRequest) (*model.BehaviorCategory, error) {
	if !policy.Can(actor.Role, policy.ResourceBehaviorCategories, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	if actor.SchoolID == nil {
		return nil, ErrCrossSchool
	}
	category := &model.BehaviorCategory{
		SchoolID: *actor.SchoolID,
		Name:     req.Name,
		Type:     req.Type,
		Points:   req.Points,
	}
	if err := s.behaviorRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetLog retrieves one behavior log visible to the actor.
func (s *BehaviorService) GetLog(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*model.BehaviorLog, error) {
	if !policy.Can(actor.Role, policy.ResourceBehaviorLogs, policy.ActionRead) {
		return nil, ErrForbidden
	}
	log, err := s.behaviorRepo.GetLogByID(ctx, policy.Scope(actor, policy.ResourceBehaviorLogs), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return log, nil
}

// ListLogs retrieves behavior logs visible to the actor, newest first.
func (s *BehaviorService) ListLogs(ctx context.Context, actor *policy.Actor, studentID *uuid.UUID, limit, offset int) ([]model.BehaviorLog, int, error) {
	if !policy.Can(actor.Role, policy.ResourceBehaviorLogs, policy.ActionRead) {
		return nil, 0, ErrForbidden
	}
	return s.behaviorRepo.ListLogs(ctx, policy.Scope(actor, policy.ResourceBehaviorLogs), studentID, limit, offset)
}

// CreateLog records a behavior incident. The student and category must be in
// the actor's school.
func (s *BehaviorService) CreateLog(ctx context.Context, actor *policy.Actor, req *model.CreateBehaviorLogRequest) (*model.BehaviorLog, error) {
	if !policy.Can(actor.Role, policy.ResourceBehaviorLogs, policy.ActionCreate) {
		return nil, ErrForbidden
	}

	student, err := s.profileRepo.GetStudentByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actor.Role != model.RoleDeveloper {
		if actor.SchoolID == nil || student.SchoolID != *actor.SchoolID {
			return nil, ErrCrossSchool
		}
	}
	category, err := s.behaviorRepo.GetCategoryByID(ctx, policy.Scope(actor, policy.ResourceBehaviorCategories), req.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	log := &model.BehaviorLog{
		StudentID:      req.StudentID,
		CategoryID:     req.CategoryID,
		CategoryName:   category.Name,
		CategoryPoints: category.Points,
		Title:          req.Title,
		Description:    req.Description,
		DateRecorded:   req.DateRecorded,
		ReportedBy:     actor.ID,
		ActionTaken:    req.ActionTaken,
		ParentNotified: req.ParentNotified,
	}
	if err := s.behaviorRepo.CreateLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// UpdateLog amends an incident visible to the actor.
func (s *BehaviorService) UpdateLog(ctx context.Context, actor *policy.Actor, id uuid.UUID, req *model.UpdateBehaviorLogRequest) (*model.BehaviorLog, error) {
	if !policy.Can(actor.Role, policy.ResourceBehaviorLogs, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	log, err := s.GetLog(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		log.Title = req.Title
	}
	if req.Description != "" {
		log.Description = req.Description
	}
	if req.ActionTaken != "" {
		log.ActionTaken = req.ActionTaken
	}
	if req.ParentNotified != nil {
		log.ParentNotified = *req.ParentNotified
	}

	if err := s.behaviorRepo.UpdateLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// PointTotal sums category points across a student's logs, honoring read
// visibility.
func (s *BehaviorService) PointTotal(ctx context.Context, actor *policy.Actor, studentID uuid.UUID) (*model.BehaviorPointTotal, error) {
	if !policy.Can(actor.Role, policy.ResourceBehaviorLogs, policy.ActionRead) {
		return nil, ErrForbidden
	}
	switch actor.Role {
	case model.RoleStudent:
		if actor.ProfileID != studentID {
			return nil, ErrNotFound
		}
	case model.RoleParent:
		visible := false
		for _, id := range actor.ChildIDs {
			if id == studentID {
				visible = true
				break
			}
		}
		if !visible {
			return nil, ErrNotFound
		}
	}
	return s.behaviorRepo.PointTotal(ctx, studentID)
}
