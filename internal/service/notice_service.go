package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
	"github.com/edustack/campus-backend/internal/repository"
)

// NoticeService handles notice publishing and targeting.
type NoticeService struct {
	noticeRepo *repository.NoticeRepository
	classRepo  *repository.ClassRepository
}

// NewNoticeService creates a new NoticeService.
func NewNoticeService(noticeRepo *repository.NoticeRepository, classRepo *repository.ClassRepository) *NoticeService {
	return &NoticeService{noticeRepo: noticeRepo, classRepo: classRepo}
}

// GetByID retrieves one notice visible to the actor.
func (s *NoticeService) GetByID(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*model.Notice, error) {
	if !policy.Can(actor.Role, policy.ResourceNotices, policy.ActionRead) {
		return nil, ErrForbidden
	}
	notice, err := s.noticeRepo.GetByID(ctx, policy.Scope(actor, policy.ResourceNotices), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return notice, nil
}

// List retrieves notices visible to the actor. Students and parents only see
// live notices: published and not expired.
func (s *NoticeService) List(ctx context.Context, actor *policy.Actor, limit, offset int) ([]model.Notice, int, error) {
	if !policy.Can(actor.Role, policy.ResourceNotices, policy.ActionRead) {
		return nil, 0, ErrForbidden
	}
	onlyLive := actor.Role == model.RoleStudent || actor.Role == model.RoleParent
	return s.noticeRepo.List(ctx, policy.Scope(actor, policy.ResourceNotices), onlyLive, time.Now(), limit, offset)
}

// Create publishes a notice in the actor's school. Every targeted class must
// belong to the same school; no targets means school-wide.
func (s *NoticeService) Create(ctx context.Context, actor *policy.Actor, req *model.CreateNoticeRequest) (*model.Notice, error) {
	if !policy.Can(actor.Role, policy.ResourceNotices, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	if actor.SchoolID == nil {
		return nil, ErrCrossSchool
	}
	if err := s.validateTargets(ctx, *actor.SchoolID, req.TargetClassIDs); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = model.NoticePriorityMedium
	}
	notice := &model.Notice{
		SchoolID:       *actor.SchoolID,
		Title:          req.Title,
		Content:        req.Content,
		Priority:       priority,
		TargetClassIDs: req.TargetClassIDs,
		Attachment:     req.Attachment,
		CreatedBy:      actor.ID,
		PublishDate:    req.PublishDate,
		ExpiryDate:     req.ExpiryDate,
	}
	if err := s.noticeRepo.Create(ctx, notice); err != nil {
		return nil, err
	}
	return notice, nil
}

// Update edits a notice visible to the actor.
func (s *NoticeService) Update(ctx context.Context, actor *policy.Actor, id uuid.UUID, req *model.UpdateNoticeRequest) (*model.Notice, error) {
	if !policy.Can(actor.Role, policy.ResourceNotices, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	notice, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if req.TargetClassIDs != nil {
		if err := s.validateTargets(ctx, notice.SchoolID, *req.TargetClassIDs); err != nil {
			return nil, err
		}
	}

	if req.Title != "" {
		notice.Title = req.Title
	}
	if req.Content != "" {
		notice.Content = req.Content
	}
	if req.Priority != "" {
		notice.Priority = req.Priority
	}
	if req.ExpiryDate != nil {
		notice.ExpiryDate = req.ExpiryDate
	}
	if req.IsActive != nil {
		notice.IsActive = *req.IsActive
	}

	if err := s.noticeRepo.Update(ctx, notice, req.TargetClassIDs); err != nil {
		return nil, err
	}
	return s.noticeRepo.GetByID(ctx, policy.Scope(actor, policy.ResourceNotices), id)
}

// Deactivate retires a notice visible to the actor.
func (s *NoticeService) Deactivate(ctx context.Context, actor *policy.Actor, id uuid.UUID) error {
	if !policy.Can(actor.Role, policy.ResourceNotices, policy.ActionDelete) {
		return ErrForbidden
	}
	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return err
	}
	return s.noticeRepo.Deactivate(ctx, id)
}

func (s *NoticeService) validateTargets(ctx context.Context, schoolID uuid.UUID, classIDs []uuid.UUID) error {
	for _, classID := range classIDs {
		classSchool, err := s.classRepo.SchoolIDForClass(ctx, classID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		if classSchool != schoolID {
			return ErrCrossSchool
		}
	}
	return nil
}
