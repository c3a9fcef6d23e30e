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

// TimetableService handles timetable slot management.
type TimetableService struct {
	timetableRepo *repository.TimetableRepository
	classRepo     *repository.ClassRepository
}

// NewTimetableService creates a new TimetableService.
func NewTimetableService(timetableRepo *repository.TimetableRepository, classRepo *repository.ClassRepository) *TimetableService {
	return &TimetableService{timetableRepo: timetableRepo, classRepo: classRepo}
}

// List retrieves timetable slots visible to the actor.
func (s *TimetableService) List(ctx context.Context, actor *policy.Actor, classID *uuid.UUID, weekday *model.Weekday) ([]model.TimetableSlot, error) {
	if !policy.Can(actor.Role, policy.ResourceTimetable, policy.ActionRead) {
		return nil, ErrForbidden
	}
	return s.timetableRepo.List(ctx, policy.Scope(actor, policy.ResourceTimetable), classID, weekday)
}

// TeacherSchedule retrieves a teacher's own weekly schedule.
func (s *TimetableService) TeacherSchedule(ctx context.Context, actor *policy.Actor) ([]model.TimetableSlot, error) {
	if actor.Role != model.RoleTeacher {
		return nil, ErrForbidden
	}
	return s.timetableRepo.ListByTeacher(ctx, actor.ProfileID)
}

// Create schedules a period. A slot colliding on (class, weekday, start_time)
// is rejected, never overwritten.
func (s *TimetableService) Create(ctx context.Context, actor *policy.Actor, req *model.CreateTimetableSlotRequest) (*model.TimetableSlot, error) {
	if !policy.Can(actor.Role, policy.ResourceTimetable, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	if actor.SchoolID == nil {
		return nil, ErrCrossSchool
	}

	classSchool, err := s.classRepo.SchoolIDForClass(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if classSchool != *actor.SchoolID {
		return nil, ErrCrossSchool
	}
	if req.SectionID != nil {
		ok, err := s.classRepo.SectionBelongsToClass(ctx, *req.SectionID, req.ClassID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrSectionMismatch
		}
	}

	slot := &model.TimetableSlot{
		SchoolID:   *actor.SchoolID,
		ClassID:    req.ClassID,
		SectionID:  req.SectionID,
		SubjectID:  req.SubjectID,
		TeacherID:  req.TeacherID,
		Weekday:    req.Weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		RoomNumber: req.RoomNumber,
	}
	if err := s.timetableRepo.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// Update moves or edits a period visible to the actor.
func (s *TimetableService) Update(ctx context.Context, actor *policy.Actor, id uuid.UUID, req *model.UpdateTimetableSlotRequest) (*model.TimetableSlot, error) {
	if !policy.Can(actor.Role, policy.ResourceTimetable, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	slot, err := s.timetableRepo.GetByID(ctx, policy.Scope(actor, policy.ResourceTimetable), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.SubjectID != nil {
		slot.SubjectID = *req.SubjectID
	}
	if req.TeacherID != nil {
		slot.TeacherID = *req.TeacherID
	}
	if req.Weekday != nil {
		slot.Weekday = *req.Weekday
	}
	if req.StartTime != "" {
		slot.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		slot.EndTime = req.EndTime
	}
	if req.RoomNumber != "" {
		slot.RoomNumber = req.RoomNumber
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}

	if err := s.timetableRepo.Update(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// Delete removes a period visible to the actor.
func (s *TimetableService) Delete(ctx context.Context, actor *policy.Actor, id uuid.UUID) error {
	if !policy.Can(actor.Role, policy.ResourceTimetable, policy.ActionDelete) {
		return ErrForbidden
	}
	if _, err := s.timetableRepo.GetByID(ctx, policy.Scope(actor, policy.ResourceTimetable), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.timetableRepo.Delete(ctx, id)
}
