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

// AttendanceService handles attendance marking and summaries.
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	classRepo      *repository.ClassRepository
	profileRepo    *repository.ProfileRepository
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendanceRepo *repository.AttendanceRepository, classRepo *repository.ClassRepository, profileRepo *repository.ProfileRepository) *AttendanceService {
	return &AttendanceService{attendanceRepo: attendanceRepo, classRepo: classRepo, profileRepo: profileRepo}
}

// List retrieves attendance records visible to the actor, newest first.
func (s *AttendanceService) List(ctx context.Context, actor *policy.Actor, studentID, classID *uuid.UUID, from, to *time.Time, limit, offset int) ([]model.AttendanceRecord, int, error) {
	if !policy.Can(actor.Role, policy.ResourceAttendance, policy.ActionRead) {
		return nil, 0, ErrForbidden
	}
	return s.attendanceRepo.List(ctx, policy.Scope(actor, policy.ResourceAttendance), studentID, classID, from, to, limit, offset)
}

// MarkBulk records attendance for a class on one date in a single
// transaction. Every listed student must belong to the class and the class to
// the actor's school. The affected monthly summaries are recomputed before
// the call returns.
func (s *AttendanceService) MarkBulk(ctx context.Context, actor *policy.Actor, req *model.BulkAttendanceRequest) error {
	if !policy.Can(actor.Role, policy.ResourceAttendance, policy.ActionCreate) {
		return ErrForbidden
	}
	if actor.SchoolID == nil {
		return ErrCrossSchool
	}

	classSchool, err := s.classRepo.SchoolIDForClass(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if classSchool != *actor.SchoolID {
		return ErrCrossSchool
	}

	for _, entry := range req.Entries {
		student, err := s.profileRepo.GetStudentByID(ctx, entry.StudentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		if student.ClassID != req.ClassID {
			return ErrSectionMismatch
		}
	}

	return s.attendanceRepo.BulkUpsert(ctx, req, actor.ID)
}

// Summary retrieves a student's monthly summary, honoring read visibility:
// the student must fall inside the actor's attendance scope.
func (s *AttendanceService) Summary(ctx context.Context, actor *policy.Actor, studentID uuid.UUID, month time.Time) (*model.AttendanceSummary, error) {
	if !policy.Can(actor.Role, policy.ResourceAttendance, policy.ActionRead) {
		return nil, ErrForbidden
	}
	if err := s.ensureStudentVisible(ctx, actor, studentID); err != nil {
		return nil, err
	}
	summary, err := s.attendanceRepo.GetSummary(ctx, studentID, month)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return summary, nil
}

// ensureStudentVisible checks a single-student read against the actor's
// scope without fetching records: students see themselves, parents their
// children, staff their school.
func (s *AttendanceService) ensureStudentVisible(ctx context.Context, actor *policy.Actor, studentID uuid.UUID) error {
	switch actor.Role {
	case model.RoleDeveloper:
		return nil
	case model.RoleStudent:
		if actor.ProfileID != studentID {
			return ErrNotFound
		}
		return nil
	case model.RoleParent:
		for _, id := range actor.ChildIDs {
			if id == studentID {
				return nil
			}
		}
		return ErrNotFound
	default:
		student, err := s.profileRepo.GetStudentByID(ctx, studentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		if actor.SchoolID == nil || student.SchoolID != *actor.SchoolID {
			return ErrNotFound
		}
		return nil
	}
}

// ClassReport builds the per-student status report for a class and date.
// Staff only; the class must be in the actor's school.
func (s *AttendanceService) ClassReport(ctx context.Context, actor *policy.Actor, classID uuid.UUID, subjectID *uuid.UUID, date time.Time) ([]model.AttendanceReportRow, error) {
	if !policy.Can(actor.Role, policy.ResourceAttendance, policy.ActionRead) {
		return nil, ErrForbidden
	}
	switch actor.Role {
	case model.RoleStudent, model.RoleParent:
		return nil, ErrForbidden
	}
	if actor.Role != model.RoleDeveloper {
		classSchool, err := s.classRepo.SchoolIDForClass(ctx, classID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if actor.SchoolID == nil || classSchool != *actor.SchoolID {
			return nil, ErrNotFound
		}
	}
	return s.attendanceRepo.ClassReport(ctx, classID, subjectID, date)
}
