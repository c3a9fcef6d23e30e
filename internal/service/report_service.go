package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
	"github.com/edustack/campus-backend/internal/repository"
)

// ReportService exposes read-only derived statistics. Everything here is a
// stateless computation over domain records, filtered through the same
// visibility scopes as the source data.
type ReportService struct {
	examRepo       *repository.ExamRepository
	assignmentRepo *repository.AssignmentRepository
	assignmentSvc  *AssignmentService
}

// NewReportService creates a new ReportService.
func NewReportService(examRepo *repository.ExamRepository, assignmentRepo *repository.AssignmentRepository, assignmentSvc *AssignmentService) *ReportService {
	return &ReportService{examRepo: examRepo, assignmentRepo: assignmentRepo, assignmentSvc: assignmentSvc}
}

// StudentPerformance builds the per-subject mark breakdown for one student
// within the actor's mark scope.
func (s *ReportService) StudentPerformance(ctx context.Context, actor *policy.Actor, studentID uuid.UUID) (*model.StudentPerformance, error) {
	if !policy.Can(actor.Role, policy.ResourceMarks, policy.ActionRead) {
		return nil, ErrForbidden
	}
	return s.examRepo.StudentPerformance(ctx, policy.Scope(actor, policy.ResourceMarks), studentID)
}

// AssignmentStats computes submission and grading rates for an assignment
// visible to the actor.
func (s *ReportService) AssignmentStats(ctx context.Context, actor *policy.Actor, assignmentID uuid.UUID) (*model.AssignmentStats, error) {
	if !policy.Can(actor.Role, policy.ResourceAssignments, policy.ActionRead) {
		return nil, ErrForbidden
	}
	if _, err := s.assignmentSvc.GetByID(ctx, actor, assignmentID); err != nil {
		return nil, err
	}
	return s.assignmentRepo.Stats(ctx, assignmentID)
}

// SubmissionReport lists every student of the assignment's section with
// their submission state, never omitting non-submitters. Staff only.
func (s *ReportService) SubmissionReport(ctx context.Context, actor *policy.Actor, assignmentID uuid.UUID) ([]model.SubmissionReportRow, error) {
	if !policy.Can(actor.Role, policy.ResourceAssignments, policy.ActionRead) {
		return nil, ErrForbidden
	}
	switch actor.Role {
	case model.RoleStudent, model.RoleParent:
		return nil, ErrForbidden
	}
	if _, err := s.assignmentSvc.GetByID(ctx, actor, assignmentID); err != nil {
		return nil, err
	}
	return s.assignmentRepo.SubmissionReport(ctx, assignmentID)
}
