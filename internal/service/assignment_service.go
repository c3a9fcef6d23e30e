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

// AssignmentService handles assignments, submissions and grading.
type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	classRepo      *repository.ClassRepository
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(assignmentRepo *repository.AssignmentRepository, classRepo *repository.ClassRepository) *AssignmentService {
	return &AssignmentService{assignmentRepo: assignmentRepo, classRepo: classRepo}
}

// GetByID retrieves one assignment visible to the actor.
func (s *AssignmentService) GetByID(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*model.Assignment, error) {
	if !policy.Can(actor.Role, policy.ResourceAssignments, policy.ActionRead) {
		return nil, ErrForbidden
	}
	assignment, err := s.assignmentRepo.GetByID(ctx, policy.Scope(actor, policy.ResourceAssignments), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return assignment, nil
}

// List retrieves assignments visible to the actor.
func (s *AssignmentService) List(ctx context.Context, actor *policy.Actor, subjectID *uuid.UUID, status *model.AssignmentStatus, limit, offset int) ([]model.Assignment, int, error) {
	if !policy.Can(actor.Role, policy.ResourceAssignments, policy.ActionRead) {
		return nil, 0, ErrForbidden
	}
	return s.assignmentRepo.List(ctx, policy.Scope(actor, policy.ResourceAssignments), subjectID, status, limit, offset)
}

// Create publishes an assignment. Teachers author in their own name;
// principals and developers may not author (assignments carry a teacher
// identity), so only teachers create here.
func (s *AssignmentService) Create(ctx context.Context, actor *policy.Actor, req *model.CreateAssignmentRequest) (*model.Assignment, error) {
	if !policy.Can(actor.Role, policy.ResourceAssignments, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	if actor.Role != model.RoleTeacher {
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
	ok, err := s.classRepo.SectionBelongsToClass(ctx, req.SectionID, req.ClassID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSectionMismatch
	}

	assignment := &model.Assignment{
		SchoolID:     *actor.SchoolID,
		Title:        req.Title,
		Description:  req.Description,
		ClassID:      req.ClassID,
		SectionID:    req.SectionID,
		SubjectID:    req.SubjectID,
		TeacherID:    actor.ProfileID,
		AssignedDate: req.AssignedDate,
		DueDate:      req.DueDate,
		MaxMarks:     req.MaxMarks,
		Status:       model.AssignmentStatusAssigned,
		Instructions: req.Instructions,
		Attachment:   req.Attachment,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Update edits an assignment within the actor's scope. For teachers the
// ownership scope already restricts this to their own assignments.
func (s *AssignmentService) Update(ctx context.Context, actor *policy.Actor, id uuid.UUID, req *model.UpdateAssignmentRequest) (*model.Assignment, error) {
	if !policy.Can(actor.Role, policy.ResourceAssignments, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	assignment, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		assignment.Title = req.Title
	}
	if req.Description != "" {
		assignment.Description = req.Description
	}
	if req.DueDate != nil {
		assignment.DueDate = *req.DueDate
	}
	if req.MaxMarks != nil {
		assignment.MaxMarks = *req.MaxMarks
	}
	if req.Status != "" {
		assignment.Status = req.Status
	}
	if req.Instructions != "" {
		assignment.Instructions = req.Instructions
	}

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Submit records a student's submission. Lateness is strict: submitting
// exactly at the deadline is on time. Re-submitting before grading replaces
// the previous submission; after grading it is rejected.
func (s *AssignmentService) Submit(ctx context.Context, actor *policy.Actor, assignmentID uuid.UUID, req *model.SubmitAssignmentRequest, now time.Time) (*model.AssignmentSubmission, error) {
	if !policy.Can(actor.Role, policy.ResourceSubmissions, policy.ActionCreate) {
		return nil, ErrForbidden
	}

	// Visibility doubles as the section-membership check.
	assignment, err := s.GetByID(ctx, actor, assignmentID)
	if err != nil {
		return nil, err
	}

	existing, err := s.assignmentRepo.GetSubmission(ctx, assignmentID, actor.ProfileID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil && existing.Status == model.SubmissionStatusGraded {
		return nil, ErrSubmissionGraded
	}

	isLate := now.After(assignment.DueDate)
	status := model.SubmissionStatusSubmitted
	if isLate {
		status = model.SubmissionStatusLate
	}

	submission := &model.AssignmentSubmission{
		AssignmentID:   assignmentID,
		StudentID:      actor.ProfileID,
		SubmissionText: req.SubmissionText,
		Attachment:     req.Attachment,
		SubmittedAt:    now,
		Status:         status,
		IsLate:         isLate,
	}
	if err := s.assignmentRepo.UpsertSubmission(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// Grade records marks and feedback on a submission visible to the actor.
func (s *AssignmentService) Grade(ctx context.Context, actor *policy.Actor, submissionID uuid.UUID, req *model.GradeSubmissionRequest) (*model.AssignmentSubmission, error) {
	if !policy.Can(actor.Role, policy.ResourceSubmissions, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	submission, err := s.assignmentRepo.GetSubmissionByID(ctx, policy.Scope(actor, policy.ResourceSubmissions), submissionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	assignment, err := s.GetByID(ctx, actor, submission.AssignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.MaxMarks > 0 && req.MarksObtained > assignment.MaxMarks {
		return nil, ErrMarksOutOfRange
	}

	submission.Status = model.SubmissionStatusGraded
	submission.MarksObtained = &req.MarksObtained
	submission.Feedback = req.Feedback
	submission.GradedBy = &actor.ID
	if err := s.assignmentRepo.GradeSubmission(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// ListSubmissions retrieves the submissions of an assignment visible to the
// actor.
func (s *AssignmentService) ListSubmissions(ctx context.Context, actor *policy.Actor, assignmentID uuid.UUID) ([]model.AssignmentSubmission, error) {
	if !policy.Can(actor.Role, policy.ResourceSubmissions, policy.ActionRead) {
		return nil, ErrForbidden
	}
	switch actor.Role {
	case model.RoleStudent, model.RoleParent:
		return nil, ErrForbidden
	}
	if _, err := s.GetByID(ctx, actor, assignmentID); err != nil {
		return nil, err
	}
	return s.assignmentRepo.ListSubmissions(ctx, assignmentID)
}

// MySubmission retrieves the calling student's own submission.
func (s *AssignmentService) MySubmission(ctx context.Context, actor *policy.Actor, assignmentID uuid.UUID) (*model.AssignmentSubmission, error) {
	if actor.Role != model.RoleStudent {
		return nil, ErrForbidden
	}
	submission, err := s.assignmentRepo.GetSubmission(ctx, assignmentID, actor.ProfileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return submission, nil
}
