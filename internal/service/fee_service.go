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

// FeeService handles fee structures, billing and payments.
type FeeService struct {
	feeRepo     *repository.FeeRepository
	profileRepo *repository.ProfileRepository
}

// NewFeeService creates a new FeeService.
func NewFeeService(feeRepo *repository.FeeRepository, profileRepo *repository.ProfileRepository) *FeeService {
	return &FeeService{feeRepo: feeRepo, profileRepo: profileRepo}
}

// CreateStructure defines a fee structure for the actor's school. The total
// is the sum of the components.
func (s *FeeService) CreateStructure(ctx context.Context, actor *policy.Actor, req *model.CreateFeeStructureRequest) (*model.FeeStructure, error) {
	if !policy.Can(actor.Role, policy.ResourceFeeStructures, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	if actor.SchoolID == nil {
		return nil, ErrCrossSchool
	}

	structure := &model.FeeStructure{
		SchoolID:     *actor.SchoolID,
		AcademicYear: req.AcademicYear,
		ClassLevel:   req.ClassLevel,
		TuitionFee:   req.TuitionFee,
		AdmissionFee: req.AdmissionFee,
		ActivityFee:  req.ActivityFee,
		TransportFee: req.TransportFee,
		TotalFee:     req.TuitionFee.Add(req.AdmissionFee).Add(req.ActivityFee).Add(req.TransportFee),
	}
	if err := s.feeRepo.CreateStructure(ctx, structure); err != nil {
		return nil, err
	}
	return structure, nil
}

// ListStructures retrieves fee structures visible to the actor.
func (s *FeeService) ListStructures(ctx context.Context, actor *policy.Actor, academicYear string) ([]model.FeeStructure, error) {
	if !policy.Can(actor.Role, policy.ResourceFeeStructures, policy.ActionRead) {
		return nil, ErrForbidden
	}
	return s.feeRepo.ListStructures(ctx, policy.Scope(actor, policy.ResourceFeeStructures), academicYear)
}

// CreateRecord bills a student against a structure. Both must live in the
// actor's school.
func (s *FeeService) CreateRecord(ctx context.Context, actor *policy.Actor, req *model.CreateFeeRecordRequest) (*model.FeeRecord, error) {
	if !policy.Can(actor.Role, policy.ResourceFeeRecords, policy.ActionCreate) {
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
	structure, err := s.feeRepo.GetStructureByID(ctx, policy.Scope(actor, policy.ResourceFeeStructures), req.StructureID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if structure.SchoolID != student.SchoolID {
		return nil, ErrCrossSchool
	}

	record := &model.FeeRecord{
		StudentID:   req.StudentID,
		StructureID: req.StructureID,
		Amount:      req.Amount,
		LateFee:     req.LateFee,
		DueDate:     req.DueDate,
	}
	record.Status = record.DeriveStatus(time.Now())
	if err := s.feeRepo.CreateRecord(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetRecord retrieves one fee record visible to the actor.
func (s *FeeService) GetRecord(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*model.FeeRecord, error) {
	if !policy.Can(actor.Role, policy.ResourceFeeRecords, policy.ActionRead) {
		return nil, ErrForbidden
	}
	record, err := s.feeRepo.GetRecordByID(ctx, policy.Scope(actor, policy.ResourceFeeRecords), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// ListRecords retrieves fee records visible to the actor.
func (s *FeeService) ListRecords(ctx context.Context, actor *policy.Actor, studentID *uuid.UUID, status *model.FeeStatus, limit, offset int) ([]model.FeeRecord, int, error) {
	if !policy.Can(actor.Role, policy.ResourceFeeRecords, policy.ActionRead) {
		return nil, 0, ErrForbidden
	}
	return s.feeRepo.ListRecords(ctx, policy.Scope(actor, policy.ResourceFeeRecords), studentID, status, limit, offset)
}

// MakePayment applies a payment to a record. The amount must be positive and
// may never push paid_amount past amount+late_fee; concurrent payments
// serialize on a row lock inside the repository.
func (s *FeeService) MakePayment(ctx context.Context, actor *policy.Actor, recordID uuid.UUID, req *model.MakePaymentRequest) (*model.FeeRecord, error) {
	if !policy.Can(actor.Role, policy.ResourceFeeRecords, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	if !req.Amount.IsPositive() {
		return nil, ErrPaymentNotPositive
	}
	// Scope check before the locked write.
	if _, err := s.GetRecord(ctx, actor, recordID); err != nil {
		return nil, err
	}
	return s.feeRepo.ApplyPayment(ctx, recordID, req.Amount, time.Now())
}

// OutstandingSummary aggregates one student's dues, honoring visibility.
func (s *FeeService) OutstandingSummary(ctx context.Context, actor *policy.Actor, studentID uuid.UUID) (*model.FeeOutstandingSummary, error) {
	if !policy.Can(actor.Role, policy.ResourceFeeRecords, policy.ActionRead) {
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
	case model.RolePrincipal:
		student, err := s.profileRepo.GetStudentByID(ctx, studentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if actor.SchoolID == nil || student.SchoolID != *actor.SchoolID {
			return nil, ErrNotFound
		}
	}
	return s.feeRepo.OutstandingSummary(ctx, studentID)
}
