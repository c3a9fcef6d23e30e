package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeeStatus enumerates fee record states.
type FeeStatus string

const (
	FeeStatusPending FeeStatus = "pending"
	FeeStatusPartial FeeStatus = "partial"
	FeeStatusPaid    FeeStatus = "paid"
	FeeStatusOverdue FeeStatus = "overdue"
)

// FeeStructure defines the fee components for a class level in one
// academic year.
type FeeStructure struct {
	ID           uuid.UUID       `json:"id"`
	SchoolID     uuid.UUID       `json:"school_id"`
	AcademicYear string          `json:"academic_year"`
	ClassLevel   string          `json:"class_level"`
	TuitionFee   decimal.Decimal `json:"tuition_fee"`
	AdmissionFee decimal.Decimal `json:"admission_fee"`
	ActivityFee  decimal.Decimal `json:"activity_fee"`
	TransportFee decimal.Decimal `json:"transport_fee"`
	TotalFee     decimal.Decimal `json:"total_fee"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FeeRecord tracks one student's dues against a structure. PaidAmount never
// exceeds Amount+LateFee; status flips to paid exactly when the outstanding
// balance reaches zero.
type FeeRecord struct {
	ID          uuid.UUID       `json:"id"`
	StudentID   uuid.UUID       `json:"student_id"`
	StructureID uuid.UUID       `json:"structure_id"`
	Amount      decimal.Decimal `json:"amount"`
	LateFee     decimal.Decimal `json:"late_fee"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	DueDate     time.Time       `json:"due_date"`
	Status      FeeStatus       `json:"status"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Outstanding returns amount + late fee − paid.
func (f *FeeRecord) Outstanding() decimal.Decimal {
	return f.Amount.Add(f.LateFee).Sub(f.PaidAmount)
}

// DeriveStatus computes the status from amounts and the due date. Partial
// outranks overdue: once any payment lands, a past-due record reads partial.
// The overdue sweep applies the same precedence and only flips pending rows.
func (f *FeeRecord) DeriveStatus(now time.Time) FeeStatus {
	switch {
	case f.PaidAmount.GreaterThanOrEqual(f.Amount.Add(f.LateFee)):
		return FeeStatusPaid
	case f.PaidAmount.IsPositive():
		return FeeStatusPartial
	case now.After(f.DueDate):
		return FeeStatusOverdue
	default:
		return FeeStatusPending
	}
}

// CreateFeeStructureRequest is the payload for defining a fee structure.
type CreateFeeStructureRequest struct {
	AcademicYear string          `json:"academic_year" binding:"required,min=4,max=20"`
	ClassLevel   string          `json:"class_level" binding:"required,min=1,max=50"`
	TuitionFee   decimal.Decimal `json:"tuition_fee" binding:"required"`
	AdmissionFee decimal.Decimal `json:"admission_fee" binding:"omitempty"`
	ActivityFee  decimal.Decimal `json:"activity_fee" binding:"omitempty"`
	TransportFee decimal.Decimal `json:"transport_fee" binding:"omitempty"`
}

// CreateFeeRecordRequest bills one student against a structure.
type CreateFeeRecordRequest struct {
	StudentID   uuid.UUID       `json:"student_id" binding:"required"`
	StructureID uuid.UUID       `json:"structure_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	LateFee     decimal.Decimal `json:"late_fee" binding:"omitempty"`
	DueDate     time.Time       `json:"due_date" binding:"required"`
}

// MakePaymentRequest applies a payment to a fee record.
type MakePaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// FeeOutstandingSummary aggregates a student's dues.
type FeeOutstandingSummary struct {
	StudentID        uuid.UUID       `json:"student_id"`
	TotalBilled      decimal.Decimal `json:"total_billed"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	OpenRecords      int             `json:"open_records"`
}
