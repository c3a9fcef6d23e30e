package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
)

// Fee payment errors.
var (
	ErrPaymentExceedsDue = errors.New("payment exceeds outstanding balance")
	ErrFeeAlreadySettled = errors.New("fee record is already settled")
)

// FeeRepository handles fee structures, records and payments.
type FeeRepository struct {
	pool *pgxpool.Pool
}

// NewFeeRepository creates a new FeeRepository.
func NewFeeRepository(pool *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{pool: pool}
}

const structureColumns = `fs.id, fs.school_id, fs.academic_year, fs.class_level, fs.tuition_fee, fs.admission_fee, fs.activity_fee, fs.transport_fee, fs.total_fee, fs.created_at`

func scanStructure(row interface{ Scan(...interface{}) error }) (*model.FeeStructure, error) {
	s := &model.FeeStructure{}
	err := row.Scan(&s.ID, &s.SchoolID, &s.AcademicYear, &s.ClassLevel, &s.TuitionFee,
		&s.AdmissionFee, &s.ActivityFee, &s.TransportFee, &s.TotalFee, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetStructureByID retrieves a fee structure within the given scope.
func (r *FeeRepository) GetStructureByID(ctx context.Context, scope *policy.Predicate, id uuid.UUID) (*model.FeeStructure, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("fs.id = ?", id)
	return scanStructure(r.pool.QueryRow(ctx,
		`SELECT `+structureColumns+` FROM fee_structures fs`+w.clause(), w.args...))
}

// ListStructures retrieves fee structures within the given scope.
func (r *FeeRepository) ListStructures(ctx context.Context, scope *policy.Predicate, academicYear string) ([]model.FeeStructure, error) {
	w := newWhere()
	w.addScope(scope)
	if academicYear != "" {
		w.add("fs.academic_year = ?", academicYear)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+structureColumns+` FROM fee_structures fs`+w.clause()+
			` ORDER BY fs.academic_year DESC, fs.class_level`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var structures []model.FeeStructure
	for rows.Next() {
		s, err := scanStructure(rows)
		if err != nil {
			return nil, err
		}
		structures = append(structures, *s)
	}
	return structures, rows.Err()
}

// CreateStructure inserts a fee structure. TotalFee is stored precomputed.
func (r *FeeRepository) CreateStructure(ctx context.Context, s *model.FeeStructure) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO fee_structures (school_id, academic_year, class_level, tuition_fee, admission_fee, activity_fee, transport_fee, total_fee)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		s.SchoolID, s.AcademicYear, s.ClassLevel, s.TuitionFee, s.AdmissionFee,
		s.ActivityFee, s.TransportFee, s.TotalFee,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

const feeRecordColumns = `f.id, f.student_id, f.structure_id, f.amount, f.late_fee, f.paid_amount, f.due_date, f.status, f.payment_date, f.created_at, f.updated_at`

func scanFeeRecord(row interface{ Scan(...interface{}) error }) (*model.FeeRecord, error) {
	f := &model.FeeRecord{}
	err := row.Scan(&f.ID, &f.StudentID, &f.StructureID, &f.Amount, &f.LateFee, &f.PaidAmount,
		&f.DueDate, &f.Status, &f.PaymentDate, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// GetRecordByID retrieves a fee record within the given scope.
func (r *FeeRepository) GetRecordByID(ctx context.Context, scope *policy.Predicate, id uuid.UUID) (*model.FeeRecord, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("f.id = ?", id)
	return scanFeeRecord(r.pool.QueryRow(ctx,
		`SELECT `+feeRecordColumns+` FROM fee_records f
		 JOIN student_profiles st ON st.id = f.student_id`+w.clause(), w.args...))
}

// ListRecords retrieves fee records within the given scope, optionally
// filtered by student and status.
func (r *FeeRepository) ListRecords(ctx context.Context, scope *policy.Predicate, studentID *uuid.UUID, status *model.FeeStatus, limit, offset int) ([]model.FeeRecord, int, error) {
	w := newWhere()
	w.addScope(scope)
	if studentID != nil {
		w.add("f.student_id = ?", *studentID)
	}
	if status != nil {
		w.add("f.status = ?", *status)
	}

	const base = ` FROM fee_records f JOIN student_profiles st ON st.id = f.student_id`

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*)`+base+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limPh, offPh := w.bind(limit), w.bind(offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+feeRecordColumns+base+w.clause()+
			` ORDER BY f.due_date LIMIT `+limPh+` OFFSET `+offPh, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []model.FeeRecord
	for rows.Next() {
		f, err := scanFeeRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *f)
	}
	return records, total, rows.Err()
}

// CreateRecord bills a student against a structure.
func (r *FeeRepository) CreateRecord(ctx context.Context, f *model.FeeRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO fee_records (student_id, structure_id, amount, late_fee, paid_amount, due_date, status)
		 VALUES ($1, $2, $3, $4, 0, $5, $6)
		 RETURNING id, paid_amount, created_at, updated_at`,
		f.StudentID, f.StructureID, f.Amount, f.LateFee, f.DueDate, f.Status,
	).Scan(&f.ID, &f.PaidAmount, &f.CreatedAt, &f.UpdatedAt)
}

// ApplyPayment applies one payment under a row lock so concurrent payments
// serialize. Over-payment is rejected; the status flips to paid exactly when
// the outstanding balance reaches zero.
func (r *FeeRepository) ApplyPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal, now time.Time) (*model.FeeRecord, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	f, err := scanFeeRecord(tx.QueryRow(ctx,
		`SELECT `+feeRecordColumns+` FROM fee_records f WHERE f.id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}

	if f.Status == model.FeeStatusPaid {
		return nil, ErrFeeAlreadySettled
	}
	if amount.GreaterThan(f.Outstanding()) {
		return nil, ErrPaymentExceedsDue
	}

	f.PaidAmount = f.PaidAmount.Add(amount)
	f.Status = f.DeriveStatus(now)
	f.PaymentDate = &now

	_, err = tx.Exec(ctx,
		`UPDATE fee_records
		 SET paid_amount = $1, status = $2, payment_date = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		f.PaidAmount, f.Status, f.PaymentDate, f.ID,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

// OutstandingSummary aggregates a student's open dues.
func (r *FeeRepository) OutstandingSummary(ctx context.Context, studentID uuid.UUID) (*model.FeeOutstandingSummary, error) {
	s := &model.FeeOutstandingSummary{StudentID: studentID}
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount + late_fee), 0),
		        COALESCE(SUM(paid_amount), 0),
		        COALESCE(SUM(amount + late_fee - paid_amount), 0),
		        COUNT(*) FILTER (WHERE status <> 'paid')
		 FROM fee_records WHERE student_id = $1`,
		studentID,
	).Scan(&s.TotalBilled, &s.TotalPaid, &s.TotalOutstanding, &s.OpenRecords)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// MarkOverdue flips pending records past their due date to overdue and
// returns the affected record IDs. Used by the periodic sweep. Records with
// a payment stay partial: partial outranks overdue, same as DeriveStatus.
func (r *FeeRepository) MarkOverdue(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`UPDATE fee_records
		 SET status = 'overdue', updated_at = CURRENT_TIMESTAMP
		 WHERE due_date < $1 AND status = 'pending'
		 RETURNING id`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIDs(rows)
}
