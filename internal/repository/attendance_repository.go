package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
)

// AttendanceRepository handles attendance records and their monthly summaries.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

const attendanceColumns = `a.id, a.student_id, a.class_id, a.subject_id, a.date, a.status, a.marked_by, a.remarks, a.created_at, a.updated_at`

// attendanceListOrder is the documented stable order: newest day first, then
// students alphabetically within a day.
const attendanceListOrder = ` ORDER BY a.date DESC, st.first_name ASC, st.last_name ASC`

func scanAttendance(row interface{ Scan(...interface{}) error }) (*model.AttendanceRecord, error) {
	rec := &model.AttendanceRecord{}
	err := row.Scan(&rec.ID, &rec.StudentID, &rec.ClassID, &rec.SubjectID, &rec.Date, &rec.Status,
		&rec.MarkedBy, &rec.Remarks, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List retrieves attendance records within the given scope, newest first.
func (r *AttendanceRepository) List(ctx context.Context, scope *policy.Predicate, studentID, classID *uuid.UUID, from, to *time.Time, limit, offset int) ([]model.AttendanceRecord, int, error) {
	w := newWhere()
	w.addScope(scope)
	if studentID != nil {
		w.add("a.student_id = ?", *studentID)
	}
	if classID != nil {
		w.add("a.class_id = ?", *classID)
	}
	if from != nil {
		w.add("a.date >= ?", *from)
	}
	if to != nil {
		w.add("a.date <= ?", *to)
	}

	const base = ` FROM attendance_records a JOIN student_profiles st ON st.id = a.student_id`

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*)`+base+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limPh, offPh := w.bind(limit), w.bind(offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+attendanceColumns+base+w.clause()+
			attendanceListOrder+` LIMIT `+limPh+` OFFSET `+offPh, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *rec)
	}
	return records, total, rows.Err()
}

// BulkUpsert writes one attendance record per entry for (class, subject, date)
// in a single transaction, then recomputes the monthly summary of every
// affected student. Re-submitting an identical payload leaves exactly one
// record per student.
func (r *AttendanceRepository) BulkUpsert(ctx context.Context, req *model.BulkAttendanceRequest, markedBy uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, entry := range req.Entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO attendance_records (student_id, class_id, subject_id, date, status, marked_by, remarks)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (student_id, class_id, subject_key, date) DO UPDATE
			 SET status = EXCLUDED.status,
			     marked_by = EXCLUDED.marked_by,
			     remarks = EXCLUDED.remarks,
			     updated_at = CURRENT_TIMESTAMP`,
			entry.StudentID, req.ClassID, req.SubjectID, req.Date, entry.Status, markedBy, entry.Remarks,
		)
		if err != nil {
			return err
		}
		if err := recomputeSummary(ctx, tx, entry.StudentID, req.Date); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// recomputeSummary rebuilds the (student, month) aggregate from the record
// rows. Zero records yields a 0% summary, not an error.
func recomputeSummary(ctx context.Context, tx pgx.Tx, studentID uuid.UUID, date time.Time) error {
	month := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := month.AddDate(0, 1, 0)

	var present, absent, late, excused int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE status = 'present'),
		        COUNT(*) FILTER (WHERE status = 'absent'),
		        COUNT(*) FILTER (WHERE status = 'late'),
		        COUNT(*) FILTER (WHERE status = 'excused')
		 FROM attendance_records
		 WHERE student_id = $1 AND date >= $2 AND date < $3`,
		studentID, month, next,
	).Scan(&present, &absent, &late, &excused)
	if err != nil {
		return err
	}

	total, pct := model.TallyAttendance(present, absent, late, excused)

	_, err = tx.Exec(ctx,
		`INSERT INTO attendance_summaries (student_id, month, total_days, present_days, absent_days, late_days, excused_days, attendance_percentage)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (student_id, month) DO UPDATE
		 SET total_days = EXCLUDED.total_days,
		     present_days = EXCLUDED.present_days,
		     absent_days = EXCLUDED.absent_days,
		     late_days = EXCLUDED.late_days,
		     excused_days = EXCLUDED.excused_days,
		     attendance_percentage = EXCLUDED.attendance_percentage,
		     updated_at = CURRENT_TIMESTAMP`,
		studentID, month, total, present, absent, late, excused, pct,
	)
	return err
}

// GetSummary retrieves one student's summary for the month containing ref.
func (r *AttendanceRepository) GetSummary(ctx context.Context, studentID uuid.UUID, ref time.Time) (*model.AttendanceSummary, error) {
	month := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	s := &model.AttendanceSummary{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, month, total_days, present_days, absent_days, late_days, excused_days, attendance_percentage, updated_at
		 FROM attendance_summaries WHERE student_id = $1 AND month = $2`,
		studentID, month,
	).Scan(&s.ID, &s.StudentID, &s.Month, &s.TotalDays, &s.PresentDays, &s.AbsentDays,
		&s.LateDays, &s.ExcusedDays, &s.Percentage, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ClassReport lists every active student of a class with their status for one
// date, "not_marked" for students without a record.
func (r *AttendanceRepository) ClassReport(ctx context.Context, classID uuid.UUID, subjectID *uuid.UUID, date time.Time) ([]model.AttendanceReportRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT st.id, st.first_name || ' ' || st.last_name,
		        COALESCE(a.status::text, 'not_marked'), COALESCE(a.remarks, '')
		 FROM student_profiles st
		 LEFT JOIN attendance_records a
		   ON a.student_id = st.id AND a.class_id = $1 AND a.date = $2
		  AND a.subject_id IS NOT DISTINCT FROM $3
		 WHERE st.class_id = $1 AND st.is_active
		 ORDER BY st.last_name, st.first_name`,
		classID, date, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []model.AttendanceReportRow
	for rows.Next() {
		var row model.AttendanceReportRow
		if err := rows.Scan(&row.StudentID, &row.StudentName, &row.Status, &row.Remarks); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
