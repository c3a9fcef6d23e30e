package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
)

// ErrSlotConflict signals a timetable slot colliding with an existing one on
// (class, weekday, start_time). Slots are never upserted.
var ErrSlotConflict = errors.New("timetable slot conflicts with an existing period")

// TimetableRepository handles timetable slot data access.
type TimetableRepository struct {
	pool *pgxpool.Pool
}

// NewTimetableRepository creates a new TimetableRepository.
func NewTimetableRepository(pool *pgxpool.Pool) *TimetableRepository {
	return &TimetableRepository{pool: pool}
}

const slotColumns = `t.id, t.school_id, t.class_id, t.section_id, t.subject_id, t.teacher_id, t.weekday, t.start_time, t.end_time, t.room_number, t.is_active, t.created_at`

func scanSlot(row interface{ Scan(...interface{}) error }) (*model.TimetableSlot, error) {
	s := &model.TimetableSlot{}
	err := row.Scan(&s.ID, &s.SchoolID, &s.ClassID, &s.SectionID, &s.SubjectID, &s.TeacherID,
		&s.Weekday, &s.StartTime, &s.EndTime, &s.RoomNumber, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a slot by ID within the given scope.
func (r *TimetableRepository) GetByID(ctx context.Context, scope *policy.Predicate, id uuid.UUID) (*model.TimetableSlot, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("t.id = ?", id)
	return scanSlot(r.pool.QueryRow(ctx,
		`SELECT `+slotColumns+` FROM timetable_slots t`+w.clause(), w.args...))
}

// List retrieves slots within the given scope, optionally filtered by class
// and weekday, ordered by weekday then start time.
func (r *TimetableRepository) List(ctx context.Context, scope *policy.Predicate, classID *uuid.UUID, weekday *model.Weekday) ([]model.TimetableSlot, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("t.is_active")
	if classID != nil {
		w.add("t.class_id = ?", *classID)
	}
	if weekday != nil {
		w.add("t.weekday = ?", *weekday)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+slotColumns+` FROM timetable_slots t`+w.clause()+
			` ORDER BY t.weekday, t.start_time`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []model.TimetableSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *s)
	}
	return slots, rows.Err()
}

// ListByTeacher retrieves a teacher's weekly schedule.
func (r *TimetableRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]model.TimetableSlot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+slotColumns+` FROM timetable_slots t
		 WHERE t.teacher_id = $1 AND t.is_active
		 ORDER BY t.weekday, t.start_time`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []model.TimetableSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *s)
	}
	return slots, rows.Err()
}

// Create inserts a new slot. A collision on (class, weekday, start_time)
// returns ErrSlotConflict.
func (r *TimetableRepository) Create(ctx context.Context, s *model.TimetableSlot) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO timetable_slots (school_id, class_id, section_id, subject_id, teacher_id, weekday, start_time, end_time, room_number, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
		 RETURNING id, is_active, created_at`,
		s.SchoolID, s.ClassID, s.SectionID, s.SubjectID, s.TeacherID,
		s.Weekday, s.StartTime, s.EndTime, s.RoomNumber,
	).Scan(&s.ID, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotConflict
		}
		return err
	}
	return nil
}

// Update modifies a slot. Moving it onto an occupied (class, weekday,
// start_time) returns ErrSlotConflict.
func (r *TimetableRepository) Update(ctx context.Context, s *model.TimetableSlot) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE timetable_slots
		 SET subject_id = $1, teacher_id = $2, weekday = $3, start_time = $4, end_time = $5,
		     room_number = $6, is_active = $7
		 WHERE id = $8`,
		s.SubjectID, s.TeacherID, s.Weekday, s.StartTime, s.EndTime, s.RoomNumber, s.IsActive, s.ID,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrSlotConflict
	}
	return err
}

// Delete removes a slot.
func (r *TimetableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM timetable_slots WHERE id = $1`, id)
	return err
}
