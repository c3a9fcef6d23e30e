package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
)

// BehaviorRepository handles behavior categories and logs.
type BehaviorRepository struct {
	pool *pgxpool.Pool
}

// NewBehaviorRepository creates a new BehaviorRepository.
func NewBehaviorRepository(pool *pgxpool.Pool) *BehaviorRepository {
	return &BehaviorRepository{pool: pool}
}

// GetCategoryByID retrieves a behavior category within the given scope.
func (r *BehaviorRepository) GetCategoryByID(ctx context.Context, scope *policy.Predicate, id uuid.UUID) (*model.BehaviorCategory, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("bc.id = ?", id)
	c := &model.BehaviorCategory{}
	err := r.pool.QueryRow(ctx,
		`SELECT bc.id, bc.school_id, bc.name, bc.type, bc.points, bc.is_active, bc.created_at
		 FROM behavior_categories bc`+w.clause(), w.args...,
	).Scan(&c.ID, &c.SchoolID, &c.Name, &c.Type, &c.Points, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories retrieves active categories within the given scope.
func (r *BehaviorRepository) ListCategories(ctx context.Context, scope *policy.Predicate) ([]model.BehaviorCategory, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("bc.is_active")

	rows, err := r.pool.Query(ctx,
		`SELECT bc.id, bc.school_id, bc.name, bc.type, bc.points, bc.is_active, bc.created_at
		 FROM behavior_categories bc`+w.clause()+` ORDER BY bc.name`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.BehaviorCategory
	for rows.Next() {
		var c model.BehaviorCategory
		if err := rows.Scan(&c.ID, &c.SchoolID, &c.Name, &c.Type, &c.Points, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateCategory inserts a behavior category.
func (r *BehaviorRepository) CreateCategory(ctx context.Context, c *model.BehaviorCategory) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO behavior_categories (school_id, name, type, points, is_active)
		 VALUES ($1, $2, $3, $4, TRUE)
		 RETURNING id, is_active, created_at`,
		c.SchoolID, c.Name, c.Type, c.Points,
	).Scan(&c.ID, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

const behaviorLogColumns = `b.id, b.student_id, b.category_id, bc.name, bc.points, b.title, b.description, b.date_recorded, b.reported_by, b.action_taken, b.parent_notified, b.created_at`

func scanBehaviorLog(row interface{ Scan(...interface{}) error }) (*model.BehaviorLog, error) {
	l := &model.BehaviorLog{}
	err := row.Scan(&l.ID, &l.StudentID, &l.CategoryID, &l.CategoryName, &l.CategoryPoints,
		&l.Title, &l.Description, &l.DateRecorded, &l.ReportedBy, &l.ActionTaken, &l.ParentNotified, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetLogByID retrieves a behavior log within the given scope.
func (r *BehaviorRepository) GetLogByID(ctx context.Context, scope *policy.Predicate, id uuid.UUID) (*model.BehaviorLog, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("b.id = ?", id)
	return scanBehaviorLog(r.pool.QueryRow(ctx,
		`SELECT `+behaviorLogColumns+` FROM behavior_logs b
		 JOIN behavior_categories bc ON bc.id = b.category_id
		 JOIN student_profiles st ON st.id = b.student_id`+w.clause(), w.args...))
}

// ListLogs retrieves behavior logs within the given scope, newest first.
func (r *BehaviorRepository) ListLogs(ctx context.Context, scope *policy.Predicate, studentID *uuid.UUID, limit, offset int) ([]model.BehaviorLog, int, error) {
	w := newWhere()
	w.addScope(scope)
	if studentID != nil {
		w.add("b.student_id = ?", *studentID)
	}

	const base = ` FROM behavior_logs b
		 JOIN behavior_categories bc ON bc.id = b.category_id
		 JOIN student_profiles st ON st.id = b.student_id`

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*)`+base+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limPh, offPh := w.bind(limit), w.bind(offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+behaviorLogColumns+base+w.clause()+
			` ORDER BY b.date_recorded DESC LIMIT `+limPh+` OFFSET `+offPh, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []model.BehaviorLog
	for rows.Next() {
		l, err := scanBehaviorLog(rows)
		if err != nil {
			return nil, 0, err
		}
		logs = append(logs, *l)
	}
	return logs, total, rows.Err()
}

// CreateLog records a behavior incident.
func (r *BehaviorRepository) CreateLog(ctx context.Context, l *model.BehaviorLog) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO behavior_logs (student_id, category_id, title, description, date_recorded, reported_by, action_taken, parent_notified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		l.StudentID, l.CategoryID, l.Title, l.Description, l.DateRecorded,
		l.ReportedBy, l.ActionTaken, l.ParentNotified,
	).Scan(&l.ID, &l.CreatedAt)
}

// UpdateLog amends a behavior incident.
func (r *BehaviorRepository) UpdateLog(ctx context.Context, l *model.BehaviorLog) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE behavior_logs
		 SET title = $1, description = $2, action_taken = $3, parent_notified = $4
		 WHERE id = $5`,
		l.Title, l.Description, l.ActionTaken, l.ParentNotified, l.ID,
	)
	return err
}

// PointTotal sums category points across a student's logs.
func (r *BehaviorRepository) PointTotal(ctx context.Context, studentID uuid.UUID) (*model.BehaviorPointTotal, error) {
	t := &model.BehaviorPointTotal{StudentID: studentID}
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(bc.points), 0), COUNT(b.id)
		 FROM behavior_logs b
		 JOIN behavior_categories bc ON bc.id = b.category_id
		 WHERE b.student_id = $1`,
		studentID,
	).Scan(&t.TotalPoints, &t.LogCount)
	if err != nil {
		return nil, err
	}
	return t, nil
}
