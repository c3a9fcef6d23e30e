package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
)

// SubjectRepository handles subject data access.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

const subjectColumns = `sub.id, sub.school_id, sub.name, sub.code, sub.description, sub.is_active, sub.created_at`

func scanSubject(row interface{ Scan(...interface{}) error }) (*model.Subject, error) {
	s := &model.Subject{}
	err := row.Scan(&s.ID, &s.SchoolID, &s.Name, &s.Code, &s.Description, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a subject by ID within the given scope.
func (r *SubjectRepository) GetByID(ctx context.Context, scope *policy.Predicate, id uuid.UUID) (*model.Subject, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("sub.id = ?", id)
	return scanSubject(r.pool.QueryRow(ctx,
		`SELECT `+subjectColumns+` FROM subjects sub`+w.clause(), w.args...))
}

// List retrieves subjects within the given scope with pagination.
func (r *SubjectRepository) List(ctx context.Context, scope *policy.Predicate, includeInactive bool, limit, offset int) ([]model.Subject, int, error) {
	w := newWhere()
	w.addScope(scope)
	if !includeInactive {
		w.add("sub.is_active")
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM subjects sub`+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limPh, offPh := w.bind(limit), w.bind(offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+subjectColumns+` FROM subjects sub`+w.clause()+
			` ORDER BY sub.name LIMIT `+limPh+` OFFSET `+offPh, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, 0, err
		}
		subjects = append(subjects, *s)
	}
	return subjects, total, rows.Err()
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO subjects (school_id, name, code, description, is_active)
		 VALUES ($1, $2, $3, $4, TRUE)
		 RETURNING id, is_active, created_at`,
		s.SchoolID, s.Name, s.Code, s.Description,
	).Scan(&s.ID, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Update modifies a subject.
func (r *SubjectRepository) Update(ctx context.Context, s *model.Subject) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE subjects SET name = $1, code = $2, description = $3, is_active = $4 WHERE id = $5`,
		s.Name, s.Code, s.Description, s.IsActive, s.ID,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}
