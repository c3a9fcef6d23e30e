package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
)

// SchoolRepository handles school data access.
type SchoolRepository struct {
	pool *pgxpool.Pool
}

// NewSchoolRepository creates a new SchoolRepository.
func NewSchoolRepository(pool *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{pool: pool}
}

const schoolColumns = `s.id, s.name, s.address, s.phone, s.email, s.website, s.is_active, s.created_at, s.updated_at`

func scanSchool(row interface{ Scan(...interface{}) error }) (*model.School, error) {
	s := &model.School{}
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.Email, &s.Website, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a school by ID within the given scope.
func (r *SchoolRepository) GetByID(ctx context.Context, scope *policy.Predicate, id uuid.UUID) (*model.School, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("s.id = ?", id)
	return scanSchool(r.pool.QueryRow(ctx,
		`SELECT `+schoolColumns+` FROM schools s`+w.clause(), w.args...))
}

// List retrieves schools within the given scope with pagination.
func (r *SchoolRepository) List(ctx context.Context, scope *policy.Predicate, includeInactive bool, limit, offset int) ([]model.School, int, error) {
	w := newWhere()
	w.addScope(scope)
	if !includeInactive {
		w.add("s.is_active")
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM schools s`+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limPh, offPh := w.bind(limit), w.bind(offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+schoolColumns+` FROM schools s`+w.clause()+
			` ORDER BY s.name LIMIT `+limPh+` OFFSET `+offPh, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var schools []model.School
	for rows.Next() {
		s, err := scanSchool(rows)
		if err != nil {
			return nil, 0, err
		}
		schools = append(schools, *s)
	}
	return schools, total, rows.Err()
}

// Create inserts a new school.
func (r *SchoolRepository) Create(ctx context.Context, s *model.School) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO schools (name, address, phone, email, website, is_active)
		 VALUES ($1, $2, $3, $4, $5, TRUE)
		 RETURNING id, is_active, created_at, updated_at`,
		s.Name, s.Address, s.Phone, s.Email, s.Website,
	).Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Update modifies a school.
func (r *SchoolRepository) Update(ctx context.Context, s *model.School) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE schools
		 SET name = $1, address = $2, phone = $3, email = $4, website = $5, is_active = $6,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		s.Name, s.Address, s.Phone, s.Email, s.Website, s.IsActive, s.ID,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// Deactivate soft-deactivates a school without touching its records.
func (r *SchoolRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE schools SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}
