package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
)

// ErrSectionFull signals a section at max capacity.
var ErrSectionFull = errors.New("section is at capacity")

// ClassRepository handles class and section data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

const classColumns = `c.id, c.school_id, c.name, c.grade_level, c.is_active, c.created_at`

func scanClass(row interface{ Scan(...interface{}) error }) (*model.Class, error) {
	c := &model.Class{}
	err := row.Scan(&c.ID, &c.SchoolID, &c.Name, &c.GradeLevel, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a class by ID within the given scope.
func (r *ClassRepository) GetByID(ctx context.Context, scope *policy.Predicate, id uuid.UUID) (*model.Class, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("c.id = ?", id)
	return scanClass(r.pool.QueryRow(ctx,
		`SELECT `+classColumns+` FROM classes c`+w.clause(), w.args...))
}

// List retrieves classes within the given scope, ordered by grade then name.
func (r *ClassRepository) List(ctx context.Context, scope *policy.Predicate, includeInactive bool, limit, offset int) ([]model.Class, int, error) {
	w := newWhere()
	w.addScope(scope)
	if !includeInactive {
		w.add("c.is_active")
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM classes c`+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limPh, offPh := w.bind(limit), w.bind(offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+classColumns+` FROM classes c`+w.clause()+
			` ORDER BY c.grade_level, c.name LIMIT `+limPh+` OFFSET `+offPh, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, 0, err
		}
		classes = append(classes, *c)
	}
	return classes, total, rows.Err()
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO classes (school_id, name, grade_level, is_active)
		 VALUES ($1, $2, $3, TRUE)
		 RETURNING id, is_active, created_at`,
		c.SchoolID, c.Name, c.GradeLevel,
	).Scan(&c.ID, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Update modifies a class.
func (r *ClassRepository) Update(ctx context.Context, c *model.Class) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE classes SET name = $1, grade_level = $2, is_active = $3 WHERE id = $4`,
		c.Name, c.GradeLevel, c.IsActive, c.ID,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

const sectionColumns = `sec.id, sec.class_id, sec.name, sec.homeroom_teacher_id, sec.max_capacity, sec.is_active, sec.created_at`

func scanSection(row interface{ Scan(...interface{}) error }) (*model.Section, error) {
	s := &model.Section{}
	err := row.Scan(&s.ID, &s.ClassID, &s.Name, &s.HomeroomTeacher, &s.MaxCapacity, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetSectionByID retrieves a section by ID.
func (r *ClassRepository) GetSectionByID(ctx context.Context, id uuid.UUID) (*model.Section, error) {
	return scanSection(r.pool.QueryRow(ctx,
		`SELECT `+sectionColumns+` FROM sections sec WHERE sec.id = $1`, id))
}

// ListSections retrieves sections under a class.
func (r *ClassRepository) ListSections(ctx context.Context, classID uuid.UUID, includeInactive bool) ([]model.Section, error) {
	w := newWhere()
	w.add("sec.class_id = ?", classID)
	if !includeInactive {
		w.add("sec.is_active")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+sectionColumns+` FROM sections sec`+w.clause()+` ORDER BY sec.name`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, *s)
	}
	return sections, rows.Err()
}

// CreateSection inserts a new section under a class.
func (r *ClassRepository) CreateSection(ctx context.Context, s *model.Section) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO sections (class_id, name, homeroom_teacher_id, max_capacity, is_active)
		 VALUES ($1, $2, $3, $4, TRUE)
		 RETURNING id, is_active, created_at`,
		s.ClassID, s.Name, s.HomeroomTeacher, s.MaxCapacity,
	).Scan(&s.ID, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// UpdateSection modifies a section.
func (r *ClassRepository) UpdateSection(ctx context.Context, s *model.Section) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE sections SET name = $1, homeroom_teacher_id = $2, max_capacity = $3, is_active = $4 WHERE id = $5`,
		s.Name, s.HomeroomTeacher, s.MaxCapacity, s.IsActive, s.ID,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// SectionEnrollment returns the active student count for a section.
func (r *ClassRepository) SectionEnrollment(ctx context.Context, sectionID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM student_profiles st WHERE st.section_id = $1 AND st.is_active`, sectionID).Scan(&n)
	return n, err
}

// SchoolIDForClass resolves the owning school of a class. Used for
// cross-tenant reference checks before writes.
func (r *ClassRepository) SchoolIDForClass(ctx context.Context, classID uuid.UUID) (uuid.UUID, error) {
	var schoolID uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT c.school_id FROM classes c WHERE c.id = $1`, classID).Scan(&schoolID)
	return schoolID, err
}

// SectionBelongsToClass reports whether the section is part of the class.
func (r *ClassRepository) SectionBelongsToClass(ctx context.Context, sectionID, classID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM sections sec WHERE sec.id = $1 AND sec.class_id = $2)`,
		sectionID, classID).Scan(&ok)
	return ok, err
}
