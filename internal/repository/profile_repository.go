package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
)

// ProfileRepository handles role profile data access and actor context loading.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// --- teacher ---

// GetTeacherByID retrieves a teacher profile with its assignment lists.
func (r *ProfileRepository) GetTeacherByID(ctx context.Context, id uuid.UUID) (*model.TeacherProfile, error) {
	p := &model.TeacherProfile{}
	err := r.pool.QueryRow(ctx,
		`SELECT p.id, p.actor_id, p.school_id, p.employee_id, p.first_name, p.last_name, p.is_active, p.created_at, p.updated_at
		 FROM teacher_profiles p WHERE p.id = $1`, id,
	).Scan(&p.ID, &p.ActorID, &p.SchoolID, &p.EmployeeID, &p.FirstName, &p.LastName, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.SubjectIDs, err = r.teacherSubjects(ctx, p.ID); err != nil {
		return nil, err
	}
	if p.SectionIDs, err = r.teacherSections(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// GetTeacherByActorID retrieves a teacher profile by owning actor.
func (r *ProfileRepository) GetTeacherByActorID(ctx context.Context, actorID uuid.UUID) (*model.TeacherProfile, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT p.id FROM teacher_profiles p WHERE p.actor_id = $1`, actorID).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetTeacherByID(ctx, id)
}

func (r *ProfileRepository) teacherSubjects(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT subject_id FROM teacher_subjects WHERE teacher_id = $1`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIDs(rows)
}

func (r *ProfileRepository) teacherSections(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT section_id FROM teacher_sections WHERE teacher_id = $1`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIDs(rows)
}

func collectIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreateTeacher inserts a teacher profile and its assignment links in one
// transaction.
func (r *ProfileRepository) CreateTeacher(ctx context.Context, p *model.TeacherProfile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO teacher_profiles (actor_id, school_id, employee_id, first_name, last_name, is_active)
		 VALUES ($1, $2, $3, $4, $5, TRUE)
		 RETURNING id, is_active, created_at, updated_at`,
		p.ActorID, p.SchoolID, p.EmployeeID, p.FirstName, p.LastName,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	if err := replaceTeacherLinks(ctx, tx, p.ID, p.SubjectIDs, p.SectionIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// UpdateTeacher modifies a teacher profile. Non-nil assignment lists replace
// the existing links wholesale.
func (r *ProfileRepository) UpdateTeacher(ctx context.Context, p *model.TeacherProfile, subjects, sections *[]uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE teacher_profiles
		 SET first_name = $1, last_name = $2, is_active = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		p.FirstName, p.LastName, p.IsActive, p.ID,
	)
	if err != nil {
		return err
	}

	if subjects != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM teacher_subjects WHERE teacher_id = $1`, p.ID); err != nil {
			return err
		}
		for _, sid := range *subjects {
			if _, err := tx.Exec(ctx,
				`INSERT INTO teacher_subjects (teacher_id, subject_id) VALUES ($1, $2)`, p.ID, sid); err != nil {
				return err
			}
		}
	}
	if sections != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM teacher_sections WHERE teacher_id = $1`, p.ID); err != nil {
			return err
		}
		for _, sid := range *sections {
			if _, err := tx.Exec(ctx,
				`INSERT INTO teacher_sections (teacher_id, section_id) VALUES ($1, $2)`, p.ID, sid); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}

func replaceTeacherLinks(ctx context.Context, tx pgx.Tx, teacherID uuid.UUID, subjects, sections []uuid.UUID) error {
	for _, sid := range subjects {
		if _, err := tx.Exec(ctx,
			`INSERT INTO teacher_subjects (teacher_id, subject_id) VALUES ($1, $2)`, teacherID, sid); err != nil {
			return err
		}
	}
	for _, sid := range sections {
		if _, err := tx.Exec(ctx,
			`INSERT INTO teacher_sections (teacher_id, section_id) VALUES ($1, $2)`, teacherID, sid); err != nil {
			return err
		}
	}
	return nil
}

// --- student ---

const studentColumns = `st.id, st.actor_id, st.school_id, st.student_number, st.first_name, st.last_name, st.class_id, st.section_id, st.admission_date, st.is_active, st.created_at, st.updated_at`

func scanStudent(row interface{ Scan(...interface{}) error }) (*model.StudentProfile, error) {
	p := &model.StudentProfile{}
	err := row.Scan(&p.ID, &p.ActorID, &p.SchoolID, &p.StudentNumber, &p.FirstName, &p.LastName,
		&p.ClassID, &p.SectionID, &p.AdmissionDate, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetStudentByID retrieves a student profile.
func (r *ProfileRepository) GetStudentByID(ctx context.Context, id uuid.UUID) (*model.StudentProfile, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM student_profiles st WHERE st.id = $1`, id))
}

// GetStudentByActorID retrieves a student profile by owning actor.
func (r *ProfileRepository) GetStudentByActorID(ctx context.Context, actorID uuid.UUID) (*model.StudentProfile, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM student_profiles st WHERE st.actor_id = $1`, actorID))
}

// ListStudentsBySection retrieves active students in a section ordered by name.
func (r *ProfileRepository) ListStudentsBySection(ctx context.Context, sectionID uuid.UUID) ([]model.StudentProfile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM student_profiles st
		 WHERE st.section_id = $1 AND st.is_active
		 ORDER BY st.last_name, st.first_name`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.StudentProfile
	for rows.Next() {
		p, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *p)
	}
	return students, rows.Err()
}

// CreateStudent inserts a student profile.
func (r *ProfileRepository) CreateStudent(ctx context.Context, p *model.StudentProfile) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO student_profiles (actor_id, school_id, student_number, first_name, last_name, class_id, section_id, admission_date, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		 RETURNING id, is_active, created_at, updated_at`,
		p.ActorID, p.SchoolID, p.StudentNumber, p.FirstName, p.LastName, p.ClassID, p.SectionID, p.AdmissionDate,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// UpdateStudent modifies a student profile.
func (r *ProfileRepository) UpdateStudent(ctx context.Context, p *model.StudentProfile) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE student_profiles
		 SET first_name = $1, last_name = $2, class_id = $3, section_id = $4, is_active = $5,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6`,
		p.FirstName, p.LastName, p.ClassID, p.SectionID, p.IsActive, p.ID,
	)
	return err
}

// --- parent ---

// GetParentByActorID retrieves a parent profile with its child links.
func (r *ProfileRepository) GetParentByActorID(ctx context.Context, actorID uuid.UUID) (*model.ParentProfile, error) {
	p := &model.ParentProfile{}
	err := r.pool.QueryRow(ctx,
		`SELECT p.id, p.actor_id, p.school_id, p.first_name, p.last_name, p.occupation, p.is_active, p.created_at, p.updated_at
		 FROM parent_profiles p WHERE p.actor_id = $1`, actorID,
	).Scan(&p.ID, &p.ActorID, &p.SchoolID, &p.FirstName, &p.LastName, &p.Occupation, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT student_id, is_primary FROM parent_links WHERE parent_id = $1`, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var link model.ParentLink
		if err := rows.Scan(&link.StudentID, &link.IsPrimary); err != nil {
			return nil, err
		}
		p.Children = append(p.Children, link)
	}
	return p, rows.Err()
}

// CreateParent inserts a parent profile with its child links. At most one link
// per child may carry the primary flag; the partial unique index enforces it.
func (r *ProfileRepository) CreateParent(ctx context.Context, p *model.ParentProfile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO parent_profiles (actor_id, school_id, first_name, last_name, occupation, is_active)
		 VALUES ($1, $2, $3, $4, $5, TRUE)
		 RETURNING id, is_active, created_at, updated_at`,
		p.ActorID, p.SchoolID, p.FirstName, p.LastName, p.Occupation,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	for _, link := range p.Children {
		if _, err := tx.Exec(ctx,
			`INSERT INTO parent_links (parent_id, student_id, is_primary) VALUES ($1, $2, $3)`,
			p.ID, link.StudentID, link.IsPrimary); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
	}
	return tx.Commit(ctx)
}

// --- principal ---

// GetPrincipalByActorID retrieves a principal profile by owning actor.
func (r *ProfileRepository) GetPrincipalByActorID(ctx context.Context, actorID uuid.UUID) (*model.PrincipalProfile, error) {
	p := &model.PrincipalProfile{}
	err := r.pool.QueryRow(ctx,
		`SELECT p.id, p.actor_id, p.school_id, p.employee_id, p.first_name, p.last_name, p.is_active, p.created_at, p.updated_at
		 FROM principal_profiles p WHERE p.actor_id = $1`, actorID,
	).Scan(&p.ID, &p.ActorID, &p.SchoolID, &p.EmployeeID, &p.FirstName, &p.LastName, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePrincipal inserts a principal profile.
func (r *ProfileRepository) CreatePrincipal(ctx context.Context, p *model.PrincipalProfile) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO principal_profiles (actor_id, school_id, employee_id, first_name, last_name, is_active)
		 VALUES ($1, $2, $3, $4, $5, TRUE)
		 RETURNING id, is_active, created_at, updated_at`,
		p.ActorID, p.SchoolID, p.EmployeeID, p.FirstName, p.LastName,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// --- actor context ---

// BuildActorContext assembles the policy evaluation context for an actor:
// profile identity plus the role-specific bindings scopes derive from. When
// primaryOnly is set, parent contexts only include primary-guardian children.
func (r *ProfileRepository) BuildActorContext(ctx context.Context, a *model.Actor, primaryOnly bool) (*policy.Actor, error) {
	pa := &policy.Actor{
		ID:       a.ID,
		Role:     a.Role,
		SchoolID: a.SchoolID,
	}

	switch a.Role {
	case model.RoleDeveloper:
		return pa, nil

	case model.RolePrincipal:
		p, err := r.GetPrincipalByActorID(ctx, a.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return pa, nil
			}
			return nil, err
		}
		pa.ProfileID = p.ID
		return pa, nil

	case model.RoleTeacher:
		p, err := r.GetTeacherByActorID(ctx, a.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return pa, nil
			}
			return nil, err
		}
		pa.ProfileID = p.ID
		pa.SubjectIDs = p.SubjectIDs
		pa.SectionIDs = p.SectionIDs
		return pa, nil

	case model.RoleStudent:
		p, err := r.GetStudentByActorID(ctx, a.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return pa, nil
			}
			return nil, err
		}
		pa.ProfileID = p.ID
		pa.ClassID = &p.ClassID
		pa.SectionID = &p.SectionID
		return pa, nil

	case model.RoleParent:
		p, err := r.GetParentByActorID(ctx, a.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return pa, nil
			}
			return nil, err
		}
		pa.ProfileID = p.ID
		for _, link := range p.Children {
			if primaryOnly && !link.IsPrimary {
				continue
			}
			pa.ChildIDs = append(pa.ChildIDs, link.StudentID)
		}
		if len(pa.ChildIDs) > 0 {
			rows, err := r.pool.Query(ctx,
				`SELECT st.class_id, st.section_id FROM student_profiles st WHERE st.id = ANY($1)`, pa.ChildIDs)
			if err != nil {
				return nil, err
			}
			defer rows.Close()
			for rows.Next() {
				var classID, sectionID uuid.UUID
				if err := rows.Scan(&classID, &sectionID); err != nil {
					return nil, err
				}
				pa.ChildClassIDs = append(pa.ChildClassIDs, classID)
				pa.ChildSectionIDs = append(pa.ChildSectionIDs, sectionID)
			}
			if err := rows.Err(); err != nil {
				return nil, err
			}
		}
		return pa, nil
	}
	return pa, nil
}
