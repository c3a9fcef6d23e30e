package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
)

// ActorRepository handles actor (account) data access.
type ActorRepository struct {
	pool *pgxpool.Pool
}

// NewActorRepository creates a new ActorRepository.
func NewActorRepository(pool *pgxpool.Pool) *ActorRepository {
	return &ActorRepository{pool: pool}
}

const actorColumns = `act.id, act.email, act.role, act.school_id, act.password_hash, act.is_active, act.created_at, act.updated_at`

func scanActor(row interface{ Scan(...interface{}) error }) (*model.Actor, error) {
	a := &model.Actor{}
	err := row.Scan(&a.ID, &a.Email, &a.Role, &a.SchoolID, &a.PasswordHash, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID retrieves an actor by ID.
func (r *ActorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Actor, error) {
	return scanActor(r.pool.QueryRow(ctx,
		`SELECT `+actorColumns+` FROM actors act WHERE act.id = $1`, id))
}

// GetByEmail retrieves an actor by their unique email.
func (r *ActorRepository) GetByEmail(ctx context.Context, email string) (*model.Actor, error) {
	return scanActor(r.pool.QueryRow(ctx,
		`SELECT `+actorColumns+` FROM actors act WHERE act.email = $1`, email))
}

// List retrieves actors within the given scope with pagination.
func (r *ActorRepository) List(ctx context.Context, scope *policy.Predicate, role *model.Role, includeInactive bool, limit, offset int) ([]model.Actor, int, error) {
	w := newWhere()
	w.addScope(scope)
	if role != nil {
		w.add("act.role = ?", *role)
	}
	if !includeInactive {
		w.add("act.is_active")
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM actors act`+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limPh, offPh := w.bind(limit), w.bind(offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+actorColumns+` FROM actors act`+w.clause()+
			` ORDER BY act.email LIMIT `+limPh+` OFFSET `+offPh, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var actors []model.Actor
	for rows.Next() {
		a, err := scanActor(rows)
		if err != nil {
			return nil, 0, err
		}
		actors = append(actors, *a)
	}
	return actors, total, rows.Err()
}

// Create inserts a new actor.
func (r *ActorRepository) Create(ctx context.Context, a *model.Actor) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO actors (email, role, school_id, password_hash, is_active)
		 VALUES ($1, $2, $3, $4, TRUE)
		 RETURNING id, is_active, created_at, updated_at`,
		a.Email, a.Role, a.SchoolID, a.PasswordHash,
	).Scan(&a.ID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Update modifies an actor's email and active flag.
func (r *ActorRepository) Update(ctx context.Context, a *model.Actor) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE actors SET email = $1, is_active = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		a.Email, a.IsActive, a.ID,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// UpdatePassword updates an actor's password hash.
func (r *ActorRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE actors SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id,
	)
	return err
}

// Deactivate soft-deactivates an actor. Actors are never hard-deleted.
func (r *ActorRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE actors SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}
