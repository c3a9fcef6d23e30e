package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
)

// ResourceRepository handles learning material data access.
type ResourceRepository struct {
	pool *pgxpool.Pool
}

// NewResourceRepository creates a new ResourceRepository.
func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{pool: pool}
}

const resourceColumns = `res.id, res.school_id, res.subject_id, res.class_id, res.title, res.description, res.resource_type, res.attachment, res.external_link, res.is_public, res.uploaded_by, res.created_at, res.updated_at`

func scanResource(row interface{ Scan(...interface{}) error }) (*model.Resource, error) {
	res := &model.Resource{}
	var attachment []byte
	err := row.Scan(&res.ID, &res.SchoolID, &res.SubjectID, &res.ClassID, &res.Title,
		&res.Description, &res.ResourceType, &attachment, &res.ExternalLink,
		&res.IsPublic, &res.UploadedBy, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(attachment) > 0 {
		if err := json.Unmarshal(attachment, &res.Attachment); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// GetByID retrieves one resource within the given scope.
func (r *ResourceRepository) GetByID(ctx context.Context, scope *policy.Predicate, id uuid.UUID) (*model.Resource, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("res.id = ?", id)
	return scanResource(r.pool.QueryRow(ctx,
		`SELECT `+resourceColumns+` FROM resources res`+w.clause(), w.args...))
}

// List retrieves resources within the given scope, newest first, optionally
// filtered by subject, class and type.
func (r *ResourceRepository) List(ctx context.Context, scope *policy.Predicate, subjectID, classID *uuid.UUID, resourceType *model.ResourceType, limit, offset int) ([]model.Resource, int, error) {
	w := newWhere()
	w.addScope(scope)
	if subjectID != nil {
		w.add("res.subject_id = ?", *subjectID)
	}
	if classID != nil {
		w.add("res.class_id = ?", *classID)
	}
	if resourceType != nil {
		w.add("res.resource_type = ?", *resourceType)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM resources res`+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limPh, offPh := w.bind(limit), w.bind(offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+resourceColumns+` FROM resources res`+w.clause()+
			` ORDER BY res.created_at DESC LIMIT `+limPh+` OFFSET `+offPh, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var resources []model.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, 0, err
		}
		resources = append(resources, *res)
	}
	return resources, total, rows.Err()
}

// Create inserts a resource.
func (r *ResourceRepository) Create(ctx context.Context, res *model.Resource) error {
	att, err := attachmentJSON(res.Attachment)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO resources (school_id, subject_id, class_id, title, description, resource_type, attachment, external_link, is_public, uploaded_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		res.SchoolID, res.SubjectID, res.ClassID, res.Title, res.Description,
		res.ResourceType, att, res.ExternalLink, res.IsPublic, res.UploadedBy,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

// Update modifies a resource's editable fields.
func (r *ResourceRepository) Update(ctx context.Context, res *model.Resource) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE resources
		 SET title = $1, description = $2, resource_type = $3, external_link = $4, is_public = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6`,
		res.Title, res.Description, res.ResourceType, res.ExternalLink, res.IsPublic, res.ID,
	)
	return err
}

// Delete removes a resource.
func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	return err
}
