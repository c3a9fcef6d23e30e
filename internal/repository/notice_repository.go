package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
)

// NoticeRepository handles notice data access and class targeting.
type NoticeRepository struct {
	pool *pgxpool.Pool
}

// NewNoticeRepository creates a new NoticeRepository.
func NewNoticeRepository(pool *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{pool: pool}
}

const noticeColumns = `n.id, n.school_id, n.title, n.content, n.priority, n.attachment, n.created_by, n.is_active, n.publish_date, n.expiry_date, n.created_at`

func scanNotice(row interface{ Scan(...interface{}) error }) (*model.Notice, error) {
	n := &model.Notice{}
	var attachment []byte
	err := row.Scan(&n.ID, &n.SchoolID, &n.Title, &n.Content, &n.Priority, &attachment,
		&n.CreatedBy, &n.IsActive, &n.PublishDate, &n.ExpiryDate, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(attachment) > 0 {
		if err := json.Unmarshal(attachment, &n.Attachment); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// GetByID retrieves a notice with its target classes within the given scope.
func (r *NoticeRepository) GetByID(ctx context.Context, scope *policy.Predicate, id uuid.UUID) (*model.Notice, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("n.id = ?", id)
	n, err := scanNotice(r.pool.QueryRow(ctx,
		`SELECT `+noticeColumns+` FROM notices n`+w.clause(), w.args...))
	if err != nil {
		return nil, err
	}
	if n.TargetClassIDs, err = r.targets(ctx, n.ID); err != nil {
		return nil, err
	}
	return n, nil
}

// List retrieves notices within the given scope, newest first. When onlyLive
// is set, expired and not-yet-published notices are excluded.
func (r *NoticeRepository) List(ctx context.Context, scope *policy.Predicate, onlyLive bool, now time.Time, limit, offset int) ([]model.Notice, int, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("n.is_active")
	if onlyLive {
		w.add("n.publish_date <= ?", now)
		w.add("(n.expiry_date IS NULL OR n.expiry_date > ?)", now)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notices n`+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limPh, offPh := w.bind(limit), w.bind(offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+noticeColumns+` FROM notices n`+w.clause()+
			` ORDER BY n.publish_date DESC LIMIT `+limPh+` OFFSET `+offPh, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notices []model.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, 0, err
		}
		notices = append(notices, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range notices {
		if notices[i].TargetClassIDs, err = r.targets(ctx, notices[i].ID); err != nil {
			return nil, 0, err
		}
	}
	return notices, total, nil
}

func (r *NoticeRepository) targets(ctx context.Context, noticeID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT class_id FROM notice_targets WHERE notice_id = $1`, noticeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIDs(rows)
}

// Create inserts a notice and its class targets in one transaction. No
// targets means school-wide.
func (r *NoticeRepository) Create(ctx context.Context, n *model.Notice) error {
	att, err := attachmentJSON(n.Attachment)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO notices (school_id, title, content, priority, attachment, created_by, is_active, publish_date, expiry_date)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8)
		 RETURNING id, is_active, created_at`,
		n.SchoolID, n.Title, n.Content, n.Priority, att, n.CreatedBy, n.PublishDate, n.ExpiryDate,
	).Scan(&n.ID, &n.IsActive, &n.CreatedAt)
	if err != nil {
		return err
	}

	if err := insertNoticeTargets(ctx, tx, n.ID, n.TargetClassIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update modifies a notice. A non-nil target list replaces the existing
// targets wholesale.
func (r *NoticeRepository) Update(ctx context.Context, n *model.Notice, targets *[]uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE notices
		 SET title = $1, content = $2, priority = $3, expiry_date = $4, is_active = $5
		 WHERE id = $6`,
		n.Title, n.Content, n.Priority, n.ExpiryDate, n.IsActive, n.ID,
	)
	if err != nil {
		return err
	}

	if targets != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM notice_targets WHERE notice_id = $1`, n.ID); err != nil {
			return err
		}
		if err := insertNoticeTargets(ctx, tx, n.ID, *targets); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func insertNoticeTargets(ctx context.Context, tx pgx.Tx, noticeID uuid.UUID, classIDs []uuid.UUID) error {
	for _, classID := range classIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO notice_targets (notice_id, class_id) VALUES ($1, $2)`, noticeID, classID); err != nil {
			return err
		}
	}
	return nil
}

// Deactivate retires a notice without deleting it.
func (r *NoticeRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE notices SET is_active = FALSE WHERE id = $1`, id)
	return err
}
