package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
)

// MessageRepository handles messages, recipients and read state.
type MessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

const messageColumns = `msg.id, msg.school_id, msg.sender_id, msg.subject, msg.content, msg.message_type, msg.priority, msg.sent_at`

func scanMessage(row interface{ Scan(...interface{}) error }) (*model.Message, error) {
	m := &model.Message{}
	err := row.Scan(&m.ID, &m.SchoolID, &m.SenderID, &m.Subject, &m.Content, &m.MessageType, &m.Priority, &m.SentAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create inserts a message with its recipient links in one transaction.
func (r *MessageRepository) Create(ctx context.Context, m *model.Message) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO messages (school_id, sender_id, subject, content, message_type, priority)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, sent_at`,
		m.SchoolID, m.SenderID, m.Subject, m.Content, m.MessageType, m.Priority,
	).Scan(&m.ID, &m.SentAt)
	if err != nil {
		return err
	}

	for _, recipientID := range m.RecipientIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO message_recipients (message_id, recipient_id) VALUES ($1, $2)`,
			m.ID, recipientID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetByID retrieves a message within the given scope.
func (r *MessageRepository) GetByID(ctx context.Context, scope *policy.Predicate, id uuid.UUID) (*model.Message, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("msg.id = ?", id)
	m, err := scanMessage(r.pool.QueryRow(ctx,
		`SELECT `+messageColumns+` FROM messages msg`+w.clause(), w.args...))
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT recipient_id FROM message_recipients WHERE message_id = $1`, m.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if m.RecipientIDs, err = collectIDs(rows); err != nil {
		return nil, err
	}
	return m, nil
}

// Inbox retrieves messages addressed to an actor, newest first, with per-
// recipient read state.
func (r *MessageRepository) Inbox(ctx context.Context, actorID uuid.UUID, unreadOnly bool, limit, offset int) ([]model.InboxEntry, int, error) {
	w := newWhere()
	w.add("mr.recipient_id = ?", actorID)
	if unreadOnly {
		w.add("mr.read_at IS NULL")
	}

	const base = ` FROM messages msg JOIN message_recipients mr ON mr.message_id = msg.id`

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*)`+base+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limPh, offPh := w.bind(limit), w.bind(offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+messageColumns+`, mr.read_at`+base+w.clause()+
			` ORDER BY msg.sent_at DESC LIMIT `+limPh+` OFFSET `+offPh, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []model.InboxEntry
	for rows.Next() {
		var e model.InboxEntry
		if err := rows.Scan(&e.ID, &e.SchoolID, &e.SenderID, &e.Subject, &e.Content,
			&e.MessageType, &e.Priority, &e.SentAt, &e.ReadAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// Sent retrieves messages an actor has sent, newest first.
func (r *MessageRepository) Sent(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]model.Message, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages msg WHERE msg.sender_id = $1`, actorID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages msg
		 WHERE msg.sender_id = $1
		 ORDER BY msg.sent_at DESC LIMIT $2 OFFSET $3`, actorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, 0, err
		}
		messages = append(messages, *m)
	}
	return messages, total, rows.Err()
}

// MarkRead stamps a recipient's read time. Already-read entries keep their
// original timestamp.
func (r *MessageRepository) MarkRead(ctx context.Context, messageID, recipientID uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE message_recipients SET read_at = $1
		 WHERE message_id = $2 AND recipient_id = $3 AND read_at IS NULL`,
		at, messageID, recipientID)
	return err
}

// RecipientsInSchool filters candidate recipient actor IDs down to active
// actors of one school. Used to reject cross-school sends.
func (r *MessageRepository) RecipientsInSchool(ctx context.Context, schoolID uuid.UUID, candidates []uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT act.id FROM actors act
		 WHERE act.school_id = $1 AND act.is_active AND act.id = ANY($2)`,
		schoolID, candidates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIDs(rows)
}
