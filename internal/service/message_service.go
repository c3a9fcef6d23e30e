package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/edustack/campus-backend/internal/config"
	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
	"github.com/edustack/campus-backend/internal/repository"
)

// MessageService handles in-app messaging. Deliveries publish an InboxEvent
// to each recipient's Redis channel for live websocket streaming.
type MessageService struct {
	messageRepo *repository.MessageRepository
	rdb         *redis.Client
	logger      zerolog.Logger
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo *repository.MessageRepository, rdb *redis.Client) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		rdb:         rdb,
		logger:      log.With().Str("component", "message_service").Logger(),
	}
}

// Send delivers a message to one or more recipients of the sender's school.
// Any recipient outside the school (or inactive) rejects the whole send.
func (s *MessageService) Send(ctx context.Context, actor *policy.Actor, req *model.SendMessageRequest) (*model.Message, error) {
	if !policy.Can(actor.Role, policy.ResourceMessages, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	if actor.SchoolID == nil {
		return nil, ErrCrossSchool
	}

	reachable, err := s.messageRepo.RecipientsInSchool(ctx, *actor.SchoolID, req.RecipientIDs)
	if err != nil {
		return nil, err
	}
	if len(reachable) != len(req.RecipientIDs) {
		return nil, ErrRecipientsInvalid
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = model.MessageTypeIndividual
		if len(req.RecipientIDs) > 1 {
			messageType = model.MessageTypeGroup
		}
	}
	priority := req.Priority
	if priority == "" {
		priority = model.NoticePriorityMedium
	}

	message := &model.Message{
		SchoolID:     *actor.SchoolID,
		SenderID:     actor.ID,
		Subject:      req.Subject,
		Content:      req.Content,
		MessageType:  messageType,
		Priority:     priority,
		RecipientIDs: req.RecipientIDs,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	s.publishInboxEvents(ctx, message)
	return message, nil
}

// publishInboxEvents fans the delivery out to each recipient's channel.
// Publish failures are logged, not surfaced: the message is already stored.
func (s *MessageService) publishInboxEvents(ctx context.Context, m *model.Message) {
	event := model.InboxEvent{
		MessageID: m.ID,
		SenderID:  m.SenderID,
		Subject:   m.Subject,
		Priority:  m.Priority,
		SentAt:    m.SentAt,
	}
	raw, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Msg("marshal inbox event")
		return
	}
	for _, recipientID := range m.RecipientIDs {
		channel := config.CacheKey.InboxChannel(recipientID)
		if err := s.rdb.Publish(ctx, channel, raw).Err(); err != nil {
			s.logger.Warn().Err(err).Str("recipient_id", recipientID.String()).Msg("publish inbox event failed")
		}
	}
}

// GetByID retrieves one message the actor sent or received.
func (s *MessageService) GetByID(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*model.Message, error) {
	if !policy.Can(actor.Role, policy.ResourceMessages, policy.ActionRead) {
		return nil, ErrForbidden
	}
	message, err := s.messageRepo.GetByID(ctx, policy.Scope(actor, policy.ResourceMessages), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return message, nil
}

// Inbox retrieves the actor's received messages, newest first.
func (s *MessageService) Inbox(ctx context.Context, actor *policy.Actor, unreadOnly bool, limit, offset int) ([]model.InboxEntry, int, error) {
	if !policy.Can(actor.Role, policy.ResourceMessages, policy.ActionRead) {
		return nil, 0, ErrForbidden
	}
	return s.messageRepo.Inbox(ctx, actor.ID, unreadOnly, limit, offset)
}

// Sent retrieves the actor's sent messages, newest first.
func (s *MessageService) Sent(ctx context.Context, actor *policy.Actor, limit, offset int) ([]model.Message, int, error) {
	if !policy.Can(actor.Role, policy.ResourceMessages, policy.ActionRead) {
		return nil, 0, ErrForbidden
	}
	return s.messageRepo.Sent(ctx, actor.ID, limit, offset)
}

// MarkRead stamps the actor's read time on a message addressed to them.
func (s *MessageService) MarkRead(ctx context.Context, actor *policy.Actor, messageID uuid.UUID) error {
	if !policy.Can(actor.Role, policy.ResourceMessages, policy.ActionUpdate) {
		return ErrForbidden
	}
	return s.messageRepo.MarkRead(ctx, messageID, actor.ID, time.Now())
}
