package model

import (
	"time"

	"github.com/google/uuid"
)

// MessageType enumerates delivery modes.
type MessageType string

const (
	MessageTypeIndividual MessageType = "individual"
	MessageTypeGroup      MessageType = "group"
	MessageTypeBroadcast  MessageType = "broadcast"
)

// Message is an in-app message from one actor to one or more recipients in
// the same school.
type Message struct {
	ID           uuid.UUID      `json:"id"`
	SchoolID     uuid.UUID      `json:"school_id"`
	SenderID     uuid.UUID      `json:"sender_id"`
	Subject      string         `json:"subject"`
	Content      string         `json:"content"`
	MessageType  MessageType    `json:"message_type"`
	Priority     NoticePriority `json:"priority"`
	RecipientIDs []uuid.UUID    `json:"recipient_ids,omitempty"`
	SentAt       time.Time      `json:"sent_at"`
}

// InboxEntry is a message as seen by one recipient.
type InboxEntry struct {
	Message
	ReadAt *time.Time `json:"read_at,omitempty"`
}

// SendMessageRequest is the payload for sending a message.
type SendMessageRequest struct {
	Subject      string         `json:"subject" binding:"required,min=1,max=200"`
	Content      string         `json:"content" binding:"required"`
	MessageType  MessageType    `json:"message_type" binding:"omitempty,oneof=individual group broadcast"`
	Priority     NoticePriority `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	RecipientIDs []uuid.UUID    `json:"recipient_ids" binding:"required,min=1"`
}

// InboxEvent is the payload published to a recipient's inbox channel and
// streamed over the websocket.
type InboxEvent struct {
	MessageID uuid.UUID      `json:"message_id"`
	SenderID  uuid.UUID      `json:"sender_id"`
	Subject   string         `json:"subject"`
	Priority  NoticePriority `json:"priority"`
	SentAt    time.Time      `json:"sent_at"`
}
