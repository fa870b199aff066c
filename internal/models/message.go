package models

import (
	"strings"
	"time"
)

// MessageKind distinguishes user text from lifecycle system messages at the
// data model, instead of relying on string-prefix sniffing alone.
type MessageKind string

const (
	MessageKindUser   MessageKind = "user"
	MessageKindSystem MessageKind = "system"
)

// SystemEvent is a lifecycle event carried inside a system message.
type SystemEvent string

const (
	SystemMatchDeleted   SystemEvent = "match_deleted"
	SystemMatchScheduled SystemEvent = "match_scheduled"
	SystemMatchRejected  SystemEvent = "match_rejected"
	SystemUserLeft       SystemEvent = "user_left"
)

// systemPrefix is the wire convention for system message content. System rows
// keep this encoding so existing consumers render them unchanged.
const systemPrefix = "system:::"

// SystemContent encodes an event into the stored content form.
func SystemContent(event SystemEvent) string {
	return systemPrefix + string(event)
}

// SystemEventOf parses content into a known event. Unrecognized suffixes are
// ordinary text, so new event names can ship without breaking old readers.
func SystemEventOf(content string) (SystemEvent, bool) {
	suffix, ok := strings.CutPrefix(content, systemPrefix)
	if !ok {
		return "", false
	}
	switch event := SystemEvent(suffix); event {
	case SystemMatchDeleted, SystemMatchScheduled, SystemMatchRejected, SystemUserLeft:
		return event, true
	}
	return "", false
}

// Message is one entry in a chat room's append-only feed. System messages are
// regular rows; Kind is authoritative, with the content prefix kept for rows
// written before the kind column existed.
type Message struct {
	ID         int64       `db:"id" json:"id"`
	ChatRoomID int64       `db:"chat_room_id" json:"chat_room_id"`
	SenderID   int64       `db:"sender_id" json:"sender_id"`
	Kind       MessageKind `db:"kind" json:"kind"`
	Content    string      `db:"content" json:"content"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
}

// SystemEvent returns the lifecycle event for system messages.
func (m Message) SystemEvent() (SystemEvent, bool) {
	if m.Kind != MessageKindSystem && m.Kind != "" {
		return "", false
	}
	return SystemEventOf(m.Content)
}

// RoomEvent is broadcast through websockets to room subscribers.
type RoomEvent struct {
	Type    string   `json:"type"`
	Message *Message `json:"message,omitempty"`
}
