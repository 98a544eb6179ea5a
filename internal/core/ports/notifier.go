package ports

import (
	"context"

	"github.com/unmatched/taskboard/internal/core/domain"
)

// EventKind classifies a task notification.
type EventKind string

const (
	EventCreated       EventKind = "created"
	EventAssigned      EventKind = "assigned"
	EventStatusChanged EventKind = "status_changed"
)

// Notification is the immutable payload handed to the dispatcher after a
// lifecycle mutation commits. Task is a value copy, never the live record;
// the display names and Discord ids are resolved up front so delivery needs
// no store access.
type Notification struct {
	Event             EventKind
	Task              domain.Task
	CreatorName       string
	CreatorDiscordID  string
	AssigneeName      string
	AssigneeDiscordID string
}

// Notifier accepts notifications for background delivery. Enqueue must not
// block the caller beyond handing the payload off, and delivery failures are
// never reported back.
type Notifier interface {
	Enqueue(n Notification)
}

// ChatSink delivers messages to the shared broadcast channel or directly to
// a linked chat user. Both calls are best-effort single attempts.
type ChatSink interface {
	SendChannel(ctx context.Context, text string) error
	SendDirect(ctx context.Context, discordID, text string) error
}
