// Package notify defines the one-way notification boundary between the
// coordination core and the chat transport. Delivery is advisory: one
// attempt, no ordering, failures logged and swallowed.
package notify

import (
	"context"
	"log/slog"
)

// Message is a notification for the transport to deliver to one recipient.
type Message struct {
	RecipientExternalID string   `json:"recipientExternalId"`
	Text                string   `json:"text"`
	Actions             []Action `json:"actions,omitempty"`
}

// Action is a follow-up button offered alongside a message. Token is an
// encoded engine action the transport echoes back verbatim when clicked.
type Action struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// Dispatcher delivers messages to the chat transport. Implementations must
// never block on or surface delivery failures to the triggering operation.
type Dispatcher interface {
	Dispatch(ctx context.Context, messages []Message)
}

// LogDispatcher records messages in the structured log without delivering
// them. Used when no transport delivery URL is configured; the transport is
// then expected to deliver the notifications echoed in command responses.
type LogDispatcher struct{}

// Dispatch logs each message at debug level.
func (LogDispatcher) Dispatch(_ context.Context, messages []Message) {
	for _, m := range messages {
		slog.Debug("notification held for transport pickup",
			"recipient", m.RecipientExternalID,
			"actions", len(m.Actions),
		)
	}
}
