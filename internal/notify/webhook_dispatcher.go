package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// WebhookDispatcher POSTs each message to the transport's delivery endpoint.
// Exactly one attempt per message; a failed delivery is logged and dropped.
type WebhookDispatcher struct {
	url    string
	client *http.Client
}

// NewWebhookDispatcher creates a dispatcher targeting the given URL.
func NewWebhookDispatcher(url string) *WebhookDispatcher {
	return &WebhookDispatcher{
		url: url,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Dispatch sends each message as an individual POST so one bad recipient
// cannot block the rest of the batch.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, messages []Message) {
	for _, m := range messages {
		if err := d.send(ctx, m); err != nil {
			slog.Warn("notification delivery failed",
				"recipient", m.RecipientExternalID,
				"error", err,
			)
		}
	}
}

func (d *WebhookDispatcher) send(ctx context.Context, m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode}
	}

	return nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}
