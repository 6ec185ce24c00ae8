package reminder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Notifier delivers a reminder to the user. Implementations are
// fire-and-forget: a returned error is logged, never acted on.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Nop discards notifications. Used when no notification channel is
// configured.
type Nop struct{}

func (Nop) Notify(context.Context, string, string) error {
	return nil
}

// Ntfy publishes reminders to an ntfy topic over plain HTTP. Any
// ntfy-compatible server works, including the public ntfy.sh.
type Ntfy struct {
	baseURL    string
	topic      string
	httpClient *http.Client
}

// NewNtfy creates a notifier targeting baseURL/topic.
func NewNtfy(baseURL, topic string) *Ntfy {
	return &Ntfy{
		baseURL:    strings.TrimRight(baseURL, "/"),
		topic:      topic,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *Ntfy) Notify(ctx context.Context, title, body string) error {
	u := n.baseURL + "/" + n.topic
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("ntfy: create request: %w", err)
	}
	req.Header.Set("Title", title)
	req.Header.Set("Tags", "muscle")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ntfy: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ntfy: publish returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}
