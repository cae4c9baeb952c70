// Package notify tells groups and helpers about queue changes out of band.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disgoorg/snowflake/v2"

	"helpqueue/pkg/queue"
	"helpqueue/pkg/utils"
)

type Event string

const (
	EventEnqueued Event = "enqueued"
	EventAssigned Event = "assigned"
)

type Notice struct {
	Event        Event
	Group        queue.GroupID
	VoiceChannel snowflake.ID
	Helper       string
	Position     int
}

// Message renders the notice as Discord markdown.
func (n Notice) Message() string {
	switch n.Event {
	case EventAssigned:
		return fmt.Sprintf("Group %d: %s is joining you in <#%s>", n.Group, utils.LimitStr(n.Helper, 64), n.VoiceChannel)
	case EventEnqueued:
		return fmt.Sprintf("Group %d is waiting for help in <#%s> (position %d)", n.Group, n.VoiceChannel, n.Position)
	default:
		return fmt.Sprintf("Group %d: %s", n.Group, n.Event)
	}
}

type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

type Func func(ctx context.Context, n Notice) error

func (f Func) Notify(ctx context.Context, n Notice) error { return f(ctx, n) }

// Multi notifies through every notifier and joins their errors.
func Multi(notifiers ...Notifier) Notifier {
	return Func(func(ctx context.Context, n Notice) error {
		var errs []error
		for _, nt := range notifiers {
			if err := nt.Notify(ctx, n); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

type LogNotifier struct {
	Logger *log.Logger
}

func (l LogNotifier) Notify(_ context.Context, n Notice) error {
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Info(n.Message(), "event", n.Event, "group", n.Group, "voice_channel", n.VoiceChannel)
	return nil
}

// WebhookNotifier posts notices to a Discord channel webhook.
type WebhookNotifier struct {
	URL    string
	Client *http.Client
}

type webhookMessage struct {
	Content         string          `json:"content"`
	AllowedMentions allowedMentions `json:"allowed_mentions"`
}

type allowedMentions struct {
	Parse []string `json:"parse"`
}

func (w WebhookNotifier) Notify(ctx context.Context, n Notice) error {
	body, err := json.Marshal(webhookMessage{
		Content:         n.Message(),
		AllowedMentions: allowedMentions{Parse: []string{}},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := w.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook post: unexpected status %s", resp.Status)
	}
	return nil
}
