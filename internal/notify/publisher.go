// Package notify publishes conversion run events to NATS JetStream.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/mddocx/internal/config"
)

const publishTimeout = 5 * time.Second

// Publisher manages the NATS connection used for run notifications.
type Publisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
	logger  *slog.Logger
}

// New connects to NATS when notifications are enabled. It returns a nil
// Publisher when cfg.Enabled is false; publishing on a nil Publisher is a
// no-op, so callers never need to branch on the setting.
func New(cfg config.NotificationConfig, logger *slog.Logger) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	logger.Info("notification publisher initialized",
		"url", cfg.NATSURL,
		"subject", cfg.Subject)

	return &Publisher{
		conn:    conn,
		js:      js,
		subject: cfg.Subject,
		logger:  logger,
	}, nil
}

// PublishRun publishes a run completion event.
func (p *Publisher) PublishRun(ctx context.Context, event *RunEvent) error {
	if p == nil || p.js == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	event.Timestamp = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := p.js.Publish(ctx, p.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("published run event",
		"run_id", event.RunID,
		"status", event.Status,
		"converted", event.Converted,
		"failed", event.Failed)

	return nil
}

// Close closes the NATS connection.
func (p *Publisher) Close() error {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
	return nil
}
