// Package eventbus republishes room-wide broadcasts on NATS so that processes
// outside the room (dashboards, archivers) can follow the auction.
package eventbus

import (
	"fmt"
	"time"

	"auction-room/internal/events"
	"auction-room/utils"

	"github.com/nats-io/nats.go"
)

// Conn is the subset of *nats.Conn the publisher needs
type Conn interface {
	Publish(subj string, data []byte) error
	Drain() error
}

// Publisher mirrors events to a NATS subject. Publishing is fire-and-forget:
// failures are logged and never reach the room.
type Publisher struct {
	conn    Conn
	subject string
}

// NewPublisher wraps an existing connection
func NewPublisher(conn Conn, subject string) *Publisher {
	return &Publisher{conn: conn, subject: subject}
}

// Connect dials the NATS server at url and returns a publisher on subject
func Connect(url, subject string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("auction-room"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				utils.Warn("nats disconnected", map[string]any{"error": err.Error()})
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			utils.Info("nats reconnected", map[string]any{"url": nc.ConnectedUrl()})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	utils.Info("nats event mirror connected", map[string]any{"url": url, "subject": subject})
	return NewPublisher(nc, subject), nil
}

// Mirror publishes one event envelope
func (p *Publisher) Mirror(event events.Event) {
	data, err := event.Marshal()
	if err != nil {
		utils.Error("failed to marshal mirrored event", map[string]any{"event": string(event.Name), "error": err.Error()})
		return
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		utils.Warn("failed to publish mirrored event", map[string]any{
			"event":   string(event.Name),
			"subject": p.subject,
			"error":   err.Error(),
		})
	}
}

// Close flushes pending publishes and closes the connection
func (p *Publisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}
