package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Client publishes scoring events. Implementations must be safe for
// concurrent use.
type Client interface {
	Publish(subject string, data interface{}) error
	Close()
}

// publisher is the core NATS publish call; *nats.Conn satisfies it.
type publisher interface {
	Publish(subject string, data []byte) error
}

// streamManager is the slice of jetstream.JetStream used at startup.
type streamManager interface {
	CreateOrUpdateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error)
}

// NATSClient publishes batch events as JSON onto the TRIAGE_EVENTS stream.
type NATSClient struct {
	conn   *nats.Conn
	pub    publisher
	logger *slog.Logger
}

// NewNATSClient connects to url and makes sure the event stream exists.
// Stream creation failures are logged, not returned.
func NewNATSClient(ctx context.Context, url string, logger *slog.Logger) (*NATSClient, error) {
	nc, err := nats.Connect(url,
		nats.Name("triage"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	if err := ensureStream(ctx, js); err != nil {
		logger.Warn("failed to ensure event stream", "stream", StreamName, "error", err)
	}
	return &NATSClient{conn: nc, pub: nc, logger: logger}, nil
}

// streamConfig describes TRIAGE_EVENTS: every batch subject, kept for StreamMaxAge.
func streamConfig() (jetstream.StreamConfig, error) {
	maxAge, err := time.ParseDuration(StreamMaxAge)
	if err != nil {
		return jetstream.StreamConfig{}, fmt.Errorf("stream max age %q: %w", StreamMaxAge, err)
	}
	return jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{StreamSubjects},
		MaxAge:    maxAge,
		Retention: jetstream.LimitsPolicy,
		Storage:   jetstream.FileStorage,
	}, nil
}

func ensureStream(ctx context.Context, sm streamManager) error {
	cfg, err := streamConfig()
	if err != nil {
		return err
	}
	if _, err := sm.CreateOrUpdateStream(ctx, cfg); err != nil {
		return fmt.Errorf("create stream %s: %w", cfg.Name, err)
	}
	return nil
}

// Publish encodes data as JSON and sends it on subject.
func (c *NATSClient) Publish(subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode event for %s: %w", subject, err)
	}
	if err := c.pub.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// Close flushes pending events before closing the connection.
func (c *NATSClient) Close() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Drain(); err != nil {
		c.logger.Warn("nats drain failed", "error", err)
		c.conn.Close()
	}
}
