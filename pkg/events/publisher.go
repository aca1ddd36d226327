// Package events publishes mood-recorded events for downstream analytics
// consumers. Publishing is best-effort: a broker outage must never affect a
// user's turn.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"mindwell/pkg/domain"
)

const (
	moodExchange   = "mindwell.moods"
	moodRoutingKey = "mood.recorded"
)

// MoodEvent is the wire payload for one recorded mood.
type MoodEvent struct {
	ProfileID string              `json:"profileId"`
	Label     domain.EmotionLabel `json:"label"`
	Score     int                 `json:"score"`
	Intensity int                 `json:"intensity"`
	Source    domain.MoodSource   `json:"source"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Publisher emits mood events. A nil *MoodPublisher is a valid no-op.
type Publisher interface {
	PublishMood(ctx context.Context, event MoodEvent)
}

// MoodPublisher publishes mood events to a RabbitMQ fanout exchange.
type MoodPublisher struct {
	mu      sync.Mutex
	url     string
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewMoodPublisher connects to the broker and declares the exchange.
func NewMoodPublisher(url string) (*MoodPublisher, error) {
	p := &MoodPublisher{url: url}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *MoodPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial amqp: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	if err := channel.ExchangeDeclare(moodExchange, "fanout", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}
	p.conn = conn
	p.channel = channel
	return nil
}

// PublishMood emits one event. Failures are logged and swallowed; one
// reconnect is attempted on a closed connection. The mutex guards only the
// channel swap: amqp channels are safe for concurrent publishing, so slow
// broker calls never serialize callers behind each other.
func (p *MoodPublisher) PublishMood(ctx context.Context, event MoodEvent) {
	if p == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		slog.Warn("mood event marshal failed", "err", err)
		return
	}
	publish := func(channel *amqp.Channel) error {
		if channel == nil {
			return amqp.ErrClosed
		}
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		return channel.PublishWithContext(ctx, moodExchange, moodRoutingKey, false, false, amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   event.CreatedAt,
			Body:        body,
		})
	}
	if err := publish(p.currentChannel()); err != nil {
		channel, reconnectErr := p.reconnect()
		if reconnectErr != nil {
			slog.Warn("mood event publish failed", "err", err, "reconnect_err", reconnectErr)
			return
		}
		if err := publish(channel); err != nil {
			slog.Warn("mood event publish failed after reconnect", "err", err)
		}
	}
}

func (p *MoodPublisher) currentChannel() *amqp.Channel {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel
}

// reconnect re-dials unless a concurrent caller already did.
func (p *MoodPublisher) reconnect() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil && !p.conn.IsClosed() && p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p.channel, nil
}

// Close releases the channel and connection.
func (p *MoodPublisher) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
