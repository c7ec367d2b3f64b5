//go:generate mockgen -source ./notify.go -destination=./mocks/notify.go -package=mock_notify
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wizzzlaundry/backend/internal/kafka"
)

// Notifier delivers a user-facing alert. Implementations are fire-and-forget:
// they must never return an error or block the caller on delivery, and absence
// of a backing channel is a silent no-op.
type Notifier interface {
	Notify(title, body string)
}

// LogNotifier writes notifications to the service log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(title, body string) {
	n.logger.Info("notification",
		zap.String("title", title),
		zap.String("body", body),
	)
}

type updateEvent struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sent_at"`
}

// EventNotifier publishes notifications as JSON events to a topic. Delivery
// failures are logged and swallowed.
type EventNotifier struct {
	producer kafka.Producer
	topic    string
	timeout  time.Duration
	logger   *zap.Logger
}

func NewEventNotifier(producer kafka.Producer, topic string, logger *zap.Logger) *EventNotifier {
	return &EventNotifier{
		producer: producer,
		topic:    topic,
		timeout:  5 * time.Second,
		logger:   logger,
	}
}

func (n *EventNotifier) Notify(title, body string) {
	event := updateEvent{
		ID:     uuid.NewString(),
		Title:  title,
		Body:   body,
		SentAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("failed to marshal notification event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	if err := n.producer.SendMessage(ctx, n.topic, []byte(event.ID), payload); err != nil {
		n.logger.Warn("failed to publish notification event",
			zap.String("title", title),
			zap.Error(err),
		)
	}
}

type multiNotifier struct {
	notifiers []Notifier
}

// Multi fans a notification out to every given notifier.
func Multi(notifiers ...Notifier) Notifier {
	return &multiNotifier{notifiers: notifiers}
}

func (m *multiNotifier) Notify(title, body string) {
	for _, n := range m.notifiers {
		n.Notify(title, body)
	}
}
