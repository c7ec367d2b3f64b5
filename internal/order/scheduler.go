package order

import (
	"time"

	"go.uber.org/zap"

	"github.com/wizzzlaundry/backend/internal/metrics"
	"github.com/wizzzlaundry/backend/internal/notify"
)

// Timeline fixes when each lifecycle step fires, relative to order creation.
type Timeline struct {
	Pickup     time.Duration
	Processing time.Duration
	Delivery   time.Duration
}

func DefaultTimeline() Timeline {
	return Timeline{
		Pickup:     5 * time.Second,
		Processing: 10 * time.Second,
		Delivery:   15 * time.Second,
	}
}

// Scheduler simulates fulfillment for a newly created order: three
// independent timers advance the status and emit a notification each.
// There is no timer cancellation: a cancelled order suppresses every later
// step through the store's status-write guard, so a firing timer on a
// cancelled or missing order is a silent no-op.
type Scheduler struct {
	store    *Store
	notifier notify.Notifier
	timeline Timeline
	logger   *zap.Logger
}

func NewScheduler(store *Store, notifier notify.Notifier, timeline Timeline, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		store:    store,
		notifier: notifier,
		timeline: timeline,
		logger:   logger,
	}
}

// Track registers the lifecycle timers for an order. Registration itself
// never fails.
func (s *Scheduler) Track(orderID string) {
	s.schedule(orderID, s.timeline.Pickup, StatusPickedUp,
		"Your laundry has been picked up by our driver.")
	s.schedule(orderID, s.timeline.Processing, StatusProcessing,
		"Your laundry is now being washed and pressed.")
	s.schedule(orderID, s.timeline.Delivery, StatusDelivered,
		"Your laundry has been delivered. Enjoy!")
}

func (s *Scheduler) schedule(orderID string, after time.Duration, status Status, message string) {
	time.AfterFunc(after, func() {
		if !s.store.SetStatus(orderID, status) {
			s.logger.Debug("skipping suppressed lifecycle step",
				zap.String("order_id", orderID),
				zap.String("status", string(status)),
			)
			return
		}

		metrics.StatusTransitionsTotal.WithLabelValues(string(status)).Inc()
		s.logger.Info("order status advanced",
			zap.String("order_id", orderID),
			zap.String("status", string(status)),
		)

		s.notifier.Notify("Order Update: "+orderID, message)
		metrics.NotificationsSentTotal.Inc()
	})
}
