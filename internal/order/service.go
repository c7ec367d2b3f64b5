package order

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wizzzlaundry/backend/internal/catalog"
	"github.com/wizzzlaundry/backend/internal/metrics"
)

// Service is the only entry point consumers use for orders. It prices the
// cart against the catalog, delegates persistence to the store and starts
// the lifecycle scheduler for each created order.
type Service struct {
	store     *Store
	catalog   *catalog.Catalog
	scheduler *Scheduler
	logger    *zap.Logger
}

func NewService(store *Store, cat *catalog.Catalog, scheduler *Scheduler, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		catalog:   cat,
		scheduler: scheduler,
		logger:    logger,
	}
}

// CreateOrder builds the cart from the given selections, computes the total
// and persists the order. Unit prices come from the catalog by service id;
// unknown ids are rejected. The scheduler starts only after the store commit
// succeeds, so side effects are never registered for a non-existent order.
func (s *Service) CreateOrder(ctx context.Context, userID string, selections []Selection, pickupDate, deliveryDate time.Time, address string) (Order, error) {
	if err := ctx.Err(); err != nil {
		return Order{}, err
	}

	items := make([]CartItem, 0, len(selections))
	total := decimal.Zero
	for _, sel := range selections {
		svc, ok := s.catalog.Get(sel.ServiceID)
		if !ok {
			metrics.OperationErrorsTotal.WithLabelValues("create_order").Inc()
			return Order{}, fmt.Errorf("%w: unknown service %q", ErrValidation, sel.ServiceID)
		}
		items = append(items, CartItem{
			ServiceID: svc.ID,
			Name:      svc.Name,
			UnitPrice: svc.Price,
			Category:  svc.Category,
			Quantity:  sel.Quantity,
		})
		total = total.Add(svc.Price.Mul(decimal.NewFromInt(int64(sel.Quantity))))
	}

	created, err := s.store.Create(CreateSpec{
		UserID:       userID,
		Items:        items,
		TotalAmount:  total,
		PickupDate:   pickupDate,
		DeliveryDate: deliveryDate,
		Address:      address,
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create_order").Inc()
		return Order{}, err
	}

	s.scheduler.Track(created.ID)
	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info("order created",
		zap.String("order_id", created.ID),
		zap.String("user_id", userID),
		zap.String("total", created.TotalAmount.String()),
	)

	return created, nil
}

// ListOrders returns the user's orders, most-recently-created first.
func (s *Service) ListOrders(ctx context.Context, userID string) []Order {
	return s.store.List(userID)
}

// CancelOrder delegates to the store and propagates its errors unchanged.
func (s *Service) CancelOrder(ctx context.Context, orderID string) error {
	if err := s.store.Cancel(orderID); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("cancel_order").Inc()
		return err
	}

	metrics.OrdersCancelledTotal.Inc()
	s.logger.Info("order cancelled", zap.String("order_id", orderID))
	return nil
}
