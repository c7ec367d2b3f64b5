package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wizzzlaundry/backend/internal/assistant"
	"github.com/wizzzlaundry/backend/internal/auth"
	"github.com/wizzzlaundry/backend/internal/catalog"
	"github.com/wizzzlaundry/backend/internal/config"
	"github.com/wizzzlaundry/backend/internal/kafka"
	"github.com/wizzzlaundry/backend/internal/logger"
	"github.com/wizzzlaundry/backend/internal/notify"
	"github.com/wizzzlaundry/backend/internal/order"
	"github.com/wizzzlaundry/backend/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "laundryd",
		Short: "Wizzz Laundry backend service",
	}
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var producer kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewWriterProducer(cfg.KafkaBrokers)
		log.Info("using kafka producer", zap.Strings("brokers", cfg.KafkaBrokers))
	} else {
		producer = kafka.NewConsoleProducer(log)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			log.Warn("failed to close producer", zap.Error(err))
		}
	}()

	notifier := notify.Multi(
		notify.NewLogNotifier(log),
		notify.NewEventNotifier(producer, cfg.KafkaTopic, log),
	)

	cat := catalog.New()
	store := order.NewStore()
	store.Seed(demoOrders(auth.UserID(demoEmail)))

	scheduler := order.NewScheduler(store, notifier, order.Timeline{
		Pickup:     cfg.PickupDelay,
		Processing: cfg.ProcessingDelay,
		Delivery:   cfg.DeliveryDelay,
	}, log)
	orderSvc := order.NewService(store, cat, scheduler, log)

	identity := auth.NewService(log)
	suds := assistant.NewClient(assistant.Config{
		APIURL: cfg.AssistantAPIURL,
		APIKey: cfg.AssistantAPIKey,
		Model:  cfg.AssistantModel,
	}, log)

	srv := server.New(orderSvc, identity, suds, cat, log)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gCtx, cfg.Port)
	})
	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", zap.Error(err))
		return err
	}

	log.Info("server gracefully stopped")
	return nil
}

// demoEmail is the account whose seeded order history is visible on login.
const demoEmail = "demo@wizzzlaundry.com"

// demoOrders reproduces the seeded history shown to the demo user.
func demoOrders(ownerID string) []order.Order {
	now := time.Now().UTC()
	return []order.Order{
		{
			ID:     "ORD-1002",
			UserID: ownerID,
			Status: order.StatusProcessing,
			Items: []order.CartItem{
				{ServiceID: "4", Name: "Comforter (Queen)", UnitPrice: decimal.RequireFromString("25.00"), Category: catalog.CategoryHousehold, Quantity: 1},
			},
			TotalAmount:  decimal.RequireFromString("25.00"),
			PickupDate:   now.Add(-1 * time.Hour),
			DeliveryDate: now.Add(2 * 24 * time.Hour),
			CreatedAt:    now.Add(-2 * time.Hour),
			Address:      "123 Main St, Apt 4B",
		},
		{
			ID:     "ORD-1001",
			UserID: ownerID,
			Status: order.StatusDelivered,
			Items: []order.CartItem{
				{ServiceID: "1", Name: "Shirt (Wash & Press)", UnitPrice: decimal.RequireFromString("3.50"), Category: catalog.CategoryGarment, Quantity: 5},
				{ServiceID: "3", Name: "Trousers", UnitPrice: decimal.RequireFromString("6.00"), Category: catalog.CategoryGarment, Quantity: 2},
			},
			TotalAmount:  decimal.RequireFromString("29.50"),
			PickupDate:   now.Add(-5 * 24 * time.Hour),
			DeliveryDate: now.Add(-3 * 24 * time.Hour),
			CreatedAt:    now.Add(-6 * 24 * time.Hour),
			Address:      "123 Main St, Apt 4B",
		},
	}
}
