package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "order-updates", cfg.KafkaTopic)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Second, cfg.PickupDelay)
	assert.Equal(t, 10*time.Second, cfg.ProcessingDelay)
	assert.Equal(t, 15*time.Second, cfg.DeliveryDelay)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")
	t.Setenv("PICKUP_DELAY", "250ms")
	t.Setenv("PROCESSING_DELAY", "not-a-duration")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 250*time.Millisecond, cfg.PickupDelay)
	// Invalid values fall back to the default.
	assert.Equal(t, 10*time.Second, cfg.ProcessingDelay)
}
