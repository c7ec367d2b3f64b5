package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config carries every runtime knob the service reads from the environment.
type Config struct {
	Port string

	KafkaBrokers []string
	KafkaTopic   string

	AssistantAPIURL string
	AssistantAPIKey string
	AssistantModel  string

	PickupDelay     time.Duration
	ProcessingDelay time.Duration
	DeliveryDelay   time.Duration
}

// Load reads .env (if present) and the process environment, falling back to
// defaults for anything unset.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("no .env file loaded", zap.Error(err))
	}

	return Config{
		Port:            getEnv("PORT", "9000"),
		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "order-updates"),
		AssistantAPIURL: getEnv("ASSISTANT_API_URL", "https://api.openai.com/v1/chat/completions"),
		AssistantAPIKey: os.Getenv("ASSISTANT_API_KEY"),
		AssistantModel:  getEnv("ASSISTANT_MODEL", "gpt-4o-mini"),
		PickupDelay:     getDuration("PICKUP_DELAY", 5*time.Second),
		ProcessingDelay: getDuration("PROCESSING_DELAY", 10*time.Second),
		DeliveryDelay:   getDuration("DELIVERY_DELAY", 15*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		zap.L().Warn("invalid duration in environment, using default",
			zap.String("key", key), zap.String("value", v))
		return fallback
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
