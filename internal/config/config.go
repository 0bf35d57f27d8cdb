package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Store      StoreConfig      `koanf:"store"`
	Processing ProcessingConfig `koanf:"processing"`
	Logger     LoggerConfig     `koanf:"logger"`
}

type StoreConfig struct {
	Capacity       int `koanf:"capacity" validate:"gte=1,lte=1000000"`
	AuditRetention int `koanf:"audit_retention" validate:"gte=1,lte=1000000"`
}

type ProcessingConfig struct {
	SuccessProbability  float64 `koanf:"success_probability" validate:"gt=0,lte=1"`
	LowPaymentThreshold float64 `koanf:"low_payment_threshold" validate:"gt=0"`
	// Seed pins the simulation RNG for reproducible runs; zero means
	// seed from the clock.
	Seed uint64 `koanf:"seed"`
}

type LoggerConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

// LoadConfig builds the runtime configuration from defaults overlaid with
// REVENUE_-prefixed environment variables ("__" nests, e.g.
// REVENUE_STORE__CAPACITY).
func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(confmap.Provider(map[string]interface{}{
		"store.capacity":                   10000,
		"store.audit_retention":            10000,
		"processing.success_probability":   0.85,
		"processing.low_payment_threshold": 100.0,
		"processing.seed":                  0,
		"logger.level":                     "info",
	}, "."), nil)
	if err != nil {
		logger.Error("failed to load default config", "error", err)
		return nil, err
	}

	err = k.Load(env.Provider("REVENUE_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "REVENUE_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
