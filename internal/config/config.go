package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	DatabaseURL       string        `env:"DATABASE_URL,default=sqlite://alerts.db"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=10"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`

	HTTPAddr        string        `env:"HTTP_ADDR,default=:5000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	WebhookSecret string `env:"TV_SECRET,default=changeme"`
	WebhookSource string `env:"WEBHOOK_SOURCE,default=tradingview"`

	PollInterval time.Duration `env:"POLL_INTERVAL,default=3s"`
	PollSource   string        `env:"POLL_SOURCE,default=binance"`

	BinanceBaseURL string        `env:"BINANCE_BASE_URL,default=https://api.binance.com"`
	BinanceTimeout time.Duration `env:"BINANCE_TIMEOUT,default=10s"`

	ExpoPushURL string        `env:"EXPO_PUSH_URL,default=https://exp.host/--/api/v2/push/send"`
	ExpoTimeout time.Duration `env:"EXPO_TIMEOUT,default=10s"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
