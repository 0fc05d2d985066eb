package config

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	Port          string
	JWTSecret     string
	BanksDir      string
	Log           LogConfig
	Limits        *LimitsConfig
	Notifications *NotificationConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// LimitsConfig holds the transfer allowance and request throttling settings.
type LimitsConfig struct {
	MonthlyTransferLimit int
	RequestsPerWindow    int
	RateLimitWindow      time.Duration
}

type NotificationConfig struct {
	RetryQueue    string
	RetryInterval time.Duration
	MaxAttempts   int
}

var envBindings = map[string]string{
	"server.port": "PORT",

	"static.banks_dir": "STATIC_BANKS_DIR",

	"database.host":     "DATABASE_HOST",
	"database.port":     "DATABASE_PORT",
	"database.user":     "DATABASE_USER",
	"database.password": "DATABASE_PASSWORD",
	"database.name":     "DATABASE_NAME",
	"database.ssl_mode": "DATABASE_SSL_MODE",

	"database.migrations_path": "DATABASE_MIGRATIONS_PATH",

	"redis.host":     "REDIS_HOST",
	"redis.port":     "REDIS_PORT",
	"redis.password": "REDIS_PASSWORD",
	"redis.db":       "REDIS_DB",

	"jwt.secret_key": "JWT_SECRET_KEY",

	"log.level":  "LOG_LEVEL",
	"log.format": "LOG_FORMAT",

	"limits.monthly_transfer_limit": "MONTHLY_TRANSFER_LIMIT",
	"limits.requests_per_window":    "RATE_LIMIT_REQUESTS",
	"limits.rate_limit_window":      "RATE_LIMIT_WINDOW",

	"notifications.retry_queue":    "NOTIFICATION_RETRY_QUEUE",
	"notifications.retry_interval": "NOTIFICATION_RETRY_INTERVAL",
	"notifications.max_attempts":   "NOTIFICATION_MAX_ATTEMPTS",
}

// Load reads .env and the environment into viper and returns the typed config.
func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	for key, env := range envBindings {
		viper.BindEnv(key, env)
	}

	if err := viper.ReadInConfig(); err != nil {
		logrus.Warnf("Config file not found, using defaults: %v", err)
	}

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("static.banks_dir", "./static/banks")

	return &Config{
		Port:      viper.GetString("server.port"),
		JWTSecret: viper.GetString("jwt.secret_key"),
		BanksDir:  viper.GetString("static.banks_dir"),
		Log: LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
		Limits:        LoadLimitsConfig(),
		Notifications: LoadNotificationConfig(),
	}
}

func LoadLimitsConfig() *LimitsConfig {
	viper.SetDefault("limits.monthly_transfer_limit", 10)
	viper.SetDefault("limits.requests_per_window", 10)
	viper.SetDefault("limits.rate_limit_window", time.Minute)

	return &LimitsConfig{
		MonthlyTransferLimit: viper.GetInt("limits.monthly_transfer_limit"),
		RequestsPerWindow:    viper.GetInt("limits.requests_per_window"),
		RateLimitWindow:      viper.GetDuration("limits.rate_limit_window"),
	}
}

func LoadNotificationConfig() *NotificationConfig {
	viper.SetDefault("notifications.retry_queue", "notification_retry_queue")
	viper.SetDefault("notifications.retry_interval", 5*time.Second)
	viper.SetDefault("notifications.max_attempts", 5)

	return &NotificationConfig{
		RetryQueue:    viper.GetString("notifications.retry_queue"),
		RetryInterval: viper.GetDuration("notifications.retry_interval"),
		MaxAttempts:   viper.GetInt("notifications.max_attempts"),
	}
}
