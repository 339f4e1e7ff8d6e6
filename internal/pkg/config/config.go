package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timeouts, windows, retry counts)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Booking   BookingConfig
	Payment   PaymentConfig
	Reaper    ReaperConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID,X-Idempotency-Hit"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type BookingConfig struct {
	IdempotencyTTL time.Duration `envconfig:"BOOKING_IDEMPOTENCY_TTL" default:"24h"`
	LockTimeout    time.Duration `envconfig:"BOOKING_LOCK_TIMEOUT" default:"5s"`
	SlotCacheTTL   time.Duration `envconfig:"BOOKING_SLOT_CACHE_TTL" default:"60s"`
}

type PaymentConfig struct {
	WebhookSecret string `envconfig:"PAYMENT_WEBHOOK_SECRET" required:"true"`
	Currency      string `envconfig:"PAYMENT_CURRENCY" default:"INR"`
}

// ReaperConfig drives the stale-booking sweep. StaleAfter is measured from booking creation.
type ReaperConfig struct {
	Enabled          bool          `envconfig:"REAPER_ENABLED" default:"true"`
	Interval         time.Duration `envconfig:"REAPER_INTERVAL" default:"60s"`
	StaleAfter       time.Duration `envconfig:"REAPER_STALE_AFTER" default:"10m"`
	MaxRetries       uint64        `envconfig:"REAPER_MAX_RETRIES" default:"3"`
	InitialBackoff   time.Duration `envconfig:"REAPER_INITIAL_BACKOFF" default:"200ms"`
	MaxBackoff       time.Duration `envconfig:"REAPER_MAX_BACKOFF" default:"5s"`
	BatchSize        int32         `envconfig:"REAPER_BATCH_SIZE" default:"100"`
	KeyPurgeInterval time.Duration `envconfig:"REAPER_KEY_PURGE_INTERVAL" default:"1h"`
}

type RateLimitConfig struct {
	WebhookPerSecond float64 `envconfig:"WEBHOOK_RATE_PER_SECOND" default:"20"`
	WebhookBurst     int     `envconfig:"WEBHOOK_RATE_BURST" default:"40"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) Validate() error {
	if c.Reaper.Interval <= 0 {
		return fmt.Errorf("REAPER_INTERVAL must be positive, got %s", c.Reaper.Interval)
	}
	if c.Reaper.StaleAfter <= 0 {
		return fmt.Errorf("REAPER_STALE_AFTER must be positive, got %s", c.Reaper.StaleAfter)
	}
	if c.Reaper.BatchSize <= 0 {
		return fmt.Errorf("REAPER_BATCH_SIZE must be positive, got %d", c.Reaper.BatchSize)
	}
	if c.Booking.IdempotencyTTL <= 0 {
		return fmt.Errorf("BOOKING_IDEMPOTENCY_TTL must be positive, got %s", c.Booking.IdempotencyTTL)
	}
	if c.Payment.WebhookSecret == "" {
		return fmt.Errorf("PAYMENT_WEBHOOK_SECRET must not be empty")
	}
	if len(c.Payment.Currency) != 3 {
		return fmt.Errorf("PAYMENT_CURRENCY must be a 3-letter code, got %q", c.Payment.Currency)
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 20,
		},
		Redis: RedisConfig{
			Addr: "localhost:16379",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-jwt-secret",
			Duration: "1h",
		},
		Booking: BookingConfig{
			IdempotencyTTL: 24 * time.Hour,
			LockTimeout:    2 * time.Second,
			SlotCacheTTL:   time.Minute,
		},
		Payment: PaymentConfig{
			WebhookSecret: "test-webhook-secret",
			Currency:      "INR",
		},
		Reaper: ReaperConfig{
			Enabled:          false, // tests drive sweeps explicitly
			Interval:         time.Minute,
			StaleAfter:       10 * time.Minute,
			MaxRetries:       2,
			InitialBackoff:   time.Millisecond,
			MaxBackoff:       5 * time.Millisecond,
			BatchSize:        100,
			KeyPurgeInterval: time.Hour,
		},
		RateLimit: RateLimitConfig{
			WebhookPerSecond: 1000,
			WebhookBurst:     1000,
		},
	}
}
