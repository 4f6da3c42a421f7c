package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable guidelines:
// - required: values that differ between environments (port, DB connection) and
//   security settings
// - default: values common across environments (timezone, timeouts, booking
//   defaults)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Booking BookingConfig
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
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// BookingConfig carries the fallback booking settings used when the
// booking_settings table has no row. The per-request settings read always
// wins; these are never cached as process state.
type BookingConfig struct {
	TimeZone           string `envconfig:"BOOKING_TIMEZONE" default:"UTC"`
	OpenMinutes        int    `envconfig:"BOOKING_OPEN_MINUTES" default:"480"`
	CloseMinutes       int    `envconfig:"BOOKING_CLOSE_MINUTES" default:"1320"`
	GranularityMinutes int    `envconfig:"BOOKING_GRANULARITY_MINUTES" default:"60"`
	BufferMinutes      int    `envconfig:"BOOKING_BUFFER_MINUTES" default:"0"`
	MinDurationMinutes int    `envconfig:"BOOKING_MIN_DURATION_MINUTES" default:"60"`
	MaxDurationMinutes int    `envconfig:"BOOKING_MAX_DURATION_MINUTES" default:"480"`
	AdvanceDays        int    `envconfig:"BOOKING_ADVANCE_DAYS" default:"30"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "24h",
		},
		Booking: BookingConfig{
			TimeZone:           "UTC",
			OpenMinutes:        480,
			CloseMinutes:       1320,
			GranularityMinutes: 60,
			BufferMinutes:      0,
			MinDurationMinutes: 60,
			MaxDurationMinutes: 480,
			AdvanceDays:        30,
		},
	}
}
