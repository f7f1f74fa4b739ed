package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the checkout service
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Upstream booking backend
	Upstream UpstreamConfig

	// Seat map layout
	Layout LayoutConfig

	// Fare calculation
	Fare FareConfig

	// Payment gateway
	Gateway GatewayConfig

	// Redis (persistent client-state store)
	Redis RedisConfig

	// Booking history database
	Database DatabaseConfig

	// Kafka booking-event stream
	Kafka KafkaConfig

	// Logging
	LogLevel string
}

// UpstreamConfig holds the remote booking backend configuration
type UpstreamConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// LayoutConfig holds seat grid layout unit sizes
type LayoutConfig struct {
	CellSize int
	CellGap  int
}

// FareConfig holds fixed fare parameters.
// The display rate converts the primary-currency amount to a secondary
// currency for presentation only; it is never sent upstream.
type FareConfig struct {
	TaxRatePercent  float64
	ServiceFee      float64
	Currency        string
	DisplayCurrency string
	DisplayRate     float64
}

// GatewayConfig holds external payment gateway configuration
type GatewayConfig struct {
	KeyID           string
	CheckoutBaseURL string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	// TTL values for persisted client state
	SeatBackupTTL     time.Duration
	PaymentPendingTTL time.Duration
}

// DatabaseConfig holds booking-history database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// KafkaConfig holds booking-event producer configuration.
// An empty broker list disables event publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		Upstream: UpstreamConfig{
			BaseURL:        getEnv("UPSTREAM_BASE_URL", "http://localhost:9000/api/v1"),
			RequestTimeout: getDurationEnv("UPSTREAM_REQUEST_TIMEOUT", 15*time.Second),
		},

		Layout: LayoutConfig{
			CellSize: getIntEnv("LAYOUT_CELL_SIZE", 40),
			CellGap:  getIntEnv("LAYOUT_CELL_GAP", 8),
		},

		Fare: FareConfig{
			TaxRatePercent:  getFloatEnv("FARE_TAX_RATE_PERCENT", 12),
			ServiceFee:      getFloatEnv("FARE_SERVICE_FEE", 22),
			Currency:        getEnv("FARE_CURRENCY", "INR"),
			DisplayCurrency: getEnv("FARE_DISPLAY_CURRENCY", "USD"),
			DisplayRate:     getFloatEnv("FARE_DISPLAY_RATE", 0.012),
		},

		Gateway: GatewayConfig{
			KeyID:           getEnv("GATEWAY_KEY_ID", ""),
			CheckoutBaseURL: getEnv("GATEWAY_CHECKOUT_BASE_URL", "https://checkout.gateway.example"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			SeatBackupTTL:     getDurationEnv("REDIS_SEAT_BACKUP_TTL", 24*time.Hour),
			PaymentPendingTTL: getDurationEnv("REDIS_PAYMENT_PENDING_TTL", 5*time.Minute),
		},

		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "busbook_db"),
			User:     getEnv("DB_USER", "busbook_user"),
			Password: getEnv("DB_PASSWORD", "busbook_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		Kafka: KafkaConfig{
			Brokers: getStringSliceEnv("KAFKA_BROKERS", []string{}),
			Topic:   getEnv("KAFKA_BOOKING_TOPIC", "booking-events"),
		},

		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getFloatEnv gets a float environment variable with a fallback value
func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
