package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Pricing   PricingConfig
	Cart      CartConfig
	OrderAPI  OrderAPIConfig
	QRSession QRSessionConfig
	Store     StoreConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// PricingConfig carries the restaurant-level rates applied to every cart.
// Rates are decimal fractions (0.15 = 15%).
type PricingConfig struct {
	TaxRate           float64
	ServiceChargeRate float64
	CurrencySymbol    string
}

// CartConfig controls cart persistence behavior.
type CartConfig struct {
	TTL time.Duration
}

// OrderAPIConfig points at the upstream order API. ClientID/ClientSecret/
// TokenURL are optional; when set, requests carry a client-credentials token.
type OrderAPIConfig struct {
	BaseURL      string
	Timeout      time.Duration
	ClientID     string
	ClientSecret string
	TokenURL     string
}

type QRSessionConfig struct {
	Secret string
	TTL    time.Duration
}

// StoreConfig is the business header printed on receipts.
type StoreConfig struct {
	Name    string
	Address string
	Phone   string
	TaxID   string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "dinepos-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "dinepos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Africa/Nairobi")
	viper.SetDefault("TAX_RATE", 0.15)
	viper.SetDefault("SERVICE_CHARGE_RATE", 0.0)
	viper.SetDefault("CURRENCY_SYMBOL", "$")
	viper.SetDefault("CART_TTL_HOURS", 2)
	viper.SetDefault("ORDER_API_BASE_URL", "http://localhost:8000")
	viper.SetDefault("ORDER_API_TIMEOUT_SECONDS", 10)
	viper.SetDefault("ORDER_API_CLIENT_ID", "")
	viper.SetDefault("ORDER_API_CLIENT_SECRET", "")
	viper.SetDefault("ORDER_API_TOKEN_URL", "")
	viper.SetDefault("QR_SESSION_SECRET", "change-this-secret-in-production")
	viper.SetDefault("QR_SESSION_TTL_MINUTES", 120)
	viper.SetDefault("STORE_NAME", "DINEPOS")
	viper.SetDefault("STORE_ADDRESS", "")
	viper.SetDefault("STORE_PHONE", "")
	viper.SetDefault("STORE_TAX_ID", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Pricing: PricingConfig{
			TaxRate:           viper.GetFloat64("TAX_RATE"),
			ServiceChargeRate: viper.GetFloat64("SERVICE_CHARGE_RATE"),
			CurrencySymbol:    viper.GetString("CURRENCY_SYMBOL"),
		},
		Cart: CartConfig{
			TTL: time.Duration(viper.GetInt("CART_TTL_HOURS")) * time.Hour,
		},
		OrderAPI: OrderAPIConfig{
			BaseURL:      viper.GetString("ORDER_API_BASE_URL"),
			Timeout:      time.Duration(viper.GetInt("ORDER_API_TIMEOUT_SECONDS")) * time.Second,
			ClientID:     viper.GetString("ORDER_API_CLIENT_ID"),
			ClientSecret: viper.GetString("ORDER_API_CLIENT_SECRET"),
			TokenURL:     viper.GetString("ORDER_API_TOKEN_URL"),
		},
		QRSession: QRSessionConfig{
			Secret: viper.GetString("QR_SESSION_SECRET"),
			TTL:    time.Duration(viper.GetInt("QR_SESSION_TTL_MINUTES")) * time.Minute,
		},
		Store: StoreConfig{
			Name:    viper.GetString("STORE_NAME"),
			Address: viper.GetString("STORE_ADDRESS"),
			Phone:   viper.GetString("STORE_PHONE"),
			TaxID:   viper.GetString("STORE_TAX_ID"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
