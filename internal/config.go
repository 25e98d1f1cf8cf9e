package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Port     uint16
	DataDir  string
	API      APIConfig
	Pricing  PricingConfig
	Store    StoreConfig
	Gateway  GatewayConfig
	Stripe   StripeConfig
}

// APIConfig points at the remote commerce backend.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// PricingConfig holds the single set of pricing rules for this deployment.
// Amounts are in cents, parsed from decimal env values.
type PricingConfig struct {
	FreeShippingThresholdCents int64
	FlatShippingFeeCents       int64
	TaxRate                    float64
}

// StoreConfig is storefront branding, shown in the payment window and views.
type StoreConfig struct {
	Name       string
	Currency   string
	ThemeColor string
}

// GatewayConfig selects the payment gateway.
// Provider is "razorpay" (orders opened through the backend) or "stripe"
// (payment intents created directly).
type GatewayConfig struct {
	Provider string
	KeyID    string
}

type StripeConfig struct {
	SecretKey      string
	PublishableKey string
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	threshold, err := parseMoneyCents(getEnv("FREE_SHIPPING_THRESHOLD", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid FREE_SHIPPING_THRESHOLD: %w", err)
	}
	flatFee, err := parseMoneyCents(getEnv("FLAT_SHIPPING_FEE", "40"))
	if err != nil {
		return nil, fmt.Errorf("invalid FLAT_SHIPPING_FEE: %w", err)
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvInt("PORT", 3000),
		DataDir:  getEnv("DATA_DIR", "./data"),
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:5000/api"),
			TimeoutSeconds: int(getEnvInt("API_TIMEOUT_SECONDS", 15)),
		},
		Pricing: PricingConfig{
			FreeShippingThresholdCents: threshold,
			FlatShippingFeeCents:       flatFee,
			TaxRate:                    getEnvFloat("TAX_RATE", 0.18),
		},
		Store: StoreConfig{
			Name:       getEnv("STORE_NAME", "ShopHub"),
			Currency:   getEnv("CURRENCY", "INR"),
			ThemeColor: getEnv("THEME_COLOR", "#2563eb"),
		},
		Gateway: GatewayConfig{
			Provider: getEnv("GATEWAY_PROVIDER", "razorpay"),
			KeyID:    getEnv("RAZORPAY_KEY_ID", ""),
		},
		Stripe: StripeConfig{
			SecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.Pricing.TaxRate < 0 || cfg.Pricing.TaxRate >= 1 {
		return nil, fmt.Errorf("TAX_RATE must be in [0, 1): got %v", cfg.Pricing.TaxRate)
	}

	switch cfg.Gateway.Provider {
	case "razorpay", "stripe":
	default:
		return nil, fmt.Errorf("GATEWAY_PROVIDER must be razorpay or stripe: got %q", cfg.Gateway.Provider)
	}

	if cfg.Env == "prod" && cfg.Gateway.Provider == "stripe" && cfg.Stripe.SecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY required when using the stripe gateway in production")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var floatValue float64
		if _, err := fmt.Sscanf(value, "%f", &floatValue); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// parseMoneyCents parses a decimal money amount ("500", "40.50") into cents
// without going through float arithmetic.
func parseMoneyCents(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty amount")
	}

	whole, frac, _ := strings.Cut(value, ".")
	if len(frac) > 2 {
		return 0, fmt.Errorf("more than two decimal places: %q", value)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var wholeUnits, fracCents int64
	if _, err := fmt.Sscanf(whole, "%d", &wholeUnits); err != nil {
		return 0, fmt.Errorf("invalid amount: %q", value)
	}
	if _, err := fmt.Sscanf(frac, "%d", &fracCents); err != nil {
		return 0, fmt.Errorf("invalid amount: %q", value)
	}
	if wholeUnits < 0 {
		return 0, fmt.Errorf("negative amount: %q", value)
	}

	return wholeUnits*100 + fracCents, nil
}
