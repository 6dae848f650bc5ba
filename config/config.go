// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/thekpsgroup/contractorjobcosting-backend/logger"
)

// Environment represents the application's running environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment Environment `mapstructure:"ENVIRONMENT"`
	Port        string      `mapstructure:"PORT"`
	// AllowedOrigins are the origins permitted to post the contact form.
	// Local-development origins are added automatically outside production.
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`
	Version        string   `mapstructure:"VERSION"`
}

// EmailConfig holds configuration for the Resend-backed notifier.
type EmailConfig struct {
	FromAddress       string `mapstructure:"FROM_ADDRESS"`
	FromName          string `mapstructure:"FROM_NAME"`
	NotificationEmail string `mapstructure:"NOTIFICATION_EMAIL"`
	ResendAPIKey      string `mapstructure:"RESEND_API_KEY"`
	// TimeoutSeconds bounds a single delivery attempt.
	TimeoutSeconds int `mapstructure:"TIMEOUT_SECONDS"`
}

// RateLimitConfig holds configuration for the contact submission limiter.
type RateLimitConfig struct {
	// MaxRequests is the number of submissions allowed per identifier
	// within one window.
	MaxRequests int `mapstructure:"MAX_REQUESTS"`
	// WindowMinutes is the fixed window duration in minutes.
	WindowMinutes int `mapstructure:"WINDOW_MINUTES"`
}

// Window returns the limiter window as a duration.
func (c *RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowMinutes) * time.Minute
}

// ContactConfig holds configuration for the submission pipeline.
type ContactConfig struct {
	// MessageHardCap rejects a raw message longer than this many characters
	// before any other processing.
	MessageHardCap int `mapstructure:"MESSAGE_HARD_CAP"`
}

// SiteConfig holds the public site details used by the sitemap and robots
// endpoints.
type SiteConfig struct {
	Name       string `mapstructure:"NAME"`
	URL        string `mapstructure:"URL"`
	BookingURL string `mapstructure:"BOOKING_URL"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER"`
	Email     EmailConfig     `mapstructure:"EMAIL"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT"`
	Contact   ContactConfig   `mapstructure:"CONTACT"`
	Site      SiteConfig      `mapstructure:"SITE"`
}

// IsDevelopment returns true if the application is running in development.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// applies defaults, unmarshals into Config, and validates the result.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{
		"https://www.contractorjobcosting.com",
		"https://contractorjobcosting.com",
	})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("EMAIL.FROM_ADDRESS", "sales@thekpsgroup.com")
	v.SetDefault("EMAIL.FROM_NAME", "Contractor Job Costing")
	v.SetDefault("EMAIL.NOTIFICATION_EMAIL", "sales@thekpsgroup.com")
	v.SetDefault("EMAIL.TIMEOUT_SECONDS", 10)
	v.SetDefault("RATE_LIMIT.MAX_REQUESTS", 3)
	v.SetDefault("RATE_LIMIT.WINDOW_MINUTES", 15)
	v.SetDefault("CONTACT.MESSAGE_HARD_CAP", 5000)
	v.SetDefault("SITE.NAME", "Contractor Job Costing")
	v.SetDefault("SITE.URL", "https://www.contractorjobcosting.com")
	v.SetDefault("SITE.BOOKING_URL", "https://calendly.com/thekpsgroup/30min")

	bindings := [][2]string{
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		{"EMAIL.FROM_ADDRESS", "EMAIL_FROM_ADDRESS"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		{"EMAIL.NOTIFICATION_EMAIL", "NOTIFICATION_EMAIL"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
		{"EMAIL.TIMEOUT_SECONDS", "EMAIL_TIMEOUT_SECONDS"},
		{"RATE_LIMIT.MAX_REQUESTS", "RATE_LIMIT_MAX_REQUESTS"},
		{"RATE_LIMIT.WINDOW_MINUTES", "RATE_LIMIT_WINDOW_MINUTES"},
		{"CONTACT.MESSAGE_HARD_CAP", "CONTACT_MESSAGE_HARD_CAP"},
		{"SITE.NAME", "SITE_NAME"},
		{"SITE.URL", "SITE_URL"},
		{"SITE.BOOKING_URL", "BOOKING_URL"},
	}
	if err := bindEnvVars(v, bindings); err != nil {
		return nil, err
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// ALLOWED_ORIGINS arrives comma-separated from the environment; viper
	// splits it but leaves surrounding whitespace in place.
	origins := make([]string, 0, len(cfg.Server.AllowedOrigins))
	for _, raw := range cfg.Server.AllowedOrigins {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}
	cfg.Server.AllowedOrigins = origins

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"notification_email", logger.MaskEmail(cfg.Email.NotificationEmail),
		"resend_key", logger.MaskSensitiveString(cfg.Email.ResendAPIKey, 3, 2),
	)

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	switch cfg.Server.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("invalid environment: %s", cfg.Server.Environment)
	}

	if cfg.IsProduction() && cfg.Email.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required in production")
	}
	if cfg.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("rate limit max requests must be positive, got %d", cfg.RateLimit.MaxRequests)
	}
	if cfg.RateLimit.WindowMinutes <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %d minutes", cfg.RateLimit.WindowMinutes)
	}
	if cfg.Contact.MessageHardCap <= 0 {
		return fmt.Errorf("message hard cap must be positive, got %d", cfg.Contact.MessageHardCap)
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin is required")
	}
	return nil
}
