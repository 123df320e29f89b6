package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port                 string        `yaml:"port"`
	MongoURI             string        `yaml:"mongodb_uri"`
	DBName               string        `yaml:"db_name"`
	ComplaintsCollection string        `yaml:"complaints_collection"`
	JWTSecret            string        `yaml:"jwt_secret"`
	JWTTTL               time.Duration `yaml:"jwt_ttl"`
	AdminEmail           string        `yaml:"admin_email"`
	AdminPassword        string        `yaml:"admin_password"`
	DemoLogin            bool          `yaml:"demo_login"`
	FallbackTimeout      time.Duration `yaml:"fallback_timeout"`
	PollInterval         time.Duration `yaml:"poll_interval"`
	LogLevel             string        `yaml:"log_level"`
	ResendAPIKey         string        `yaml:"resend_api_key"`
	FromEmail            string        `yaml:"from_email"`
	NotifyOnResolve      bool          `yaml:"notify_on_resolve"`
}

func Default() Config {
	return Config{
		Port:                 "8080",
		DBName:               "campuscare",
		ComplaintsCollection: "complaints",
		JWTTTL:               12 * time.Hour,
		AdminEmail:           "admin@campuscare.com",
		AdminPassword:        "admin123",
		DemoLogin:            true,
		FallbackTimeout:      3 * time.Second,
		PollInterval:         5 * time.Second,
		LogLevel:             "info",
		FromEmail:            "CampusCare <noreply@campuscare.app>",
		NotifyOnResolve:      true,
	}
}

// Load layers defaults, an optional YAML file named by CONFIG_FILE and the
// environment, in that order. A .env file is loaded into the environment first.
func Load() (Config, error) {
	// Load .env; in production env vars are set directly
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml: %w", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.MongoURI = getEnv("MONGODB_URI", cfg.MongoURI)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.ComplaintsCollection = getEnv("COMPLAINTS_COLLECTION", cfg.ComplaintsCollection)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.AdminEmail = getEnv("ADMIN_EMAIL", cfg.AdminEmail)
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", cfg.AdminPassword)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.ResendAPIKey = getEnv("RESEND_API_KEY", cfg.ResendAPIKey)
	cfg.FromEmail = getEnv("FROM_EMAIL", cfg.FromEmail)

	var err error
	if cfg.JWTTTL, err = getDuration("JWT_TTL", cfg.JWTTTL); err != nil {
		return err
	}
	if cfg.FallbackTimeout, err = getDuration("FALLBACK_TIMEOUT", cfg.FallbackTimeout); err != nil {
		return err
	}
	if cfg.PollInterval, err = getDuration("POLL_INTERVAL", cfg.PollInterval); err != nil {
		return err
	}
	if cfg.DemoLogin, err = getBool("DEMO_LOGIN", cfg.DemoLogin); err != nil {
		return err
	}
	if cfg.NotifyOnResolve, err = getBool("NOTIFY_ON_RESOLVE", cfg.NotifyOnResolve); err != nil {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.AdminPassword == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD must not be empty"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.FallbackTimeout <= 0 {
		errs = append(errs, errors.New("FALLBACK_TIMEOUT must be positive"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("POLL_INTERVAL must be positive"))
	}
	return errors.Join(errs...)
}

// StoreEnabled reports whether a database is configured. Without one every
// surface runs on demo data.
func (c Config) StoreEnabled() bool {
	return c.MongoURI != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
