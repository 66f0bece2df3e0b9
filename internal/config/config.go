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

const DefaultPath = "config/config.yaml"

type RateLimitConfig struct {
	Window      time.Duration `yaml:"window"`
	MaxRequests int           `yaml:"max_requests"`
}

type ContactConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Timezone  string          `yaml:"timezone"`
}

type RecaptchaConfig struct {
	Enabled          *bool         `yaml:"enabled"`
	Secret           string        `yaml:"secret"`
	VerifyURL        string        `yaml:"verify_url"`
	MinimumScore     float64       `yaml:"minimum_score"`
	ExpectedAction   string        `yaml:"expected_action"`
	ExpectedHostname string        `yaml:"expected_hostname"`
	Timeout          time.Duration `yaml:"timeout"`
}

// IsEnabled defaults to true when the key is absent.
func (r RecaptchaConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

type EmailConfig struct {
	Enabled        bool   `yaml:"enabled"`
	SMTPHost       string `yaml:"smtp_host"`
	SMTPPort       int    `yaml:"smtp_port"`
	SMTPUser       string `yaml:"smtp_user"`
	SMTPPassword   string `yaml:"smtp_password"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
	AdminEmail     string `yaml:"admin_email"`
	ContactSubject string `yaml:"contact_subject"`
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

type LinkConfig struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// ProfileConfig holds the CV identity block; it is not stored in the database.
type ProfileConfig struct {
	FullName string       `yaml:"full_name"`
	Title    string       `yaml:"title"`
	Summary  string       `yaml:"summary"`
	PhotoURL string       `yaml:"photo_url"`
	Location string       `yaml:"location"`
	Phone    string       `yaml:"phone"`
	Email    string       `yaml:"email"`
	Skills   []string     `yaml:"skills"`
	Links    []LinkConfig `yaml:"links"`
}

type CVConfig struct {
	FontDir     string        `yaml:"font_dir"`
	FontFamily  string        `yaml:"font_family"`
	AssetDir    string        `yaml:"asset_dir"`
	CacheMaxAge int           `yaml:"cache_max_age"`
	Profile     ProfileConfig `yaml:"profile"`
}

type BuildConfig struct {
	Version     string `yaml:"version"`
	GitCommit   string `yaml:"git_commit"`
	BuildTime   string `yaml:"build_time"`
	Environment string `yaml:"environment"`
}

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	LogLevel  string          `yaml:"log_level"`
	Contact   ContactConfig   `yaml:"contact"`
	Recaptcha RecaptchaConfig `yaml:"recaptcha"`
	Email     EmailConfig     `yaml:"email"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	CV        CVConfig        `yaml:"cv"`
	Build     BuildConfig     `yaml:"build"`
}

// Load reads .env (if any), the YAML file at path, environment overrides and
// defaults, in that order. A missing YAML file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}
	if path == "" {
		path = DefaultPath
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.Database.DSN, "DATABASE_URL")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Recaptcha.Secret, "RECAPTCHA_SECRET")
	setString(&c.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&c.Telegram.Token, "TELEGRAM_BOT_TOKEN")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Build.GitCommit, "GIT_COMMIT")
	setString(&c.Build.BuildTime, "BUILD_TIME")
	setString(&c.Build.Environment, "ENVIRONMENT")

	// An explicitly empty CV_FONT_DIR selects the core PDF font.
	if v, ok := os.LookupEnv("CV_FONT_DIR"); ok {
		c.CV.FontDir = v
	}
	setString(&c.CV.AssetDir, "CV_ASSET_DIR")

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.Telegram.ChatID = id
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Contact.RateLimit.Window == 0 {
		c.Contact.RateLimit.Window = time.Minute
	}
	if c.Contact.RateLimit.MaxRequests == 0 {
		c.Contact.RateLimit.MaxRequests = 5
	}
	if c.Contact.Timezone == "" {
		c.Contact.Timezone = "UTC"
	}
	if c.Recaptcha.VerifyURL == "" {
		c.Recaptcha.VerifyURL = "https://www.google.com/recaptcha/api/siteverify"
	}
	if c.Recaptcha.MinimumScore == 0 {
		c.Recaptcha.MinimumScore = 0.5
	}
	if c.Recaptcha.ExpectedAction == "" {
		c.Recaptcha.ExpectedAction = "submit"
	}
	if c.Recaptcha.Timeout == 0 {
		c.Recaptcha.Timeout = 10 * time.Second
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Blog Notification"
	}
	if c.Email.ContactSubject == "" {
		c.Email.ContactSubject = "New Contact Form Submission"
	}
	if c.CV.FontFamily == "" {
		c.CV.FontFamily = "DejaVuSansCondensed"
	}
	if c.CV.CacheMaxAge == 0 {
		c.CV.CacheMaxAge = 3600
	}
	if c.Build.Version == "" {
		c.Build.Version = "0.0.1-SNAPSHOT"
	}
	if c.Build.GitCommit == "" {
		c.Build.GitCommit = "unknown"
	}
	if c.Build.BuildTime == "" {
		c.Build.BuildTime = "unknown"
	}
	if c.Build.Environment == "" {
		c.Build.Environment = "production"
	}
}

func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database url is required (database.url or DATABASE_URL)")
	}
	if c.Contact.RateLimit.Window < 0 {
		return fmt.Errorf("contact.rate_limit.window must be positive, got %s", c.Contact.RateLimit.Window)
	}
	if c.Contact.RateLimit.MaxRequests < 0 {
		return fmt.Errorf("contact.rate_limit.max_requests must be positive, got %d", c.Contact.RateLimit.MaxRequests)
	}
	if c.Recaptcha.MinimumScore < 0 || c.Recaptcha.MinimumScore > 1 {
		return fmt.Errorf("recaptcha.minimum_score must be within [0,1], got %v", c.Recaptcha.MinimumScore)
	}
	if _, err := time.LoadLocation(c.Contact.Timezone); err != nil {
		return fmt.Errorf("contact.timezone: %w", err)
	}
	return nil
}
