package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is constructed once at
// process start and injected into every component; there is no ambient
// global lookup.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Validation ValidationConfig
	Buildings  []BuildingConfig
	Auth       AuthConfig
	AI         AIConfig
	Slack      SlackConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// DatabaseConfig holds the backing workbook location.
type DatabaseConfig struct {
	Path string
}

// ValidationConfig holds the tunable rule thresholds. Every validator rule
// reads from here so limits can change without code edits.
type ValidationConfig struct {
	PhoneMinLength           int
	PhoneMaxLength           int
	MaxParkingAuthorizations int
	MaxWhatsAppMembers       int
	MaxPalGateMembers        int
}

// BuildingConfig describes one configured building.
type BuildingConfig struct {
	Number          int `yaml:"number"`
	TotalApartments int `yaml:"total_apartments"`
}

// AuthConfig holds admin authentication settings.
type AuthConfig struct {
	JWTSecret         string //nolint:gosec // G117: JWT signing secret config
	AdminPasswordHash string //nolint:gosec // G117: bcrypt hash, not a credential
	AccessTTL         time.Duration
}

// AIConfig holds report-generation backend settings.
type AIConfig struct {
	APIKey        string //nolint:gosec // G117: API key config
	Model         string
	MaxTokens     int
	DefaultFormat string
}

// SlackConfig holds optional announcement settings. An empty bot token
// disables Slack integration entirely.
type SlackConfig struct {
	BotToken string
	Channel  string
}

// fileConfig is the YAML shape of config.yaml. Only non-sensitive settings
// live in the file; secrets come from the environment (.env in dev).
type fileConfig struct {
	Server struct {
		Addr        string   `yaml:"addr"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Validation struct {
		PhoneMinLength           int `yaml:"phone_min_length"`
		PhoneMaxLength           int `yaml:"phone_max_length"`
		MaxParkingAuthorizations int `yaml:"max_parking_authorizations"`
		MaxWhatsAppMembers       int `yaml:"max_whatsapp_members"`
		MaxPalGateMembers        int `yaml:"max_palgate_members"`
	} `yaml:"validation"`
	Buildings []BuildingConfig `yaml:"buildings"`
	AI        struct {
		Model         string `yaml:"model"`
		MaxTokens     int    `yaml:"max_tokens"`
		DefaultFormat string `yaml:"default_format"`
	} `yaml:"ai"`
	Slack struct {
		Channel string `yaml:"channel"`
	} `yaml:"slack"`
}

// Load reads configuration from config.yaml plus the environment. A .env
// file is loaded first when present so local development mirrors the
// deployed environment variable surface.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Info().Msg("loaded environment variables from .env")
	}

	var fc fileConfig
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(raw, &fc); unmarshalErr != nil {
			return nil, fmt.Errorf("config.Load: parse %s: %w", path, unmarshalErr)
		}
		log.Info().Str("path", path).Msg("loaded configuration file")
	case errors.Is(err, os.ErrNotExist):
		log.Warn().Str("path", path).Msg("configuration file not found, using defaults")
	default:
		return nil, fmt.Errorf("config.Load: read %s: %w", path, err)
	}

	readTimeout, err := getEnvDuration("VAADLY_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("VAADLY_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	accessTTL, err := getEnvDuration("VAADLY_JWT_ACCESS_TTL", 12*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	maxTokens, err := getEnvInt("VAADLY_AI_MAX_TOKENS", defaultInt(fc.AI.MaxTokens, 2048))
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:         getEnv("VAADLY_SERVER_ADDR", defaultString(fc.Server.Addr, ":8080")),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  defaultList(getEnvList("VAADLY_CORS_ORIGINS", fc.Server.CORSOrigins), []string{"*"}),
		},
		Database: DatabaseConfig{
			Path: getEnv("VAADLY_DB_PATH", defaultString(fc.Database.Path, "data/tenants.xlsx")),
		},
		Validation: ValidationConfig{
			PhoneMinLength:           defaultInt(fc.Validation.PhoneMinLength, 9),
			PhoneMaxLength:           defaultInt(fc.Validation.PhoneMaxLength, 15),
			MaxParkingAuthorizations: defaultInt(fc.Validation.MaxParkingAuthorizations, 4),
			MaxWhatsAppMembers:       defaultInt(fc.Validation.MaxWhatsAppMembers, 10),
			MaxPalGateMembers:        defaultInt(fc.Validation.MaxPalGateMembers, 10),
		},
		Buildings: fc.Buildings,
		Auth: AuthConfig{
			JWTSecret:         getEnv("VAADLY_JWT_SECRET", ""),
			AdminPasswordHash: getEnv("VAADLY_ADMIN_PASSWORD_HASH", ""),
			AccessTTL:         accessTTL,
		},
		AI: AIConfig{
			APIKey:        getEnv("VAADLY_ANTHROPIC_API_KEY", getEnv("ANTHROPIC_API_KEY", "")),
			Model:         getEnv("VAADLY_AI_MODEL", defaultString(fc.AI.Model, "claude-3-5-sonnet-latest")),
			MaxTokens:     maxTokens,
			DefaultFormat: defaultString(fc.AI.DefaultFormat, "markdown"),
		},
		Slack: SlackConfig{
			BotToken: getEnv("VAADLY_SLACK_BOT_TOKEN", ""),
			Channel:  getEnv("VAADLY_SLACK_CHANNEL", fc.Slack.Channel),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// Validate checks required fields and value bounds.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("VAADLY_JWT_SECRET is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return errors.New("VAADLY_JWT_SECRET must be at least 32 characters")
	}
	if c.Auth.AdminPasswordHash == "" {
		return errors.New("VAADLY_ADMIN_PASSWORD_HASH is required")
	}
	if c.Auth.AccessTTL <= 0 {
		return fmt.Errorf("VAADLY_JWT_ACCESS_TTL must be positive, got %s", c.Auth.AccessTTL)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("VAADLY_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("VAADLY_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Database.Path == "" {
		return errors.New("database path must not be empty")
	}
	if c.Validation.PhoneMinLength < 1 {
		return fmt.Errorf("phone_min_length must be >= 1, got %d", c.Validation.PhoneMinLength)
	}
	if c.Validation.PhoneMaxLength < c.Validation.PhoneMinLength {
		return fmt.Errorf("phone_max_length %d must be >= phone_min_length %d",
			c.Validation.PhoneMaxLength, c.Validation.PhoneMinLength)
	}
	if c.Validation.MaxParkingAuthorizations < 0 {
		return fmt.Errorf("max_parking_authorizations must be >= 0, got %d", c.Validation.MaxParkingAuthorizations)
	}

	if len(c.Buildings) == 0 {
		return errors.New("at least one building must be configured")
	}
	seen := make(map[int]bool, len(c.Buildings))
	for _, b := range c.Buildings {
		if seen[b.Number] {
			return fmt.Errorf("duplicate building number %d", b.Number)
		}
		seen[b.Number] = true
		if b.TotalApartments < 0 {
			return fmt.Errorf("building %d: total_apartments must be >= 0, got %d", b.Number, b.TotalApartments)
		}
	}

	return nil
}

func defaultString(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func defaultInt(v, fallback int) int {
	if v != 0 {
		return v
	}
	return fallback
}

func defaultList(v, fallback []string) []string {
	if len(v) > 0 {
		return v
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
