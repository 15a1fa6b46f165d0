package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/lexiconquest/internal/client/backup"
	"github.com/dmitrijs2005/lexiconquest/internal/client/content"
)

// Config holds runtime settings for the LexiconQuest client.
//
// Units: GenerationTimeout bounds one content request including retries.
type Config struct {
	DatabasePath      string        `mapstructure:"database_path" validate:"required"`
	GeminiAPIKey      string        `mapstructure:"gemini_api_key"`
	GeminiModel       string        `mapstructure:"gemini_model" validate:"required"`
	GenerationTimeout time.Duration `mapstructure:"generation_timeout" validate:"gt=0"`
	MaxRetries        int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute" validate:"gte=0"`
	LogFile           string        `mapstructure:"log_file"`
	LogLevel          string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	AudioDir          string        `mapstructure:"audio_dir" validate:"required"`
	AudioPlayer       string        `mapstructure:"audio_player"`
	Backup            BackupConfig  `mapstructure:"backup"`
}

// BackupConfig locates the bucket profile snapshots are exported to. An
// empty bucket disables backups.
type BackupConfig struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region" validate:"required_with=Bucket"`
	Endpoint  string `mapstructure:"endpoint" validate:"omitempty,url"`
	AccessKey string `mapstructure:"access_key" validate:"required_with=SecretKey"`
	SecretKey string `mapstructure:"secret_key"`
	// Passphrase encrypts uploaded snapshots when set.
	Passphrase string `mapstructure:"passphrase" validate:"omitempty,min=8"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "lexiconquest.db"
	c.GeminiModel = content.DefaultModel
	c.GenerationTimeout = 60 * time.Second
	c.MaxRetries = 2
	c.RequestsPerMinute = 30
	c.LogLevel = "info"
	c.AudioDir = "audio"
	c.Backup.Region = "us-east-1"
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// BackupSettings converts the backup section for the exporter.
func (c *Config) BackupSettings() backup.Config {
	return backup.Config{
		Bucket:     c.Backup.Bucket,
		Region:     c.Backup.Region,
		Endpoint:   c.Backup.Endpoint,
		AccessKey:  c.Backup.AccessKey,
		SecretKey:  c.Backup.SecretKey,
		Passphrase: c.Backup.Passphrase,
	}
}

// GeminiSettings converts the generation settings for the Gemini adapter.
func (c *Config) GeminiSettings() content.GeminiConfig {
	return content.GeminiConfig{
		APIKey:            c.GeminiAPIKey,
		Model:             c.GeminiModel,
		MaxRetries:        c.MaxRetries,
		RequestsPerMinute: c.RequestsPerMinute,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays the config
// file and environment, then command-line flags. Later sources take
// precedence over earlier ones. The result is validated.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
