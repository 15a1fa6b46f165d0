package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/dmitrijs2005/lexiconquest/internal/flagx"
)

// EnvPrefix prefixes every environment variable, e.g. LEXIQ_GEMINI_API_KEY
// or LEXIQ_BACKUP_BUCKET.
const EnvPrefix = "LEXIQ"

// parseFile overlays cfg with the config file named by -c/-config (any
// format viper reads, chosen by extension) and then the environment.
//
// The current values of cfg are registered as viper defaults, so every key
// is known to viper and can be overridden from the environment even when no
// file is given.
func parseFile(cfg *Config) error {
	return parseFileAt(cfg, flagx.ConfigFileFlag(os.Args[1:]))
}

func parseFileAt(cfg *Config, path string) error {
	v := viper.New()
	seedDefaults(v, cfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func seedDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("database_path", cfg.DatabasePath)
	v.SetDefault("gemini_api_key", cfg.GeminiAPIKey)
	v.SetDefault("gemini_model", cfg.GeminiModel)
	v.SetDefault("generation_timeout", cfg.GenerationTimeout)
	v.SetDefault("max_retries", cfg.MaxRetries)
	v.SetDefault("requests_per_minute", cfg.RequestsPerMinute)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("audio_dir", cfg.AudioDir)
	v.SetDefault("audio_player", cfg.AudioPlayer)
	v.SetDefault("backup.bucket", cfg.Backup.Bucket)
	v.SetDefault("backup.region", cfg.Backup.Region)
	v.SetDefault("backup.endpoint", cfg.Backup.Endpoint)
	v.SetDefault("backup.access_key", cfg.Backup.AccessKey)
	v.SetDefault("backup.secret_key", cfg.Backup.SecretKey)
	v.SetDefault("backup.passphrase", cfg.Backup.Passphrase)
}
