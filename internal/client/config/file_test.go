package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func Test_parseFile_SourcesAndPrecedence(t *testing.T) {
	t.Run("yaml file", func(t *testing.T) {
		path := writeTemp(t, "cfg.yaml", `
database_path: /var/lib/lexiq.db
generation_timeout: 15s
log_level: debug
backup:
  bucket: lexiq
  endpoint: http://127.0.0.1:9000
`)
		cfg := defaults()
		require.NoError(t, parseFileAt(cfg, path))

		assert.Equal(t, "/var/lib/lexiq.db", cfg.DatabasePath)
		assert.Equal(t, 15*time.Second, cfg.GenerationTimeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "lexiq", cfg.Backup.Bucket)
		assert.Equal(t, "us-east-1", cfg.Backup.Region, "unset keys keep defaults")
	})

	t.Run("json file", func(t *testing.T) {
		path := writeTemp(t, "cfg.json", `{"gemini_model":"gemini-x","max_retries":4}`)
		cfg := defaults()
		require.NoError(t, parseFileAt(cfg, path))

		assert.Equal(t, "gemini-x", cfg.GeminiModel)
		assert.Equal(t, 4, cfg.MaxRetries)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeTemp(t, "cfg.yaml", "gemini_api_key: from-file\n")
		t.Setenv("LEXIQ_GEMINI_API_KEY", "from-env")
		t.Setenv("LEXIQ_BACKUP_BUCKET", "env-bucket")

		cfg := defaults()
		require.NoError(t, parseFileAt(cfg, path))
		assert.Equal(t, "from-env", cfg.GeminiAPIKey)
		assert.Equal(t, "env-bucket", cfg.Backup.Bucket)
	})

	t.Run("no file and no env → no changes", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseFileAt(cfg, ""))
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseFileAt(defaults(), filepath.Join(t.TempDir(), "absent.yaml")))
	})

	t.Run("invalid file", func(t *testing.T) {
		path := writeTemp(t, "bad.json", `{ this is not valid json`)
		require.Error(t, parseFileAt(defaults(), path))
	})
}

func Test_parseFile_UsesConfigFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTemp(t, "cfg.yaml", "audio_dir: /tmp/lexiq-audio\n")
	os.Args = []string{"testbin", "-config", path}

	cfg := defaults()
	require.NoError(t, parseFile(cfg))
	assert.Equal(t, "/tmp/lexiq-audio", cfg.AudioDir)
}
