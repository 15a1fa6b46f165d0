// Package config loads runtime configuration for the LexiconQuest client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via flags: -c or -config. Any format
//     viper understands (YAML, JSON, TOML), chosen by file extension.
//  3. Environment variables with the LEXIQ_ prefix; nested keys use an
//     underscore (LEXIQ_BACKUP_BUCKET).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the SQLite progress database
//	-k string   Gemini API key
//	-m string   Gemini model name
//	-t int      content generation timeout (seconds)
//	-l string   log file
//
// # File schema
//
//	database_path: lexiconquest.db
//	gemini_api_key: "..."
//	gemini_model: gemini-2.5-flash
//	generation_timeout: 60s
//	max_retries: 2
//	requests_per_minute: 30
//	log_file: ""
//	log_level: info
//	audio_dir: audio
//	audio_player: mpg123
//	backup:
//	  bucket: lexiq-backups
//	  region: us-east-1
//	  endpoint: http://127.0.0.1:9000
//	  access_key: minio
//	  secret_key: minio123
//	  passphrase: "at least 8 characters"
//
// Without a Gemini API key the client still runs; content generation is
// reported as unavailable.
package config
