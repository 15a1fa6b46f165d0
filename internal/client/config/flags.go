package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/lexiconquest/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the SQLite progress database
//	-k string   Gemini API key
//	-m string   Gemini model name
//	-t int      content generation timeout in seconds
//	-l string   log file (empty logs to stderr)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], "d", "k", "m", "t", "l")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the progress database")
	fs.StringVar(&cfg.GeminiAPIKey, "k", cfg.GeminiAPIKey, "Gemini API key")
	fs.StringVar(&cfg.GeminiModel, "m", cfg.GeminiModel, "Gemini model name")
	timeout := fs.Int("t", int(cfg.GenerationTimeout.Seconds()), "content generation timeout (in seconds)")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file (empty logs to stderr)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg.GenerationTimeout = time.Duration(*timeout) * time.Second
	return nil
}
