package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/lexiconquest/internal/client/audio"
	"github.com/dmitrijs2005/lexiconquest/internal/client/backup"
	"github.com/dmitrijs2005/lexiconquest/internal/client/client"
	"github.com/dmitrijs2005/lexiconquest/internal/client/config"
	"github.com/dmitrijs2005/lexiconquest/internal/client/content"
	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
	"github.com/dmitrijs2005/lexiconquest/internal/client/services"
	"github.com/dmitrijs2005/lexiconquest/internal/client/session"
	"github.com/dmitrijs2005/lexiconquest/internal/client/store"
	"github.com/dmitrijs2005/lexiconquest/internal/logging"
)

type speaker interface {
	Speak(text string)
}

type exporter interface {
	Export(ctx context.Context, id models.Identity, p models.Profile) (string, error)
}

type profileLister interface {
	ProfileIDs(ctx context.Context) ([]string, error)
}

type App struct {
	session  *session.Session
	profiles profileLister
	content  content.Generator
	speaker  speaker
	backup   exporter
	logger   logging.Logger

	timeout time.Duration
	reader  *bufio.Reader
	out     io.Writer
	closers []func() error
}

// NewApp opens the progress database and wires every adapter the config
// enables. Gemini, audio and backup are optional: a missing API key yields
// a generator that produces nothing, an unusable audio directory disables
// pronunciation, and an empty bucket disables backups.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	st := store.NewProfileStore(db)
	a := &App{
		session:  session.New(services.NewSessionService(st, logger), st, logger),
		profiles: st,
		logger:   logger,
		timeout:  c.GenerationTimeout,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		closers:  []func() error{db.Close},
	}

	if c.GeminiAPIKey == "" {
		logger.Warn(ctx, "no Gemini API key configured, content generation is disabled")
		a.content = content.Unavailable{Logger: logger}
	} else {
		gen, err := content.NewGeminiGenerator(ctx, logger, c.GeminiSettings())
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("content generator: %w", err)
		}
		a.content = gen
	}

	if sp, err := audio.NewSpeaker(c.AudioDir, c.AudioPlayer, logger); err != nil {
		logger.Warn(ctx, "audio disabled", "error", err)
	} else {
		a.speaker = sp
		a.closers = append(a.closers, func() error { sp.Wait(); return nil })
	}

	exp, err := backup.NewS3Exporter(ctx, c.BackupSettings())
	switch {
	case errors.Is(err, backup.ErrNotConfigured):
	case err != nil:
		a.Close()
		return nil, fmt.Errorf("backup: %w", err)
	default:
		a.backup = exp
	}

	return a, nil
}

// Run restores the previous session, if any, and serves the REPL until the
// user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	restored, err := a.session.Restore(ctx)
	if err != nil {
		a.logger.Error(ctx, "restore session failed", "error", err)
	}

	fmt.Fprintln(a.out, "Welcome to LexiconQuest!")
	if restored {
		a.greet()
	} else {
		fmt.Fprintln(a.out, "Log in with 'login <email>' or 'google'. Type 'help' for commands.")
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

// Close releases the database and waits for pending audio.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) view() models.View {
	return a.session.View()
}

// status renders the REPL prompt prefix.
func (a *App) status() string {
	id := a.session.Identity()
	if id == nil {
		return "guest"
	}
	p := a.session.Profile()
	if p.NeedsOnboarding() {
		return fmt.Sprintf("%s | new", p.Name)
	}
	return fmt.Sprintf("%s | grade %d | %d XP", p.Name, p.Grade, p.XP)
}

// generationContext bounds one content request by the configured timeout.
func (a *App) generationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}
