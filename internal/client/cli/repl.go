package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	view() models.View

	LoginEmail(ctx context.Context, email string) error
	LoginGoogle(ctx context.Context, token string) error
	Profiles(ctx context.Context) error
	SelectGrade(ctx context.Context, arg string) error
	Learn(ctx context.Context) error
	Quiz(ctx context.Context) error
	History(ctx context.Context, query string) error
	Settings(ctx context.Context) error
	Daily(ctx context.Context) error
	Say(ctx context.Context, text string) error
	Backup(ctx context.Context) error
	Back(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts the read-eval-print loop of the LexiconQuest client.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on a. The rest of the line is passed as the
// argument. The loop exits on EOF or when the user types "exit" or "quit".
//
// Which commands make sense depends on the current view; "help" lists them.
// Handlers validate the transition themselves and report their own errors,
// so the loop ignores returned errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "lq [%s] %s > ", statusFn(), strings.ToLower(string(a.view())))
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch strings.ToLower(cmd) {
		case "help", "?":
			fmt.Fprintln(w, helpFor(a.view()))

		case "login":
			_ = a.LoginEmail(ctx, arg)

		case "google":
			_ = a.LoginGoogle(ctx, arg)

		case "profiles":
			_ = a.Profiles(ctx)

		case "grade":
			_ = a.SelectGrade(ctx, arg)

		case "learn":
			_ = a.Learn(ctx)

		case "quiz":
			_ = a.Quiz(ctx)

		case "history", "h":
			_ = a.History(ctx, arg)

		case "settings":
			_ = a.Settings(ctx)

		case "daily":
			_ = a.Daily(ctx)

		case "say":
			_ = a.Say(ctx, arg)

		case "backup":
			_ = a.Backup(ctx)

		case "back", "home":
			_ = a.Back(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			return

		default:
			fmt.Fprintf(w, "Unknown command %q. Type 'help'.\n", cmd)
		}
	}
}

const menuHelp = "learn, quiz, history [filter], settings, daily, say <word>, backup, logout, exit"

func helpFor(v models.View) string {
	switch v {
	case models.ViewLogin:
		return "Available commands: login <email>, google [id-token], profiles, exit"
	case models.ViewOnboarding:
		return "Available commands: grade <1-12>, logout, exit"
	case models.ViewHistory, models.ViewSettings:
		return "Available commands: back, " + menuHelp
	default:
		return "Available commands: " + menuHelp
	}
}
