package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/lexiconquest/internal/client/identity"
	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
	"github.com/dmitrijs2005/lexiconquest/internal/client/navigation"
	"github.com/dmitrijs2005/lexiconquest/internal/client/progress"
	"github.com/dmitrijs2005/lexiconquest/internal/client/session"
)

var (
	errNoAudio  = errors.New("audio is not available")
	errNoBackup = errors.New("backups are not configured")
)

// LoginEmail logs in with an email identity, asking for the address when
// none was given on the command line.
func (a *App) LoginEmail(ctx context.Context, email string) error {
	if email == "" {
		var err error
		if email, err = GetSimpleText(a.reader, "Email:", a.out); err != nil {
			return err
		}
	}
	id, err := identity.FromEmail(email)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	return a.login(ctx, id)
}

// LoginGoogle logs in with the identity carried by a Google ID token. With
// no token the demo Google account is used.
func (a *App) LoginGoogle(ctx context.Context, token string) error {
	id := identity.GoogleDemo()
	if token != "" {
		var err error
		if id, err = identity.FromIDToken(token); err != nil {
			a.report(ctx, err)
			return err
		}
	}
	return a.login(ctx, id)
}

func (a *App) login(ctx context.Context, id models.Identity) error {
	if err := a.session.Login(ctx, id); err != nil {
		a.report(ctx, err)
		return err
	}
	a.greet()
	return nil
}

func (a *App) greet() {
	p := a.session.Profile()
	if p.NeedsOnboarding() {
		fmt.Fprintf(a.out, "Welcome, %s! Which grade are you in? Pick one with 'grade <%d-%d>'.\n", p.Name, models.MinGrade, models.MaxGrade)
		return
	}
	fmt.Fprintf(a.out, "Welcome back, %s!\n", p.Name)
	a.dashboard()
}

// dashboard prints the progress summary shown on the home screen.
func (a *App) dashboard() {
	p := a.session.Profile()
	group, _ := p.GradeGroup()
	fmt.Fprintf(a.out, "Grade %d (%s) | XP %d | Streak %d | Words learned %d\n", p.Grade, group, p.XP, p.Streak, p.CompletedWords)
}

// Profiles lists the identities that have progress on this device.
func (a *App) Profiles(ctx context.Context) error {
	ids, err := a.profiles.ProfileIDs(ctx)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "No saved profiles yet.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(a.out, " -", id)
	}
	return nil
}

// SelectGrade finishes onboarding. Without an argument the grade is asked for.
func (a *App) SelectGrade(ctx context.Context, arg string) error {
	var grade int
	if arg == "" {
		var err error
		if grade, err = GetNumber(a.reader, "Which grade are you in?", a.out, models.MinGrade, models.MaxGrade, NoDefault); err != nil {
			return err
		}
	} else {
		var err error
		if grade, err = strconv.Atoi(arg); err != nil {
			err = fmt.Errorf("%w: %q", progress.ErrInvalidGrade, arg)
			a.report(ctx, err)
			return err
		}
	}

	if err := a.session.SelectGrade(ctx, grade); err != nil {
		a.report(ctx, err)
		return err
	}
	group, _ := a.session.GradeGroup()
	fmt.Fprintf(a.out, "Grade %d it is! You are in the %s group. Let the quest begin.\n", grade, group)
	a.dashboard()
	return nil
}

// History lists mastered words, newest first, optionally filtered.
func (a *App) History(ctx context.Context, query string) error {
	if a.view() != models.ViewHistory {
		if err := a.session.Open(models.ViewHistory); err != nil {
			a.report(ctx, err)
			return err
		}
	}

	words := a.session.Profile().History(query)
	switch {
	case len(words) == 0 && query != "":
		fmt.Fprintf(a.out, "No words match %q.\n", query)
	case len(words) == 0:
		fmt.Fprintln(a.out, "No words yet. Start a learning session with 'learn'.")
	default:
		for _, w := range words {
			fmt.Fprintf(a.out, " %-16s %s\n", w.Word, w.Meaning)
		}
		fmt.Fprintf(a.out, "%d word(s). Filter with 'history <text>', leave with 'back'.\n", len(words))
	}
	return nil
}

// Settings shows the profile.
func (a *App) Settings(ctx context.Context) error {
	if a.view() != models.ViewSettings {
		if err := a.session.Open(models.ViewSettings); err != nil {
			a.report(ctx, err)
			return err
		}
	}

	p := a.session.Profile()
	id := a.session.Identity()
	grade := "Not Selected"
	if !p.NeedsOnboarding() {
		group, _ := p.GradeGroup()
		grade = fmt.Sprintf("%d (%s)", p.Grade, group)
	}
	rows := [][2]string{
		{"Name", p.Name},
		{"Email", id.Email},
		{"Grade", grade},
		{"XP", strconv.Itoa(p.XP)},
		{"Streak", strconv.Itoa(p.Streak)},
		{"Words learned", strconv.Itoa(p.CompletedWords)},
		{"Mastered", strconv.Itoa(len(p.MasteredWordsList))},
	}
	if len(p.Badges) > 0 {
		rows = append(rows, [2]string{"Badges", strings.Join(p.Badges, ", ")})
	}
	for _, r := range rows {
		fmt.Fprintf(a.out, " %-14s %s\n", r[0]+":", r[1])
	}
	return nil
}

// Daily shows a word of the day for the current grade.
func (a *App) Daily(ctx context.Context) error {
	p := a.session.Profile()
	if a.session.Identity() == nil || p.NeedsOnboarding() {
		err := session.ErrNotLoggedIn
		if a.session.Identity() != nil {
			err = models.ErrGradeUnset
		}
		a.report(ctx, err)
		return err
	}

	ticket := a.session.Begin()
	gctx, cancel := a.generationContext(ctx)
	defer cancel()
	fmt.Fprintln(a.out, "Finding today's word...")
	w := a.content.GenerateDailyWord(gctx, p.Grade)
	if !a.session.Accept(ticket) {
		return nil
	}
	if w == nil {
		fmt.Fprintln(a.out, "No word of the day right now. Try again later.")
		return nil
	}
	fmt.Fprintln(a.out, "Word of the day:")
	renderCard(a.out, *w, termWidth())
	return nil
}

// Say pronounces text in the background.
func (a *App) Say(ctx context.Context, text string) error {
	if a.speaker == nil {
		a.report(ctx, errNoAudio)
		return errNoAudio
	}
	if text == "" {
		fmt.Fprintln(a.out, "Usage: say <word>")
		return nil
	}
	a.speaker.Speak(text)
	return nil
}

// Backup uploads a snapshot of the active profile.
func (a *App) Backup(ctx context.Context) error {
	id := a.session.Identity()
	if id == nil {
		a.report(ctx, session.ErrNotLoggedIn)
		return session.ErrNotLoggedIn
	}
	if a.backup == nil {
		a.report(ctx, errNoBackup)
		return errNoBackup
	}
	key, err := a.backup.Export(ctx, *id, a.session.Profile())
	if err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Profile backed up to %s\n", key)
	return nil
}

// Back leaves History or Settings.
func (a *App) Back(ctx context.Context) error {
	if err := a.session.Back(); err != nil {
		a.report(ctx, err)
		return err
	}
	a.dashboard()
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out. See you soon!")
	return nil
}

// report turns a command error into a message for the user. Unexpected
// errors are logged as well.
func (a *App) report(ctx context.Context, err error) {
	var msg string
	switch {
	case errors.Is(err, navigation.ErrInvalidTransition):
		msg = fmt.Sprintf("That is not available on the %s screen. Type 'help'.", strings.ToLower(string(a.view())))
	case errors.Is(err, session.ErrNotLoggedIn):
		msg = "Please log in first."
	case errors.Is(err, models.ErrGradeUnset):
		msg = "Pick your grade first."
	case errors.Is(err, progress.ErrInvalidGrade):
		msg = fmt.Sprintf("Grade must be a number from %d to %d.", models.MinGrade, models.MaxGrade)
	case errors.Is(err, identity.ErrInvalidEmail):
		msg = "That does not look like an email address."
	case errors.Is(err, identity.ErrInvalidToken):
		msg = "The Google ID token could not be read."
	case errors.Is(err, errNoAudio), errors.Is(err, errNoBackup):
		msg = strings.ToUpper(err.Error()[:1]) + err.Error()[1:] + "."
	default:
		a.logger.Error(ctx, "command failed", "view", a.view(), "error", err)
		msg = "Something went wrong: " + err.Error()
	}
	fmt.Fprintln(a.out, msg)
}
