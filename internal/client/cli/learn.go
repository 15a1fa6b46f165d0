package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lexiconquest/internal/client/content"
	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
	"github.com/dmitrijs2005/lexiconquest/internal/client/progress"
)

var errQuit = errors.New("quit")

// Learn runs a flashcard session: choose size and topic, study each
// generated word, then bank the set as mastered.
func (a *App) Learn(ctx context.Context) error {
	if err := a.session.Open(models.ViewLearn); err != nil {
		a.report(ctx, err)
		return err
	}

	words, err := a.prepareLearning(ctx)
	if err != nil || len(words) == 0 {
		return a.leave(ctx)
	}

	width := termWidth()
	for i, w := range words {
		renderFront(a.out, w, i+1, len(words), width)
		if err := a.cardPrompt(w, "[Enter] reveal, (s)ay, (q)uit"); err != nil {
			return a.leave(ctx)
		}
		renderCard(a.out, w, width)
		next := "[Enter] next word, (s)ay, (q)uit"
		if i == len(words)-1 {
			next = "[Enter] finish, (s)ay, (q)uit"
		}
		if err := a.cardPrompt(w, next); err != nil {
			return a.leave(ctx)
		}
	}

	if err := a.session.CompleteLearning(ctx, words); err != nil {
		a.report(ctx, err)
		_ = a.leave(ctx)
		return err
	}
	fmt.Fprintf(a.out, "Session complete! +%d XP for %d word(s).\n", progress.XPPerLearnedWord*len(words), len(words))
	a.dashboard()
	return nil
}

// prepareLearning asks for the session setup and generates the words. An
// empty result means there is nothing to study.
func (a *App) prepareLearning(ctx context.Context) ([]models.Word, error) {
	count, err := GetNumber(a.reader, "How many words?", a.out, content.MinWordCount, content.MaxWordCount, content.DefaultWordCount)
	if err != nil {
		return nil, err
	}
	topic, err := GetSimpleText(a.reader, "Topic or your own list of words (optional):", a.out)
	if err != nil {
		return nil, err
	}

	grade := a.session.Profile().Grade
	ticket := a.session.Begin()
	gctx, cancel := a.generationContext(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Generating words...")
	words := a.content.GenerateWordSet(gctx, grade, count, topic)
	if !a.session.Accept(ticket) {
		return nil, nil
	}
	if len(words) == 0 {
		fmt.Fprintln(a.out, "Could not get any words right now. Please try again.")
	}
	return words, nil
}

// cardPrompt waits for Enter. "s" pronounces the word and asks again.
func (a *App) cardPrompt(w models.Word, prompt string) error {
	for {
		answer, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case "":
			return nil
		case "q", "quit":
			return errQuit
		case "s", "say":
			if a.speaker == nil {
				fmt.Fprintln(a.out, "Audio is not available.")
				continue
			}
			a.speaker.Speak(w.Word)
		}
	}
}

// leave abandons the current activity and returns to the dashboard.
func (a *App) leave(ctx context.Context) error {
	if err := a.session.Exit(); err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintln(a.out, "Back to the dashboard.")
	return nil
}
