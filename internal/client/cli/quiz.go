package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/lexiconquest/internal/client/content"
	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
	"github.com/dmitrijs2005/lexiconquest/internal/client/progress"
)

// Quiz plays a multiple-choice round and lets the user claim the reward.
func (a *App) Quiz(ctx context.Context) error {
	if err := a.session.Open(models.ViewQuiz); err != nil {
		a.report(ctx, err)
		return err
	}

	questions := a.prepareQuiz(ctx)
	if len(questions) == 0 {
		return a.leave(ctx)
	}

	var sc progress.Scorer
	for i, q := range questions {
		fmt.Fprintf(a.out, "\nQuestion %d of %d: %s\n", i+1, len(questions), q.Question)
		for j, o := range q.Options {
			fmt.Fprintf(a.out, "  %d) %s\n", j+1, o)
		}
		answer, err := a.askOption(len(q.Options))
		if err != nil {
			return a.leave(ctx)
		}

		if combo := sc.Record(q.IsCorrect(q.Options[answer])); combo > 0 {
			if combo > 1 {
				fmt.Fprintf(a.out, "Correct! Combo x%d\n", combo)
			} else {
				fmt.Fprintln(a.out, "Correct!")
			}
		} else {
			fmt.Fprintf(a.out, "Not quite. The answer is %q.\n", q.CorrectAnswer)
		}
	}

	res := sc.Result()
	fmt.Fprintf(a.out, "\nQuiz complete! %d of %d correct, best combo x%d.\n", res.Correct, res.Answered, res.MaxCombo)
	fmt.Fprintf(a.out, "Base XP %d + combo bonus %d = %d XP\n", res.BaseXP, res.ComboBonus, res.XPAwarded)

	answer, err := GetSimpleText(a.reader, "[Enter] claim rewards, (q)uit without claiming", a.out)
	if err != nil || strings.EqualFold(answer, "q") {
		return a.leave(ctx)
	}
	if err := a.session.CompleteQuiz(ctx, res.XPAwarded); err != nil {
		a.report(ctx, err)
		_ = a.leave(ctx)
		return err
	}
	fmt.Fprintf(a.out, "+%d XP claimed!\n", res.XPAwarded)
	a.dashboard()
	return nil
}

// prepareQuiz generates a fresh word set and builds the questions from it.
func (a *App) prepareQuiz(ctx context.Context) []models.QuizQuestion {
	grade := a.session.Profile().Grade
	ticket := a.session.Begin()
	gctx, cancel := a.generationContext(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Preparing your quiz...")
	var questions []models.QuizQuestion
	if words := a.content.GenerateWordSet(gctx, grade, content.QuizWordCount, content.QuizTopic); len(words) > 0 {
		questions = a.content.GenerateQuiz(gctx, words)
	}
	if !a.session.Accept(ticket) {
		return nil
	}
	if len(questions) == 0 {
		fmt.Fprintln(a.out, "Could not build a quiz right now. Please try again.")
	}
	return questions
}

// askOption reads a 1-based option number and returns it 0-based. "q"
// quits the quiz.
func (a *App) askOption(n int) (int, error) {
	for {
		text, err := GetSimpleText(a.reader, fmt.Sprintf("Your answer [1-%d, q to quit]:", n), a.out)
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(text, "q") {
			return 0, errQuit
		}
		if i, err := strconv.Atoi(text); err == nil && i >= 1 && i <= n {
			return i - 1, nil
		}
		fmt.Fprintf(a.out, "Please pick an option from 1 to %d.\n", n)
	}
}
