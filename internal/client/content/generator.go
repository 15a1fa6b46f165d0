package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
	"github.com/dmitrijs2005/lexiconquest/internal/logging"
)

const (
	DefaultModel = "gemini-2.5-flash"

	MinWordCount     = 3
	MaxWordCount     = 15
	DefaultWordCount = 5

	// QuizWordCount is the size of the word set a quiz is built from.
	QuizWordCount = 5
	QuizTopic     = "fun facts and adventure"

	DailyWordTopic = "Word of the day, interesting and educational"
)

var ErrInvalidConfig = errors.New("invalid generator configuration")

// Generator produces learning material for a grade.
type Generator interface {
	GenerateWordSet(ctx context.Context, grade, count int, topic string) []models.Word
	GenerateQuiz(ctx context.Context, words []models.Word) []models.QuizQuestion
	GenerateDailyWord(ctx context.Context, grade int) *models.Word
}

// ClampWordCount keeps a requested learning session size in range. Zero
// selects the default.
func ClampWordCount(n int) int {
	switch {
	case n == 0:
		return DefaultWordCount
	case n < MinWordCount:
		return MinWordCount
	case n > MaxWordCount:
		return MaxWordCount
	default:
		return n
	}
}

func wordSetPrompt(grade, count int, topic string) string {
	var focus string
	switch topic = strings.TrimSpace(topic); {
	case topic == "":
		focus = "Choose a mix of useful academic and daily life words suitable for this age group."
	case strings.Contains(topic, " "):
		focus = fmt.Sprintf("The user has provided this specific topic or list of words to focus on: %q. "+
			"Generate words ONLY related to this or from this list if provided.", topic)
	default:
		focus = fmt.Sprintf("Focus specifically on the topic: %s.", topic)
	}

	return fmt.Sprintf("Generate %d vocabulary words suitable for a Grade %d student.\n%s\n"+
		"Ensure the definitions are age-appropriate and easy to understand.", count, grade, focus)
}

func quizPrompt(words []models.Word) string {
	list := make([]string, 0, len(words))
	for _, w := range words {
		list = append(list, w.Word)
	}
	return fmt.Sprintf("Create a gamified quiz for these words: %s. Generate 1 question per word. "+
		"Each question has exactly 4 options. Make the questions fun and situational.", strings.Join(list, ", "))
}

// Unavailable is used when no provider is configured. Every request yields
// nothing.
type Unavailable struct {
	Logger logging.Logger
}

func (u Unavailable) GenerateWordSet(ctx context.Context, _, _ int, _ string) []models.Word {
	u.warn(ctx)
	return nil
}

func (u Unavailable) GenerateQuiz(ctx context.Context, _ []models.Word) []models.QuizQuestion {
	u.warn(ctx)
	return nil
}

func (u Unavailable) GenerateDailyWord(ctx context.Context, _ int) *models.Word {
	u.warn(ctx)
	return nil
}

func (u Unavailable) warn(ctx context.Context) {
	if u.Logger != nil {
		u.Logger.Warn(ctx, "content generation disabled: no API key configured")
	}
}
