package progress

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
)

// XPPerLearnedWord is awarded for every word of a completed learning session.
const XPPerLearnedWord = 10

var (
	ErrInvalidGrade = errors.New("grade must be between 1 and 12")
	ErrNegativeXP   = errors.New("xp award must not be negative")
)

// SelectGrade sets the grade. Out-of-range values are rejected and p is
// returned unchanged.
func SelectGrade(p models.Profile, grade int) (models.Profile, error) {
	if !models.ValidGrade(grade) {
		return p, fmt.Errorf("select grade %d: %w", grade, ErrInvalidGrade)
	}
	out := p.Clone()
	out.Grade = grade
	return out, nil
}

// CompleteLearning merges words into the mastered list, skipping any whose
// text is empty or already there (including repeats inside words itself).
// Counters grow by the full length of words, skipped entries included.
func CompleteLearning(p models.Profile, words []models.Word) models.Profile {
	out := p.Clone()

	seen := make(map[string]struct{}, len(out.MasteredWordsList)+len(words))
	for _, w := range out.MasteredWordsList {
		seen[w.Word] = struct{}{}
	}
	for _, w := range words {
		if w.Word == "" {
			continue
		}
		if _, ok := seen[w.Word]; ok {
			continue
		}
		seen[w.Word] = struct{}{}
		w.Synonyms = append([]string(nil), w.Synonyms...)
		w.Antonyms = append([]string(nil), w.Antonyms...)
		out.MasteredWordsList = append(out.MasteredWordsList, w)
	}

	out.CompletedWords += len(words)
	out.XP += XPPerLearnedWord * len(words)
	return out
}

// CompleteQuiz adds a quiz reward computed by Scorer.
func CompleteQuiz(p models.Profile, xp int) (models.Profile, error) {
	if xp < 0 {
		return p, fmt.Errorf("complete quiz with %d xp: %w", xp, ErrNegativeXP)
	}
	out := p.Clone()
	out.XP += xp
	return out, nil
}
