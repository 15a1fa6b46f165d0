package models

import "strings"

// Word is a generated vocabulary record. Word text is the deduplication key
// inside a mastered list; every other field is carried as-is.
type Word struct {
	Word            string   `json:"word" validate:"required"`
	Pronunciation   string   `json:"pronunciation"`
	Meaning         string   `json:"meaning" validate:"required"`
	PartOfSpeech    string   `json:"partOfSpeech" validate:"required"`
	Synonyms        []string `json:"synonyms"`
	Antonyms        []string `json:"antonyms"`
	ExampleSentence string   `json:"exampleSentence" validate:"required"`
	DifficultyLevel int      `json:"difficultyLevel" validate:"omitempty,min=1,max=10"`
}

// Matches reports whether query occurs in the word text or its meaning,
// ignoring case. An empty query matches everything.
func (w Word) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(w.Word), q) ||
		strings.Contains(strings.ToLower(w.Meaning), q)
}

// QuestionType is the kind of a generated quiz question.
type QuestionType string

const (
	QuestionMeaning  QuestionType = "meaning"
	QuestionSynonym  QuestionType = "synonym"
	QuestionSentence QuestionType = "sentence"
)

// QuizQuestion is a generated multiple-choice question.
type QuizQuestion struct {
	ID            string       `json:"id"`
	Question      string       `json:"question" validate:"required"`
	Options       []string     `json:"options" validate:"min=2,dive,required"`
	CorrectAnswer string       `json:"correctAnswer" validate:"required"`
	Type          QuestionType `json:"type" validate:"oneof=meaning synonym sentence"`
}

// IsCorrect reports whether answer is the correct option. There is no
// partial credit.
func (q QuizQuestion) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// HasAnswerOption reports whether the correct answer is one of the options.
func (q QuizQuestion) HasAnswerOption() bool {
	for _, o := range q.Options {
		if o == q.CorrectAnswer {
			return true
		}
	}
	return false
}
