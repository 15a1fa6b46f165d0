package content

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
	"github.com/dmitrijs2005/lexiconquest/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// ---- fake model ----

type call struct {
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

type fakeModel struct {
	replies []string
	errs    []error
	blocked bool
	calls   []call
}

func (f *fakeModel) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var prompt strings.Builder
	for _, c := range contents {
		for _, p := range c.Parts {
			prompt.WriteString(p.Text)
		}
	}
	i := len(f.calls)
	f.calls = append(f.calls, call{model: model, prompt: prompt.String(), config: cfg})

	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	text := ""
	if i < len(f.replies) {
		text = f.replies[i]
	} else if len(f.replies) > 0 {
		text = f.replies[len(f.replies)-1]
	}
	cand := &genai.Candidate{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}}
	if f.blocked {
		cand.FinishReason = genai.FinishReasonSafety
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{cand}}, nil
}

func newTestGenerator(m *fakeModel, retries int) *GeminiGenerator {
	g := newGeminiGenerator(m, logging.NewDiscardLogger(), GeminiConfig{MaxRetries: retries, RetryDelay: time.Millisecond})
	g.sleep = func(context.Context, time.Duration) error { return nil }
	return g
}

const twoWords = `[
 {"word":"brisk","pronunciation":"brisk","meaning":"quick and energetic","partOfSpeech":"adjective",
  "synonyms":["lively"],"antonyms":["slow"],"exampleSentence":"A brisk walk.","difficultyLevel":3},
 {"word":"calm","meaning":"peaceful","partOfSpeech":"adjective","exampleSentence":"The sea was calm.","difficultyLevel":2}
]`

// ---- tests ----

func TestGenerateWordSet_DecodesAndSendsSchema(t *testing.T) {
	m := &fakeModel{replies: []string{twoWords}}
	words := newTestGenerator(m, 0).GenerateWordSet(context.Background(), 4, 2, "animals")

	require.Len(t, words, 2)
	assert.Equal(t, "brisk", words[0].Word)
	assert.Equal(t, []string{"lively"}, words[0].Synonyms)

	require.Len(t, m.calls, 1)
	c := m.calls[0]
	assert.Equal(t, DefaultModel, c.model)
	assert.Equal(t, "application/json", c.config.ResponseMIMEType)
	assert.Equal(t, genai.TypeArray, c.config.ResponseSchema.Type)
	assert.Contains(t, c.prompt, "Generate 2 vocabulary words suitable for a Grade 4 student.")
	assert.Contains(t, c.prompt, "Focus specifically on the topic: animals.")
}

func TestGenerateWordSet_DropsInvalidAndDuplicateItems(t *testing.T) {
	reply := `[
	 {"word":"brisk","meaning":"quick","partOfSpeech":"adj","exampleSentence":"x"},
	 {"word":"","meaning":"no word","partOfSpeech":"adj","exampleSentence":"x"},
	 {"word":"vast","meaning":"huge","partOfSpeech":"adj"},
	 {"word":"brisk","meaning":"again","partOfSpeech":"adj","exampleSentence":"x"},
	 {"word":"odd","meaning":"strange","partOfSpeech":"adj","exampleSentence":"x","difficultyLevel":11}
	]`
	words := newTestGenerator(&fakeModel{replies: []string{reply}}, 0).GenerateWordSet(context.Background(), 4, 5, "")

	require.Len(t, words, 1)
	assert.Equal(t, "quick", words[0].Meaning)
}

func TestGenerateWordSet_FailuresYieldEmpty(t *testing.T) {
	tests := map[string]*fakeModel{
		"not json":    {replies: []string{"sorry"}},
		"empty text":  {replies: []string{""}},
		"all invalid": {replies: []string{`[{"word":"x"}]`}},
		"blocked":     {replies: []string{twoWords}, blocked: true},
		"api error":   {errs: []error{errors.New("503")}},
	}
	for name, m := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, newTestGenerator(m, 0).GenerateWordSet(context.Background(), 4, 2, ""))
		})
	}
}

func TestCall_RetriesTransportErrorsOnly(t *testing.T) {
	m := &fakeModel{errs: []error{errors.New("503"), errors.New("503")}, replies: []string{"", "", twoWords}}
	words := newTestGenerator(m, 2).GenerateWordSet(context.Background(), 4, 2, "")
	assert.Len(t, words, 2)
	assert.Len(t, m.calls, 3)

	m = &fakeModel{replies: []string{"garbage"}}
	_ = newTestGenerator(m, 3).GenerateWordSet(context.Background(), 4, 2, "")
	assert.Len(t, m.calls, 1, "bad replies are not retried")

	m = &fakeModel{errs: []error{errors.New("a"), errors.New("b"), errors.New("c")}}
	assert.Empty(t, newTestGenerator(m, 1).GenerateWordSet(context.Background(), 4, 2, ""))
	assert.Len(t, m.calls, 2)
}

func TestCall_StopsWhenContextEnds(t *testing.T) {
	m := &fakeModel{errs: []error{errors.New("503"), errors.New("503")}}
	g := newTestGenerator(m, 5)
	g.sleep = sleepCtx

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, g.GenerateWordSet(ctx, 4, 2, ""))
	assert.Len(t, m.calls, 1)
}

func TestCall_RateLimited(t *testing.T) {
	m := &fakeModel{replies: []string{twoWords, twoWords}}
	g := newGeminiGenerator(m, logging.NewDiscardLogger(), GeminiConfig{RequestsPerMinute: 1})
	require.NotNil(t, g.limiter)

	assert.Len(t, g.GenerateWordSet(context.Background(), 4, 2, ""), 2)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Empty(t, g.GenerateWordSet(ctx, 4, 2, ""), "the next token is a minute away")
	assert.Len(t, m.calls, 1)

	assert.Nil(t, newTestGenerator(&fakeModel{}, 0).limiter)
}

func TestGenerateQuiz(t *testing.T) {
	reply := `[
	 {"question":"Pick the synonym of brisk","options":["lively","slow","sad","tall"],"correctAnswer":"lively","type":"synonym"},
	 {"id":"q2","question":"What does calm mean?","options":["angry","peaceful","loud","fast"],"correctAnswer":"peaceful","type":"meaning"},
	 {"question":"answer missing","options":["a","b","c","d"],"correctAnswer":"e","type":"meaning"},
	 {"question":"bad type","options":["a","b"],"correctAnswer":"a","type":"riddle"}
	]`
	m := &fakeModel{replies: []string{reply}}
	words := []models.Word{{Word: "brisk"}, {Word: "calm"}}

	qs := newTestGenerator(m, 0).GenerateQuiz(context.Background(), words)
	require.Len(t, qs, 2)
	assert.NotEmpty(t, qs[0].ID, "missing ids are generated")
	assert.Equal(t, "q2", qs[1].ID)
	assert.Contains(t, m.calls[0].prompt, "brisk, calm")
	assert.Contains(t, m.calls[0].prompt, "1 question per word")

	assert.Nil(t, newTestGenerator(m, 0).GenerateQuiz(context.Background(), nil))
}

func TestGenerateDailyWord(t *testing.T) {
	m := &fakeModel{replies: []string{twoWords}}
	w := newTestGenerator(m, 0).GenerateDailyWord(context.Background(), 9)
	require.NotNil(t, w)
	assert.Equal(t, "brisk", w.Word)
	assert.Contains(t, m.calls[0].prompt, "Generate 1 vocabulary words")
	assert.Contains(t, m.calls[0].prompt, DailyWordTopic)

	assert.Nil(t, newTestGenerator(&fakeModel{replies: []string{"[]"}}, 0).GenerateDailyWord(context.Background(), 9))
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), logging.NewDiscardLogger(), GeminiConfig{})
	require.ErrorIs(t, err, ErrInvalidConfig)
}
