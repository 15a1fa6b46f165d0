package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
	"github.com/dmitrijs2005/lexiconquest/internal/logging"
)

var (
	errInvalidResponse = errors.New("invalid response")
	errContentBlocked  = errors.New("content blocked")
)

// contentModel is the part of the genai client the generator calls.
type contentModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig configures a GeminiGenerator.
type GeminiConfig struct {
	APIKey     string
	Model      string
	MaxRetries int
	RetryDelay time.Duration
	// RequestsPerMinute caps calls to the API, retries included. Zero
	// disables the limit.
	RequestsPerMinute int
}

// GeminiGenerator generates content with the Gemini API.
type GeminiGenerator struct {
	model    contentModel
	cfg      GeminiConfig
	logger   logging.Logger
	validate *validator.Validate
	limiter  *rate.Limiter

	sleep func(ctx context.Context, d time.Duration) error
}

// NewGeminiGenerator creates a client for the Gemini API backend.
func NewGeminiGenerator(ctx context.Context, logger logging.Logger, cfg GeminiConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create gemini client: %v", ErrInvalidConfig, err)
	}

	return newGeminiGenerator(client.Models, logger, cfg), nil
}

func newGeminiGenerator(m contentModel, logger logging.Logger, cfg GeminiConfig) *GeminiGenerator {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	g := &GeminiGenerator{
		model:    m,
		cfg:      cfg,
		logger:   logger.With("component", "gemini", "model", cfg.Model),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		sleep:    sleepCtx,
	}
	if n := cfg.RequestsPerMinute; n > 0 {
		g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), n)
	}
	return g
}

// GenerateWordSet asks for count words for the grade, focused on topic.
func (g *GeminiGenerator) GenerateWordSet(ctx context.Context, grade, count int, topic string) []models.Word {
	var items []models.Word
	if err := g.call(ctx, wordSetPrompt(grade, count, topic), wordListSchema, &items); err != nil {
		g.logger.Error(ctx, "generate word set failed", "grade", grade, "count", count, "error", err)
		return nil
	}

	words := make([]models.Word, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, w := range items {
		w.Word = strings.TrimSpace(w.Word)
		if err := g.validate.Struct(w); err != nil {
			g.logger.Warn(ctx, "dropping invalid word", "index", i, "error", err)
			continue
		}
		if _, dup := seen[w.Word]; dup {
			continue
		}
		seen[w.Word] = struct{}{}
		words = append(words, w)
	}
	if len(words) == 0 {
		g.logger.Warn(ctx, "word set empty after validation", "received", len(items))
		return nil
	}
	return words
}

// GenerateQuiz asks for one question per word.
func (g *GeminiGenerator) GenerateQuiz(ctx context.Context, words []models.Word) []models.QuizQuestion {
	if len(words) == 0 {
		return nil
	}

	var items []models.QuizQuestion
	if err := g.call(ctx, quizPrompt(words), quizSchema, &items); err != nil {
		g.logger.Error(ctx, "generate quiz failed", "words", len(words), "error", err)
		return nil
	}

	questions := make([]models.QuizQuestion, 0, len(items))
	for i, q := range items {
		if err := g.validate.Struct(q); err != nil {
			g.logger.Warn(ctx, "dropping invalid question", "index", i, "error", err)
			continue
		}
		if !q.HasAnswerOption() {
			g.logger.Warn(ctx, "dropping question without its answer among options", "index", i)
			continue
		}
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil
	}
	return questions
}

// GenerateDailyWord is a word set of one on a fixed topic.
func (g *GeminiGenerator) GenerateDailyWord(ctx context.Context, grade int) *models.Word {
	words := g.GenerateWordSet(ctx, grade, 1, DailyWordTopic)
	if len(words) == 0 {
		return nil
	}
	return &words[0]
}

// call sends prompt and decodes the JSON reply into out. Transport errors
// are retried with exponential backoff and jitter; a reply that arrives but
// cannot be used is not.
func (g *GeminiGenerator) call(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("gemini rate limit: %w", err)
			}
		}
		g.logger.Debug(ctx, "calling gemini", "attempt", attempt+1, "max_attempts", g.cfg.MaxRetries+1)

		resp, err := g.model.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), cfg)
		if err == nil {
			return decodeResponse(resp, out)
		}
		if ctx.Err() != nil {
			return fmt.Errorf("gemini call: %w", ctx.Err())
		}
		if attempt >= g.cfg.MaxRetries {
			return fmt.Errorf("gemini call after %d attempts: %w", attempt+1, err)
		}

		delay := time.Duration(float64(g.cfg.RetryDelay) * math.Pow(2, float64(attempt)) * (0.5 + rng.Float64()*0.5))
		g.logger.Warn(ctx, "gemini call failed, retrying", "attempt", attempt+1, "delay", delay, "error", err)
		if err := g.sleep(ctx, delay); err != nil {
			return fmt.Errorf("gemini call: %w", err)
		}
	}
}

func decodeResponse(resp *genai.GenerateContentResponse, out any) error {
	if resp == nil || len(resp.Candidates) == 0 {
		return fmt.Errorf("%w: no candidates", errInvalidResponse)
	}
	c := resp.Candidates[0]
	if c.FinishReason == genai.FinishReasonSafety {
		return errContentBlocked
	}
	if c.Content == nil {
		return fmt.Errorf("%w: empty content", errInvalidResponse)
	}

	var text strings.Builder
	for _, part := range c.Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return fmt.Errorf("%w: empty text", errInvalidResponse)
	}
	if err := json.Unmarshal([]byte(text.String()), out); err != nil {
		return fmt.Errorf("%w: %v", errInvalidResponse, err)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
