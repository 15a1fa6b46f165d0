// Package audio speaks words aloud. Playback is fire-and-forget: failures
// are logged and never reach the caller.
package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/lexiconquest/internal/filex"
	"github.com/dmitrijs2005/lexiconquest/internal/logging"
)

const requestTimeout = 10 * time.Second

var ttsURL = "https://translate.google.com/translate_tts"

// runPlayer starts the external player on a downloaded file.
var runPlayer = func(ctx context.Context, player, path string) error {
	return exec.CommandContext(ctx, player, path).Run()
}

// Speaker downloads speech for a word into a cache directory and hands the
// file to an external player.
type Speaker struct {
	dir    string
	player string
	client *http.Client
	logger logging.Logger

	wg sync.WaitGroup
}

// NewSpeaker prepares the cache directory. An empty player only caches the
// audio file.
func NewSpeaker(dir, player string, logger logging.Logger) (*Speaker, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("audio cache: %w", err)
	}
	return &Speaker{
		dir:    abs,
		player: player,
		client: &http.Client{Timeout: requestTimeout},
		logger: logger.With("component", "audio"),
	}, nil
}

// Speak plays text in the background.
func (s *Speaker) Speak(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*requestTimeout)
		defer cancel()

		path, err := s.Fetch(ctx, text)
		if err != nil {
			s.logger.Warn(ctx, "speech download failed", "text", text, "error", err)
			return
		}
		if s.player == "" {
			return
		}
		if err := runPlayer(ctx, s.player, path); err != nil {
			s.logger.Warn(ctx, "speech playback failed", "player", s.player, "error", err)
		}
	}()
}

// Wait blocks until every pending Speak has finished.
func (s *Speaker) Wait() {
	s.wg.Wait()
}

// Fetch returns the cached speech file for text, downloading it first when
// missing.
func (s *Speaker) Fetch(ctx context.Context, text string) (string, error) {
	path := filepath.Join(s.dir, fileName(text))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ttsURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(s.dir, "tts-*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close audio file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("store audio file: %w", err)
	}
	return path, nil
}

func fileName(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	name := b.String()
	if name == "" {
		name = fmt.Sprintf("%x", text)
	}
	return "word_" + name + ".mp3"
}
