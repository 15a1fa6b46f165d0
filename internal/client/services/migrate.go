package services

import (
	"encoding/json"
	"math"
	"slices"

	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
	"github.com/dmitrijs2005/lexiconquest/internal/client/store"
)

// Migrate turns a decoded record of any schema version into a current
// profile. Every field is read on its own: a missing, null or wrongly typed
// field takes its default and never affects the others.
//
// Defaults:
//
//	name               fallbackName, then models.DefaultName
//	grade              0 (also when outside 0..12)
//	xp                 0 (negative values clamp to 0)
//	streak             1 (values below 1 become 1)
//	completedWords     0 (negative values clamp to 0)
//	masteredWordsList  empty; entries without word text or repeating a word
//	                   are dropped, other bad entry fields take their zero value
//	badges             empty; repeated badges are dropped
func Migrate(raw store.RawProfile, fallbackName string) models.Profile {
	name := fallbackName
	if s, ok := stringField(raw, "name"); ok && s != "" {
		name = s
	}
	p := models.NewProfile(name)

	if g, ok := intField(raw, "grade"); ok && (g == 0 || models.ValidGrade(g)) {
		p.Grade = g
	}
	if xp, ok := intField(raw, "xp"); ok && xp > 0 {
		p.XP = xp
	}
	if s, ok := intField(raw, "streak"); ok && s >= 1 {
		p.Streak = s
	}
	if c, ok := intField(raw, "completedWords"); ok && c > 0 {
		p.CompletedWords = c
	}
	p.MasteredWordsList = wordsField(raw, "masteredWordsList")
	p.Badges = badgesField(raw, "badges")

	return p
}

// SchemaVersion reports the version a record was written with. Records
// without the field are version 1.
func SchemaVersion(raw store.RawProfile) int {
	if v, ok := intField(raw, "schemaVersion"); ok && v > 0 {
		return v
	}
	return 1
}

// Repaired reports whether migrating a current-schema record changed any
// field it actually carries, so the stored copy no longer matches p.
// Fields absent from the record are not compared.
func Repaired(raw store.RawProfile, p models.Profile) bool {
	for key, v := range raw {
		if !fieldMatches(key, v, p) {
			return true
		}
	}
	return false
}

func fieldMatches(key string, v json.RawMessage, p models.Profile) bool {
	switch key {
	case "name":
		var s string
		return json.Unmarshal(v, &s) == nil && s == p.Name
	case "grade", "xp", "streak", "completedWords":
		var n int
		if json.Unmarshal(v, &n) != nil {
			return false
		}
		switch key {
		case "grade":
			return n == p.Grade
		case "xp":
			return n == p.XP
		case "streak":
			return n == p.Streak
		default:
			return n == p.CompletedWords
		}
	case "masteredWordsList":
		var words []models.Word
		return json.Unmarshal(v, &words) == nil && slices.EqualFunc(words, p.MasteredWordsList, sameWord)
	case "badges":
		var badges []string
		return json.Unmarshal(v, &badges) == nil && slices.Equal(badges, p.Badges)
	}
	return true
}

func sameWord(a, b models.Word) bool {
	return a.Word == b.Word &&
		a.Pronunciation == b.Pronunciation &&
		a.Meaning == b.Meaning &&
		a.PartOfSpeech == b.PartOfSpeech &&
		a.ExampleSentence == b.ExampleSentence &&
		a.DifficultyLevel == b.DifficultyLevel &&
		slices.Equal(a.Synonyms, b.Synonyms) &&
		slices.Equal(a.Antonyms, b.Antonyms)
}

// NeedsUpgrade reports whether a record was written by an older schema.
func NeedsUpgrade(raw store.RawProfile) bool {
	return SchemaVersion(raw) < models.CurrentSchemaVersion
}

func stringField(raw store.RawProfile, key string) (string, bool) {
	var s *string
	if err := json.Unmarshal(raw[key], &s); err != nil || s == nil {
		return "", false
	}
	return *s, true
}

// maxExactInt is the largest magnitude a JSON number keeps exactly once
// decoded as float64.
const maxExactInt = 1 << 53

func intField(raw store.RawProfile, key string) (int, bool) {
	var f *float64
	if err := json.Unmarshal(raw[key], &f); err != nil || f == nil {
		return 0, false
	}
	if *f != math.Trunc(*f) || math.Abs(*f) > maxExactInt {
		return 0, false
	}
	return int(*f), true
}

// stringListField keeps the string items of an array and drops the rest.
// An absent or empty list is nil, matching a word built in memory.
func stringListField(raw store.RawProfile, key string) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw[key], &items); err != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

// wordField decodes one mastered entry field by field. Only a missing or
// empty word text makes the entry unusable.
func wordField(item json.RawMessage) (models.Word, bool) {
	var raw store.RawProfile
	if err := json.Unmarshal(item, &raw); err != nil {
		return models.Word{}, false
	}
	var w models.Word
	w.Word, _ = stringField(raw, "word")
	if w.Word == "" {
		return models.Word{}, false
	}
	w.Pronunciation, _ = stringField(raw, "pronunciation")
	w.Meaning, _ = stringField(raw, "meaning")
	w.PartOfSpeech, _ = stringField(raw, "partOfSpeech")
	w.ExampleSentence, _ = stringField(raw, "exampleSentence")
	w.Synonyms = stringListField(raw, "synonyms")
	w.Antonyms = stringListField(raw, "antonyms")
	w.DifficultyLevel, _ = intField(raw, "difficultyLevel")
	return w, true
}

func wordsField(raw store.RawProfile, key string) []models.Word {
	out := []models.Word{}
	var items []json.RawMessage
	if err := json.Unmarshal(raw[key], &items); err != nil {
		return out
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		w, ok := wordField(item)
		if !ok {
			continue
		}
		if _, dup := seen[w.Word]; dup {
			continue
		}
		seen[w.Word] = struct{}{}
		out = append(out, w)
	}
	return out
}

func badgesField(raw store.RawProfile, key string) []string {
	out := []string{}
	var items []json.RawMessage
	if err := json.Unmarshal(raw[key], &items); err != nil {
		return out
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		var b string
		if err := json.Unmarshal(item, &b); err != nil || b == "" {
			continue
		}
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}
