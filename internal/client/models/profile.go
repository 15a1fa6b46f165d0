package models

// CurrentSchemaVersion is written into every persisted profile. Records
// without a version predate it and are treated as version 1.
const CurrentSchemaVersion = 2

// DefaultName is the profile name used while nobody is logged in.
const DefaultName = "Student"

// Profile is the per-identity learning progress record.
type Profile struct {
	SchemaVersion     int      `json:"schemaVersion"`
	Name              string   `json:"name"`
	Grade             int      `json:"grade"`
	XP                int      `json:"xp"`
	Streak            int      `json:"streak"`
	CompletedWords    int      `json:"completedWords"`
	MasteredWordsList []Word   `json:"masteredWordsList"`
	Badges            []string `json:"badges"`
}

// DefaultProfile is the in-memory profile of a logged-out session.
func DefaultProfile() Profile {
	return NewProfile(DefaultName)
}

// NewProfile returns a fresh profile for a first-time identity.
func NewProfile(name string) Profile {
	if name == "" {
		name = DefaultName
	}
	return Profile{
		SchemaVersion:     CurrentSchemaVersion,
		Name:              name,
		Streak:            1,
		MasteredWordsList: []Word{},
		Badges:            []string{},
	}
}

// Clone returns a deep copy so callers can never alias stored slices.
func (p Profile) Clone() Profile {
	c := p
	c.MasteredWordsList = make([]Word, len(p.MasteredWordsList))
	for i, w := range p.MasteredWordsList {
		w.Synonyms = append([]string(nil), w.Synonyms...)
		w.Antonyms = append([]string(nil), w.Antonyms...)
		c.MasteredWordsList[i] = w
	}
	c.Badges = append(make([]string, 0, len(p.Badges)), p.Badges...)
	return c
}

// NeedsOnboarding reports whether the grade has not been chosen yet.
func (p Profile) NeedsOnboarding() bool {
	return p.Grade == 0
}

// GradeGroup derives the band of the profile grade.
func (p Profile) GradeGroup() (GradeGroup, error) {
	return GroupForGrade(p.Grade)
}

// HasMastered reports whether a word with the given text is in the history.
func (p Profile) HasMastered(word string) bool {
	for _, w := range p.MasteredWordsList {
		if w.Word == word {
			return true
		}
	}
	return false
}

// History returns the mastered words matching query, most recent first.
func (p Profile) History(query string) []Word {
	out := make([]Word, 0, len(p.MasteredWordsList))
	for i := len(p.MasteredWordsList) - 1; i >= 0; i-- {
		if w := p.MasteredWordsList[i]; w.Matches(query) {
			out = append(out, w)
		}
	}
	return out
}
