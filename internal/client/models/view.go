package models

import (
	"fmt"
	"strings"
)

// View is a top-level screen of the client. Views are session-scoped and
// never persisted.
type View string

const (
	ViewLogin      View = "LOGIN"
	ViewOnboarding View = "ONBOARDING"
	ViewDashboard  View = "DASHBOARD"
	ViewLearn      View = "LEARN"
	ViewQuiz       View = "QUIZ"
	ViewHistory    View = "HISTORY"
	ViewSettings   View = "SETTINGS"
)

var allViews = []View{ViewLogin, ViewOnboarding, ViewDashboard, ViewLearn, ViewQuiz, ViewHistory, ViewSettings}

// Authenticated reports whether the view requires a logged-in identity.
func (v View) Authenticated() bool {
	return v != ViewLogin && v.Valid()
}

// Valid reports whether v is one of the known views.
func (v View) Valid() bool {
	for _, known := range allViews {
		if v == known {
			return true
		}
	}
	return false
}

// ParseView resolves a case-insensitive view name.
func ParseView(s string) (View, error) {
	v := View(strings.ToUpper(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("unknown view %q", s)
	}
	return v, nil
}
