// Package progress holds the business rules that change a profile.
//
// The mutators are pure: they take a profile and an event and return a new
// profile without touching the input. Persisting the result and moving to
// the next view is the caller's job (see package session).
//
// Rewards:
//
//	learning  10 xp per word passed to CompleteLearning
//	quiz      20 xp per correct answer + 5 xp per step of the best combo
package progress
