// Package cli provides the interactive LexiconQuest terminal client.
//
// It wires configuration, the local progress database, the session engine,
// content generation and the optional audio and backup adapters, then runs
// a REPL whose commands depend on the current view. Typical flow: log in,
// pick a grade once, then learn words, take quizzes and browse history from
// the dashboard.
//
// Learning sessions and quizzes are interactive flows that run to
// completion (or until the user quits them) and always return to the
// dashboard.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
