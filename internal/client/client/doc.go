// Package client bootstraps local persistence for the LexiconQuest CLI.
//
// InitDatabase opens an SQLite database through the pure-Go modernc driver
// and applies the embedded goose migrations (see RunMigrations). Every
// profile record and the session marker live in the resulting metadata
// table; see package store for the record layout.
package client
