// Package common defines sentinel errors shared by the LexiconQuest client
// layers. Callers should match them with errors.Is.
package common

import "errors"

var (
	// ErrNotFound reports that a key is absent from local storage.
	ErrNotFound = errors.New("not found")

	// ErrMalformed reports a stored value that exists but cannot be decoded.
	ErrMalformed = errors.New("malformed record")
)
