package models

// Identity is the logged-in user. It is owned by the login layer and is
// immutable for the lifetime of a session.
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}
