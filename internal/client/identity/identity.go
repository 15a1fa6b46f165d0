// Package identity builds session identities from login input. Login is
// not an authentication boundary: tokens are decoded, not verified.
package identity

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
)

const avatarURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidToken = errors.New("invalid ID token")
)

var validate = validator.New()

// FromEmail derives the identity of an email login.
func FromEmail(email string) (models.Identity, error) {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return models.Identity{}, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	name, _, _ := strings.Cut(email, "@")
	return models.Identity{
		ID:     "email_" + email,
		Name:   name,
		Email:  email,
		Avatar: avatarURL + url.QueryEscape(email),
	}, nil
}

// GoogleClaims are the profile claims of a Google ID token.
type GoogleClaims struct {
	jwt.RegisteredClaims
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// FromIDToken derives an identity from the claims of a Google ID token.
func FromIDToken(token string) (models.Identity, error) {
	claims := &GoogleClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(token), claims); err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	name := claims.Name
	if name == "" {
		name, _, _ = strings.Cut(claims.Email, "@")
	}
	avatar := claims.Picture
	if avatar == "" {
		avatar = avatarURL + url.QueryEscape(claims.Subject)
	}
	return models.Identity{
		ID:     "google_" + claims.Subject,
		Name:   name,
		Email:  claims.Email,
		Avatar: avatar,
	}, nil
}

// GoogleDemo is the fixed account used when Google login is chosen without a
// token.
func GoogleDemo() models.Identity {
	return models.Identity{
		ID:     "google_12345",
		Name:   "Student Name",
		Email:  "student@gmail.com",
		Avatar: avatarURL + "Felix",
	}
}
