package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrMissingEmail       = errors.New("user must provide an email address")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrUnauthorized       = errors.New("invalid or missing token")
	ErrForbidden          = errors.New("access forbidden")
	ErrTokenNotFound      = errors.New("token not found")
)

// UnusablePasswordPrefix marks a password hash that can never be verified.
// Users created without a password carry a hash with this prefix.
const UnusablePasswordPrefix = "!"

// User models an account. Email is the login identifier.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasUsablePassword reports whether the stored hash can ever match a password.
func (u *User) HasUsablePassword() bool {
	return u.PasswordHash != "" && !strings.HasPrefix(u.PasswordHash, UnusablePasswordPrefix)
}

// CanAccessAdmin reports whether u may use the admin endpoints.
func CanAccessAdmin(u *User) bool {
	return u != nil && u.IsActive && u.IsStaff
}

// CanAuthenticate reports whether u may obtain or use a token.
func CanAuthenticate(u *User) bool {
	return u != nil && u.IsActive
}

// NormalizeEmail applies NFKC normalisation, trims surrounding whitespace and
// lower-cases the domain part. The local part keeps its case.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(norm.NFKC.String(email))
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
