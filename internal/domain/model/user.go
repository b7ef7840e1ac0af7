//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minPasswordLen = 6
	// bcrypt ignores input beyond 72 bytes.
	maxPasswordBytes = 72
)

// User is the public user record. It never carries credential material.
type User struct {
	ID        string    `json:"id"                   db:"id"`
	Username  string    `json:"username,omitempty"   db:"username"`
	CreatedAt time.Time `json:"created_at,omitzero"  db:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitzero"  db:"updated_at"`
}

// Credential is the login-time view of a user. PasswordHash stays inside the
// store/hasher boundary and is never serialized.
type Credential struct {
	ID           string `json:"id"  db:"id"`
	Username     string `json:"-"   db:"username"`
	PasswordHash string `json:"-"   db:"password_hash"`
}

// LoginType selects between signing in and creating an account from the login form.
type LoginType string

const (
	LoginTypeLogin    LoginType = "login"
	LoginTypeRegister LoginType = "register"
)

// ParseLoginType normalizes the form value and reports whether it is supported.
func ParseLoginType(value string) (LoginType, bool) {
	lt := LoginType(strings.ToLower(strings.TrimSpace(value)))
	switch lt {
	case LoginTypeLogin, LoginTypeRegister:
		return lt, true
	default:
		return "", false
	}
}

// LoginInput carries credentials submitted through the login form.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks field lengths and returns FieldErrors when any field is invalid.
func (in *LoginInput) Validate() error {
	in.Username = strings.TrimSpace(in.Username)

	fe := FieldErrors{}
	if msg := validateUsername(in.Username); msg != "" {
		fe["username"] = msg
	}
	if msg := validatePassword(in.Password); msg != "" {
		fe["password"] = msg
	}
	return fe.OrNil()
}

// RegisterInput carries the fields for creating an account.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate applies the same rules as LoginInput.
func (in *RegisterInput) Validate() error {
	li := LoginInput{Username: in.Username, Password: in.Password}
	err := li.Validate()
	in.Username = li.Username
	return err
}

func validateUsername(username string) string {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLen {
		return "Usernames must be at least 3 characters long"
	}
	if n > maxUsernameLen {
		return "Usernames cannot exceed 64 characters"
	}
	return ""
}

func validatePassword(password string) string {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Passwords must be at least 6 characters long"
	}
	if len(password) > maxPasswordBytes {
		return "Passwords cannot exceed 72 bytes"
	}
	return ""
}

// FieldErrors maps form field names to user-facing validation messages.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "no field errors"
	}
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// OrNil returns nil when there are no field errors so callers can return it as an error directly.
func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// AsFieldErrors extracts FieldErrors from err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
