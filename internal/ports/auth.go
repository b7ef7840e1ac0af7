package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters and internal/data; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/target/jokeboard/internal/domain/auth"
	"github.com/target/jokeboard/internal/domain/model"
)

// PasswordHasher produces salted one-way password hashes and verifies them.
type PasswordHasher interface {
	// Hash returns a fresh salted hash of password.
	Hash(password string) (string, error)
	// Verify reports whether password produced hash. A malformed hash yields false.
	Verify(password, hash string) bool
}

// SessionCodec seals a session payload into an opaque cookie value and back.
type SessionCodec interface {
	// Encode signs (and optionally encrypts) the session with the current secret.
	Encode(sess domainauth.Session) (string, error)
	// Decode verifies value against every configured secret. Invalid input yields ok=false.
	Decode(value string) (sess domainauth.Session, ok bool)
}

// UserStore is the credential/user store consumed by the auth core.
// Missing records are reported as apperrors not-found errors.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*model.Credential, error)
	FindByID(ctx context.Context, id string, projection model.UserProjection) (*model.User, error)
	Create(ctx context.Context, username, passwordHash string) (*model.User, error)
}
