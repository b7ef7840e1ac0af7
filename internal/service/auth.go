package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/target/jokeboard/internal/domain/auth"
	"github.com/target/jokeboard/internal/domain/model"
	apperrors "github.com/target/jokeboard/internal/errors"
	"github.com/target/jokeboard/internal/observability/metrics"
	"github.com/target/jokeboard/internal/observability/statsd"
	"github.com/target/jokeboard/internal/ports"
)

// ErrInvalidCredentials is returned by Login for an unknown username or a wrong password.
// Callers must not reveal which of the two was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// dummyPassword is hashed once so unknown usernames cost one bcrypt comparison too.
const dummyPassword = "jokeboard-timing-equalizer"

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users    ports.UserStore      // Required
	Hasher   ports.PasswordHasher // Required
	Sessions *SessionManager      // Required
	Logger   *slog.Logger         // Optional: structured logger
	Metrics  statsd.Sink          // Optional: auth outcome counters
}

// AuthService resolves request identities from session cookies and runs the
// login, registration and logout flows.
type AuthService struct {
	users     ports.UserStore
	hasher    ports.PasswordHasher
	sessions  *SessionManager
	logger    *slog.Logger
	metrics   statsd.Sink
	dummyHash func() string
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Users == nil {
		return nil, errors.New("UserStore is required")
	}
	if opts.Hasher == nil {
		return nil, errors.New("PasswordHasher is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("SessionManager is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sink := opts.Metrics
	if sink == nil {
		sink = statsd.Discard
	}
	hasher := opts.Hasher
	return &AuthService{
		metrics:  sink,
		users:    opts.Users,
		hasher:   hasher,
		sessions: opts.Sessions,
		logger:   logger.With("component", "auth"),
		dummyHash: sync.OnceValue(func() string {
			h, err := hasher.Hash(dummyPassword)
			if err != nil {
				return ""
			}
			return h
		}),
	}, nil
}

// MustNewAuthService constructs a new AuthService and panics on error.
func MustNewAuthService(opts AuthServiceOptions) *AuthService {
	svc, err := NewAuthService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Sessions exposes the session manager used by the service.
func (s *AuthService) Sessions() *SessionManager { return s.sessions }

// Login verifies a username/password pair and returns the matching user.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.login(ctx, username, password)
	s.record(metrics.EventLogin, err)
	return user, err
}

func (s *AuthService) login(ctx context.Context, username, password string) (*model.User, error) {
	cred, err := s.users.FindByUsername(ctx, username)
	switch {
	case apperrors.IsNotFound(err) || (err == nil && cred == nil):
		// Spend the same bcrypt work as a real comparison.
		_ = s.hasher.Verify(password, s.dummyHash())
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("find user by username: %w", err)
	}

	if !s.hasher.Verify(password, cred.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &model.User{ID: cred.ID, Username: cred.Username}, nil
}

// Register validates the input, hashes the password and creates the user.
// Validation failures are returned as model.FieldErrors; a taken username as a conflict.
func (s *AuthService) Register(ctx context.Context, in model.RegisterInput) (*model.User, error) {
	user, err := s.register(ctx, in)
	s.record(metrics.EventRegister, err)
	return user, err
}

func (s *AuthService) register(ctx context.Context, in model.RegisterInput) (*model.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if err == nil && existing != nil {
		return nil, usernameTaken(in.Username)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, in.Username, hash)
	if apperrors.IsConflict(err) {
		return nil, usernameTaken(in.Username)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

func usernameTaken(username string) error {
	err := apperrors.Conflictf("User with username %s already exists", username)
	err.Field = "username"
	return err
}

// StartSession issues a session cookie for userID and redirects to redirectTo.
func (s *AuthService) StartSession(userID, redirectTo string) (SessionResponse, error) {
	return s.sessions.Create(userID, redirectTo)
}

// CurrentUserID returns the user id carried by the session cookie, if any.
func (s *AuthService) CurrentUserID(cookieHeader string) (string, bool) {
	sess := s.sessions.Read(cookieHeader)
	if !sess.Authenticated() {
		return "", false
	}
	return sess.UserID, true
}

// RequireUserID resolves the current user id or, for anonymous requests, a redirect
// to the login page that returns to redirectTarget afterwards.
func (s *AuthService) RequireUserID(cookieHeader, redirectTarget string) domainauth.Resolution {
	if id, ok := s.CurrentUserID(cookieHeader); ok {
		return domainauth.Continue(id)
	}
	return domainauth.LoginRedirect(redirectTarget)
}

// UserResolution is the outcome of materializing the current user.
// User is nil for anonymous requests. ForcedLogout is set when the session
// referenced a user that could not be loaded; the caller must send it.
type UserResolution struct {
	User         *model.User
	ForcedLogout *SessionResponse
}

// CurrentUser loads the user referenced by the session, narrowed to projection.
// A lookup failure never surfaces as an error: the session is destroyed instead.
func (s *AuthService) CurrentUser(ctx context.Context, cookieHeader string, projection model.UserProjection) UserResolution {
	id, ok := s.CurrentUserID(cookieHeader)
	if !ok {
		return UserResolution{}
	}

	user, err := s.users.FindByID(ctx, id, projection)
	if err != nil || user == nil {
		s.logger.WarnContext(ctx, "session user could not be loaded; forcing logout",
			"user_id", id,
			"not_found", err == nil || apperrors.IsNotFound(err),
			"error", err)
		result := metrics.ResultFailure
		if err != nil && !apperrors.IsNotFound(err) {
			result = metrics.ResultError
		}
		metrics.AuthEvent(s.metrics, metrics.AuthMetric{Event: metrics.EventForcedLogout, Result: result, Err: err})
		out := s.sessions.Destroy()
		return UserResolution{ForcedLogout: &out}
	}
	return UserResolution{User: user}
}

// Logout expires the session cookie. It succeeds whether or not the request
// carried a valid session.
func (s *AuthService) Logout(ctx context.Context, cookieHeader string) SessionResponse {
	if id, ok := s.CurrentUserID(cookieHeader); ok {
		s.logger.InfoContext(ctx, "user logged out", "user_id", id)
		s.record(metrics.EventLogout, nil)
	}
	return s.sessions.Destroy()
}

// record counts an auth outcome. Rejected credentials and input are failures;
// anything else non-nil is an infrastructure error.
func (s *AuthService) record(event string, err error) {
	result := metrics.ResultSuccess
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidCredentials), apperrors.IsConflict(err):
		result = metrics.ResultFailure
	default:
		if _, ok := model.AsFieldErrors(err); ok {
			result = metrics.ResultFailure
		} else {
			result = metrics.ResultError
		}
	}
	metrics.AuthEvent(s.metrics, metrics.AuthMetric{Event: event, Result: result, Err: err})
}
