package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/target/jokeboard/internal/domain/auth"
	"github.com/target/jokeboard/internal/ports"
)

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	Codec      ports.SessionCodec // Required
	CookieName string             // Required
	MaxAge     time.Duration      // Required: lifetime of an issued cookie
	Secure     bool               // Set in production so the cookie only travels over TLS
	Domain     string             // Optional cookie domain
}

// SessionManager builds the Set-Cookie responses that start and end a session and
// extracts the session from an incoming Cookie header. It performs no I/O.
type SessionManager struct {
	codec  ports.SessionCodec
	name   string
	maxAge int
	secure bool
	domain string
}

// SessionResponse describes the redirect and cookie a handler must send.
type SessionResponse struct {
	Redirect string
	Cookie   domainauth.SessionCookie
}

// NewSessionManager constructs a new SessionManager.
func NewSessionManager(opts SessionManagerOptions) (*SessionManager, error) {
	if opts.Codec == nil {
		return nil, errors.New("session codec is required")
	}
	if strings.TrimSpace(opts.CookieName) == "" {
		return nil, errors.New("session cookie name is required")
	}
	if opts.MaxAge < time.Second {
		return nil, errors.New("session max age must be at least one second")
	}
	return &SessionManager{
		codec:  opts.Codec,
		name:   opts.CookieName,
		maxAge: int(opts.MaxAge / time.Second),
		secure: opts.Secure,
		domain: opts.Domain,
	}, nil
}

// CookieName returns the session cookie name.
func (m *SessionManager) CookieName() string { return m.name }

// Create seals a session for userID and returns the response that sets it
// and redirects to redirectTo.
func (m *SessionManager) Create(userID, redirectTo string) (SessionResponse, error) {
	if userID == "" {
		return SessionResponse{}, errors.New("user id is required")
	}
	value, err := m.codec.Encode(domainauth.NewSession(userID))
	if err != nil {
		return SessionResponse{}, fmt.Errorf("seal session: %w", err)
	}
	return SessionResponse{
		Redirect: redirectTo,
		Cookie:   m.cookie(value, m.maxAge),
	}, nil
}

// Read returns the session carried by cookieHeader. A missing, malformed, expired
// or mis-signed cookie yields the zero Session.
func (m *SessionManager) Read(cookieHeader string) domainauth.Session {
	if strings.TrimSpace(cookieHeader) == "" {
		return domainauth.Session{}
	}
	// http.Request's cookie parser skips malformed pairs instead of failing the whole header.
	r := &http.Request{Header: http.Header{"Cookie": {cookieHeader}}}
	for _, c := range r.CookiesNamed(m.name) {
		if sess, ok := m.codec.Decode(c.Value); ok {
			return sess
		}
	}
	return domainauth.Session{}
}

// Destroy returns the response that expires the session cookie and sends the
// user to the login page. It never fails and does not require a valid session.
func (m *SessionManager) Destroy() SessionResponse {
	return SessionResponse{
		Redirect: domainauth.LoginPath,
		Cookie:   m.cookie("", 0),
	}
}

func (m *SessionManager) cookie(value string, maxAge int) domainauth.SessionCookie {
	return domainauth.SessionCookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		Domain:   m.domain,
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}
