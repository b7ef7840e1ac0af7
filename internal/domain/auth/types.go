package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"net/http"
	"net/url"
)

// LoginPath is where unauthenticated users are sent.
const LoginPath = "/login"

// Session is the trusted payload carried by the session cookie.
// A zero Session means "no user key present".
type Session struct {
	UserID string
}

// NewSession builds the payload issued at login.
func NewSession(userID string) Session {
	return Session{UserID: userID}
}

// Authenticated reports whether the session carries a user id.
func (s Session) Authenticated() bool { return s.UserID != "" }

// SessionCookie describes the Set-Cookie header a response must carry.
// It is a pure value; HTTP adapters translate it into an *http.Cookie.
type SessionCookie struct {
	Name     string
	Value    string
	Path     string
	Domain   string
	HTTPOnly bool
	Secure   bool
	SameSite http.SameSite
	// MaxAge in seconds. Zero together with an empty Value expires the cookie.
	MaxAge int
}

// Expired reports whether the cookie instructs the client to drop the session.
func (c SessionCookie) Expired() bool { return c.MaxAge <= 0 }

// HTTPCookie converts the description into a net/http cookie.
func (c SessionCookie) HTTPCookie() *http.Cookie {
	maxAge := c.MaxAge
	if maxAge <= 0 {
		// net/http encodes negative MaxAge as "Max-Age=0".
		maxAge = -1
	}
	return &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Domain:   c.Domain,
		MaxAge:   maxAge,
		HttpOnly: c.HTTPOnly,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	}
}

// ResolutionKind tags the outcome of resolving a required identity.
type ResolutionKind int

const (
	// ResolutionContinue means the caller may proceed with the resolved user id.
	ResolutionContinue ResolutionKind = iota
	// ResolutionRedirect means the caller must stop and redirect.
	ResolutionRedirect
)

// Resolution is the tagged result of requiring an authenticated user.
// Exactly one of UserID or Location is meaningful, selected by Kind.
type Resolution struct {
	kind     ResolutionKind
	userID   string
	location string
}

// Continue returns a resolution carrying an authenticated user id.
func Continue(userID string) Resolution {
	return Resolution{kind: ResolutionContinue, userID: userID}
}

// Redirect returns a resolution instructing the caller to redirect to location.
func Redirect(location string) Resolution {
	return Resolution{kind: ResolutionRedirect, location: location}
}

// LoginRedirect returns a redirect to the login page that brings the user back to target.
func LoginRedirect(target string) Resolution {
	return Redirect(LoginRedirectLocation(target))
}

// LoginRedirectLocation builds "/login?redirectTo=<target>" with target query-escaped.
func LoginRedirectLocation(target string) string {
	return LoginPath + "?redirectTo=" + url.QueryEscape(target)
}

// Kind returns the resolution tag.
func (r Resolution) Kind() ResolutionKind { return r.kind }

// UserID returns the resolved user id; empty for redirects.
func (r Resolution) UserID() string { return r.userID }

// Location returns the redirect target; empty for continues.
func (r Resolution) Location() string { return r.location }

// Decision is the outcome of an ownership check.
type Decision int

const (
	Forbidden Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "forbidden"
}

// Authorize allows a mutation only when the acting user is the recorded owner.
// Both ids must be present.
func Authorize(ownerID, actingUserID string) Decision {
	if ownerID == "" || actingUserID == "" {
		return Forbidden
	}
	if ownerID != actingUserID {
		return Forbidden
	}
	return Allowed
}
