package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/target/jokeboard/internal/domain/model"
	apperrors "github.com/target/jokeboard/internal/errors"
	"github.com/target/jokeboard/internal/service"
)

const (
	defaultRedirectPath = "/jokes"
	formErrorBadSubmit  = "Form not submitted correctly."
	formErrorBadLogin   = "Username/Password combination is incorrect"
)

// AuthService is the subset of service.AuthService the handlers use.
type AuthService interface {
	Identity
	Login(ctx context.Context, username, password string) (*model.User, error)
	Register(ctx context.Context, in model.RegisterInput) (*model.User, error)
	StartSession(userID, redirectTo string) (service.SessionResponse, error)
	CurrentUser(ctx context.Context, cookieHeader string, projection model.UserProjection) service.UserResolution
	Logout(ctx context.Context, cookieHeader string) service.SessionResponse
}

// pageBase carries what every HTML handler needs to render chrome and errors.
type pageBase struct {
	Auth     AuthService
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

// viewer resolves the signed-in user for the page header. When the session
// names a user that can no longer be loaded, the forced logout is sent and
// ok is false; the caller must stop.
func (p *pageBase) viewer(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	res := p.Auth.CurrentUser(r.Context(), r.Header.Get("Cookie"), model.AllUserFields())
	if res.ForcedLogout != nil {
		sendSession(w, r, *res.ForcedLogout)
		return nil, false
	}
	return res.User, true
}

func (p *pageBase) render(w http.ResponseWriter, status int, page string, data PageData) {
	if err := p.Renderer.Render(w, status, page, data); err != nil {
		p.Logger.Error("render page", slog.String("page", page), slog.Any("error", err))
	}
}

func (p *pageBase) renderError(w http.ResponseWriter, status int, message string, data PageData) {
	data.Status = status
	data.Message = message
	if data.Title == "" {
		data.Title = http.StatusText(status)
	}
	p.render(w, status, PageError, data)
}

// renderInternal logs err and shows a generic 500 page.
func (p *pageBase) renderInternal(w http.ResponseWriter, r *http.Request, err error, user *model.User) {
	p.Logger.ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	p.renderError(w, http.StatusInternalServerError, apperrors.PublicMessage(nil), PageData{User: user})
}

// sendSession applies a session response: set (or expire) the cookie, then redirect.
func sendSession(w http.ResponseWriter, r *http.Request, resp service.SessionResponse) {
	http.SetCookie(w, resp.Cookie.HTTPCookie())
	http.Redirect(w, r, resp.Redirect, http.StatusSeeOther)
}

// safeRedirectPath keeps post-login redirects on this site. Anything that is
// not a plain absolute path (scheme, host, protocol-relative, backslash
// tricks, control characters) falls back to the jokes page.
func safeRedirectPath(candidate string) string {
	if candidate == "" || !strings.HasPrefix(candidate, "/") {
		return defaultRedirectPath
	}
	if strings.HasPrefix(candidate, "//") || strings.HasPrefix(candidate, "/\\") ||
		strings.ContainsAny(candidate, "\r\n\t") {
		return defaultRedirectPath
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" {
		return defaultRedirectPath
	}
	return candidate
}

// AuthHandlers serves the login form, login/register submission and logout.
type AuthHandlers struct {
	pageBase
}

// LoginPage renders the login/register form.
// GET /login?redirectTo=<path>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.viewer(w, r)
	if !ok {
		return
	}
	h.render(w, http.StatusOK, PageLogin, PageData{
		Title: "Login",
		User:  user,
		Form: FormState{
			LoginType:  string(model.LoginTypeLogin),
			RedirectTo: safeRedirectPath(r.URL.Query().Get("redirectTo")),
		},
	})
}

// LoginSubmit signs in or registers depending on loginType, then starts a session.
// POST /login.
func (h *AuthHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	form := FormState{LoginType: string(model.LoginTypeLogin), RedirectTo: defaultRedirectPath}
	if err := r.ParseForm(); err != nil {
		form.FormError = formErrorBadSubmit
		h.renderLogin(w, http.StatusBadRequest, form)
		return
	}

	form.Username = r.PostForm.Get("username")
	form.RedirectTo = safeRedirectPath(r.PostForm.Get("redirectTo"))
	password := r.PostForm.Get("password")

	loginType, ok := model.ParseLoginType(r.PostForm.Get("loginType"))
	if !ok {
		form.FormError = formErrorBadSubmit
		h.renderLogin(w, http.StatusBadRequest, form)
		return
	}
	form.LoginType = string(loginType)

	var (
		user *model.User
		err  error
	)
	switch loginType {
	case model.LoginTypeRegister:
		user, err = h.Auth.Register(r.Context(), model.RegisterInput{Username: form.Username, Password: password})
	default:
		in := model.LoginInput{Username: form.Username, Password: password}
		if err = in.Validate(); err == nil {
			user, err = h.Auth.Login(r.Context(), in.Username, in.Password)
		}
	}

	if err != nil {
		if fe, isFieldErr := model.AsFieldErrors(err); isFieldErr {
			form.FieldErrors = fe
			h.renderLogin(w, http.StatusBadRequest, form)
			return
		}
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			form.FormError = formErrorBadLogin
		case apperrors.IsConflict(err):
			form.FormError = apperrors.PublicMessage(err)
		default:
			h.renderInternal(w, r, err, nil)
			return
		}
		h.renderLogin(w, http.StatusBadRequest, form)
		return
	}

	resp, err := h.Auth.StartSession(user.ID, form.RedirectTo)
	if err != nil {
		h.renderInternal(w, r, err, nil)
		return
	}
	h.Logger.InfoContext(r.Context(), "session started",
		slog.String("user_id", user.ID),
		slog.String("login_type", string(loginType)))
	sendSession(w, r, resp)
}

func (h *AuthHandlers) renderLogin(w http.ResponseWriter, status int, form FormState) {
	h.render(w, status, PageLogin, PageData{Title: "Login", Form: form})
}

// Logout expires the session cookie and redirects to /login.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sendSession(w, r, h.Auth.Logout(r.Context(), r.Header.Get("Cookie")))
}

// LogoutPage bounces stray GETs home; logging out requires a POST.
// GET /logout.
func (h *AuthHandlers) LogoutPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
