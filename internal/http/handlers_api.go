package httpx

import (
	"net/http"
	"strconv"

	"github.com/target/jokeboard/internal/domain/model"
	apperrors "github.com/target/jokeboard/internal/errors"
)

const maxAPIJokes = 50

// APIHandlers serves the JSON endpoints under /api/.
type APIHandlers struct {
	Auth  AuthService
	Jokes JokeService
}

// Me returns the signed-in user narrowed to ?fields=.
// GET /api/me (behind RequireAuth).
func (h *APIHandlers) Me(w http.ResponseWriter, r *http.Request) {
	projection, err := model.ParseUserProjection(r.URL.Query().Get("fields"))
	if err != nil {
		WriteAppError(w, apperrors.ValidationField("fields", err.Error()))
		return
	}

	res := h.Auth.CurrentUser(r.Context(), r.Header.Get("Cookie"), projection)
	if res.ForcedLogout != nil {
		http.SetCookie(w, res.ForcedLogout.Cookie.HTTPCookie())
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "session_expired",
			Message: "session no longer valid",
		})
		return
	}
	if res.User == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Message: "authentication required",
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"user": res.User})
}

// ListJokes lists the newest jokes. ?limit= is clamped to [1, 50].
// GET /api/jokes.
func (h *APIHandlers) ListJokes(w http.ResponseWriter, r *http.Request) {
	limit := model.LatestJokesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteAppError(w, apperrors.ValidationField("limit", "limit must be a positive integer"))
			return
		}
		limit = min(n, maxAPIJokes)
	}

	items, err := h.Jokes.Latest(r.Context(), limit)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if items == nil {
		items = []model.JokeListItem{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"jokes": items})
}
