package httpx

import (
	"context"
	"fmt"
	"net/http"

	domainauth "github.com/target/jokeboard/internal/domain/auth"
	"github.com/target/jokeboard/internal/domain/model"
	apperrors "github.com/target/jokeboard/internal/errors"
)

const (
	newJokePath = "/jokes/new"
	// deleteMethod is the _method override the joke page posts to delete.
	deleteMethod = "delete"
)

// JokeService is the subset of service.JokeService the handlers use.
type JokeService interface {
	Latest(ctx context.Context, limit int) ([]model.JokeListItem, error)
	Random(ctx context.Context) (*model.Joke, error)
	Get(ctx context.Context, id string) (*model.Joke, error)
	Create(ctx context.Context, jokesterID string, req model.CreateJokeRequest) (*model.Joke, error)
	Delete(ctx context.Context, id, actingUserID string) error
}

// JokeHandlers serves the joke pages.
type JokeHandlers struct {
	pageBase
	Jokes    JokeService
	Markdown *Markdown
}

// Index renders the landing page.
// GET /.
func (h *JokeHandlers) Index(w http.ResponseWriter, r *http.Request) {
	user, ok := h.viewer(w, r)
	if !ok {
		return
	}
	h.render(w, http.StatusOK, PageIndex, PageData{User: user})
}

// NotFound renders the 404 page for unmatched paths.
func (h *JokeHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	user, ok := h.viewer(w, r)
	if !ok {
		return
	}
	h.renderError(w, http.StatusNotFound, "Nothing to see here.", PageData{User: user})
}

// List shows a random joke next to the latest ones.
// GET /jokes.
func (h *JokeHandlers) List(w http.ResponseWriter, r *http.Request) {
	user, ok := h.viewer(w, r)
	if !ok {
		return
	}

	latest, err := h.Jokes.Latest(r.Context(), model.LatestJokesLimit)
	if err != nil {
		h.renderInternal(w, r, err, user)
		return
	}
	data := PageData{Title: "Jokes", User: user, Jokes: latest}

	joke, err := h.Jokes.Random(r.Context())
	switch {
	case apperrors.IsNotFound(err):
		data.Message = "There are no jokes to display."
		h.render(w, http.StatusNotFound, PageJokes, data)
		return
	case err != nil:
		h.renderInternal(w, r, err, user)
		return
	}

	if data.JokeHTML, err = h.Markdown.Render(joke.Content); err != nil {
		h.renderInternal(w, r, err, user)
		return
	}
	data.Joke = joke
	h.render(w, http.StatusOK, PageJokes, data)
}

// NewForm renders the joke form, or a 401 page for anonymous visitors.
// GET /jokes/new.
func (h *JokeHandlers) NewForm(w http.ResponseWriter, r *http.Request) {
	user, ok := h.viewer(w, r)
	if !ok {
		return
	}
	if user == nil {
		h.renderError(w, http.StatusUnauthorized, "You must be logged in to create a joke.",
			PageData{Form: FormState{RedirectTo: newJokePath}})
		return
	}
	h.render(w, http.StatusOK, PageNewJoke, PageData{Title: "New joke", User: user})
}

// Create stores a joke for the signed-in user and redirects to it.
// POST /jokes/new (behind RequireAuth).
func (h *JokeHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, PageNewJoke, PageData{
			Title: "New joke",
			Form:  FormState{FormError: formErrorBadSubmit},
		})
		return
	}
	req := model.CreateJokeRequest{Name: r.PostForm.Get("name"), Content: r.PostForm.Get("content")}

	joke, err := h.Jokes.Create(r.Context(), userID, req)
	if err != nil {
		if fe, ok := model.AsFieldErrors(err); ok {
			h.render(w, http.StatusBadRequest, PageNewJoke, PageData{
				Title: "New joke",
				Form:  FormState{Name: req.Name, Content: req.Content, FieldErrors: fe},
			})
			return
		}
		h.renderError(w, StatusForError(err), apperrors.PublicMessage(err), PageData{})
		return
	}
	http.Redirect(w, r, "/jokes/"+joke.ID, http.StatusSeeOther)
}

// Show renders one joke. The delete button appears only for its owner.
// GET /jokes/{id}.
func (h *JokeHandlers) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := h.viewer(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	joke, err := h.Jokes.Get(r.Context(), id)
	switch {
	case apperrors.IsNotFound(err):
		h.renderError(w, http.StatusNotFound, fmt.Sprintf("Huh? What the heck is %q?", id), PageData{User: user})
		return
	case err != nil:
		h.renderInternal(w, r, err, user)
		return
	}

	body, err := h.Markdown.Render(joke.Content)
	if err != nil {
		h.renderInternal(w, r, err, user)
		return
	}

	var viewerID string
	if user != nil {
		viewerID = user.ID
	}
	h.render(w, http.StatusOK, PageJoke, PageData{
		Title:    joke.Name,
		User:     user,
		Joke:     joke,
		JokeHTML: body,
		IsOwner:  domainauth.Authorize(joke.OwnerID(), viewerID) == domainauth.Allowed,
	})
}

// Mutate handles form posts to a joke. Only _method=delete is supported.
// Anonymous users are sent to log in; missing jokes are 404 before any
// ownership check yields 403.
// POST /jokes/{id}.
func (h *JokeHandlers) Mutate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, formErrorBadSubmit, PageData{})
		return
	}
	if method := r.PostForm.Get("_method"); method != deleteMethod {
		h.renderError(w, http.StatusBadRequest, fmt.Sprintf("The _method %q is not supported", method), PageData{})
		return
	}

	res := h.Auth.RequireUserID(r.Header.Get("Cookie"), "/jokes/"+id)
	if res.Kind() == domainauth.ResolutionRedirect {
		http.Redirect(w, r, res.Location(), http.StatusSeeOther)
		return
	}

	err := h.Jokes.Delete(r.Context(), id, res.UserID())
	switch {
	case err == nil:
		h.Logger.InfoContext(r.Context(), "joke deleted", "joke_id", id, "user_id", res.UserID())
		http.Redirect(w, r, "/jokes", http.StatusSeeOther)
	case apperrors.IsNotFound(err), apperrors.IsForbidden(err):
		h.renderError(w, StatusForError(err), apperrors.PublicMessage(err), PageData{})
	default:
		h.renderInternal(w, r, err, nil)
	}
}
