package httpx

import (
	"html/template"

	"github.com/target/jokeboard/internal/domain/model"
)

// PageData is the view model every page template receives.
type PageData struct {
	Title string
	// User is the signed-in user, nil for anonymous visitors.
	User *model.User

	// Status and Message drive the error page.
	Status  int
	Message string

	Form FormState

	Jokes    []model.JokeListItem
	Joke     *model.Joke
	JokeHTML template.HTML
	IsOwner  bool
}

// FormState echoes submitted values back with their validation messages.
type FormState struct {
	LoginType   string
	Username    string
	RedirectTo  string
	Name        string
	Content     string
	FieldErrors model.FieldErrors
	FormError   string
}

// FieldError returns the message for field, if any.
func (f FormState) FieldError(field string) string {
	return f.FieldErrors[field]
}
