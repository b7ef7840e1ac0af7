//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	minJokeNameLen    = 2
	maxJokeNameLen    = 255
	minJokeContentLen = 10
	maxJokeContentLen = 10000

	// LatestJokesLimit is how many jokes the sidebar lists.
	LatestJokesLimit = 5
)

// Joke is a user-submitted joke. JokesterID records the owner.
type Joke struct {
	ID         string    `json:"id"          db:"id"`
	JokesterID string    `json:"jokester_id" db:"jokester_id"`
	Name       string    `json:"name"        db:"name"`
	Content    string    `json:"content"     db:"content"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"  db:"updated_at"`
}

// OwnerID returns the id of the user allowed to mutate the joke.
func (j *Joke) OwnerID() string { return j.JokesterID }

// JokeListItem is the sidebar projection of a joke.
type JokeListItem struct {
	ID   string `json:"id"   db:"id"`
	Name string `json:"name" db:"name"`
}

// CreateJokeRequest represents parameters to create a Joke.
type CreateJokeRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Validate validates CreateJokeRequest and reports per-field messages.
func (r *CreateJokeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Content = strings.TrimSpace(r.Content)

	fe := FieldErrors{}
	switch n := utf8.RuneCountInString(r.Name); {
	case n < minJokeNameLen:
		fe["name"] = "That joke's name is too short"
	case n > maxJokeNameLen:
		fe["name"] = "That joke's name cannot exceed 255 characters"
	}
	switch n := utf8.RuneCountInString(r.Content); {
	case n < minJokeContentLen:
		fe["content"] = "That joke is too short"
	case n > maxJokeContentLen:
		fe["content"] = "That joke cannot exceed 10000 characters"
	}
	return fe.OrNil()
}
