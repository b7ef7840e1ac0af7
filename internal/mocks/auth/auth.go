package auth

// Package auth contains simple hand-written test doubles for auth and joke ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"crypto/subtle"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/target/jokeboard/internal/domain/model"
	apperrors "github.com/target/jokeboard/internal/errors"
	"github.com/target/jokeboard/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.UserStore      = (*MemoryUserStore)(nil)
	_ ports.JokeStore      = (*MemoryJokeStore)(nil)
	_ ports.PasswordHasher = (*PlainHasher)(nil)
)

// PlainHasher is a fast, insecure PasswordHasher for tests. Hashes look like "plain:<password>".
type PlainHasher struct {
	HashErr error
}

func (h PlainHasher) Hash(password string) (string, error) {
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return "plain:" + password, nil
}

func (PlainHasher) Verify(password, hash string) bool {
	stored, ok := strings.CutPrefix(hash, "plain:")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

type storedUser struct {
	user model.User
	hash string
}

// MemoryUserStore is an in-memory user store for unit tests.
// The Func fields override the default behavior when set.
type MemoryUserStore struct {
	FindByUsernameFunc func(ctx context.Context, username string) (*model.Credential, error)
	FindByIDFunc       func(ctx context.Context, id string, projection model.UserProjection) (*model.User, error)

	mu    sync.Mutex
	users map[string]storedUser // by id
	now   func() time.Time
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]storedUser), now: time.Now}
}

// Seed inserts a user with a precomputed password hash and returns it.
func (m *MemoryUserStore) Seed(username, passwordHash string) *model.User {
	u, err := m.Create(context.Background(), username, passwordHash)
	if err != nil {
		panic(err) //nolint:forbidigo // test helper
	}
	return u
}

// Remove deletes a user by id, simulating an account removed while a session is live.
func (m *MemoryUserStore) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}

func (m *MemoryUserStore) FindByUsername(ctx context.Context, username string) (*model.Credential, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, su := range m.users {
		if su.user.Username == username {
			return &model.Credential{ID: su.user.ID, Username: su.user.Username, PasswordHash: su.hash}, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (m *MemoryUserStore) FindByID(ctx context.Context, id string, projection model.UserProjection) (*model.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id, projection)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	su, ok := m.users[id]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	u := projection.Apply(su.user)
	return &u, nil
}

func (m *MemoryUserStore) Create(_ context.Context, username, passwordHash string) (*model.User, error) {
	if username == "" || passwordHash == "" {
		return nil, errors.New("username and password hash are required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, su := range m.users {
		if su.user.Username == username {
			return nil, &apperrors.AppError{Code: apperrors.ErrCodeConflict, Message: "This value already exists.", Field: "username"}
		}
	}
	now := m.now()
	u := model.User{ID: uuid.NewString(), Username: username, CreatedAt: now, UpdatedAt: now}
	m.users[u.ID] = storedUser{user: u, hash: passwordHash}
	return &u, nil
}

// MemoryJokeStore is an in-memory joke store for unit tests.
type MemoryJokeStore struct {
	// Err, when set, is returned by every operation.
	Err error

	mu    sync.Mutex
	jokes []model.Joke // oldest first
	clock time.Time
}

// NewMemoryJokeStore creates an empty in-memory joke store.
func NewMemoryJokeStore() *MemoryJokeStore {
	return &MemoryJokeStore{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Seed inserts a joke owned by jokesterID without validation.
func (m *MemoryJokeStore) Seed(jokesterID, name, content string) *model.Joke {
	j, err := m.Create(context.Background(), jokesterID, model.CreateJokeRequest{Name: name, Content: content})
	if err != nil {
		panic(err) //nolint:forbidigo // test helper
	}
	return j
}

func (m *MemoryJokeStore) Latest(_ context.Context, limit int) ([]model.JokeListItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.JokeListItem, 0, limit)
	for i := len(m.jokes) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, model.JokeListItem{ID: m.jokes[i].ID, Name: m.jokes[i].Name})
	}
	return out, nil
}

func (m *MemoryJokeStore) Count(_ context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jokes), nil
}

func (m *MemoryJokeStore) At(_ context.Context, offset int) (*model.Joke, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset < 0 || offset >= len(m.jokes) {
		return nil, apperrors.NotFound("joke not found")
	}
	j := m.jokes[offset]
	return &j, nil
}

func (m *MemoryJokeStore) GetByID(_ context.Context, id string) (*model.Joke, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range m.jokes {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, apperrors.NotFound("joke not found")
}

func (m *MemoryJokeStore) Create(_ context.Context, jokesterID string, req model.CreateJokeRequest) (*model.Joke, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Minute)
	j := model.Joke{
		ID:         uuid.NewString(),
		JokesterID: jokesterID,
		Name:       req.Name,
		Content:    req.Content,
		CreatedAt:  m.clock,
		UpdatedAt:  m.clock,
	}
	m.jokes = append(m.jokes, j)
	return &j, nil
}

func (m *MemoryJokeStore) Delete(_ context.Context, id string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.jokes, func(j model.Joke) bool { return j.ID == id })
	if i < 0 {
		return false, nil
	}
	m.jokes = slices.Delete(m.jokes, i, i+1)
	return true, nil
}
