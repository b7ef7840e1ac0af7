// Package mocks provides mock implementations for testing the jokeboard services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	users := mocks.NewMockUserStore(ctrl)
//	users.EXPECT().FindByID(gomock.Any(), "u1", gomock.Any()).Return(nil, apperrors.NotFound("gone"))
package mocks

// Generate mock for UserStore interface from internal/ports package.
// This creates MockUserStore with methods for all UserStore interface methods:
// FindByUsername, FindByID, Create
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_store_mock.go github.com/target/jokeboard/internal/ports UserStore

// Generate mock for JokeStore interface from internal/ports package.
// This creates MockJokeStore with methods for all JokeStore interface methods:
// Latest, Count, At, GetByID, Create, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=joke_store_mock.go github.com/target/jokeboard/internal/ports JokeStore

// Generate mock for Cache interface from internal/ports package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_mock.go github.com/target/jokeboard/internal/ports Cache
